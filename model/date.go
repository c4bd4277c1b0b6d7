package model

// ResourceDate is a typed lifecycle or coverage date. Exactly one of the
// single Value or the Start/End range is populated, never both. An empty
// End with a set Start is an open-ended range; the open end survives in
// storage even though DataCite export collapses it to the start value.
type ResourceDate struct {
	Type        string
	Value       string
	Start       string
	End         string
	Information string
}

// Date type slugs. Created and Updated are system-managed: Created is
// written once when the resource is first stored and preserved on every
// subsequent edit, Updated is replaced on every edit.
const (
	DateAccepted  = "accepted"
	DateAvailable = "available"
	DateCollected = "collected"
	DateCopyright = "copyrighted"
	DateCoverage  = "coverage"
	DateCreated   = "created"
	DateIssued    = "issued"
	DateSubmitted = "submitted"
	DateUpdated   = "updated"
	DateValid     = "valid"
	DateWithdrawn = "withdrawn"
	DateOther     = "other"
)

// IsRange reports whether the date is a start/end range rather than a
// single value.
func (d *ResourceDate) IsRange() bool {
	return d.Value == "" && d.Start != ""
}

// IsOpenEnded reports whether the date is a range with no end.
func (d *ResourceDate) IsOpenEnded() bool {
	return d.IsRange() && d.End == ""
}

// Resolved returns the exportable date string: the single value, the start
// for an open-ended range, or "start/end" for a closed range. Empty when
// no value can be derived.
func (d *ResourceDate) Resolved() string {
	switch {
	case d.Value != "":
		return d.Value
	case d.Start != "" && d.End != "":
		return d.Start + "/" + d.End
	case d.Start != "":
		return d.Start
	default:
		return ""
	}
}
