package igsn

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/geosamples/curator/helpers"
	"github.com/geosamples/curator/model"
	"github.com/geosamples/curator/storage"
)

// Report is the outcome of storing one parsed batch.
type Report struct {
	BatchID string
	Created int
	Errors  []RowIssue
}

// Ingester stores parsed IGSN rows as physical-object resources.
type Ingester struct {
	store *storage.Store
	log   *slog.Logger
}

// NewIngester creates an ingester writing through the given store.
func NewIngester(store *storage.Store, log *slog.Logger) *Ingester {
	if log == nil {
		log = slog.Default()
	}
	return &Ingester{store: store, log: log}
}

// Store writes all rows inside one transaction. Row-level failures are
// collected and reported; the surviving rows still commit. Only a
// transaction-level failure aborts the whole batch.
func (ing *Ingester) Store(result *ParseResult, filename, actorID string) (*Report, error) {
	report := &Report{BatchID: uuid.NewString()}
	log := ing.log.With("batch", report.BatchID, "file", filename)

	err := ing.store.Batch(func(b *storage.Batch) error {
		for _, row := range result.Rows {
			payload, err := ing.buildPayload(row)
			if err != nil {
				report.Errors = append(report.Errors, RowIssue{Row: row.Line, Message: err.Error()})
				log.Warn("skipping row", "row", row.Line, "error", err)
				continue
			}
			if _, err := b.Create(payload, actorID); err != nil {
				report.Errors = append(report.Errors, RowIssue{Row: row.Line, Message: err.Error()})
				log.Warn("skipping row", "row", row.Line, "error", err)
				continue
			}
			report.Created++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storing batch: %w", err)
	}

	log.Info("batch stored", "created", report.Created, "failed", len(report.Errors))
	return report, nil
}

// buildPayload maps one CSV row onto an edit payload of resource type
// physical-object.
func (ing *Ingester) buildPayload(row Row) (storage.EditPayload, error) {
	p := storage.EditPayload{
		ResourceType: "physical-object",
		Publisher:    row.Publisher,
		Titles: []storage.TitleInput{
			{Value: row.Title, Type: model.TitleMain},
		},
	}

	if row.PublicationYear != "" {
		year, err := strconv.Atoi(row.PublicationYear)
		if err != nil {
			return p, fmt.Errorf("invalid publication year %q", row.PublicationYear)
		}
		p.PublicationYear = year
	} else {
		p.PublicationYear = time.Now().UTC().Year()
	}

	creator, err := agentInput(row.Creator)
	if err != nil {
		return p, err
	}
	p.Creators = []storage.AgentInput{creator}

	for _, c := range row.Contributors {
		agent, err := agentInput(c)
		if err != nil {
			ing.log.Warn("skipping contributor", "row", row.Line, "name", c.Name, "error", err)
			continue
		}
		agent.Role = c.Role
		if !ing.store.HasContributorType(agent.Role) {
			ing.log.Warn("skipping contributor with unknown role",
				"row", row.Line, "name", c.Name, "role", c.Role)
			continue
		}
		p.Contributors = append(p.Contributors, agent)
	}
	if row.Laboratory != "" {
		p.Contributors = append(p.Contributors, storage.AgentInput{
			Kind:   storage.AgentInstitution,
			Name:   row.Laboratory,
			Scheme: model.SchemeLabID,
			Role:   model.RoleHostingInstitution,
		})
	}

	if row.Description != "" {
		p.Descriptions = []storage.DescriptionInput{
			{Value: row.Description, Type: model.DescriptionAbstract},
		}
	}

	if date, ok := collectionDate(row); ok {
		p.Dates = []storage.DateInput{date}
	}

	for _, kw := range row.Keywords {
		p.Subjects = append(p.Subjects, model.Subject{Value: kw})
	}

	if row.Latitude != "" || row.Longitude != "" || row.Place != "" {
		p.GeoLocations = []storage.GeoLocationInput{{
			Place:          row.Place,
			PointLatitude:  row.Latitude,
			PointLongitude: row.Longitude,
		}}
	}

	for _, rel := range row.Related {
		if !ing.store.HasIdentifierType(rel.Type) {
			ing.log.Warn("skipping related identifier with unknown type",
				"row", row.Line, "identifier", rel.Identifier, "type", rel.Type)
			continue
		}
		p.RelatedIdentifiers = append(p.RelatedIdentifiers, storage.RelatedIdentifierInput{
			Identifier:   rel.Identifier,
			Type:         rel.Type,
			RelationType: rel.Relation,
		})
	}

	for _, f := range row.Funding {
		p.FundingReferences = append(p.FundingReferences, model.FundingReference{
			FunderName:  f.FunderName,
			AwardNumber: f.AwardNumber,
		})
	}

	for _, s := range row.Sizes {
		p.Sizes = append(p.Sizes, s.String())
	}

	sample := &model.PhysicalSample{
		IGSN:             row.IGSN,
		ParentIGSN:       row.ParentIGSN,
		SampleType:       row.SampleType,
		Material:         row.Material,
		CollectionMethod: row.CollectionMethod,
	}
	if sample.Elevation, err = optionalFloat("elevation", row.Elevation); err != nil {
		return p, err
	}
	if sample.DepthMin, err = optionalFloat("depth_min", row.DepthMin); err != nil {
		return p, err
	}
	if sample.DepthMax, err = optionalFloat("depth_max", row.DepthMax); err != nil {
		return p, err
	}
	p.Sample = sample

	return p, nil
}

func agentInput(a Agent) (storage.AgentInput, error) {
	parsed := helpers.ParsePersonName(a.Name)
	if parsed.Family == "" {
		return storage.AgentInput{}, fmt.Errorf("unparseable name %q", a.Name)
	}
	agent := storage.AgentInput{
		Kind:       storage.AgentPerson,
		FamilyName: parsed.Family,
	}
	if parsed.Given != "" {
		given := parsed.Given
		agent.GivenName = &given
	}
	if a.ORCID != "" {
		agent.Identifier = a.ORCID
		agent.Scheme = model.SchemeORCID
	}
	return agent, nil
}

// collectionDate builds the Collected date from the row's start/end pair.
// A start without an end stays an open-ended range in storage.
func collectionDate(row Row) (storage.DateInput, bool) {
	if row.CollectionStart == "" {
		return storage.DateInput{}, false
	}
	d := storage.DateInput{Type: model.DateCollected}
	start, err := helpers.NormalizeDateStart(row.CollectionStart)
	if err != nil {
		return storage.DateInput{}, false
	}
	if row.CollectionEnd == "" {
		d.Start = start
		return d, true
	}
	end, err := helpers.NormalizeDateEnd(row.CollectionEnd)
	if err != nil {
		d.Start = start
		return d, true
	}
	d.Start, d.End = start, end
	return d, true
}

func optionalFloat(field, value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", field, value)
	}
	return &f, nil
}
