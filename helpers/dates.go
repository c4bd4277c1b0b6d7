package helpers

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	yearOnlyRegex  = regexp.MustCompile(`^(\d{4})$`)
	yearMonthRegex = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	fullDateRegex  = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
)

// NormalizeDateStart expands a partial ISO-8601 date to the first calendar
// day of the period: "2020" -> "2020-01-01", "2020-03" -> "2020-03-01".
// Full dates are validated and corrected to real calendar dates.
func NormalizeDateStart(raw string) (string, error) {
	return normalizeDate(raw, false)
}

// NormalizeDateEnd expands a partial ISO-8601 date to the last calendar day
// of the period: "2020" -> "2020-12-31", "2020-02" -> "2020-02-29"
// (leap-year aware).
func NormalizeDateEnd(raw string) (string, error) {
	return normalizeDate(raw, true)
}

func normalizeDate(raw string, end bool) (string, error) {
	if m := yearOnlyRegex.FindStringSubmatch(raw); m != nil {
		if end {
			return m[1] + "-12-31", nil
		}
		return m[1] + "-01-01", nil
	}

	if m := yearMonthRegex.FindStringSubmatch(raw); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return "", fmt.Errorf("invalid month in date %q", raw)
		}
		if end {
			return fmt.Sprintf("%04d-%02d-%02d", year, month, lastDayOfMonth(year, month)), nil
		}
		return fmt.Sprintf("%04d-%02d-01", year, month), nil
	}

	if m := fullDateRegex.FindStringSubmatch(raw); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month < 1 || month > 12 {
			return "", fmt.Errorf("invalid month in date %q", raw)
		}
		// Correct impossible days (Feb-30) by clamping to the month's end.
		if max := lastDayOfMonth(year, month); day > max {
			day = max
		}
		if day < 1 {
			day = 1
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
	}

	return "", fmt.Errorf("unparseable date %q", raw)
}

// lastDayOfMonth returns the number of days in the given month.
func lastDayOfMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ValidDate reports whether the string is a real YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
