package competition

import (
	"strings"
	"time"

	"github.com/ImCuriosity/competition-recommendation/internal/domain/geo"
)

// Competition is a catalog row as stored, before any normalization.
type Competition struct {
	ID            int64
	Title         string
	SportCategory string
	Grade         string
	AgeRule       string
	GenderRule    string
	EventPeriod   string
	RawLocation   string
	Province      string
	CityCounty    string
	Host          string
	SourceURL     string
}

// Normalized is a competition prepared for scoring: coordinates decoded
// from the raw location and the start date extracted from the event period.
type Normalized struct {
	Competition

	Latitude  *float64
	Longitude *float64
	StartDate string
}

// Normalize decodes the location and extracts the start date. It reports
// false when the competition starts before availableFrom and must be
// dropped. Location decode failures keep the row with nil coordinates,
// and an unparseable start date never drops the row.
func Normalize(c Competition, availableFrom string) (Normalized, bool) {
	startDate := PeriodStartDate(c.EventPeriod)
	if availableFrom != "" && StartsBefore(startDate, availableFrom) {
		return Normalized{}, false
	}

	n := Normalized{Competition: c, StartDate: startDate}
	if c.RawLocation != "" {
		if lat, lon, err := geo.DecodePointHex(c.RawLocation); err == nil {
			n.Latitude = &lat
			n.Longitude = &lon
		}
	}

	return n, true
}

// PeriodStartDate extracts the start date from an event period such as
// "[2026-10-01,2026-10-03)". It returns the segment before the first
// comma with brackets stripped, or "" for an empty period.
func PeriodStartDate(period string) string {
	if period == "" {
		return ""
	}

	start := period
	if i := strings.IndexByte(period, ','); i >= 0 {
		start = period[:i]
	}
	start = strings.Trim(start, "[]()")

	return strings.TrimSpace(start)
}

// StartsBefore reports whether startDate falls strictly before cutoff.
// Dates that fail to parse are treated as not-before, so malformed rows
// stay in the result set.
func StartsBefore(startDate, cutoff string) bool {
	if startDate == "" || cutoff == "" {
		return false
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return false
	}
	limit, err := time.Parse("2006-01-02", cutoff)
	if err != nil {
		return false
	}

	return start.Before(limit)
}
