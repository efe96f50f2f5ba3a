package supabase

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ImCuriosity/competition-recommendation/internal/domain/competition"
)

type competitionRow struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	SportCategory string  `json:"sport_category"`
	Grade         *string `json:"grade"`
	Age           *string `json:"age"`
	Gender        *string `json:"gender"`
	EventPeriod   *string `json:"event_period"`
	Location      *string `json:"location"`
	Province      *string `json:"location_province_city"`
	CityCounty    *string `json:"location_county_district"`
	Host          *string `json:"host"`
	SourceURL     *string `json:"source_url"`
}

type CompetitionRepository struct {
	client *Client
}

func NewCompetitionRepository(client *Client) *CompetitionRepository {
	return &CompetitionRepository{client: client}
}

func (r *CompetitionRepository) ListPage(ctx context.Context, filter competition.Filter, offset, limit int) ([]competition.Competition, error) {
	params := map[string]string{
		"select": "*",
		"order":  "id.asc",
		"offset": strconv.Itoa(offset),
		"limit":  strconv.Itoa(limit),
	}
	if filter.SportCategory != "" {
		params["sport_category"] = eq(filter.SportCategory)
	}
	if filter.Province != "" {
		params["location_province_city"] = eq(filter.Province)
	}
	if filter.CityCounty != "" {
		params["location_county_district"] = eq(filter.CityCounty)
	}

	var rows []competitionRow
	if err := r.client.GetJSON(ctx, "competitions", params, &rows); err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competition.Competition{
			ID:            row.ID,
			Title:         row.Title,
			SportCategory: row.SportCategory,
			Grade:         deref(row.Grade),
			AgeRule:       deref(row.Age),
			GenderRule:    deref(row.Gender),
			EventPeriod:   deref(row.EventPeriod),
			RawLocation:   deref(row.Location),
			Province:      deref(row.Province),
			CityCounty:    deref(row.CityCounty),
			Host:          deref(row.Host),
			SourceURL:     deref(row.SourceURL),
		})
	}

	return out, nil
}

func eq(value string) string {
	return "eq." + url.QueryEscape(value)
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
