package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ImCuriosity/competition-recommendation/internal/domain/competition"
	qb "github.com/ImCuriosity/competition-recommendation/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) ListPage(ctx context.Context, filter competition.Filter, offset, limit int) ([]competition.Competition, error) {
	builder := qb.Select(
		"id", "title", "sport_category", "grade", "age", "gender",
		"event_period", "location::text AS location",
		"location_province_city", "location_county_district",
		"host", "source_url",
	).From("competitions")

	var conditions []qb.Condition
	if filter.SportCategory != "" {
		conditions = append(conditions, qb.Eq("sport_category", filter.SportCategory))
	}
	if filter.Province != "" {
		conditions = append(conditions, qb.Eq("location_province_city", filter.Province))
	}
	if filter.CityCounty != "" {
		conditions = append(conditions, qb.Eq("location_county_district", filter.CityCounty))
	}
	if len(conditions) > 0 {
		builder = builder.Where(conditions...)
	}

	query, args, err := builder.
		OrderBy("id").
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competition.Competition{
			ID:            row.ID,
			Title:         row.Title,
			SportCategory: row.SportCategory,
			Grade:         row.Grade.String,
			AgeRule:       row.Age.String,
			GenderRule:    row.Gender.String,
			EventPeriod:   row.EventPeriod.String,
			RawLocation:   row.Location.String,
			Province:      row.Province.String,
			CityCounty:    row.CityCounty.String,
			Host:          row.Host.String,
			SourceURL:     row.SourceURL.String,
		})
	}

	return out, nil
}
