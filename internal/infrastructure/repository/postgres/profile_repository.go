package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ImCuriosity/competition-recommendation/internal/domain/geo"
	"github.com/ImCuriosity/competition-recommendation/internal/domain/profile"
	qb "github.com/ImCuriosity/competition-recommendation/internal/platform/querybuilder"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	query, args, err := qb.Select("id::text AS id", "age", "gender", "location::text AS location").
		From("profiles").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build get profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("get profile by id: %w", err)
	}

	out := profile.Profile{
		ID:     row.ID,
		Age:    row.Age,
		Gender: nullStringPtr(row.Gender),
	}
	// A location that fails to decode leaves the profile without
	// coordinates, same as an absent one.
	if row.Location.Valid && row.Location.String != "" {
		if lat, lon, err := geo.DecodePointHex(row.Location.String); err == nil {
			out.Latitude = &lat
			out.Longitude = &lon
		}
	}

	interests, err := r.listInterests(ctx, userID)
	if err != nil {
		return profile.Profile{}, false, err
	}
	out.Interests = interests

	return out, true, nil
}

func (r *ProfileRepository) listInterests(ctx context.Context, userID string) ([]profile.Interest, error) {
	query, args, err := qb.Select("user_id::text AS user_id", "sport_name", "skill").
		From("interesting_sports").
		Where(qb.Eq("user_id", userID)).
		OrderBy("sport_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list interests query: %w", err)
	}

	var rows []interestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}

	out := make([]profile.Interest, 0, len(rows))
	for _, row := range rows {
		out = append(out, profile.Interest{SportName: row.SportName, Skill: row.Skill})
	}

	return out, nil
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
