package supabase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"

	"github.com/ImCuriosity/competition-recommendation/internal/domain/geo"
	"github.com/ImCuriosity/competition-recommendation/internal/domain/profile"
)

type profileRow struct {
	ID       string  `json:"id"`
	Age      int     `json:"age"`
	Gender   *string `json:"gender"`
	Location *string `json:"location"`
}

type interestRow struct {
	SportName string `json:"sport_name"`
	Skill     string `json:"skill"`
}

type ProfileRepository struct {
	client *Client
}

func NewProfileRepository(client *Client) *ProfileRepository {
	return &ProfileRepository{client: client}
}

// GetByID loads the profile row and its interests in one round trip
// each, fetched concurrently.
func (r *ProfileRepository) GetByID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	var (
		profiles    []profileRow
		interests   []interestRow
		profileErr  error
		interestErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		profileErr = r.client.GetJSON(ctx, "profiles", map[string]string{
			"select": "id,age,gender,location",
			"id":     eq(userID),
		}, &profiles)
	})
	wg.Go(func() {
		interestErr = r.client.GetJSON(ctx, "interesting_sports", map[string]string{
			"select":  "sport_name,skill",
			"user_id": eq(userID),
			"order":   "sport_name.asc",
		}, &interests)
	})
	wg.Wait()

	if profileErr != nil {
		return profile.Profile{}, false, fmt.Errorf("get profile: %w", profileErr)
	}
	if len(profiles) == 0 {
		return profile.Profile{}, false, nil
	}
	if interestErr != nil {
		return profile.Profile{}, false, fmt.Errorf("list interests: %w", interestErr)
	}

	row := profiles[0]
	out := profile.Profile{
		ID:     row.ID,
		Age:    row.Age,
		Gender: row.Gender,
	}
	if row.Location != nil && *row.Location != "" {
		if lat, lon, err := geo.DecodePointHex(*row.Location); err == nil {
			out.Latitude = &lat
			out.Longitude = &lon
		}
	}

	out.Interests = make([]profile.Interest, 0, len(interests))
	for _, item := range interests {
		out.Interests = append(out.Interests, profile.Interest{SportName: item.SportName, Skill: item.Skill})
	}

	return out, true, nil
}
