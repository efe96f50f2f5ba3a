package memory

import (
	"context"
	"sync"

	"github.com/ImCuriosity/competition-recommendation/internal/domain/profile"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]profile.Profile
}

func NewProfileRepository(profiles []profile.Profile) *ProfileRepository {
	items := make(map[string]profile.Profile, len(profiles))
	for _, p := range profiles {
		items[p.ID] = p
	}
	return &ProfileRepository{items: items}
}

func (r *ProfileRepository) GetByID(_ context.Context, userID string) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[userID]
	return p, ok, nil
}
