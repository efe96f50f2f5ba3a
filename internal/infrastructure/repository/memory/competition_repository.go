package memory

import (
	"context"
	"sync"

	"github.com/ImCuriosity/competition-recommendation/internal/domain/competition"
)

type CompetitionRepository struct {
	mu   sync.RWMutex
	rows []competition.Competition
}

func NewCompetitionRepository(rows []competition.Competition) *CompetitionRepository {
	return &CompetitionRepository{rows: append([]competition.Competition(nil), rows...)}
}

func (r *CompetitionRepository) ListPage(_ context.Context, filter competition.Filter, offset, limit int) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]competition.Competition, 0, len(r.rows))
	for _, row := range r.rows {
		if filter.SportCategory != "" && row.SportCategory != filter.SportCategory {
			continue
		}
		if filter.Province != "" && row.Province != filter.Province {
			continue
		}
		if filter.CityCounty != "" && row.CityCounty != filter.CityCounty {
			continue
		}
		matched = append(matched, row)
	}

	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}

	return append([]competition.Competition(nil), matched[offset:end]...), nil
}
