package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/ImCuriosity/competition-recommendation/internal/domain/competition"
	"github.com/ImCuriosity/competition-recommendation/internal/platform/cache"
	"github.com/ImCuriosity/competition-recommendation/internal/platform/logging"
)

// Region sentinels clients send to mean "any".
const (
	AllProvinces    = "전체 지역"
	AllCityCounties = "전체 시/군/구"
)

// CatalogService serves filtered catalog searches. Results are cached
// per filter when a cache store is configured.
type CatalogService struct {
	competitionRepo competition.Repository
	pageSize        int
	workers         int
	store           *cache.Store
	logger          *logging.Logger
}

func NewCatalogService(competitionRepo competition.Repository, pageSize, workers int, store *cache.Store, logger *logging.Logger) *CatalogService {
	if pageSize < 1 {
		pageSize = 1000
	}
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CatalogService{
		competitionRepo: competitionRepo,
		pageSize:        pageSize,
		workers:         workers,
		store:           store,
		logger:          logger,
	}
}

// SearchResult carries the normalized matches and how many raw rows the
// scan fetched before normalization dropped any.
type SearchResult struct {
	Competitions []competition.Normalized
	TotalFetched int
}

// Search returns normalized competitions matching the filter, dropping
// those that start before availableFrom. The "all" region sentinels
// clear the corresponding filter fields, and the city filter only
// applies under a concrete province.
func (s *CatalogService) Search(ctx context.Context, filter competition.Filter, availableFrom string) (SearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.Search")
	defer span.End()

	filter = resolveRegionFilter(filter)

	if s.store == nil {
		return s.search(ctx, filter, availableFrom)
	}

	key := searchCacheKey(filter, availableFrom)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.search(ctx, filter, availableFrom)
	})
	if err != nil {
		return SearchResult{}, err
	}

	result, ok := value.(SearchResult)
	if !ok {
		return SearchResult{}, fmt.Errorf("unexpected cached value type %T", value)
	}
	return result, nil
}

func (s *CatalogService) search(ctx context.Context, filter competition.Filter, availableFrom string) (SearchResult, error) {
	var raw []competition.Competition
	offset := 0
	for {
		page, err := s.competitionRepo.ListPage(ctx, filter, offset, s.pageSize)
		if err != nil {
			// A failed page ends the scan with whatever was fetched so
			// far, so a flaky store degrades to a partial result.
			s.logger.WarnContext(ctx, "catalog page fetch failed, truncating scan", "offset", offset, "error", err)
			break
		}

		raw = append(raw, page...)
		if len(page) < s.pageSize {
			break
		}
		offset += s.pageSize
	}

	normalized, err := s.normalizeAll(raw, availableFrom)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Competitions: normalized, TotalFetched: len(raw)}, nil
}

// normalizeAll decodes locations and start dates across a worker pool,
// preserving catalog order.
func (s *CatalogService) normalizeAll(raw []competition.Competition, availableFrom string) ([]competition.Normalized, error) {
	if len(raw) == 0 {
		return []competition.Normalized{}, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	normalized := make([]*competition.Normalized, len(raw))

	var workers sync.WaitGroup
	for i, c := range raw {
		i, c := i, c
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if n, ok := competition.Normalize(c, availableFrom); ok {
				normalized[i] = &n
			}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	results := make([]competition.Normalized, 0, len(normalized))
	for _, n := range normalized {
		if n != nil {
			results = append(results, *n)
		}
	}
	return results, nil
}

func resolveRegionFilter(filter competition.Filter) competition.Filter {
	filter.SportCategory = strings.TrimSpace(filter.SportCategory)
	filter.Province = strings.TrimSpace(filter.Province)
	filter.CityCounty = strings.TrimSpace(filter.CityCounty)

	if filter.Province == AllProvinces {
		filter.Province = ""
	}
	if filter.CityCounty == AllCityCounties || filter.Province == "" {
		filter.CityCounty = ""
	}

	return filter
}

func searchCacheKey(filter competition.Filter, availableFrom string) string {
	return strings.Join([]string{
		"catalog:search",
		filter.SportCategory,
		filter.Province,
		filter.CityCounty,
		availableFrom,
	}, "|")
}
