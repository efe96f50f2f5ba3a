package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ImCuriosity/competition-recommendation/internal/domain/competition"
	"github.com/ImCuriosity/competition-recommendation/internal/platform/cache"
	"github.com/ImCuriosity/competition-recommendation/internal/platform/logging"
)

type filterRecordingRepo struct {
	rows    []competition.Competition
	filters []competition.Filter
	calls   int
	err     error
}

func (r *filterRecordingRepo) ListPage(_ context.Context, filter competition.Filter, offset, limit int) ([]competition.Competition, error) {
	r.filters = append(r.filters, filter)
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	if offset >= len(r.rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.rows) {
		end = len(r.rows)
	}
	return r.rows[offset:end], nil
}

func TestCatalogSearch_ResolvesRegionSentinels(t *testing.T) {
	t.Parallel()

	repo := &filterRecordingRepo{}
	svc := NewCatalogService(repo, 1000, 2, nil, logging.NewNop())

	_, err := svc.Search(context.Background(), competition.Filter{
		SportCategory: "배드민턴",
		Province:      AllProvinces,
		CityCounty:    "강남구",
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := competition.Filter{SportCategory: "배드민턴"}
	if repo.filters[0] != want {
		t.Fatalf("expected sentinel province to clear region filters, got %+v", repo.filters[0])
	}
}

func TestCatalogSearch_CityRequiresProvince(t *testing.T) {
	t.Parallel()

	repo := &filterRecordingRepo{}
	svc := NewCatalogService(repo, 1000, 2, nil, logging.NewNop())

	if _, err := svc.Search(context.Background(), competition.Filter{CityCounty: "강남구"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.filters[0].CityCounty != "" {
		t.Fatalf("expected city filter dropped without a province, got %+v", repo.filters[0])
	}

	if _, err := svc.Search(context.Background(), competition.Filter{Province: "서울", CityCounty: "강남구"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.filters[1].Province != "서울" || repo.filters[1].CityCounty != "강남구" {
		t.Fatalf("expected both region filters applied, got %+v", repo.filters[1])
	}
}

func TestCatalogSearch_FiltersByAvailableFrom(t *testing.T) {
	t.Parallel()

	repo := &filterRecordingRepo{rows: []competition.Competition{
		{ID: 1, Title: "지난대회", EventPeriod: "[2026-01-01,2026-01-02)"},
		{ID: 2, Title: "다가올대회", EventPeriod: "[2026-10-01,2026-10-02)"},
		{ID: 3, Title: "상시대회", EventPeriod: "상시"},
	}}
	svc := NewCatalogService(repo, 1000, 2, nil, logging.NewNop())

	result, err := svc.Search(context.Background(), competition.Filter{}, "2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Competitions) != 2 {
		t.Fatalf("expected 2 results, got %d", len(result.Competitions))
	}
	if result.TotalFetched != 3 {
		t.Fatalf("expected 3 fetched rows, got %d", result.TotalFetched)
	}
	if result.Competitions[0].ID != 2 || result.Competitions[1].ID != 3 {
		t.Fatalf("unexpected ids: %d, %d", result.Competitions[0].ID, result.Competitions[1].ID)
	}
	if result.Competitions[0].StartDate != "2026-10-01" {
		t.Fatalf("unexpected start date %q", result.Competitions[0].StartDate)
	}
}

func TestCatalogSearch_FirstPageErrorReturnsEmptyPartial(t *testing.T) {
	t.Parallel()

	repo := &filterRecordingRepo{err: errors.New("store down")}
	svc := NewCatalogService(repo, 1000, 2, nil, logging.NewNop())

	result, err := svc.Search(context.Background(), competition.Filter{}, "")
	if err != nil {
		t.Fatalf("a failed first page must degrade to an empty result, got %v", err)
	}
	if len(result.Competitions) != 0 || result.TotalFetched != 0 {
		t.Fatalf("expected empty partial result, got %+v", result)
	}
}

// failFromOffsetRepo serves pages normally until offset reaches failAt.
type failFromOffsetRepo struct {
	rows   []competition.Competition
	failAt int
}

func (r *failFromOffsetRepo) ListPage(_ context.Context, _ competition.Filter, offset, limit int) ([]competition.Competition, error) {
	if offset >= r.failAt {
		return nil, errors.New("store down")
	}
	end := offset + limit
	if end > len(r.rows) {
		end = len(r.rows)
	}
	return r.rows[offset:end], nil
}

func TestCatalogSearch_MidScanErrorReturnsPartial(t *testing.T) {
	t.Parallel()

	rows := make([]competition.Competition, 4)
	for i := range rows {
		rows[i] = competition.Competition{ID: int64(i + 1), Title: "대회", EventPeriod: "[2026-10-01,2026-10-02)"}
	}
	repo := &failFromOffsetRepo{rows: rows, failAt: 2}
	svc := NewCatalogService(repo, 2, 2, nil, logging.NewNop())

	result, err := svc.Search(context.Background(), competition.Filter{}, "")
	if err != nil {
		t.Fatalf("a failed later page must degrade to a partial result, got %v", err)
	}
	if result.TotalFetched != 2 || len(result.Competitions) != 2 {
		t.Fatalf("expected the two rows fetched before the failure, got %+v", result)
	}
}

func TestCatalogSearch_CachesPerFilter(t *testing.T) {
	t.Parallel()

	repo := &filterRecordingRepo{rows: []competition.Competition{
		{ID: 1, Title: "대회", EventPeriod: "[2026-10-01,2026-10-02)"},
	}}
	store := cache.NewStore(time.Minute)
	svc := NewCatalogService(repo, 1000, 2, store, logging.NewNop())

	for i := 0; i < 3; i++ {
		result, err := svc.Search(context.Background(), competition.Filter{Province: "서울"}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Competitions) != 1 {
			t.Fatalf("expected 1 result, got %d", len(result.Competitions))
		}
	}
	if repo.calls != 1 {
		t.Fatalf("expected a single repository scan, got %d", repo.calls)
	}

	// A different filter misses the cache.
	if _, err := svc.Search(context.Background(), competition.Filter{Province: "부산"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.calls != 2 {
		t.Fatalf("expected a second scan for a new filter, got %d", repo.calls)
	}
}

func TestCatalogSearch_PreservesCatalogOrder(t *testing.T) {
	t.Parallel()

	rows := make([]competition.Competition, 0, 50)
	for i := 1; i <= 50; i++ {
		rows = append(rows, competition.Competition{ID: int64(i), EventPeriod: "[2026-10-01,2026-10-02)"})
	}
	repo := &filterRecordingRepo{rows: rows}
	svc := NewCatalogService(repo, 20, 8, nil, logging.NewNop())

	result, err := svc.Search(context.Background(), competition.Filter{}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Competitions) != 50 {
		t.Fatalf("expected 50 results, got %d", len(result.Competitions))
	}
	for i, r := range result.Competitions {
		if r.ID != int64(i+1) {
			t.Fatalf("order broken at %d: got id %d", i, r.ID)
		}
	}
}
