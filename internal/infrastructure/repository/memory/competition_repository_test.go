package memory

import (
	"context"
	"testing"

	"github.com/ImCuriosity/competition-recommendation/internal/domain/competition"
)

func TestCompetitionRepository_FilterAndPaging(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewCompetitionRepository(SeedCompetitions())

	all, err := repo.ListPage(ctx, competition.Filter{}, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != len(SeedCompetitions()) {
		t.Fatalf("expected all seed rows, got %d", len(all))
	}

	badminton, err := repo.ListPage(ctx, competition.Filter{SportCategory: "배드민턴"}, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, row := range badminton {
		if row.SportCategory != "배드민턴" {
			t.Fatalf("unexpected sport %q", row.SportCategory)
		}
	}

	seoul, err := repo.ListPage(ctx, competition.Filter{Province: "서울", CityCounty: "중구"}, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seoul) != 1 || seoul[0].ID != 1 {
		t.Fatalf("unexpected region filter result: %+v", seoul)
	}

	// Paging walks the filtered rows without overlap.
	first, err := repo.ListPage(ctx, competition.Filter{SportCategory: "배드민턴"}, 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := repo.ListPage(ctx, competition.Filter{SportCategory: "배드민턴"}, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected a full first page, got %d", len(first))
	}
	if len(first)+len(second) != len(badminton) {
		t.Fatalf("pages do not cover the filtered rows: %d + %d != %d", len(first), len(second), len(badminton))
	}

	// Offset past the end is an empty page, not an error.
	empty, err := repo.ListPage(ctx, competition.Filter{}, 1000, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page, got %d rows", len(empty))
	}
}

func TestProfileRepository_GetByID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewProfileRepository(SeedProfiles())

	p, ok, err := repo.GetByID(ctx, UserIDSeoulBadminton)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected seeded profile to exist")
	}
	if len(p.Interests) != 2 {
		t.Fatalf("unexpected interests: %+v", p.Interests)
	}

	if _, ok, err := repo.GetByID(ctx, "unknown"); err != nil || ok {
		t.Fatalf("expected miss for unknown user, ok=%v err=%v", ok, err)
	}
}
