package recommend

import (
	"math"
	"testing"

	"github.com/ImCuriosity/competition-recommendation/internal/domain/competition"
	"github.com/ImCuriosity/competition-recommendation/internal/domain/profile"
)

func ptr(v float64) *float64 { return &v }

func TestScoreCompetition_FullMatch(t *testing.T) {
	t.Parallel()

	male := "남"
	user := profile.Profile{
		Age:       30,
		Gender:    &male,
		Latitude:  ptr(37.5665),
		Longitude: ptr(126.9780),
	}
	interests := map[string]string{"배드민턴": "중"}

	// Same coordinates as the user: location similarity is exactly 1.
	comp := competition.Normalized{
		Competition: competition.Competition{
			SportCategory: "배드민턴",
			Grade:         "C급",
			AgeRule:       "무관",
			GenderRule:    "무관",
		},
		Latitude:  ptr(37.5665),
		Longitude: ptr(126.9780),
	}

	score := ScoreCompetition(user, interests, comp)
	if score.Skill == nil || score.Location == nil {
		t.Fatalf("expected sub-scores for a scored competition")
	}
	if *score.Skill != 1.0 {
		t.Fatalf("expected perfect skill similarity, got %v", *score.Skill)
	}
	if *score.Location != 1.0 {
		t.Fatalf("expected perfect location similarity, got %v", *score.Location)
	}
	if score.Total != 1.0 {
		t.Fatalf("expected total 1.0, got %v", score.Total)
	}
}

func TestScoreCompetition_WeightedBlend(t *testing.T) {
	t.Parallel()

	male := "남"
	user := profile.Profile{Age: 30, Gender: &male, Latitude: ptr(0), Longitude: ptr(0)}
	interests := map[string]string{"배드민턴": "중"}

	// ~0.4496 degrees of longitude on the equator is close to 50 km.
	comp := competition.Normalized{
		Competition: competition.Competition{
			SportCategory: "배드민턴",
			Grade:         "C급",
			AgeRule:       "무관",
			GenderRule:    "무관",
		},
		Latitude:  ptr(0),
		Longitude: ptr(50.0 / 6371.0 * 180 / math.Pi),
	}

	score := ScoreCompetition(user, interests, comp)
	if score.Skill == nil || *score.Skill != 1.0 {
		t.Fatalf("expected skill similarity 1.0")
	}
	if score.Location == nil || math.Abs(*score.Location-0.9) > 1e-9 {
		t.Fatalf("expected location similarity 0.9, got %v", *score.Location)
	}
	if math.Abs(score.Total-0.96) > 1e-9 {
		t.Fatalf("expected total 0.96, got %v", score.Total)
	}
}

func TestScoreCompetition_Filters(t *testing.T) {
	t.Parallel()

	male := "남"
	user := profile.Profile{Age: 30, Gender: &male}
	interests := map[string]string{"배드민턴": "중"}

	cases := []struct {
		name string
		comp competition.Competition
	}{
		{"sport not in interests", competition.Competition{SportCategory: "테니스"}},
		{"age rule rejects", competition.Competition{SportCategory: "배드민턴", AgeRule: "18~29"}},
		{"gender rule rejects", competition.Competition{SportCategory: "배드민턴", GenderRule: "여"}},
		{"age rule unparseable", competition.Competition{SportCategory: "배드민턴", AgeRule: "성인"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			score := ScoreCompetition(user, interests, competition.Normalized{Competition: tc.comp})
			if score.Total != 0 {
				t.Fatalf("expected zero total, got %v", score.Total)
			}
			if score.Skill != nil || score.Location != nil {
				t.Fatalf("expected nil sub-scores for a filtered competition")
			}
		})
	}
}

func TestSkillSimilarity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		skill string
		sport string
		grade string
		want  float64
	}{
		{"same tier", "중", "배드민턴", "C급", 1.0},
		{"one tier apart", "중", "배드민턴", "A급", 1.0 - 1.0/3.0},
		{"empty grade is open tier", "중", "배드민턴", "", 1.0 - 2.0/3.0},
		{"full span", "상", "배드민턴", "무관", 0.0},
		{"unknown user skill ranks open", "고수", "배드민턴", "무관", 1.0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := SkillSimilarity(tc.skill, tc.sport, tc.grade)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("SkillSimilarity(%q, %q, %q) = %v, want %v", tc.skill, tc.sport, tc.grade, got, tc.want)
			}
		})
	}
}

func TestLocationSimilarity(t *testing.T) {
	t.Parallel()

	if got := LocationSimilarity(nil, nil, ptr(37.0), ptr(127.0)); got != 0.5 {
		t.Fatalf("expected neutral similarity for missing user coords, got %v", got)
	}
	if got := LocationSimilarity(ptr(37.0), ptr(127.0), nil, nil); got != 0.5 {
		t.Fatalf("expected neutral similarity for missing competition coords, got %v", got)
	}
	if got := LocationSimilarity(ptr(0), ptr(0), ptr(0), ptr(0)); got != 1.0 {
		t.Fatalf("expected similarity 1.0 for identical coordinates, got %v", got)
	}
	// Opposite sides of the globe clamp at the distance cap.
	if got := LocationSimilarity(ptr(0), ptr(0), ptr(0), ptr(180)); got != 0.0 {
		t.Fatalf("expected similarity 0.0 past the cap, got %v", got)
	}
}
