package recommend

import (
	"github.com/ImCuriosity/competition-recommendation/internal/domain/competition"
	"github.com/ImCuriosity/competition-recommendation/internal/domain/geo"
	"github.com/ImCuriosity/competition-recommendation/internal/domain/profile"
)

const (
	// SkillWeight and LocationWeight blend the two similarity axes.
	SkillWeight    = 0.6
	LocationWeight = 0.4

	// MaxDistanceKM caps the distance used for location similarity.
	MaxDistanceKM = 500.0

	// tierSpan is the rank distance between the strongest and open tiers.
	tierSpan = 3.0
)

// Score is the outcome of matching one user against one competition.
// Skill and Location are nil when the competition was filtered out
// before similarity was computed.
type Score struct {
	Total    float64
	Skill    *float64
	Location *float64
}

// ScoreCompetition evaluates a normalized competition for a user. A
// competition outside the user's interests, or one whose age or gender
// rules reject the user, scores zero with nil sub-scores.
func ScoreCompetition(user profile.Profile, interests map[string]string, comp competition.Normalized) Score {
	userSkill, ok := interests[comp.SportCategory]
	if !ok {
		return Score{}
	}
	if !competition.MatchesGender(user.Gender, comp.GenderRule) {
		return Score{}
	}
	if !competition.MatchesAge(user.Age, comp.AgeRule) {
		return Score{}
	}

	skill := SkillSimilarity(userSkill, comp.SportCategory, comp.Grade)
	location := LocationSimilarity(user.Latitude, user.Longitude, comp.Latitude, comp.Longitude)

	return Score{
		Total:    SkillWeight*skill + LocationWeight*location,
		Skill:    &skill,
		Location: &location,
	}
}

// SkillSimilarity compares a user's skill label against a competition
// grade for a sport. Ranks a full span apart score zero.
func SkillSimilarity(userSkill, sport, grade string) float64 {
	userRank := competition.ParseSkill(userSkill).Rank()
	compRank := competition.ClassifyGrade(sport, grade).Rank()

	diff := float64(userRank - compRank)
	if diff < 0 {
		diff = -diff
	}

	sim := 1.0 - diff/tierSpan
	if sim < 0 {
		return 0
	}
	return sim
}

// LocationSimilarity maps the distance between user and competition to
// [0, 1], clamping at MaxDistanceKM. Either side missing coordinates
// yields a neutral 0.5.
func LocationSimilarity(userLat, userLon, compLat, compLon *float64) float64 {
	if userLat == nil || userLon == nil || compLat == nil || compLon == nil {
		return 0.5
	}

	dist := geo.DistanceKM(*userLat, *userLon, *compLat, *compLon)
	if dist > MaxDistanceKM {
		dist = MaxDistanceKM
	}

	return 1.0 - dist/MaxDistanceKM
}
