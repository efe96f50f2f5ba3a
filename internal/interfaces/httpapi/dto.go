package httpapi

import (
	"math"

	"github.com/ImCuriosity/competition-recommendation/internal/domain/competition"
	"github.com/ImCuriosity/competition-recommendation/internal/usecase"
)

type competitionDTO struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	SportCategory string   `json:"sport_category"`
	Grade         string   `json:"grade,omitempty"`
	Age           string   `json:"age,omitempty"`
	Gender        string   `json:"gender,omitempty"`
	StartDate     string   `json:"start_date,omitempty"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Province      string   `json:"location_province_city,omitempty"`
	CityCounty    string   `json:"location_county_district,omitempty"`
	Host          string   `json:"host,omitempty"`
	SourceURL     string   `json:"source_url,omitempty"`
}

type scoredCompetitionDTO struct {
	competitionDTO

	RecommendationScore float64 `json:"recommendation_score"`
	SkillSimilarity     float64 `json:"skill_similarity"`
	LocationSimilarity  float64 `json:"location_similarity"`
}

type searchCompetitionsResponse struct {
	Count        int              `json:"count"`
	TotalFetched int              `json:"total_fetched"`
	Competitions []competitionDTO `json:"competitions"`
}

type profileSummaryDTO struct {
	ID        string        `json:"id"`
	Age       int           `json:"age"`
	Gender    *string       `json:"gender"`
	Latitude  *float64      `json:"latitude"`
	Longitude *float64      `json:"longitude"`
	Interests []interestDTO `json:"interesting_sports"`
}

type interestDTO struct {
	SportName string `json:"sport_name"`
	Skill     string `json:"skill"`
}

type recommendationsResponse struct {
	User               profileSummaryDTO                 `json:"user"`
	Count              int                               `json:"count"`
	RecommendedBySport map[string][]scoredCompetitionDTO `json:"recommended_by_sport"`
}

func toCompetitionDTO(n competition.Normalized) competitionDTO {
	return competitionDTO{
		ID:            n.ID,
		Title:         n.Title,
		SportCategory: n.SportCategory,
		Grade:         n.Grade,
		Age:           n.AgeRule,
		Gender:        n.GenderRule,
		StartDate:     n.StartDate,
		Latitude:      n.Latitude,
		Longitude:     n.Longitude,
		Province:      n.Province,
		CityCounty:    n.CityCounty,
		Host:          n.Host,
		SourceURL:     n.SourceURL,
	}
}

func toScoredCompetitionDTO(sc usecase.ScoredCompetition) scoredCompetitionDTO {
	return scoredCompetitionDTO{
		competitionDTO:      toCompetitionDTO(sc.Competition),
		RecommendationScore: round4(sc.Score.Total),
		SkillSimilarity:     round4(derefScore(sc.Score.Skill)),
		LocationSimilarity:  round4(derefScore(sc.Score.Location)),
	}
}

// Scores stay full precision internally; rounding happens only here at
// the response boundary.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func derefScore(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
