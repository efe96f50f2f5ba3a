package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ImCuriosity/competition-recommendation/internal/domain/competition"
	"github.com/ImCuriosity/competition-recommendation/internal/domain/profile"
	"github.com/ImCuriosity/competition-recommendation/internal/domain/recommend"
	"github.com/ImCuriosity/competition-recommendation/internal/platform/logging"
)

// DefaultTopN is used when the caller does not ask for a specific count.
const DefaultTopN = 3

// ScoredCompetition pairs a normalized competition with its score.
type ScoredCompetition struct {
	Competition competition.Normalized
	Score       recommend.Score
}

// RecommendationResult groups the top competitions per interest sport.
type RecommendationResult struct {
	User    profile.Profile
	BySport map[string][]ScoredCompetition
	Count   int
}

type RecommendationService struct {
	profileRepo     profile.Repository
	competitionRepo competition.Repository
	pageSize        int
	logger          *logging.Logger
	now             func() time.Time
}

func NewRecommendationService(profileRepo profile.Repository, competitionRepo competition.Repository, pageSize int, logger *logging.Logger) *RecommendationService {
	if pageSize < 1 {
		pageSize = 1000
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RecommendationService{
		profileRepo:     profileRepo,
		competitionRepo: competitionRepo,
		pageSize:        pageSize,
		logger:          logger,
		now:             time.Now,
	}
}

// Recommend scores the whole catalog against one user's profile and
// returns the topN competitions per interest sport. topN values below 1
// fall back to DefaultTopN.
func (s *RecommendationService) Recommend(ctx context.Context, userID string, topN int) (RecommendationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "RecommendationService.Recommend")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return RecommendationResult{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if topN < 1 {
		topN = DefaultTopN
	}

	user, exists, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return RecommendationResult{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return RecommendationResult{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	interests := user.InterestBySport()
	if len(interests) == 0 {
		return RecommendationResult{User: user, BySport: map[string][]ScoredCompetition{}}, nil
	}

	catalog := s.fetchCatalog(ctx)
	cutoff := s.now().Format("2006-01-02")

	scoredBySport := make(map[string][]ScoredCompetition, len(interests))
	for sport := range interests {
		scoredBySport[sport] = nil
	}

	for _, raw := range catalog {
		normalized, ok := competition.Normalize(raw, cutoff)
		if !ok {
			continue
		}
		if _, ok := interests[normalized.SportCategory]; !ok {
			continue
		}

		score := recommend.ScoreCompetition(user, interests, normalized)
		if score.Total <= 0 {
			continue
		}

		scoredBySport[normalized.SportCategory] = append(scoredBySport[normalized.SportCategory], ScoredCompetition{
			Competition: normalized,
			Score:       score,
		})
	}

	result := RecommendationResult{User: user, BySport: make(map[string][]ScoredCompetition, len(scoredBySport))}
	for sport, scored := range scoredBySport {
		top := rankCompetitions(scored, topN)
		result.BySport[sport] = top
		result.Count += len(top)
	}

	return result, nil
}

// fetchCatalog pages through the entire catalog. A failing page logs a
// warning and truncates the scan, so a degraded store still yields a
// partial recommendation instead of an error.
func (s *RecommendationService) fetchCatalog(ctx context.Context) []competition.Competition {
	var all []competition.Competition
	offset := 0
	for {
		page, err := s.competitionRepo.ListPage(ctx, competition.Filter{}, offset, s.pageSize)
		if err != nil {
			s.logger.WarnContext(ctx, "catalog page fetch failed, truncating scan", "offset", offset, "error", err)
			break
		}

		all = append(all, page...)
		if len(page) < s.pageSize {
			break
		}
		offset += s.pageSize
	}

	return all
}

// rankCompetitions deduplicates by title keeping the highest score, then
// sorts by score descending and keeps the top n. Ties keep their
// original catalog order; an earlier duplicate survives an equal score.
func rankCompetitions(scored []ScoredCompetition, n int) []ScoredCompetition {
	byTitle := make(map[string]int, len(scored))
	deduped := scored[:0:0]
	for _, sc := range scored {
		idx, seen := byTitle[sc.Competition.Title]
		if !seen {
			byTitle[sc.Competition.Title] = len(deduped)
			deduped = append(deduped, sc)
			continue
		}
		if sc.Score.Total > deduped[idx].Score.Total {
			deduped[idx] = sc
		}
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Score.Total > deduped[j].Score.Total
	})

	if len(deduped) > n {
		deduped = deduped[:n]
	}
	return deduped
}
