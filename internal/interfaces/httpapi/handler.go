package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ImCuriosity/competition-recommendation/internal/domain/competition"
	"github.com/ImCuriosity/competition-recommendation/internal/platform/logging"
	"github.com/ImCuriosity/competition-recommendation/internal/usecase"
)

// ServiceInfo is reported by the health endpoint.
type ServiceInfo struct {
	StoreBackend string
	Version      string
}

type Handler struct {
	catalogService        *usecase.CatalogService
	recommendationService *usecase.RecommendationService
	info                  ServiceInfo
	logger                *logging.Logger
	validator             *validator.Validate
}

func NewHandler(
	catalogService *usecase.CatalogService,
	recommendationService *usecase.RecommendationService,
	info ServiceInfo,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalogService:        catalogService,
		recommendationService: recommendationService,
		info:                  info,
		logger:                logger,
		validator:             validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"status":        "ok",
		"store_backend": h.info.StoreBackend,
		"version":       h.info.Version,
	})
}

type searchCompetitionsRequest struct {
	SportCategory string `validate:"omitempty,max=64"`
	Province      string `validate:"omitempty,max=64"`
	CityCounty    string `validate:"omitempty,max=64"`
	AvailableFrom string `validate:"omitempty,datetime=2006-01-02"`
}

func (h *Handler) SearchCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchCompetitions")
	defer span.End()

	query := r.URL.Query()
	req := searchCompetitionsRequest{
		SportCategory: strings.TrimSpace(query.Get("sport_category")),
		Province:      strings.TrimSpace(query.Get("province")),
		CityCounty:    strings.TrimSpace(query.Get("city_county")),
		AvailableFrom: strings.TrimSpace(query.Get("available_from")),
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.catalogService.Search(ctx, competition.Filter{
		SportCategory: req.SportCategory,
		Province:      req.Province,
		CityCounty:    req.CityCounty,
	}, req.AvailableFrom)
	if err != nil {
		h.logger.ErrorContext(ctx, "search competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := searchCompetitionsResponse{
		Count:        len(result.Competitions),
		TotalFetched: result.TotalFetched,
		Competitions: make([]competitionDTO, 0, len(result.Competitions)),
	}
	for _, item := range result.Competitions {
		out.Competitions = append(out.Competitions, toCompetitionDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

type recommendRequest struct {
	UserID string `validate:"required,max=128"`
	TopN   int    `validate:"omitempty,min=1"`
}

func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Recommend")
	defer span.End()

	query := r.URL.Query()
	req := recommendRequest{UserID: strings.TrimSpace(query.Get("user_id"))}
	if raw := strings.TrimSpace(query.Get("top_n")); raw != "" {
		topN, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: top_n must be an integer", usecase.ErrInvalidInput))
			return
		}
		req.TopN = topN
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.recommendationService.Recommend(ctx, req.UserID, req.TopN)
	if err != nil {
		h.logger.ErrorContext(ctx, "recommend competitions failed", "error", err, "user_id", req.UserID)
		writeError(ctx, w, err)
		return
	}

	out := recommendationsResponse{
		User: profileSummaryDTO{
			ID:        result.User.ID,
			Age:       result.User.Age,
			Gender:    result.User.Gender,
			Latitude:  result.User.Latitude,
			Longitude: result.User.Longitude,
			Interests: make([]interestDTO, 0, len(result.User.Interests)),
		},
		Count:              result.Count,
		RecommendedBySport: make(map[string][]scoredCompetitionDTO, len(result.BySport)),
	}
	for _, interest := range result.User.Interests {
		out.User.Interests = append(out.User.Interests, interestDTO{
			SportName: interest.SportName,
			Skill:     interest.Skill,
		})
	}
	for sport, scored := range result.BySport {
		items := make([]scoredCompetitionDTO, 0, len(scored))
		for _, sc := range scored {
			items = append(items, toScoredCompetitionDTO(sc))
		}
		out.RecommendedBySport[sport] = items
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
