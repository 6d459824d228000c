package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/qiwenzhou/mytime-backend/internal/domain"
	"github.com/qiwenzhou/mytime-backend/internal/service/analytics"
)

// analyticsService defines the minimal interface needed by AnalyticsHandler.
type analyticsService interface {
	AnalyzeGoals(ctx context.Context, input analytics.AnalyzeInput) (*analytics.AnalyzeResult, error)
	Trend(ctx context.Context, rng domain.DateRange, gran domain.TrendGranularity, keying analytics.TrendKeying) (domain.TrendSeries, error)
	Suggestions(ctx context.Context, rng domain.DateRange, limit int) ([]domain.UnlinkedEventSuggestion, error)
}

// AnalyticsHandler serves the time-allocation analysis endpoints.
type AnalyticsHandler struct {
	svc analyticsService

	clock clockwork.Clock
	loc   *time.Location
	log   *slog.Logger

	// suggestionLimit is used when the request carries no limit param.
	suggestionLimit int
}

// NewAnalyticsHandler creates an AnalyticsHandler. The clock and location
// drive the default analysis window (the last 7 days, inclusive).
func NewAnalyticsHandler(svc analyticsService, clock clockwork.Clock, loc *time.Location, suggestionLimit int, logger *slog.Logger) *AnalyticsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsHandler{
		svc:             svc,
		clock:           clock,
		loc:             loc,
		log:             logger.With("handler", "analytics"),
		suggestionLimit: suggestionLimit,
	}
}

// AnalyzeGoals handles GET /api/v1/analytics/goals.
//
// Query parameters: from, to (YYYY-MM-DD, default last 7 days), sensitivity
// (loose|standard|strict), trends (bool), suggestion_limit (int).
func (h *AnalyticsHandler) AnalyzeGoals(w http.ResponseWriter, r *http.Request) {
	rng, err := h.parseRange(r)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	input := analytics.AnalyzeInput{
		Range:           rng,
		IncludeTrends:   r.URL.Query().Get("trends") == "true",
		SuggestionLimit: h.suggestionLimit,
	}

	if raw := r.URL.Query().Get("sensitivity"); raw != "" {
		sensitivity := domain.Sensitivity(strings.ToUpper(raw))
		if !sensitivity.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid sensitivity: "+raw)
			return
		}
		input.Settings = &domain.ClusterSettings{Sensitivity: sensitivity}
	}

	if raw := r.URL.Query().Get("suggestion_limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid suggestion_limit: "+raw)
			return
		}
		input.SuggestionLimit = limit
	}

	result, err := h.svc.AnalyzeGoals(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toAnalyzeResponse(result))
}

// Trend handles GET /api/v1/analytics/trend.
//
// Query parameters: from, to, granularity (day|week, default day), by
// (category|cluster, default category).
func (h *AnalyticsHandler) Trend(w http.ResponseWriter, r *http.Request) {
	rng, err := h.parseRange(r)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	gran := domain.TrendDaily
	if raw := r.URL.Query().Get("granularity"); raw != "" {
		gran = domain.TrendGranularity(strings.ToUpper(raw))
		if !gran.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid granularity: "+raw)
			return
		}
	}

	keying := analytics.KeyByCategory
	if raw := r.URL.Query().Get("by"); raw != "" {
		keying = analytics.TrendKeying(strings.ToLower(raw))
	}

	series, err := h.svc.Trend(r.Context(), rng, gran, keying)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTrendResponse(series))
}

// Suggestions handles GET /api/v1/analytics/suggestions.
//
// Query parameters: from, to, limit (int, default service-side).
func (h *AnalyticsHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	rng, err := h.parseRange(r)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	limit := h.suggestionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit: "+raw)
			return
		}
	}

	suggestions, err := h.svc.Suggestions(r.Context(), rng, limit)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toSuggestionsResponse(suggestions))
}

// parseRange reads from/to query params as local calendar dates. When both
// are absent the window defaults to the last 7 days including today.
func (h *AnalyticsHandler) parseRange(r *http.Request) (domain.DateRange, error) {
	fromRaw := r.URL.Query().Get("from")
	toRaw := r.URL.Query().Get("to")

	if fromRaw == "" && toRaw == "" {
		today := analytics.DateOf(h.clock.Now(), h.loc)
		return domain.DateRange{
			Start: today.AddDate(0, 0, -6),
			End:   today.AddDate(0, 0, 1).Add(-time.Second),
		}, nil
	}

	from, err := time.ParseInLocation("2006-01-02", fromRaw, h.loc)
	if err != nil {
		return domain.DateRange{}, domain.NewValidationError("from", "must be YYYY-MM-DD")
	}
	to, err := time.ParseInLocation("2006-01-02", toRaw, h.loc)
	if err != nil {
		return domain.DateRange{}, domain.NewValidationError("to", "must be YYYY-MM-DD")
	}

	// End of the "to" day so the range is inclusive.
	return domain.DateRange{Start: from, End: to.AddDate(0, 0, 1).Add(-time.Second)}, nil
}
