// Package chi is the HTTP transport: request decoding, domain error mapping, and
// response shaping for the public search API.
package chi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/launchdex/launchdex/internal/domain"
	"github.com/launchdex/launchdex/internal/domain/search/filters"
	"github.com/launchdex/launchdex/internal/domain/search/request"
	"github.com/launchdex/launchdex/internal/domain/search/result"
	logpkg "github.com/launchdex/launchdex/internal/logger"
	healthuc "github.com/launchdex/launchdex/internal/usecase/health"
	searchuc "github.com/launchdex/launchdex/internal/usecase/search"
)

// maxBodyBytes caps the search request body well above any legal query.
const maxBodyBytes = 64 << 10

// statusClientClosedRequest is the conventional status for caller-aborted requests.
const statusClientClosedRequest = 499

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the search API over HTTP.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusBadGateway, codeEmbeddingUnavailable),
		sentinelHandler(domain.ErrCancelled, statusClientClosedRequest, codeCancelled),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
	}
	return s
}

// Routes mounts the API handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/search", s.SearchCompanies)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// searchRequestBody is the POST /v1/search payload. Filters are the explicit
// structured overrides a caller sets directly (UI controls), distinct from anything
// inferred from the query text; unknown filter fields are rejected.
type searchRequestBody struct {
	Query   string                `json:"query"`
	Filters filters.ParsedFilters `json:"filters"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}

// searchResponse is the POST /v1/search result envelope.
type searchResponse struct {
	Results    []resultDTO `json:"results"`
	TotalCount int         `json:"total_count"`
}

type resultDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	OneLiner    string   `json:"one_liner,omitempty"`
	Website     string   `json:"website,omitempty"`
	Batch       string   `json:"batch,omitempty"`
	Stage       string   `json:"stage,omitempty"`
	Status      string   `json:"status,omitempty"`
	TeamSize    int      `json:"team_size,omitempty"`
	FoundedYear int      `json:"founded_year,omitempty"`
	IsHiring    bool     `json:"is_hiring"`
	IsNonprofit bool     `json:"is_nonprofit"`
	Location    string   `json:"location,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Industries  []string `json:"industries,omitempty"`
	Regions     []string `json:"regions,omitempty"`

	SemanticScore float64 `json:"semantic_score"`
	NameScore     float64 `json:"name_score"`
	TextScore     float64 `json:"text_score"`
	FinalScore    float64 `json:"final_score"`

	Tier      string `json:"tier"`
	TierLabel string `json:"tier_label"`
	TierOrder int    `json:"tier_order"`
}

// SearchCompanies handles POST /v1/search.
func (s *Server) SearchCompanies(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "failed to read request body")
		return
	}
	if len(body) > maxBodyBytes {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "request body too large")
		return
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	var req searchRequestBody
	if err := dec.Decode(&req); err != nil {
		s.logger.Debug("rejected search body", zap.Error(err))
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	sreq, err := request.New(req.Query, req.Filters, req.Limit, req.Offset)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	page, err := s.search.Search(r.Context(), sreq)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSearchResponse(page))
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func toSearchResponse(page result.Page) searchResponse {
	items := make([]resultDTO, len(page.Results))
	for i, res := range page.Results {
		c := res.Company
		foundedYear := 0
		if !c.FoundedAt.IsZero() {
			foundedYear = c.FoundedAt.Year()
		}
		items[i] = resultDTO{
			ID:          c.ID,
			Name:        c.Name,
			OneLiner:    c.OneLiner,
			Website:     c.Website,
			Batch:       c.Batch,
			Stage:       c.Stage,
			Status:      c.Status,
			TeamSize:    c.TeamSize,
			FoundedYear: foundedYear,
			IsHiring:    c.IsHiring,
			IsNonprofit: c.IsNonprofit,
			Location:    c.Location,
			Tags:        c.Tags,
			Industries:  c.Industries,
			Regions:     c.Regions,

			SemanticScore: res.SemanticScore,
			NameScore:     res.NameScore,
			TextScore:     res.TextScore,
			FinalScore:    res.FinalScore,

			Tier:      string(res.Tier),
			TierLabel: res.TierLabel,
			TierOrder: res.TierOrder,
		}
	}
	return searchResponse{Results: items, TotalCount: page.TotalCount}
}

// Error response codes.
const (
	codeBadRequest           = "bad_request"
	codeValidationFailed     = "validation_failed"
	codeEmbeddingUnavailable = "embedding_unavailable"
	codeCancelled            = "cancelled"
	codeNotFound             = "not_found"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals. Storage detail in particular never leaves the process.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrEmbeddingUnavailable,
		domain.ErrCancelled,
		domain.ErrNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			if errors.Is(err, domain.ErrValidation) {
				// Validation detail is caller input, safe to echo.
				return err.Error()
			}
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	// Per-request logger carries request_id when the wide-event middleware is mounted.
	log := logpkg.FromContext(r.Context()).With(zap.String("path", r.URL.Path))
	msg := safeDomainMessage(err)

	switch {
	case errors.Is(err, domain.ErrCancelled):
		log.Debug("request cancelled", zap.Error(err))
	case errors.Is(err, domain.ErrValidation):
		log.Debug("validation error", zap.Error(err))
	default:
		log.Warn("domain error", zap.Error(err))
	}

	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}

	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
