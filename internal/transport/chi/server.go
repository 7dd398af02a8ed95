// Package chi exposes the recommendation and dispatch services over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ridedine/ridedine/internal/domain/geo"
	"github.com/ridedine/ridedine/internal/domain/query"
	cataloguc "github.com/ridedine/ridedine/internal/usecase/catalog"
	dispatchuc "github.com/ridedine/ridedine/internal/usecase/dispatch"
	healthuc "github.com/ridedine/ridedine/internal/usecase/health"
	recommenduc "github.com/ridedine/ridedine/internal/usecase/recommend"
)

const maxBodyBytes = 1 << 20

// Server holds the HTTP handlers.
type Server struct {
	recommend *recommenduc.Service
	dispatch  *dispatchuc.Service
	catalog   *cataloguc.Service
	health    *healthuc.Service
	depot     geo.Point
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewServer creates an HTTP API server. depot is the dispatch target used
// when a request carries no coordinates.
func NewServer(
	recommend *recommenduc.Service,
	dispatch *dispatchuc.Service,
	catalog *cataloguc.Service,
	health *healthuc.Service,
	depot geo.Point,
	logger *zap.Logger,
) *Server {
	return &Server{
		recommend: recommend,
		dispatch:  dispatch,
		catalog:   catalog,
		health:    health,
		depot:     depot,
		validate:  newValidator(),
		logger:    logger,
	}
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/v1", func(r gochi.Router) {
		r.Post("/recommendations", s.Recommend)
		r.Post("/dispatch/nearest", s.NearestAgent)
		r.Get("/categories", s.Categories)
		r.Post("/catalog/reload", s.ReloadCatalog)
	})
}

// Recommend handles POST /v1/recommendations.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if !s.decode(w, r, &req, false) {
		return
	}

	q := query.New(req.Budget, req.Time, req.Proximity, req.Cuisine)
	vendors, err := s.recommend.Recommend(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]Vendor, len(vendors))
	for i, v := range vendors {
		items[i] = vendorToResponse(v)
	}
	writeJSON(w, http.StatusOK, RecommendationResponse{Items: items, Count: len(items)})
}

// NearestAgent handles POST /v1/dispatch/nearest.
func (s *Server) NearestAgent(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if !s.decode(w, r, &req, true) {
		return
	}

	target := s.depot
	if req.Latitude != nil && req.Longitude != nil {
		target = geo.NewPoint(*req.Latitude, *req.Longitude)
	}

	a, ok, err := s.dispatch.Nearest(r.Context(), target)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, DispatchResponse{})
		return
	}
	writeJSON(w, http.StatusOK, assignmentToResponse(a))
}

// Categories handles GET /v1/categories.
func (s *Server) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.catalog.Categories()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesToResponse(cats))
}

// ReloadCatalog handles POST /v1/catalog/reload.
func (s *Server) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	idx, err := s.catalog.Reload(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ReloadResponse{Vendors: idx.Len(), Categories: len(idx.Categories())})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decode reads a JSON body into dst and validates it. On failure it writes
// the 400 response and returns false. allowEmpty accepts a missing body.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err != nil && !(allowEmpty && errors.Is(err, io.EOF)) {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, validationMessage(err))
		return false
	}
	return true
}
