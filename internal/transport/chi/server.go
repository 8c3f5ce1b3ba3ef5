// Package chi exposes the evaluation service over an HTTP API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	gochi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragscore/internal/domain"
	"github.com/kailas-cloud/ragscore/internal/domain/record"
	logpkg "github.com/kailas-cloud/ragscore/internal/logger"
	"github.com/kailas-cloud/ragscore/internal/metric"
	"github.com/kailas-cloud/ragscore/internal/metrics"
	"github.com/kailas-cloud/ragscore/internal/term"
	"github.com/kailas-cloud/ragscore/internal/usecase/evaluate"
)

const maxBatchSize = 1000

// Server serves the evaluation API.
type Server struct {
	extractor      *term.Extractor
	defaultMetrics []metric.Name
	logger         *zap.Logger
}

// NewServer creates an HTTP API server. defaultMetrics applies when a
// request does not name its own metric subset; empty means all built-in
// metrics.
func NewServer(ex *term.Extractor, defaultMetrics []metric.Name, logger *zap.Logger) *Server {
	return &Server{
		extractor:      ex,
		defaultMetrics: defaultMetrics,
		logger:         logger,
	}
}

// Router builds the chi router with middleware and all routes.
func (s *Server) Router(apiKeys []string) http.Handler {
	r := gochi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware())

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Post("/v1/evaluate", s.Evaluate)
	r.Post("/v1/evaluate/batch", s.EvaluateBatch)

	return r
}

// requestLogger stores a request-scoped logger in the context so
// handlers log with the request ID attached.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := s.logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))
		next.ServeHTTP(w, r.WithContext(logpkg.ContextWithLogger(r.Context(), l)))
	})
}

// Evaluate handles POST /v1/evaluate.
func (s *Server) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	svc, err := s.serviceFor(req.Metrics)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	rec := record.New(req.Query, req.Context, req.Answer)
	if req.GroundTruth != nil {
		rec = rec.WithGroundTruth(*req.GroundTruth)
	}

	start := time.Now()
	ev := svc.Evaluate(rec)
	metrics.EvaluationDuration.WithLabelValues("evaluate").Observe(time.Since(start).Seconds())
	observeEvaluation(ev)

	writeJSON(w, http.StatusOK, evaluateResponse{Scores: evaluationToWire(ev)})
}

// EvaluateBatch handles POST /v1/evaluate/batch.
func (s *Server) EvaluateBatch(w http.ResponseWriter, r *http.Request) {
	var req batchEvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	if len(req.Queries) == 0 || len(req.Queries) > maxBatchSize {
		writeError(w, http.StatusBadRequest, codeBadRequest,
			"queries count must be between 1 and 1000")
		return
	}

	svc, err := s.serviceFor(req.Metrics)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	recs, err := recordsFromWire(req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	start := time.Now()
	batch := svc.EvaluateBatch(recs)
	metrics.EvaluationDuration.WithLabelValues("evaluate_batch").Observe(time.Since(start).Seconds())
	metrics.BatchRecordsTotal.Add(float64(len(recs)))

	results := make([]map[string]metricResult, len(batch))
	for i, ev := range batch {
		observeEvaluation(ev)
		results[i] = evaluationToWire(ev)
	}

	averages := make(map[string]float64)
	for name, avg := range evaluate.AverageScores(batch) {
		averages[string(name)] = avg
	}

	writeJSON(w, http.StatusOK, batchEvaluateResponse{
		Results:  results,
		Averages: averages,
		Count:    len(results),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// serviceFor builds an evaluation service for the requested metric
// subset, falling back to the server defaults.
func (s *Server) serviceFor(requested []string) (*evaluate.Service, error) {
	names := s.defaultMetrics
	if len(requested) > 0 {
		names = make([]metric.Name, len(requested))
		for i, n := range requested {
			names[i] = metric.Name(n)
		}
	}
	return evaluate.New(s.extractor, names)
}

func recordsFromWire(req batchEvaluateRequest) ([]record.Record, error) {
	var groundTruths []string
	if req.GroundTruths != nil {
		groundTruths = make([]string, len(req.GroundTruths))
		for i, gt := range req.GroundTruths {
			if gt != nil {
				groundTruths[i] = *gt
			}
		}
	}
	return evaluate.RecordsFromColumns(req.Queries, req.Contexts, req.Answers, groundTruths)
}

func evaluationToWire(ev evaluate.Evaluation) map[string]metricResult {
	out := make(map[string]metricResult, len(ev))
	for name, res := range ev {
		out[string(name)] = metricResult{Score: res.Score(), Details: res.Details()}
	}
	return out
}

func observeEvaluation(ev evaluate.Evaluation) {
	for name, res := range ev {
		metrics.EvaluationsTotal.WithLabelValues(string(name)).Inc()
		metrics.MetricScores.WithLabelValues(string(name)).Observe(res.Score())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownMetric):
		writeError(w, http.StatusBadRequest, codeUnknownMetric, err.Error())
	case errors.Is(err, domain.ErrLengthMismatch):
		writeError(w, http.StatusBadRequest, codeLengthMismatch, err.Error())
	default:
		logpkg.FromContext(r.Context()).Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
