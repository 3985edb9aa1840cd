// Package server implements the HTTP and JSON-RPC surface of the descent
// optimization service. The bracketing line searches run synchronously;
// descent runs are tracked as asynchronous jobs.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mcolyer/descent/internal/config"
	"github.com/mcolyer/descent/internal/logging"
	"github.com/mcolyer/descent/internal/optimization"
	"github.com/mcolyer/descent/internal/optimization/functions"
	"github.com/mcolyer/descent/internal/optimization/linesearch"
)

// Logger defines the logging interface used by the server.
type Logger interface {
	Debug(msg string, fields ...map[string]interface{})
	Info(msg string, fields ...map[string]interface{})
	Warn(msg string, fields ...map[string]interface{})
	Error(msg string, fields ...map[string]interface{})
	Fatal(msg string, fields ...map[string]interface{})
	WithFields(fields map[string]interface{}) *logging.Logger
}

// Server exposes the optimization core over HTTP.
type Server struct {
	cfg    *config.Config
	logger Logger
	runner *zap.Logger

	jobs   map[string]*Job
	jobsMu sync.RWMutex
}

// NewServer creates a new server instance with the given config and logger.
func NewServer(cfg *config.Config, logger Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		runner: logging.NewZapLogger(logger.WithFields(map[string]interface{}{
			"component": "runner",
		})),
		jobs: make(map[string]*Job),
	}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/linesearch", s.handleLineSearch)
		r.Post("/minimize", s.handleMinimize)
		r.Get("/jobs/{id}", s.handleJobStatus)
		r.Delete("/jobs/{id}", s.handleJobCancel)
	})

	// JSON-RPC 2.0 endpoint
	r.Post("/rpc", s.handleJSONRPC)
}

// LineSearchRequest selects a bracketing search over a named scalar benchmark.
type LineSearchRequest struct {
	Method   string  `json:"method"`
	Function string  `json:"function"`
	A        float64 `json:"a"`
	B        float64 `json:"b"`
	Accuracy float64 `json:"accuracy,omitempty"`
	MaxSteps int     `json:"max_steps,omitempty"`
}

// LineSearchResponse carries a scalar search result.
type LineSearchResponse struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message,omitempty"`
	X          float64 `json:"x"`
	Fun        float64 `json:"fun"`
	FuncEvals  int     `json:"nfev"`
	Iterations int     `json:"nit"`
}

func (s *Server) handleLineSearch(w http.ResponseWriter, r *http.Request) {
	var req LineSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Accuracy == 0 {
		req.Accuracy = s.cfg.Solver.Accuracy
	}
	if req.MaxSteps == 0 {
		req.MaxSteps = s.cfg.Solver.MaxSteps
	}

	f, ok := functions.Scalar(req.Function)
	if !ok {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown function %q", req.Function))
		return
	}

	var search func(optimization.Univariate, float64, float64, float64, int) (*linesearch.Result, error)
	switch req.Method {
	case "binary":
		search = linesearch.Binary
	case "golden":
		search = linesearch.Golden
	case "parabolic":
		search = linesearch.Parabolic
	default:
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown method %q", req.Method))
		return
	}

	timer := prometheusTimer(req.Method)
	res, err := search(f, req.A, req.B, req.Accuracy, req.MaxSteps)
	timer()
	if err != nil {
		if optimization.IsInvalidInput(err) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("Line search failed", map[string]interface{}{"error": err.Error()})
		s.respondError(w, http.StatusInternalServerError, "line search failed")
		return
	}

	runsTotal.WithLabelValues(req.Method, outcomeLabel(res.Success)).Inc()
	functionEvals.WithLabelValues(req.Method).Add(float64(res.FuncEvals))

	s.respondJSON(w, http.StatusOK, LineSearchResponse{
		Success:    res.Success,
		Message:    res.Message,
		X:          res.X,
		Fun:        res.Fun,
		FuncEvals:  res.FuncEvals,
		Iterations: res.Iterations,
	})
}

func (s *Server) handleMinimize(w http.ResponseWriter, r *http.Request) {
	var req MinimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	job, err := s.startJob(req)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id": job.ID,
		"status": job.Status,
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.jobsMu.RLock()
	job, exists := s.jobs[id]
	var snapshot map[string]interface{}
	if exists {
		snapshot = job.snapshot()
	}
	s.jobsMu.RUnlock()

	if !exists {
		s.respondError(w, http.StatusNotFound, "job not found")
		return
	}
	s.respondJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleJobCancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.cancelJob(id); err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"job_id": id,
		"status": StatusCancelled,
	})
}

// handleJSONRPC handles JSON-RPC 2.0 requests.
func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	var request struct {
		JSONRPC string            `json:"jsonrpc"`
		ID      interface{}       `json:"id"`
		Method  string            `json:"method"`
		Params  []json.RawMessage `json:"params,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.respondRPCError(w, -32700, "Parse error", nil)
		return
	}
	if request.JSONRPC != "2.0" {
		s.respondRPCError(w, -32600, "Invalid Request", request.ID)
		return
	}

	var result interface{}
	var err error

	switch request.Method {
	case "minimize.start":
		result, err = s.rpcMinimizeStart(request.Params)
	case "minimize.status":
		result, err = s.rpcMinimizeStatus(request.Params)
	case "minimize.cancel":
		result, err = s.rpcMinimizeCancel(request.Params)
	default:
		s.respondRPCError(w, -32601, "Method not found", request.ID)
		return
	}

	if err != nil {
		s.respondRPCError(w, -32000, err.Error(), request.ID)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      request.ID,
		"result":  result,
	})
}

func (s *Server) rpcMinimizeStart(params []json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("missing required parameters")
	}
	var req MinimizeRequest
	if err := json.Unmarshal(params[0], &req); err != nil {
		return nil, fmt.Errorf("invalid parameter format: %v", err)
	}

	job, err := s.startJob(req)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"job_id": job.ID,
		"status": job.Status,
	}, nil
}

func (s *Server) rpcMinimizeStatus(params []json.RawMessage) (interface{}, error) {
	id, err := jobIDParam(params)
	if err != nil {
		return nil, err
	}

	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()

	job, exists := s.jobs[id]
	if !exists {
		return nil, fmt.Errorf("job not found")
	}
	return job.snapshot(), nil
}

func (s *Server) rpcMinimizeCancel(params []json.RawMessage) (interface{}, error) {
	id, err := jobIDParam(params)
	if err != nil {
		return nil, err
	}
	if err := s.cancelJob(id); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"job_id": id,
		"status": StatusCancelled,
	}, nil
}

func jobIDParam(params []json.RawMessage) (string, error) {
	if len(params) == 0 {
		return "", fmt.Errorf("missing required parameters")
	}
	var p struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(params[0], &p); err != nil || p.JobID == "" {
		return "", fmt.Errorf("job_id is required")
	}
	return p.JobID, nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]interface{}{"error": message})
}

// respondRPCError sends a JSON-RPC 2.0 error response.
func (s *Server) respondRPCError(w http.ResponseWriter, code int, message string, id interface{}) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"jsonrpc": "2.0",
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
		"id": id,
	})
}

// prometheusTimer starts a duration observation for the named algorithm and
// returns the stop function.
func prometheusTimer(algorithm string) func() {
	start := time.Now()
	return func() {
		runDuration.WithLabelValues(algorithm).Observe(time.Since(start).Seconds())
	}
}

// Close cancels every job that is still pending or running.
func (s *Server) Close() error {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	for _, job := range s.jobs {
		switch job.Status {
		case StatusPending, StatusRunning:
			job.markCancelled()
		}
	}
	return nil
}
