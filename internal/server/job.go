package server

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mcolyer/descent/internal/optimization"
	"github.com/mcolyer/descent/internal/optimization/descent"
	"github.com/mcolyer/descent/internal/optimization/functions"
)

// Job lifecycle states.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// MinimizeRequest selects a descent method over a named multivariate
// benchmark. Zero-valued tuning fields fall back to the configured defaults.
type MinimizeRequest struct {
	Method     string    `json:"method"` // "gradient_descent" or "steepest_descent"
	Function   string    `json:"function"`
	X0         []float64 `json:"x0"`
	StepSize   float64   `json:"step_size,omitempty"`
	Accuracy   float64   `json:"accuracy,omitempty"`
	MaxSteps   int       `json:"max_steps,omitempty"`
	Trajectory bool      `json:"trajectory,omitempty"`
}

// Job tracks one asynchronous descent run. Reads and writes go through the
// server's job mutex.
type Job struct {
	ID          string
	Status      string
	Request     MinimizeRequest
	StartTime   time.Time
	EndTime     *time.Time
	LastUpdated time.Time
	Result      *descent.Result
	Err         string
}

// snapshot renders the job for a status response. Callers must hold at least
// a read lock.
func (j *Job) snapshot() map[string]interface{} {
	out := map[string]interface{}{
		"job_id":      j.ID,
		"status":      j.Status,
		"method":      j.Request.Method,
		"function":    j.Request.Function,
		"start_time":  j.StartTime.Format(time.RFC3339),
		"last_update": j.LastUpdated.Format(time.RFC3339),
	}
	if j.EndTime != nil {
		out["end_time"] = j.EndTime.Format(time.RFC3339)
	}
	if j.Err != "" {
		out["error"] = j.Err
	}
	if j.Result != nil {
		res := map[string]interface{}{
			"success": j.Result.Success,
			"fun":     j.Result.Fun,
			"jac":     j.Result.Grad,
			"nfev":    j.Result.FuncEvals,
			"njev":    j.Result.GradEvals,
			"nhev":    j.Result.HessEvals,
			"nit":     j.Result.Iterations,
			"x":       j.Result.X,
		}
		if j.Result.Message != "" {
			res["message"] = j.Result.Message
		}
		if j.Result.Trajectory != nil {
			res["trajectory"] = j.Result.Trajectory
		}
		out["result"] = res
	}
	return out
}

func (j *Job) markCancelled() {
	now := time.Now()
	j.Status = StatusCancelled
	j.EndTime = &now
	j.LastUpdated = now
}

// startJob validates the request, registers a pending job, and launches it.
func (s *Server) startJob(req MinimizeRequest) (*Job, error) {
	switch req.Method {
	case "gradient_descent", "steepest_descent":
	default:
		return nil, fmt.Errorf("unknown method %q", req.Method)
	}
	if _, _, ok := functions.Multivariate(req.Function); !ok {
		return nil, fmt.Errorf("unknown function %q", req.Function)
	}
	if len(req.X0) == 0 {
		return nil, fmt.Errorf("x0 is required")
	}

	job := &Job{
		ID:          fmt.Sprintf("job_%d", time.Now().UnixNano()),
		Status:      StatusPending,
		Request:     req,
		StartTime:   time.Now(),
		LastUpdated: time.Now(),
	}

	s.jobsMu.Lock()
	s.jobs[job.ID] = job
	s.jobsMu.Unlock()

	go s.runJob(job.ID)
	return job, nil
}

// cancelJob moves a pending or running job to the cancelled state. A later
// result from the still-running goroutine is discarded.
func (s *Server) cancelJob(id string) error {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	job, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job not found")
	}
	switch job.Status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return fmt.Errorf("cannot cancel job with status %s", job.Status)
	}

	job.markCancelled()
	s.runner.Info("job cancelled", zap.String("job_id", id))
	return nil
}

// runJob executes one descent run and stores the outcome, unless the job
// was cancelled while it ran.
func (s *Server) runJob(id string) {
	s.jobsMu.Lock()
	job, exists := s.jobs[id]
	if !exists || job.Status != StatusPending {
		s.jobsMu.Unlock()
		return
	}
	job.Status = StatusRunning
	job.LastUpdated = time.Now()
	req := job.Request
	s.jobsMu.Unlock()

	s.runner.Info("job started",
		zap.String("job_id", id),
		zap.String("method", req.Method),
		zap.String("function", req.Function),
	)

	f, df, _ := functions.Multivariate(req.Function)
	settings := s.settingsFor(req)

	stop := prometheusTimer(req.Method)
	var res *descent.Result
	var err error
	switch req.Method {
	case "gradient_descent":
		res, err = descent.Fixed(f, df, req.X0, settings)
	case "steepest_descent":
		res, err = descent.Steepest(f, df, req.X0, settings)
	}
	stop()

	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	if job.Status == StatusCancelled {
		return
	}

	now := time.Now()
	job.EndTime = &now
	job.LastUpdated = now

	if err != nil {
		job.Status = StatusFailed
		job.Err = err.Error()
		runsTotal.WithLabelValues(req.Method, "error").Inc()
		s.runner.Error("job failed",
			zap.String("job_id", id),
			zap.Error(err),
		)
		return
	}

	job.Status = StatusCompleted
	job.Result = res
	runsTotal.WithLabelValues(req.Method, outcomeLabel(res.Success)).Inc()
	functionEvals.WithLabelValues(req.Method).Add(float64(res.FuncEvals))
	s.runner.Info("job finished",
		zap.String("job_id", id),
		zap.Bool("success", res.Success),
		zap.Int("iterations", res.Iterations),
		zap.Int("nfev", res.FuncEvals),
		zap.Int("njev", res.GradEvals),
	)
}

// settingsFor merges a request with the configured solver defaults. The
// service's convergence policy is the squared gradient-norm test; the core
// itself stays policy-free.
func (s *Server) settingsFor(req MinimizeRequest) descent.Settings {
	settings := descent.Settings{
		StepSize:           req.StepSize,
		Accuracy:           req.Accuracy,
		MaxSteps:           req.MaxSteps,
		RecordTrajectory:   req.Trajectory,
		AcceptTest:         optimization.GradNormTest,
		LineSearchAccuracy: s.cfg.Solver.Accuracy,
		LineSearchSteps:    s.cfg.Solver.LineSearchSteps,
	}
	if settings.StepSize == 0 {
		settings.StepSize = s.cfg.Solver.StepSize
	}
	if settings.Accuracy == 0 {
		settings.Accuracy = s.cfg.Solver.Accuracy
	}
	if settings.MaxSteps == 0 {
		settings.MaxSteps = s.cfg.Solver.MaxSteps
	}
	return settings
}
