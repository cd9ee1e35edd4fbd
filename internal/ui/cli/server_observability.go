package cli

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	coreapp "bemlint/internal/core/app"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// runStatus tracks the most recent watch-mode run for the health endpoint.
type runStatus struct {
	mu          sync.RWMutex
	lastRun     time.Time
	files       int
	diagnostics int
	exitCode    int
}

type healthResponse struct {
	Status      string    `json:"status"`
	LastRun     time.Time `json:"last_run,omitempty"`
	Files       int       `json:"files"`
	Diagnostics int       `json:"diagnostics"`
	ExitCode    int       `json:"exit_code"`
}

func (s *runStatus) record(rep coreapp.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun = time.Now().UTC()
	s.files = len(rep.Files)
	s.diagnostics = rep.DiagnosticCount()
	s.exitCode = rep.ExitCode()
}

func (s *runStatus) snapshot() healthResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status := "up"
	if s.lastRun.IsZero() {
		status = "starting"
	}
	return healthResponse{
		Status:      status,
		LastRun:     s.lastRun,
		Files:       s.files,
		Diagnostics: s.diagnostics,
		ExitCode:    s.exitCode,
	}
}

type ObservabilityServer struct {
	addr   string
	status *runStatus
	server *http.Server
}

func NewObservabilityServer(addr string, status *runStatus) *ObservabilityServer {
	return &ObservabilityServer{
		addr:   addr,
		status: status,
	}
}

func (s *ObservabilityServer) handler() http.Handler {
	mux := http.NewServeMux()

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := s.status.snapshot()
		w.Header().Set("Content-Type", "application/json")
		if status.Status != "up" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(status)
	})
	return mux
}

func (s *ObservabilityServer) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("observability server starting", "addr", s.addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("observability server failed", "error", err)
		}
	}()

	return nil
}

func (s *ObservabilityServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
