package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yungtweek/openclaw-agent/internal/config"
	"github.com/yungtweek/openclaw-agent/internal/dataset"
	"github.com/yungtweek/openclaw-agent/internal/logger"
	"github.com/yungtweek/openclaw-agent/internal/proxy"
)

// Server is the HTTP surface of the agent: task submission, the stream
// simulator, static assets, and metrics.
type Server struct {
	cfg  config.Config
	svc  *proxy.Service
	data *dataset.Store

	httpServer *http.Server
}

func NewServer(cfg config.Config, svc *proxy.Service, data *dataset.Store) *Server {
	s := &Server{cfg: cfg, svc: svc, data: data}
	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     s.Handler(),
		ReadTimeout: 30 * time.Second,
		// No WriteTimeout: /stream connections are long-lived by design and
		// are bounded by client disconnect instead.
		IdleTimeout: 120 * time.Second,
	}
	return s
}

// Handler builds the route table. Exposed so tests can mount it on httptest
// servers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /task", s.handleTask)
	mux.HandleFunc("POST /task/send", s.handleRandomTask)
	mux.HandleFunc("GET /stream", s.handleStream)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir))))
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Run starts listening. Blocks until the server stops or fails.
func (s *Server) Run() error {
	logger.Log.Infow("[http] starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log.Infow("[http] graceful shutdown", "addr", s.httpServer.Addr)
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	indexPath := filepath.Join(s.cfg.StaticDir, "index.html")
	if _, err := os.Stat(indexPath); err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": "index.html not found"})
		return
	}
	http.ServeFile(w, r, indexPath)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail emits the `{"detail": ...}` error body shared by every
// non-stream error path.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
