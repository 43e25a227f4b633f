package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/yungtweek/openclaw-agent/internal/dataset"
	"github.com/yungtweek/openclaw-agent/internal/logger"
	"github.com/yungtweek/openclaw-agent/internal/mock"
)

var streamsStarted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "openclaw_streams_started_total",
	Help: "Stream simulator connections opened.",
})

// handleStream replays one randomly chosen event sequence over SSE with a
// jittered gap between payloads. Each connection is independent: its own
// sequence pick, its own pacing, no shared state.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	streamsStarted.Inc()

	seq, err := s.data.RandomSequence()
	if errors.Is(err, dataset.ErrNoEvents) {
		// After the SSE headers only in-band errors are possible.
		fmt.Fprint(w, "event: error\ndata: No events loaded\n\n")
		flusher.Flush()
		return
	}

	ctx := r.Context()
	id := uuid.NewString()
	logger.Log.Infow("[http][stream] start", "stream", id, "events", len(seq))

	for i, payload := range seq {
		select {
		case <-ctx.Done():
			logger.Log.Infow("[http][stream] client disconnected", "stream", id, "sent", i)
			return
		default:
		}

		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()

		gap := s.cfg.StreamDelayMinMs + mock.RandIntn(s.cfg.StreamDelayMaxMs-s.cfg.StreamDelayMinMs+1)
		sleepWithContext(ctx, time.Duration(gap)*time.Millisecond)
	}

	if ctx.Err() != nil {
		logger.Log.Infow("[http][stream] client disconnected", "stream", id, "sent", len(seq))
		return
	}

	fmt.Fprint(w, "event: done\ndata: Sequence completed\n\n")
	flusher.Flush()
	logger.Log.Infow("[http][stream] done", "stream", id)
}
