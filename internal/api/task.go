package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yungtweek/openclaw-agent/internal/dataset"
	"github.com/yungtweek/openclaw-agent/internal/logger"
	"github.com/yungtweek/openclaw-agent/internal/proxy"
)

func (s *Server) handleTask(w http.ResponseWriter, r *http.Request) {
	var req proxy.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Task == "" {
		writeDetail(w, http.StatusBadRequest, "task is required")
		return
	}

	logger.Log.Infow("[http][task] start", "maxTokens", req.MaxTokens)
	resp, err := s.svc.Run(r.Context(), req)
	s.writeTaskResult(w, resp, err)
}

func (s *Server) handleRandomTask(w http.ResponseWriter, r *http.Request) {
	logger.Log.Info("[http][task/send] start")
	resp, err := s.svc.RunRandom(r.Context())
	if errors.Is(err, dataset.ErrNoTasks) {
		writeDetail(w, http.StatusInternalServerError, "No tasks loaded from tasks.json")
		return
	}
	s.writeTaskResult(w, resp, err)
}

func (s *Server) writeTaskResult(w http.ResponseWriter, resp proxy.TaskResponse, err error) {
	if err != nil {
		var ue *proxy.UpstreamError
		if errors.As(err, &ue) {
			writeDetail(w, ue.Status, ue.Detail)
			return
		}
		logger.Log.Errorw("[http][task] internal error", "err", err)
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
