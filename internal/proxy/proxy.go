package proxy

import (
	"context"
	"fmt"

	"github.com/yungtweek/openclaw-agent/internal/dataset"
	"github.com/yungtweek/openclaw-agent/internal/logger"
	"github.com/yungtweek/openclaw-agent/internal/mock"
	"github.com/yungtweek/openclaw-agent/internal/upstream"
)

// Completer is the upstream contract the proxy depends on; tests substitute
// it with a fake.
type Completer interface {
	Complete(ctx context.Context, task, systemPrompt string, maxTokens int) upstream.Result
}

// UpstreamError is an unmasked upstream failure: the original status and
// body travel to the caller unchanged.
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: status %d", e.Status)
}

// Service orchestrates the upstream client and the mock generator into one
// normalized answer per task.
type Service struct {
	upstream Completer
	data     *dataset.Store
}

func New(up Completer, data *dataset.Store) *Service {
	return &Service{upstream: up, data: data}
}

// Run performs one upstream attempt for the request and decides the fallback
// from its tagged result.
func (s *Service) Run(ctx context.Context, req TaskRequest) (TaskResponse, error) {
	req.ApplyDefaults()

	res := s.upstream.Complete(ctx, req.Task, req.SystemPrompt, req.MaxTokens)
	switch res.Outcome {
	case upstream.OutcomeSuccess:
		taskOutcomes.WithLabelValues("real").Inc()
		logger.Log.Infow("[proxy] upstream answer", "model", res.Message.Model)
		return responseFromMessage(res.Message), nil

	case upstream.OutcomeDegraded:
		taskOutcomes.WithLabelValues("mock").Inc()
		logger.Log.Infow("[proxy] degraded upstream, serving mock", "reason", res.Reason)
		msg := mock.Response(req.Task)
		return responseFromMessage(&msg), nil

	default:
		taskOutcomes.WithLabelValues("error").Inc()
		return TaskResponse{}, &UpstreamError{Status: res.Status, Detail: res.Detail}
	}
}

// RunRandom draws one dataset entry and runs it as a regular task. Returns
// dataset.ErrNoTasks when nothing is loaded.
func (s *Service) RunRandom(ctx context.Context) (TaskResponse, error) {
	entry, err := s.data.RandomTask()
	if err != nil {
		return TaskResponse{}, err
	}

	req := TaskRequest{
		Task:         entry.Task,
		SystemPrompt: entry.SystemPrompt,
		MaxTokens:    DefaultMaxTokens,
	}
	logger.Log.Infow("[proxy] random task selected", "task", req.Task)
	return s.Run(ctx, req)
}
