// Package probe checks a running agent through its public HTTP contract:
// one random-task submission and one stream read per cycle.
package probe

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yungtweek/openclaw-agent/internal/mock"
	"go.uber.org/zap"
)

type Config struct {
	BaseURL       string
	TaskTimeout   time.Duration
	StreamTimeout time.Duration

	// Daemon mode sleeps a uniform interval in [MinInterval, MaxInterval]
	// between cycles.
	MinInterval time.Duration
	MaxInterval time.Duration
}

func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:       baseURL,
		TaskTimeout:   120 * time.Second,
		StreamTimeout: 30 * time.Second,
		MinInterval:   30 * time.Minute,
		MaxInterval:   3 * time.Hour,
	}
}

type Prober struct {
	cfg    Config
	client *http.Client
	log    *zap.SugaredLogger
}

func New(cfg Config, log *zap.SugaredLogger) *Prober {
	return &Prober{cfg: cfg, client: &http.Client{}, log: log}
}

type taskReply struct {
	Model        string `json:"model"`
	InputTokens  *int64 `json:"input_tokens"`
	OutputTokens *int64 `json:"output_tokens"`
}

// CheckTask posts an empty body to /task/send and verifies the reply carries
// model and token fields within the task timeout.
func (p *Prober) CheckTask(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.TaskTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/task/send", strings.NewReader("{}"))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("task request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("task endpoint status %d", resp.StatusCode)
	}

	var reply taskReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return fmt.Errorf("task reply decode: %w", err)
	}
	if reply.Model == "" || reply.InputTokens == nil || reply.OutputTokens == nil {
		return fmt.Errorf("task reply missing fields: %+v", reply)
	}

	p.log.Infow("[probe][task] passed",
		"model", reply.Model,
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
		"inputTokens", *reply.InputTokens,
		"outputTokens", *reply.OutputTokens,
	)
	return nil
}

// CheckStream reads /stream until it closes and requires at least one data
// line within the stream timeout.
func (p *Prober) CheckStream(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.StreamTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+"/stream", nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("stream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream endpoint status %d", resp.StatusCode)
	}

	events := 0
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), "data: ") {
			events++
		}
	}
	if events == 0 {
		return fmt.Errorf("stream produced no data lines")
	}

	p.log.Infow("[probe][stream] passed", "events", events)
	return nil
}

// RunOnce executes a full cycle and reports overall health.
func (p *Prober) RunOnce(ctx context.Context) bool {
	ok := true
	if err := p.CheckTask(ctx); err != nil {
		p.log.Errorw("[probe][task] FAILED", "err", err)
		ok = false
	}
	if err := p.CheckStream(ctx); err != nil {
		p.log.Errorw("[probe][stream] FAILED", "err", err)
		ok = false
	}
	if ok {
		p.log.Info("[probe] all checks passed")
	} else {
		p.log.Error("[probe] some checks failed")
	}
	return ok
}

// RunDaemon loops RunOnce with a random sleep between cycles until the
// context is canceled.
func (p *Prober) RunDaemon(ctx context.Context) {
	p.log.Infow("[probe] daemon started",
		"minInterval", p.cfg.MinInterval.String(),
		"maxInterval", p.cfg.MaxInterval.String(),
	)
	for {
		p.RunOnce(ctx)

		sleep := p.cfg.MinInterval
		if spread := p.cfg.MaxInterval - p.cfg.MinInterval; spread > 0 {
			sleep += time.Duration(mock.RandIntn(int(spread.Seconds())+1)) * time.Second
		}
		p.log.Infow("[probe] sleeping until next cycle", "sleep", sleep.String())

		t := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			t.Stop()
			p.log.Info("[probe] daemon stopped")
			return
		case <-t.C:
		}
	}
}
