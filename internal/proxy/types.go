package proxy

import "github.com/yungtweek/openclaw-agent/internal/upstream"

const (
	DefaultSystemPrompt = "You are a senior software engineer"
	DefaultMaxTokens    = 1024
)

// TaskRequest is the client-facing task submission. Immutable for the
// lifetime of one request.
type TaskRequest struct {
	Task         string `json:"task"`
	SystemPrompt string `json:"system_prompt"`
	MaxTokens    int    `json:"max_tokens"`
}

// ApplyDefaults fills the optional fields the way the HTTP schema documents
// them.
func (r *TaskRequest) ApplyDefaults() {
	if r.SystemPrompt == "" {
		r.SystemPrompt = DefaultSystemPrompt
	}
	if r.MaxTokens <= 0 {
		r.MaxTokens = DefaultMaxTokens
	}
}

// TaskResponse is the normalized reply for both real and mock answers; the
// caller cannot tell them apart at the schema level.
type TaskResponse struct {
	Model        string `json:"model"`
	OutputText   string `json:"output_text"`
	InputTokens  *int64 `json:"input_tokens"`
	OutputTokens *int64 `json:"output_tokens"`
}

func responseFromMessage(msg *upstream.Message) TaskResponse {
	in := msg.Usage.InputTokens
	out := msg.Usage.OutputTokens
	return TaskResponse{
		Model:        msg.Model,
		OutputText:   msg.JoinedText(),
		InputTokens:  &in,
		OutputTokens: &out,
	}
}
