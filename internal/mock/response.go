package mock

import (
	"fmt"
	"strings"

	"github.com/yungtweek/openclaw-agent/internal/upstream"
)

// Model is the identifier stamped on every mock response.
const Model = "claude-3-opus-20240229"

// marker closes every mock answer so humans can spot a degraded reply in
// logs; the schema stays indistinguishable from a real one.
const marker = "[openclaw-mock]"

// taskEchoLimit caps how much of the task text is echoed back.
const taskEchoLimit = 100

var phrases = []string{
	"Great question! Here is a short explanation:",
	"This is a tricky topic, but let's work through it.",
	"Let me give you a detailed answer to that.",
	"According to common industry practice:",
	"Here is a step-by-step solution:",
	"There are several ways to implement this.",
	"Let's dig into the details of this question.",
	"Here is the most practical approach to this problem:",
	"Based on experience, I would recommend the following:",
	"The important thing to pay attention to here is:",
}

// Response synthesizes an upstream-shaped answer for the given task text.
// It is the unconditional fallback for every degraded upstream outcome, so
// it never fails: deterministic shape, randomized content.
func Response(task string) upstream.Message {
	phrase := phrases[RandIntn(len(phrases))]
	text := fmt.Sprintf("%s\n\n%s...\n\n%s", phrase, trimRunes(task, taskEchoLimit), marker)

	return upstream.Message{
		Model: Model,
		Content: []upstream.ContentBlock{
			{Type: "text", Text: text},
		},
		Usage: upstream.Usage{
			InputTokens:  int64(len(strings.Fields(task)) + RandRange(10, 50)),
			OutputTokens: int64(RandRange(50, 300)),
		},
	}
}
