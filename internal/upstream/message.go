package upstream

import "strings"

// ContentBlock is one unit of a chat response body. Only "text" blocks
// contribute to the joined output.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// Message is the normalized chat-completion body. Both the real upstream
// response and the mock generator produce this shape, so the proxy builds
// its reply the same way regardless of source.
type Message struct {
	Model   string         `json:"model"`
	Content []ContentBlock `json:"content"`
	Usage   Usage          `json:"usage"`
}

// JoinedText concatenates every text block with newlines, preserving the
// original block order.
func (m *Message) JoinedText() string {
	parts := make([]string, 0, len(m.Content))
	for _, block := range m.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}
