package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	Model            string `json:"model"`
}

// AgentMeta holds operational metadata for one LLM-backed step
// (extraction, suggestion, embedding).
type AgentMeta struct {
	AgentName string
	Usage     TokenUsage
	Latency   time.Duration
}

// NewAgentMeta stamps the latency measured from start.
func NewAgentMeta(name string, usage TokenUsage, start time.Time) AgentMeta {
	return AgentMeta{AgentName: name, Usage: usage, Latency: time.Since(start)}
}

// HasUsage reports whether the step consumed any tokens. Cache hits do not.
func (m AgentMeta) HasUsage() bool {
	return m.Usage.PromptTokens > 0 || m.Usage.CompletionTokens > 0
}
