package agent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/jeanpaul/swarm/internal/provider"
	"github.com/jeanpaul/swarm/internal/subagent"
)

const (
	defaultContextTokens = 100000
	maxToolResultLen     = 30000
)

// Conversation is the message history of one session. It is owned by a
// single session at a time; Fork hands out independent copies.
type Conversation struct {
	id          string
	messages    []provider.Message
	maxTokens   int // approximate context window limit
	totalTokens int // running estimate
}

// NewConversation starts an empty history. An empty id gets a fresh uuid.
func NewConversation(id string) *Conversation {
	if id == "" {
		id = uuid.NewString()
	}
	return &Conversation{id: id, maxTokens: defaultContextTokens}
}

func (c *Conversation) ID() string { return c.id }

// Fork copies the history under a new id. A trailing assistant turn whose
// tool calls have not all been answered is left out, since the copy would
// otherwise open with a request the model cannot satisfy.
func (c *Conversation) Fork(id string) subagent.Conversation {
	return c.Clone(id)
}

// Clone is Fork with the concrete type.
func (c *Conversation) Clone(id string) *Conversation {
	msgs := c.messages[:completeLen(c.messages)]
	clone := &Conversation{
		id:        id,
		messages:  make([]provider.Message, len(msgs)),
		maxTokens: c.maxTokens,
	}
	for i, m := range msgs {
		m.ToolCalls = slices.Clone(m.ToolCalls)
		clone.messages[i] = m
	}
	clone.recalcTokens()
	return clone
}

// completeLen is the length of the longest prefix that does not end inside
// an unanswered tool call exchange.
func completeLen(msgs []provider.Message) int {
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		if m.Role != provider.RoleAssistant || len(m.ToolCalls) == 0 {
			continue
		}
		answered := 0
		for _, r := range msgs[i+1:] {
			if r.Role == provider.RoleTool {
				answered++
			}
		}
		if answered < len(m.ToolCalls) {
			return i
		}
		return len(msgs)
	}
	return len(msgs)
}

func (c *Conversation) SetMaxTokens(max int) {
	if max > 0 {
		c.maxTokens = max
	}
}

// SetSystem replaces the system prompt, or adds one at the front.
func (c *Conversation) SetSystem(content string) {
	if len(c.messages) > 0 && c.messages[0].Role == provider.RoleSystem {
		c.messages[0].Content = content
	} else {
		c.messages = append([]provider.Message{{Role: provider.RoleSystem, Content: content}}, c.messages...)
	}
	c.recalcTokens()
}

// System returns the system prompt, if any.
func (c *Conversation) System() string {
	if len(c.messages) > 0 && c.messages[0].Role == provider.RoleSystem {
		return c.messages[0].Content
	}
	return ""
}

func (c *Conversation) AddUser(content string) {
	c.messages = append(c.messages, provider.Message{Role: provider.RoleUser, Content: content})
	c.totalTokens += estimateTokens(content)
	c.compactIfNeeded()
}

func (c *Conversation) AddAssistant(content string, toolCalls []provider.ToolCall) {
	c.messages = append(c.messages, provider.Message{
		Role: provider.RoleAssistant, Content: content, ToolCalls: toolCalls,
	})
	c.totalTokens += estimateTokens(content)
	for _, tc := range toolCalls {
		c.totalTokens += estimateTokens(tc.Args)
	}
}

func (c *Conversation) AddToolResult(toolCallID, content string) {
	if len(content) > maxToolResultLen {
		content = content[:maxToolResultLen] + "\n... [truncated]"
	}
	c.messages = append(c.messages, provider.Message{
		Role: provider.RoleTool, Content: content, ToolCallID: toolCallID,
	})
	c.totalTokens += estimateTokens(content)
	c.compactIfNeeded()
}

// Messages returns the history without the system prompt, which providers
// take separately.
func (c *Conversation) Messages() []provider.Message {
	if len(c.messages) > 0 && c.messages[0].Role == provider.RoleSystem {
		return c.messages[1:]
	}
	return c.messages
}

func (c *Conversation) Len() int {
	return len(c.messages)
}

func (c *Conversation) EstimatedTokens() int {
	return c.totalTokens
}

func (c *Conversation) compactIfNeeded() {
	if c.totalTokens < c.maxTokens*80/100 {
		return
	}
	c.Compact()
}

// Compact replaces all but the most recent messages with a short summary.
// The system prompt is kept, and the cut never separates tool results from
// the assistant turn that requested them.
func (c *Conversation) Compact() {
	start := 0
	if len(c.messages) > 0 && c.messages[0].Role == provider.RoleSystem {
		start = 1
	}
	remaining := c.messages[start:]
	if len(remaining) <= 6 {
		return
	}

	cutoff := len(remaining) - 6
	for cutoff > 0 && remaining[cutoff].Role == provider.RoleTool {
		cutoff--
	}
	if cutoff == 0 {
		return
	}

	var summary strings.Builder
	summary.WriteString("[Conversation summary]\n")
	for _, m := range remaining[:cutoff] {
		switch m.Role {
		case provider.RoleUser:
			fmt.Fprintf(&summary, "User: %s\n", truncateText(m.Content, 100))
		case provider.RoleAssistant:
			fmt.Fprintf(&summary, "Assistant: %s\n", truncateText(m.Content, 100))
		case provider.RoleTool:
			fmt.Fprintf(&summary, "Tool result: %s\n", truncateText(m.Content, 50))
		}
	}

	compacted := slices.Clone(c.messages[:start])
	compacted = append(compacted,
		provider.Message{Role: provider.RoleUser, Content: summary.String()},
		provider.Message{Role: provider.RoleAssistant, Content: "Understood. I have the conversation context."},
	)
	compacted = append(compacted, remaining[cutoff:]...)

	c.messages = compacted
	c.recalcTokens()
}

func (c *Conversation) recalcTokens() {
	c.totalTokens = 0
	for _, m := range c.messages {
		c.totalTokens += estimateTokens(m.Content)
		for _, tc := range m.ToolCalls {
			c.totalTokens += estimateTokens(tc.Args)
		}
	}
}

// Save writes the history to dir/<id>.json and returns the path.
func (c *Conversation) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, c.id+".json")
	data, err := json.MarshalIndent(c.messages, "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, data, 0644)
}

// estimateTokens gives a rough count (~4 chars per token).
func estimateTokens(s string) int {
	return len(s) / 4
}

func truncateText(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
