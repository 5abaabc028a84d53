// Package summarize turns a GDB stop payload into one short sentence of
// English via the Anthropic Messages API. It is strictly additive: nothing
// in internal/mcpserver depends on it succeeding, and it is only ever
// constructed when an API key is configured.
package summarize

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

const systemPrompt = "You are a concise GDB assistant. Summarize the following debugger stop event in one short sentence. Focus on why execution stopped and where. Do not repeat raw register or memory values verbatim."

// Summarizer calls the Anthropic Messages API to describe a stop event.
type Summarizer struct {
	model string
}

// New returns a Summarizer that uses model (e.g. "claude-haiku-4-5-20251001")
// for every call. The Anthropic client reads its API key from the
// ANTHROPIC_API_KEY environment variable, matching anthropic-sdk-go's own
// default client configuration.
func New(model string) *Summarizer {
	return &Summarizer{model: model}
}

// Summarize returns a one-sentence description of stopText, the formatted
// reason/frame/args payload of a gdb_continue/gdb_step/gdb_next/gdb_finish
// reply.
func (s *Summarizer) Summarize(ctx context.Context, stopText string) (string, error) {
	client := anthropic.NewClient()

	msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: 100,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(stopText)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("no text block in response")
}
