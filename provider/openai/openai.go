// Package openai adapts the OpenAI Chat Completions API to the
// provider.ReasoningProvider interface.
package openai

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go"

	"github.com/veldtlabs/mentormesh/core"
	"github.com/veldtlabs/mentormesh/provider"
)

// Options configure the OpenAI reasoning adapter. Fields mirror a minimal
// subset of Chat Completion parameters; extend via functional options.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
	// System is an optional system prompt prepended to every call.
	System string
}

// Provider wraps the OpenAI Chat Completions API behind ReasoningProvider.
type Provider struct {
	client *openai.Client
	opts   Options
}

// New creates a provider using the official client with environment
// credentials.
func New(optFns ...func(o *Options)) *Provider {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a provider from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 2048,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

// Name implements provider.ReasoningProvider.
func (p *Provider) Name() string { return "openai" }

// GenerateReasoning implements provider.ReasoningProvider.
func (p *Provider) GenerateReasoning(ctx context.Context, prompt string) (*provider.Reasoning, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if p.opts.System != "" {
		messages = append(messages, openai.SystemMessage(p.opts.System))
	}
	messages = append(messages, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               p.opts.Model,
		Temperature:         openai.Float(p.opts.Temperature),
		MaxCompletionTokens: openai.Int(p.opts.MaxCompletionTokens),
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &core.ProviderError{Provider: "openai", Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &core.ProviderError{Provider: "openai", Err: errors.New("empty response")}
	}

	text := resp.Choices[0].Message.Content

	tps := 0.0
	if elapsed := time.Since(start).Seconds(); elapsed > 0 {
		tps = float64(resp.Usage.CompletionTokens) / elapsed
	}

	return &provider.Reasoning{
		Text:            text,
		Steps:           provider.SplitSteps(text),
		TokensPerSecond: tps,
	}, nil
}
