// Package anthropic adapts the Anthropic Messages API to the
// provider.ReasoningProvider interface.
package anthropic

import (
	"context"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/veldtlabs/mentormesh/core"
	"github.com/veldtlabs/mentormesh/provider"
)

// Options configures the Anthropic reasoning adapter.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
	// System is an optional system prompt prepended to every call.
	System string
}

// Provider wraps the Anthropic Messages API behind ReasoningProvider.
type Provider struct {
	client *anthropic.Client
	opts   Options
}

// New creates a provider using the official client. The API key falls back
// to the environment when unset.
func New(optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   2048,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Provider{client: &client, opts: opts}
}

// NewFromClient creates a provider from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   2048,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

// Name implements provider.ReasoningProvider.
func (p *Provider) Name() string { return "anthropic" }

// GenerateReasoning implements provider.ReasoningProvider.
func (p *Provider) GenerateReasoning(ctx context.Context, prompt string) (*provider.Reasoning, error) {
	params := anthropic.MessageNewParams{
		Model:       p.opts.Model,
		MaxTokens:   p.opts.MaxTokens,
		Temperature: anthropic.Float(p.opts.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if p.opts.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: p.opts.System}}
	}

	start := time.Now()
	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, &core.ProviderError{Provider: "anthropic", Err: err}
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.AsText().Text
		}
	}

	tps := 0.0
	if elapsed := time.Since(start).Seconds(); elapsed > 0 {
		tps = float64(resp.Usage.OutputTokens) / elapsed
	}

	return &provider.Reasoning{
		Text:            text,
		Steps:           provider.SplitSteps(text),
		TokensPerSecond: tps,
	}, nil
}
