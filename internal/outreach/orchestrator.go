// Package outreach generates channel-specific prospecting messages for a lead
// through the configured generation API.
package outreach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"funil.app/crm/common/llm"
	"funil.app/crm/common/logger"
	"funil.app/crm/common/retry"
	"funil.app/crm/internal/model"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultVariations = 2
	MaxVariations     = 5
)

var (
	ErrAllChannelsFailed = errors.New("message generation failed for every channel")
	ErrNoChannels        = errors.New("at least one valid channel is required")
	errEmptyGeneration   = errors.New("generation returned no messages")
)

// channelOrder fixes result ordering: every WhatsApp suggestion precedes
// every email suggestion.
var channelOrder = []model.Channel{model.ChannelWhatsApp, model.ChannelEmail}

type GenerateRequest struct {
	Campaign     *model.Campaign
	Lead         *model.Lead
	CustomFields []model.CustomField
	Channels     []model.Channel
	Variations   int
	Sender       Sender
}

// ChannelError annotates a channel that failed while others succeeded.
type ChannelError struct {
	Channel model.Channel `json:"channel"`
	Err     error         `json:"-"`
}

func (e ChannelError) Error() string {
	return fmt.Sprintf("%s: %v", e.Channel, e.Err)
}

func (e ChannelError) Unwrap() error {
	return e.Err
}

type Result struct {
	Suggestions []model.Suggestion
	Failures    []ChannelError
}

type generatedMessage struct {
	ID      string `json:"id" jsonschema_description:"Identificador da variação"`
	Type    string `json:"type" jsonschema:"enum=whatsapp,enum=email"`
	Message string `json:"message" jsonschema_description:"Texto completo da mensagem"`
}

type generationResponse struct {
	Suggestions []generatedMessage `json:"suggestions"`
}

// Generator is the contract services depend on.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Result, error)
}

type Orchestrator struct {
	client llm.Client
	policy retry.Policy
	schema any
}

// NewOrchestrator wires the generation client with the retry policy applied
// to every channel call. A policy without a classifier retries only
// overloaded responses.
func NewOrchestrator(client llm.Client, policy retry.Policy) *Orchestrator {
	if policy.Retryable == nil {
		policy.Retryable = llm.IsOverloaded
	}
	return &Orchestrator{
		client: client,
		policy: policy,
		schema: llm.GenerateSchema[generationResponse](),
	}
}

// Generate runs one call per channel in parallel. It fails only when every
// channel failed or ctx was cancelled; a cancelled run never returns partial
// suggestions.
func (o *Orchestrator) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	channels := normalizeChannels(req.Channels)
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}

	variations := req.Variations
	if variations <= 0 {
		variations = DefaultVariations
	}
	if variations > MaxVariations {
		variations = MaxVariations
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "funil.outreach.orchestrator"})
	in := PromptInput{
		Campaign:     req.Campaign,
		Lead:         req.Lead,
		CustomFields: req.CustomFields,
		Sender:       req.Sender,
		Variations:   variations,
	}

	perChannel := make([][]model.Suggestion, len(channels))
	failures := make([]error, len(channels))

	var g errgroup.Group
	for i, ch := range channels {
		g.Go(func() error {
			suggestions, err := o.generateChannel(ctx, ch, in)
			if err != nil {
				failures[i] = err
				return nil
			}
			perChannel[i] = suggestions
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{}
	for i, ch := range channels {
		if failures[i] != nil {
			slog.WarnContext(ctx, "channel generation failed",
				"channel", ch,
				"error", failures[i])
			result.Failures = append(result.Failures, ChannelError{Channel: ch, Err: failures[i]})
			continue
		}
		result.Suggestions = append(result.Suggestions, perChannel[i]...)
	}

	if len(result.Suggestions) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrAllChannelsFailed, errors.Join(failures...))
	}

	slog.InfoContext(ctx, "outreach messages generated",
		"suggestions", len(result.Suggestions),
		"failed_channels", len(result.Failures))

	return result, nil
}

func (o *Orchestrator) generateChannel(ctx context.Context, channel model.Channel, in PromptInput) (_ []model.Suggestion, err error) {
	sc := logger.StartSpan(ctx, "outreach.generate."+string(channel))
	defer func() {
		sc.RecordError(err)
		sc.End()
	}()
	ctx = sc.Context()

	req := llm.Request{
		SystemPrompt: SystemPrompt(channel),
		UserPrompt:   UserPrompt(channel, in),
		SchemaName:   "outreach_suggestions",
		Schema:       o.schema,
		Temperature:  llm.Temp(0.8),
	}

	policy := o.policy
	policy.OnRetry = func(attempt int, err error, wait time.Duration) {
		slog.WarnContext(ctx, "generation overloaded, retrying",
			"channel", channel,
			"attempt", attempt,
			"wait_ms", wait.Milliseconds(),
			"error", err)
	}

	resp, err := retry.Do(ctx, policy, func(ctx context.Context, _ int) (generationResponse, error) {
		var out generationResponse
		_, err := o.client.Chat(ctx, req, &out)
		return out, err
	})
	if err != nil {
		return nil, err
	}

	suggestions := make([]model.Suggestion, 0, len(resp.Suggestions))
	for _, m := range resp.Suggestions {
		text := ApplySender(m.Message, in.Sender)
		if strings.TrimSpace(text) == "" {
			continue
		}
		suggestions = append(suggestions, model.Suggestion{
			ID:      fmt.Sprintf("%s-%d", channel, len(suggestions)+1),
			Type:    channel,
			Message: text,
		})
	}
	if len(suggestions) == 0 {
		return nil, errEmptyGeneration
	}
	return suggestions, nil
}

// normalizeChannels drops unknown and duplicate channels and applies the
// canonical order.
func normalizeChannels(requested []model.Channel) []model.Channel {
	want := make(map[model.Channel]bool, len(requested))
	for _, c := range requested {
		want[c] = true
	}
	out := make([]model.Channel, 0, len(channelOrder))
	for _, c := range channelOrder {
		if want[c] {
			out = append(out, c)
		}
	}
	return out
}
