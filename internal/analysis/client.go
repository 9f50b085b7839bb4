package analysis

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"salescope/internal/models"
)

// Analyzer produces a structured assessment of one sales conversation. The
// batch runner and the handlers depend on this interface so tests can supply
// a fake instead of a live model.
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalysisResult, error)
}

// Client calls OpenAI for conversation analysis and coaching-script
// generation, validating the shape of everything that comes back.
type Client struct {
	api    *openai.Client
	model  string
	logger zerolog.Logger
}

// NewClient creates an analysis client for the given API key and model.
func NewClient(apiKey, model string, logger zerolog.Logger) *Client {
	return &Client{
		api:    openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

// Analyze sends one conversation to the model and returns the validated
// assessment. A *ShapeError means the model's reply did not match the schema
// and the caller may retry.
func (c *Client) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalysisResult, error) {
	prompt := buildAnalysisPrompt(req)

	c.logger.Info().
		Str("company", req.CompanyName).
		Str("source", req.Source).
		Int("transcript_len", len(req.Transcript)).
		Msg("Requesting analysis")

	raw, err := c.complete(ctx, systemPrompt, prompt, 0.3)
	if err != nil {
		return nil, err
	}

	result, err := validateAnalysis(raw)
	if err != nil {
		c.logger.Warn().Err(err).Str("company", req.CompanyName).Msg("Analysis response rejected")
		return nil, err
	}

	c.logger.Info().
		Str("company", req.CompanyName).
		Int("lead_score", result.LeadScore).
		Str("deal_risk", result.DealRisk).
		Msg("Analysis complete")

	return result, nil
}

// CoachingScript generates a spoken coaching debrief for one conversation.
func (c *Client) CoachingScript(ctx context.Context, req models.CoachingScriptRequest) (*models.CoachingScript, error) {
	prompt := buildCoachingPrompt(req)

	raw, err := c.complete(ctx, coachingSystemPrompt, prompt, 0.5)
	if err != nil {
		return nil, err
	}

	script, err := validateCoachingScript(raw)
	if err != nil {
		c.logger.Warn().Err(err).Str("company", req.CompanyName).Msg("Coaching script rejected")
		return nil, err
	}
	return script, nil
}

func (c *Client) complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}
