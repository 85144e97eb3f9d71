package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini classifies through the Google Generative AI API.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *slog.Logger
}

// NewGemini creates a Gemini client configured for JSON answers.
func NewGemini(ctx context.Context, cfg *Config, logger *slog.Logger) (*Gemini, error) {
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(SystemInstruction)},
	}
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.3)
	model.SetMaxOutputTokens(512)

	return &Gemini{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Classify generates one answer and decodes the verdict.
func (g *Gemini) Classify(ctx context.Context, description string) (*Verdict, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(BuildPrompt(description)))
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected part type %T", ErrInvalidAnswer, resp.Candidates[0].Content.Parts[0])
	}

	v, err := ParseVerdict(string(text))
	if err != nil {
		return nil, err
	}

	g.logger.Debug("service classified description",
		"document_type", v.DocumentType,
		"confidence", v.Confidence,
	)
	return v, nil
}
