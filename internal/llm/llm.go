// Package llm wraps the optional remote text-classification service that the
// classifier consults when keyword scoring is inconclusive.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/nyaysetu/internal/keywords"
	"github.com/JaimeStill/nyaysetu/pkg/formatting"
)

var (
	ErrEmptyResponse = errors.New("empty response from classification service")
	ErrBadStatus     = errors.New("classification service returned non-success status")
	ErrInvalidAnswer = errors.New("invalid classification answer")
)

// Client classifies a description through a remote model.
type Client interface {
	Classify(ctx context.Context, description string) (*Verdict, error)
}

// Question is a disambiguation question proposed by the service.
type Question struct {
	Text       string `json:"question"`
	YesLeadsTo string `json:"yes_leads_to"`
	NoLeadsTo  string `json:"no_leads_to"`
}

// Verdict is the decoded answer of the service.
type Verdict struct {
	DocumentType        keywords.DocumentType `json:"document_type"`
	Confidence          int                   `json:"confidence"`
	ClarificationNeeded bool                  `json:"clarification_needed"`
	Questions           []Question            `json:"questions,omitempty"`
}

// New returns the client for the configured provider, or nil when the
// service is disabled or has no credentials.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	logger = logger.With("system", "llm", "provider", cfg.Provider)

	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAI(cfg, logger), nil
	case ProviderGemini:
		g, err := NewGemini(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
}

// SystemInstruction is the rubric given to the model.
const SystemInstruction = `You classify requests for Indian legal documents into exactly one of two types.

RTI_APPLICATION: the user wants information, records, file notings, copies of documents or the status of an action from a government department or public authority under the Right to Information Act, 2005.

AFFIDAVIT: the user wants to make a sworn statement of facts about themselves or matters within their personal knowledge (identity, name change, address, marital status, income, loss of documents, education gap, legal heir, court filings).

Respond with a single JSON object and nothing else:
{"document_type": "RTI_APPLICATION" | "AFFIDAVIT", "confidence": <integer 0-100>, "clarification_needed": <bool>, "questions": [{"question": "<yes/no question>", "yes_leads_to": "<type>", "no_leads_to": "<type>"}]}

Only include questions when clarification_needed is true.`

// BuildPrompt wraps the user description for the model.
func BuildPrompt(description string) string {
	return fmt.Sprintf("Classify the following request:\n\n%s", strings.TrimSpace(description))
}

// ParseVerdict decodes and checks a model answer.
func ParseVerdict(content string) (*Verdict, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyResponse
	}

	v, err := formatting.Parse[Verdict](content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
	}

	if v.Confidence < 0 || v.Confidence > 100 {
		return nil, fmt.Errorf("%w: confidence %d out of range", ErrInvalidAnswer, v.Confidence)
	}

	if v.DocumentType != "" {
		dt, err := keywords.Parse(string(v.DocumentType))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
		}
		v.DocumentType = dt
	} else if !v.ClarificationNeeded {
		return nil, fmt.Errorf("%w: missing document_type", ErrInvalidAnswer)
	}

	return &v, nil
}
