package analyses_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/nyaysetu/internal/analyses"
	"github.com/JaimeStill/nyaysetu/internal/clarify"
	"github.com/JaimeStill/nyaysetu/internal/classifier"
	"github.com/JaimeStill/nyaysetu/internal/keywords"
	"github.com/JaimeStill/nyaysetu/pkg/pagination"
)

func newSystem(t *testing.T) analyses.System {
	t.Helper()

	var cfg classifier.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := classifier.New(cfg, keywords.Default(), clarify.Default(), nil, nil, logger)
	return analyses.New(nil, c, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func TestAnalyze(t *testing.T) {
	sys := newSystem(t)

	t.Run("resolves without recording", func(t *testing.T) {
		out, err := sys.Analyze(context.Background(), "I need a copy of my marksheet from my university")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Resolved() || out.DocumentType != keywords.RTI {
			t.Errorf("outcome = %+v", out.Result)
		}
		if out.ID != nil {
			t.Errorf("id = %v, want nil without a database", out.ID)
		}
	})

	t.Run("blank description", func(t *testing.T) {
		_, err := sys.Analyze(context.Background(), "   ")
		if !errors.Is(err, analyses.ErrEmptyDescription) {
			t.Errorf("err = %v, want ErrEmptyDescription", err)
		}
	})
}

func TestRefine(t *testing.T) {
	sys := newSystem(t)

	out, err := sys.Refine(context.Background(), analyses.RefineRequest{
		Description: "hello world",
		Answers:     []classifier.Answer{{QuestionID: "generic_sworn_statement", Yes: true}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.DocumentType != keywords.Affidavit || out.Source != classifier.SourceAnswers {
		t.Errorf("outcome = %+v", out.Result)
	}

	_, err = sys.Refine(context.Background(), analyses.RefineRequest{
		Description: "hello world",
		Answers:     []classifier.Answer{{QuestionID: "missing"}},
	})
	if !errors.Is(err, classifier.ErrUnknownQuestion) {
		t.Errorf("err = %v, want ErrUnknownQuestion", err)
	}
}

func TestBatch(t *testing.T) {
	sys := newSystem(t)

	descriptions := []string{
		"I need a copy of my marksheet from my university",
		"",
		"I want to declare that I am unmarried for my passport application",
		"hello world",
	}

	items, err := sys.Batch(context.Background(), descriptions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != len(descriptions) {
		t.Fatalf("items = %d, want %d", len(items), len(descriptions))
	}

	for i, item := range items {
		if item.Index != i || item.Description != descriptions[i] {
			t.Errorf("item %d out of order: %+v", i, item)
		}
	}

	if items[0].Outcome == nil || items[0].Outcome.DocumentType != keywords.RTI {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[1].Outcome != nil || items[1].Error == "" {
		t.Errorf("item 1 should fail: %+v", items[1])
	}
	if items[2].Outcome == nil || items[2].Outcome.DocumentType != keywords.Affidavit {
		t.Errorf("item 2 = %+v", items[2])
	}
	if items[3].Outcome == nil || items[3].Outcome.Resolved() {
		t.Errorf("item 3 should need clarification: %+v", items[3])
	}

	t.Run("too large", func(t *testing.T) {
		many := make([]string, analyses.MaxBatch+1)
		for i := range many {
			many[i] = fmt.Sprintf("copy of file %d", i)
		}
		_, err := sys.Batch(context.Background(), many)
		if !errors.Is(err, analyses.ErrBatchTooLarge) {
			t.Errorf("err = %v, want ErrBatchTooLarge", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := sys.Batch(context.Background(), nil)
		if !errors.Is(err, analyses.ErrEmptyDescription) {
			t.Errorf("err = %v, want ErrEmptyDescription", err)
		}
	})
}

func TestComplexity(t *testing.T) {
	sys := newSystem(t)
	got := sys.Complexity(classifier.ComplexityRequest{DocumentType: keywords.Affidavit})
	if got.Level == "" || len(got.Breakdown) == 0 {
		t.Errorf("report = %+v", got)
	}
	if !strings.HasPrefix(got.Breakdown[0], "Template base:") {
		t.Errorf("breakdown = %v", got.Breakdown)
	}
}
