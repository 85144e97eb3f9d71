package classifier_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/JaimeStill/nyaysetu/internal/clarify"
	"github.com/JaimeStill/nyaysetu/internal/classifier"
	"github.com/JaimeStill/nyaysetu/internal/keywords"
	"github.com/JaimeStill/nyaysetu/internal/llm"
	"github.com/JaimeStill/nyaysetu/internal/metrics"
)

type mockService struct {
	classifyFn func(ctx context.Context, description string) (*llm.Verdict, error)
}

func (m *mockService) Classify(ctx context.Context, description string) (*llm.Verdict, error) {
	return m.classifyFn(ctx, description)
}

func failingService(t *testing.T) *mockService {
	t.Helper()
	return &mockService{
		classifyFn: func(context.Context, string) (*llm.Verdict, error) {
			t.Error("service should not be called")
			return nil, errors.New("unexpected call")
		},
	}
}

func newClassifier(t *testing.T, service llm.Client, m *metrics.Metrics) *classifier.Classifier {
	t.Helper()

	var cfg classifier.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return classifier.New(cfg, keywords.Default(), clarify.Default(), service, m, logger)
}

func TestClassifyScenarios(t *testing.T) {
	c := newClassifier(t, failingService(t), nil)

	tests := []struct {
		name           string
		description    string
		wantType       keywords.DocumentType
		wantConfidence int
	}{
		{
			name:           "marksheet copy from university",
			description:    "I need a copy of my marksheet from my university",
			wantType:       keywords.RTI,
			wantConfidence: 98,
		},
		{
			name:           "declaration of marital status",
			description:    "I want to declare that I am unmarried for my passport application",
			wantType:       keywords.Affidavit,
			wantConfidence: 98,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(context.Background(), tt.description)
			if !got.Resolved() {
				t.Fatalf("expected resolved result, got %+v", got)
			}
			if got.DocumentType != tt.wantType {
				t.Errorf("DocumentType = %s, want %s", got.DocumentType, tt.wantType)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %d, want %d", got.Confidence, tt.wantConfidence)
			}
			if got.Source != classifier.SourceKeywords {
				t.Errorf("Source = %s, want keywords", got.Source)
			}
		})
	}
}

func TestClassifyResolvedFields(t *testing.T) {
	c := newClassifier(t, nil, nil)

	got := c.Classify(context.Background(), "Urgent: copy of file noting for my court case")
	if !got.Resolved() || got.DocumentType != keywords.RTI {
		t.Fatalf("expected RTI resolution, got %+v", got)
	}

	if got.DocumentName != "RTI Application" {
		t.Errorf("DocumentName = %q", got.DocumentName)
	}
	if got.EstimatedComplexity != 8 {
		t.Errorf("EstimatedComplexity = %d, want 8", got.EstimatedComplexity)
	}
	if got.ComplexityScore != 105 {
		t.Errorf("ComplexityScore = %d, want 105", got.ComplexityScore)
	}
	if got.EstimatedTimeMinutes != 15 {
		t.Errorf("EstimatedTimeMinutes = %d, want 15", got.EstimatedTimeMinutes)
	}
	if got.RecommendedApproach != classifier.Approach(keywords.RTI) {
		t.Errorf("RecommendedApproach = %q", got.RecommendedApproach)
	}

	want := []string{
		"Urgent request - ensure timeline compliance",
		"Legal matter - verify if RTI is appropriate or if Affidavit is needed",
	}
	if diff := cmp.Diff(want, got.Challenges); diff != "" {
		t.Errorf("Challenges mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyNoMatches(t *testing.T) {
	c := newClassifier(t, failingService(t), nil)

	got := c.Classify(context.Background(), "hello world")
	if got.Status != classifier.StatusNeedsClarification {
		t.Fatalf("Status = %s, want needs_clarification", got.Status)
	}
	if got.Confidence != 0 {
		t.Errorf("Confidence = %d, want 0", got.Confidence)
	}
	if got.SuggestedDocument != "" {
		t.Errorf("SuggestedDocument = %s, want none", got.SuggestedDocument)
	}
	if got.Message != classifier.ClarificationMessage {
		t.Errorf("Message = %q", got.Message)
	}
	if n := len(got.Questions); n < clarify.MinQuestions || n > clarify.MaxQuestions {
		t.Errorf("question count = %d", n)
	}
}

func TestClassifyTieNeedsClarification(t *testing.T) {
	c := newClassifier(t, failingService(t), nil)

	got := c.Classify(context.Background(), "transparency affidavit")
	if got.Status != classifier.StatusNeedsClarification {
		t.Fatalf("Status = %s, want needs_clarification", got.Status)
	}
	if got.Scores[keywords.RTI] != got.Scores[keywords.Affidavit] {
		t.Errorf("expected tied scores, got %v", got.Scores)
	}
	if got.Confidence != 0 {
		t.Errorf("Confidence = %d, want 0", got.Confidence)
	}
}

func TestScoreClampedAtZero(t *testing.T) {
	c := newClassifier(t, nil, nil)

	texts := []string{
		"pio notary",
		"court affidavit sworn before notary by the deponent, i solemnly swear under penalty of perjury",
		"right to information public information officer cpio government record",
	}

	for _, text := range texts {
		for dt, s := range c.Score(text) {
			if s < 0 {
				t.Errorf("Score(%q)[%s] = %d, want >= 0", text, dt, s)
			}
		}
	}

	scores := c.Score("pio notary")
	if scores[keywords.RTI] != 0 || scores[keywords.Affidavit] != 0 {
		t.Errorf("penalties should clamp both scores to zero, got %v", scores)
	}
}

func TestClassifyFallback(t *testing.T) {
	const lowConfidence = "transparency"

	tests := []struct {
		name           string
		verdict        *llm.Verdict
		err            error
		wantStatus     classifier.Status
		wantSource     classifier.Source
		wantType       keywords.DocumentType
		wantConfidence int
		wantQuestion   string
	}{
		{
			name:           "adopts confident service answer",
			verdict:        &llm.Verdict{DocumentType: keywords.Affidavit, Confidence: 90},
			wantStatus:     classifier.StatusResolved,
			wantSource:     classifier.SourceService,
			wantType:       keywords.Affidavit,
			wantConfidence: 90,
		},
		{
			name:           "adopts at exact service threshold",
			verdict:        &llm.Verdict{DocumentType: keywords.RTI, Confidence: 80},
			wantStatus:     classifier.StatusResolved,
			wantSource:     classifier.SourceService,
			wantType:       keywords.RTI,
			wantConfidence: 80,
		},
		{
			name:           "rejects weak service answer",
			verdict:        &llm.Verdict{DocumentType: keywords.Affidavit, Confidence: 79},
			wantStatus:     classifier.StatusNeedsClarification,
			wantSource:     classifier.SourceKeywords,
			wantConfidence: 65,
		},
		{
			name: "uses service questions",
			verdict: &llm.Verdict{
				ClarificationNeeded: true,
				Confidence:          40,
				Questions: []llm.Question{
					{Text: "Is the record held by a municipal body?", YesLeadsTo: "RTI_APPLICATION", NoLeadsTo: "AFFIDAVIT"},
				},
			},
			wantStatus:     classifier.StatusNeedsClarification,
			wantSource:     classifier.SourceService,
			wantConfidence: 65,
			wantQuestion:   "service_1",
		},
		{
			name:           "falls back on service error",
			err:            errors.New("connection refused"),
			wantStatus:     classifier.StatusNeedsClarification,
			wantSource:     classifier.SourceKeywords,
			wantConfidence: 65,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{
				classifyFn: func(_ context.Context, description string) (*llm.Verdict, error) {
					if description != lowConfidence {
						t.Errorf("description = %q", description)
					}
					return tt.verdict, tt.err
				},
			}
			c := newClassifier(t, svc, nil)

			got := c.Classify(context.Background(), lowConfidence)
			if got.Status != tt.wantStatus {
				t.Fatalf("Status = %s, want %s", got.Status, tt.wantStatus)
			}
			if got.Source != tt.wantSource {
				t.Errorf("Source = %s, want %s", got.Source, tt.wantSource)
			}
			if got.DocumentType != tt.wantType {
				t.Errorf("DocumentType = %s, want %s", got.DocumentType, tt.wantType)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %d, want %d", got.Confidence, tt.wantConfidence)
			}
			if tt.wantStatus == classifier.StatusNeedsClarification && got.SuggestedDocument != keywords.RTI {
				t.Errorf("SuggestedDocument = %s, want RTI", got.SuggestedDocument)
			}
			if tt.wantQuestion != "" {
				if len(got.Questions) != 1 || got.Questions[0].ID != tt.wantQuestion {
					t.Errorf("Questions = %+v", got.Questions)
				}
			}
		})
	}
}

func TestClassifyFallbackTimeout(t *testing.T) {
	svc := &mockService{
		classifyFn: func(ctx context.Context, _ string) (*llm.Verdict, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}

	cfg := classifier.Config{Service: llm.Config{Timeout: "20ms"}}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	c := classifier.New(cfg, keywords.Default(), clarify.Default(), svc, m, logger)

	start := time.Now()
	got := c.Classify(context.Background(), "transparency")
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("fallback took %s", elapsed)
	}
	if got.Status != classifier.StatusNeedsClarification || got.Confidence != 65 {
		t.Errorf("unexpected result: %+v", got)
	}

	n, err := testutil.GatherAndCount(m.Registry(), "nyaysetu_service_fallbacks_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if n != 1 {
		t.Errorf("fallback series = %d, want 1", n)
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		top, gap int
		want     int
	}{
		{0, 0, 50},
		{9, 9, 50},
		{10, 0, 65},
		{14, 14, 65},
		{15, 4, 65},
		{15, 5, 75},
		{20, 9, 75},
		{20, 10, 85},
		{30, 14, 85},
		{30, 15, 95},
		{49, 29, 95},
		{50, 0, 98},
		{40, 30, 98},
	}

	for _, tt := range tests {
		if got := classifier.Confidence(tt.top, tt.gap); got != tt.want {
			t.Errorf("Confidence(%d, %d) = %d, want %d", tt.top, tt.gap, got, tt.want)
		}
	}
}

func TestConfidenceMonotonic(t *testing.T) {
	for top := 0; top <= 120; top++ {
		for gap := 0; gap <= top; gap++ {
			base := classifier.Confidence(top, gap)
			if up := classifier.Confidence(top+1, gap); up < base {
				t.Fatalf("Confidence(%d, %d) = %d < Confidence(%d, %d) = %d", top+1, gap, up, top, gap, base)
			}
			if gap+1 <= top {
				if up := classifier.Confidence(top, gap+1); up < base {
					t.Fatalf("Confidence(%d, %d) = %d < Confidence(%d, %d) = %d", top, gap+1, up, top, gap, base)
				}
			}
		}
	}
}

func TestLeader(t *testing.T) {
	tests := []struct {
		name        string
		scores      classifier.Scores
		wantPrimary keywords.DocumentType
		wantTop     int
		wantGap     int
	}{
		{"rti leads", classifier.Scores{keywords.RTI: 30, keywords.Affidavit: 10}, keywords.RTI, 30, 20},
		{"affidavit leads", classifier.Scores{keywords.RTI: 10, keywords.Affidavit: 80}, keywords.Affidavit, 80, 70},
		{"tie", classifier.Scores{keywords.RTI: 20, keywords.Affidavit: 20}, keywords.RTI, 20, 0},
		{"empty", classifier.Scores{}, keywords.RTI, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, top, gap := tt.scores.Leader()
			if p != tt.wantPrimary || top != tt.wantTop || gap != tt.wantGap {
				t.Errorf("Leader() = (%s, %d, %d), want (%s, %d, %d)", p, top, gap, tt.wantPrimary, tt.wantTop, tt.wantGap)
			}
		})
	}
}

func TestRefine(t *testing.T) {
	c := newClassifier(t, failingService(t), nil)

	t.Run("single answer resolves", func(t *testing.T) {
		got, err := c.Refine("hello world", []classifier.Answer{
			{QuestionID: "generic_sworn_statement", Yes: true},
		})
		if err != nil {
			t.Fatalf("Refine: %v", err)
		}
		if !got.Resolved() || got.DocumentType != keywords.Affidavit {
			t.Fatalf("expected affidavit resolution, got %+v", got)
		}
		if got.Source != classifier.SourceAnswers {
			t.Errorf("Source = %s, want answers", got.Source)
		}
		if got.Scores[keywords.Affidavit] != classifier.AnswerBoost {
			t.Errorf("Affidavit score = %d, want %d", got.Scores[keywords.Affidavit], classifier.AnswerBoost)
		}
	})

	t.Run("no answer leads to other type", func(t *testing.T) {
		got, err := c.Refine("hello world", []classifier.Answer{
			{QuestionID: "generic_sworn_statement", Yes: false},
		})
		if err != nil {
			t.Fatalf("Refine: %v", err)
		}
		if got.DocumentType != keywords.RTI {
			t.Errorf("DocumentType = %s, want RTI", got.DocumentType)
		}
	})

	t.Run("conflicting answers stay ambiguous", func(t *testing.T) {
		got, err := c.Refine("hello world", []classifier.Answer{
			{QuestionID: "generic_obtain_information", Yes: true},
			{QuestionID: "generic_sworn_statement", Yes: true},
		})
		if err != nil {
			t.Fatalf("Refine: %v", err)
		}
		if got.Status != classifier.StatusNeedsClarification {
			t.Errorf("Status = %s, want needs_clarification", got.Status)
		}
		for _, q := range got.Questions {
			if q.ID == "generic_obtain_information" || q.ID == "generic_sworn_statement" {
				t.Errorf("answered question %s asked again", q.ID)
			}
		}
	})

	t.Run("repeated answer counts once", func(t *testing.T) {
		got, err := c.Refine("hello world", []classifier.Answer{
			{QuestionID: "generic_obtain_information", Yes: true},
			{QuestionID: "generic_obtain_information", Yes: true},
			{QuestionID: "generic_sworn_statement", Yes: true},
		})
		if err != nil {
			t.Fatalf("Refine: %v", err)
		}
		want := classifier.Scores{keywords.RTI: classifier.AnswerBoost, keywords.Affidavit: classifier.AnswerBoost}
		if diff := cmp.Diff(want, got.Scores); diff != "" {
			t.Errorf("scores (-want +got):\n%s", diff)
		}
		if got.Resolved() {
			t.Errorf("duplicate answer resolved the tie: %s", got.DocumentType)
		}
	})

	t.Run("explicit branch target", func(t *testing.T) {
		got, err := c.Refine("hello world", []classifier.Answer{
			{QuestionID: "service_1", Yes: true, LeadsTo: keywords.RTI},
		})
		if err != nil {
			t.Fatalf("Refine: %v", err)
		}
		if got.DocumentType != keywords.RTI {
			t.Errorf("DocumentType = %s, want RTI", got.DocumentType)
		}
	})

	t.Run("unknown question", func(t *testing.T) {
		_, err := c.Refine("hello world", []classifier.Answer{{QuestionID: "nope", Yes: true}})
		if !errors.Is(err, classifier.ErrUnknownQuestion) {
			t.Errorf("error = %v, want ErrUnknownQuestion", err)
		}
	})
}

func TestComplexity(t *testing.T) {
	c := newClassifier(t, nil, nil)
	off := false

	tests := []struct {
		name      string
		req       classifier.ComplexityRequest
		wantScore int
		wantLevel string
		wantItems int
	}{
		{"rti defaults", classifier.ComplexityRequest{DocumentType: keywords.RTI}, 115, "HIGH", 4},
		{"affidavit defaults", classifier.ComplexityRequest{DocumentType: keywords.Affidavit}, 105, "HIGH", 4},
		{
			"affidavit features off",
			classifier.ComplexityRequest{
				DocumentType:      keywords.Affidavit,
				ValidationEnabled: &off,
				BlockchainEnabled: &off,
				Citations:         &off,
			},
			70, "MEDIUM", 1,
		},
		{"unknown type uses rti", classifier.ComplexityRequest{DocumentType: "LEGAL_NOTICE"}, 115, "HIGH", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Complexity(tt.req)
			if got.TotalScore != tt.wantScore {
				t.Errorf("TotalScore = %d, want %d", got.TotalScore, tt.wantScore)
			}
			if got.Level != tt.wantLevel {
				t.Errorf("Level = %s, want %s", got.Level, tt.wantLevel)
			}
			if len(got.Breakdown) != tt.wantItems {
				t.Errorf("Breakdown = %v", got.Breakdown)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{40, "LOW"},
		{41, "MEDIUM"},
		{70, "MEDIUM"},
		{71, "HIGH"},
	}
	for _, tt := range tests {
		if got := classifier.Level(tt.score); got != tt.want {
			t.Errorf("Level(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestRefineServiceQuestion(t *testing.T) {
	svc := &mockService{
		classifyFn: func(context.Context, string) (*llm.Verdict, error) {
			return &llm.Verdict{
				ClarificationNeeded: true,
				Confidence:          40,
				Questions: []llm.Question{
					{Text: "Do you need to swear to these facts before a notary?", YesLeadsTo: "AFFIDAVIT", NoLeadsTo: "RTI_APPLICATION"},
				},
			}, nil
		},
	}
	c := newClassifier(t, svc, nil)

	first := c.Classify(context.Background(), "transparency")
	if first.Source != classifier.SourceService || len(first.Questions) != 1 {
		t.Fatalf("expected one service question, got %+v", first)
	}

	q := first.Questions[0]
	if _, ok := clarify.Default().Find(q.ID); ok {
		t.Fatalf("question %s unexpectedly in the bank", q.ID)
	}

	got, err := c.Refine("transparency", []classifier.Answer{classifier.AnswerTo(q, true)})
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	if got.DocumentType != keywords.Affidavit {
		t.Errorf("DocumentType = %s, want AFFIDAVIT (scores %v)", got.DocumentType, got.Scores)
	}
}
