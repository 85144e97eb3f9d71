// Package classifier maps free-text requirement descriptions to a document
// type using weighted keyword scoring, with an optional remote fallback and
// clarification questions for ambiguous input.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/nyaysetu/internal/clarify"
	"github.com/JaimeStill/nyaysetu/internal/keywords"
	"github.com/JaimeStill/nyaysetu/internal/llm"
	"github.com/JaimeStill/nyaysetu/internal/metrics"
)

const (
	DefaultThreshold        = 70
	DefaultServiceThreshold = 80
	DefaultNegativeWeight   = 20

	PositiveWeight = 10
	AnswerBoost    = 40

	EstimatedMinutes = 15

	ClarificationMessage = "I need a bit more information to suggest the right document for you."
)

var ErrUnknownQuestion = errors.New("unknown clarification question")

// Status tags which variant a Result holds.
type Status string

const (
	StatusResolved           Status = "resolved"
	StatusNeedsClarification Status = "needs_clarification"
)

// Source records what produced a Result.
type Source string

const (
	SourceKeywords Source = "keywords"
	SourceService  Source = "service"
	SourceAnswers  Source = "answers"
)

// Result is either a resolved classification or a request for clarification.
// Resolved fields are zero for clarification results and vice versa.
type Result struct {
	Status     Status `json:"status"`
	Source     Source `json:"source"`
	Confidence int    `json:"confidence"`
	Scores     Scores `json:"score_details"`

	DocumentType         keywords.DocumentType `json:"primary_document,omitempty"`
	DocumentName         string                `json:"document_name,omitempty"`
	EstimatedComplexity  int                   `json:"estimated_complexity,omitempty"`
	ComplexityScore      int                   `json:"complexity_score,omitempty"`
	EstimatedTimeMinutes int                   `json:"estimated_time_minutes,omitempty"`
	Challenges           []string              `json:"potential_challenges,omitempty"`
	RecommendedApproach  string                `json:"recommended_approach,omitempty"`

	SuggestedDocument keywords.DocumentType `json:"suggested_document,omitempty"`
	Questions         []clarify.Question    `json:"questions,omitempty"`
	Message           string                `json:"message,omitempty"`
}

// Resolved reports whether the result carries a document type.
func (r Result) Resolved() bool {
	return r.Status == StatusResolved
}

// Answer is a user reply to a clarification question. LeadsTo, when set,
// overrides the bank lookup and is used for questions proposed by the
// remote service.
type Answer struct {
	QuestionID string                `json:"question_id"`
	Yes        bool                  `json:"answer"`
	LeadsTo    keywords.DocumentType `json:"leads_to,omitempty"`
}

// AnswerTo builds the reply to q. The branch target travels with the answer
// so questions proposed by the remote service, which are not in the bank,
// can be refined.
func AnswerTo(q clarify.Question, yes bool) Answer {
	return Answer{QuestionID: q.ID, Yes: yes, LeadsTo: q.LeadsTo(yes)}
}

// Classifier scores descriptions against immutable keyword tables.
type Classifier struct {
	cfg     Config
	tables  *keywords.Tables
	bank    *clarify.Bank
	service llm.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a Classifier. service and m may be nil.
func New(
	cfg Config,
	tables *keywords.Tables,
	bank *clarify.Bank,
	service llm.Client,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Classifier {
	return &Classifier{
		cfg:     cfg,
		tables:  tables,
		bank:    bank,
		service: service,
		metrics: m,
		logger:  logger.With("system", "classifier"),
	}
}

// Score computes the clamped per-type scores for text.
func (c *Classifier) Score(text string) Scores {
	text = strings.ToLower(text)
	bonus := c.tables.EdgeBonus(text, keywords.EdgeBonus)

	scores := make(Scores, len(keywords.Types))
	for _, dt := range keywords.Types {
		set, _ := c.tables.Set(dt)
		s := max(0, set.Positive(text)*PositiveWeight-set.Negative(text)*c.cfg.NegativeWeight)
		if dt == keywords.Affidavit {
			s += bonus
		}
		scores[dt] = s
	}
	return scores
}

// Classify resolves description to a document type or asks for clarification.
// Failures of the remote service are logged and never returned.
func (c *Classifier) Classify(ctx context.Context, description string) Result {
	scores := c.Score(description)
	primary, top, gap := scores.Leader()

	if top == 0 || gap == 0 {
		return c.observe(c.clarification(scores, 0, "", c.bank.Select(description, scores), SourceKeywords))
	}

	confidence := Confidence(top, gap)
	if confidence >= c.cfg.Threshold {
		return c.observe(c.resolved(description, primary, confidence, scores, SourceKeywords))
	}

	verdict, err := c.consult(ctx, description)
	switch {
	case err != nil:
		if !errors.Is(err, errServiceDisabled) {
			c.logger.Warn("classification service failed, using keyword result", "error", err)
			c.metrics.ObserveFallback("error")
		}
	case !verdict.ClarificationNeeded && verdict.DocumentType != "" && verdict.Confidence >= c.cfg.ServiceThreshold:
		c.metrics.ObserveFallback("adopted")
		return c.observe(c.resolved(description, verdict.DocumentType, verdict.Confidence, scores, SourceService))
	case verdict.ClarificationNeeded:
		if qs := serviceQuestions(verdict.Questions, primary); len(qs) > 0 {
			c.metrics.ObserveFallback("clarification")
			return c.observe(c.clarification(scores, confidence, primary, qs, SourceService))
		}
		c.metrics.ObserveFallback("rejected")
	default:
		c.metrics.ObserveFallback("rejected")
	}

	return c.observe(c.clarification(scores, confidence, primary, c.bank.Select(description, scores), SourceKeywords))
}

// Refine re-classifies description after the user answered clarification
// questions. Each distinct question adds AnswerBoost to the type its branch
// leads to; repeated ids count once. Questions already answered are never
// asked again, so the returned list may be empty.
func (c *Classifier) Refine(description string, answers []Answer) (Result, error) {
	scores := c.Score(description)
	answered := make(map[string]bool, len(answers))

	for _, a := range answers {
		if answered[a.QuestionID] {
			continue
		}
		dt, err := c.leadsTo(a)
		if err != nil {
			return Result{}, err
		}
		scores[dt] += AnswerBoost
		answered[a.QuestionID] = true
	}

	primary, top, gap := scores.Leader()
	if top > 0 && gap > 0 {
		if confidence := Confidence(top, gap); confidence >= c.cfg.Threshold {
			return c.observe(c.resolved(description, primary, confidence, scores, SourceAnswers)), nil
		}
	}

	var remaining []clarify.Question
	for _, q := range c.bank.Select(description, scores) {
		if !answered[q.ID] {
			remaining = append(remaining, q)
		}
	}

	if top == 0 || gap == 0 {
		return c.observe(c.clarification(scores, 0, "", remaining, SourceAnswers)), nil
	}
	return c.observe(c.clarification(scores, Confidence(top, gap), primary, remaining, SourceAnswers)), nil
}

func (c *Classifier) leadsTo(a Answer) (keywords.DocumentType, error) {
	if a.LeadsTo != "" {
		dt, err := keywords.Parse(string(a.LeadsTo))
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrUnknownQuestion, a.QuestionID, err)
		}
		return dt, nil
	}
	q, ok := c.bank.Find(a.QuestionID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownQuestion, a.QuestionID)
	}
	return q.LeadsTo(a.Yes), nil
}

var errServiceDisabled = errors.New("classification service disabled")

func (c *Classifier) consult(ctx context.Context, description string) (*llm.Verdict, error) {
	if c.service == nil {
		return nil, errServiceDisabled
	}

	if timeout := c.cfg.Service.TimeoutDuration(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	v, err := c.service.Classify(ctx, description)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, llm.ErrEmptyResponse
	}
	return v, nil
}

func (c *Classifier) resolved(description string, dt keywords.DocumentType, confidence int, scores Scores, source Source) Result {
	set, _ := c.tables.Set(dt)
	return Result{
		Status:               StatusResolved,
		Source:               source,
		Confidence:           confidence,
		Scores:               scores,
		DocumentType:         dt,
		DocumentName:         set.Name,
		EstimatedComplexity:  set.BaseWeight,
		ComplexityScore:      set.BaseWeight*10 + ValidationWeight + BlockchainWeight,
		EstimatedTimeMinutes: EstimatedMinutes,
		Challenges:           Challenges(description, dt),
		RecommendedApproach:  Approach(dt),
	}
}

func (c *Classifier) clarification(
	scores Scores,
	confidence int,
	suggested keywords.DocumentType,
	questions []clarify.Question,
	source Source,
) Result {
	return Result{
		Status:            StatusNeedsClarification,
		Source:            source,
		Confidence:        confidence,
		Scores:            scores,
		SuggestedDocument: suggested,
		Questions:         questions,
		Message:           ClarificationMessage,
	}
}

func (c *Classifier) observe(r Result) Result {
	dt := r.DocumentType
	if dt == "" {
		dt = r.SuggestedDocument
	}
	c.metrics.ObserveClassification(string(r.Status), string(dt), string(r.Source), r.Confidence)
	return r
}

func serviceQuestions(in []llm.Question, suggested keywords.DocumentType) []clarify.Question {
	out := make([]clarify.Question, 0, clarify.MaxQuestions)
	for i, q := range in {
		if len(out) == clarify.MaxQuestions {
			break
		}
		text := strings.TrimSpace(q.Text)
		if text == "" {
			continue
		}

		yes, err := keywords.Parse(q.YesLeadsTo)
		if err != nil {
			if suggested == "" {
				continue
			}
			yes = suggested
		}

		no, err := keywords.Parse(q.NoLeadsTo)
		if err != nil || no == yes {
			no = yes.Other()
		}

		out = append(out, clarify.Question{
			ID:         fmt.Sprintf("service_%d", i+1),
			Text:       text,
			YesLeadsTo: yes,
			NoLeadsTo:  no,
		})
	}
	return out
}
