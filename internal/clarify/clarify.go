// Package clarify selects yes/no disambiguation questions for descriptions
// the classifier cannot resolve with enough confidence.
package clarify

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/nyaysetu/internal/keywords"
)

//go:embed questions.yaml
var questionsYAML []byte

// Both marks a category that applies to either document type.
const Both = "BOTH"

const (
	MinQuestions   = 2
	MaxQuestions   = 4
	MaxPerCategory = 2
)

var ErrInvalidBank = errors.New("invalid question bank")

// Question is a yes/no question whose answers each lead to a document type.
type Question struct {
	ID         string                `yaml:"id" json:"id"`
	Text       string                `yaml:"text" json:"question"`
	YesLeadsTo keywords.DocumentType `yaml:"yes_leads_to" json:"yes_leads_to"`
	NoLeadsTo  keywords.DocumentType `yaml:"no_leads_to" json:"no_leads_to"`
}

// LeadsTo returns the document type the given answer points at.
func (q Question) LeadsTo(yes bool) keywords.DocumentType {
	if yes {
		return q.YesLeadsTo
	}
	return q.NoLeadsTo
}

// Category groups questions behind a set of trigger phrases.
type Category struct {
	ID        string     `yaml:"id"`
	Lean      string     `yaml:"lean"`
	Triggers  []string   `yaml:"triggers"`
	Questions []Question `yaml:"questions"`
}

func (c Category) triggered(text string) bool {
	for _, t := range c.Triggers {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// Bank is an immutable question bank.
type Bank struct {
	categories []Category
	generic    Category
	index      map[string]Question
}

type bankFile struct {
	Categories []Category `yaml:"categories"`
	Generic    Category   `yaml:"generic"`
}

// Load decodes and validates a YAML question bank.
func Load(data []byte) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}

	if len(f.Generic.Questions) < MinQuestions {
		return nil, fmt.Errorf("%w: generic category needs at least %d questions", ErrInvalidBank, MinQuestions)
	}

	b := &Bank{
		categories: f.Categories,
		generic:    f.Generic,
		index:      make(map[string]Question),
	}

	all := append([]Category{f.Generic}, f.Categories...)
	for ci := range all {
		c := &all[ci]
		for i, t := range c.Triggers {
			c.Triggers[i] = strings.ToLower(strings.TrimSpace(t))
		}
		for _, q := range c.Questions {
			if err := checkQuestion(q); err != nil {
				return nil, fmt.Errorf("%w: category %s: %v", ErrInvalidBank, c.ID, err)
			}
			if _, dup := b.index[q.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate question id %s", ErrInvalidBank, q.ID)
			}
			b.index[q.ID] = q
		}
	}

	return b, nil
}

// Default returns the embedded question bank. It panics if the embedded
// data is malformed, which is a build defect.
func Default() *Bank {
	b, err := Load(questionsYAML)
	if err != nil {
		panic(fmt.Sprintf("load questions.yaml: %v", err))
	}
	return b
}

// Find resolves a question by id.
func (b *Bank) Find(id string) (Question, bool) {
	q, ok := b.index[id]
	return q, ok
}

// Select chooses between MinQuestions and MaxQuestions questions for text.
// Triggered categories matching the leading document type come first,
// followed by the remaining triggered categories in table order; the
// generic category pads the selection when too few questions were found.
func (b *Bank) Select(text string, scores map[keywords.DocumentType]int) []Question {
	text = strings.ToLower(text)
	lean := leaning(scores)

	var preferred, rest []Category
	for _, c := range b.categories {
		if !c.triggered(text) {
			continue
		}
		if c.Lean == lean {
			preferred = append(preferred, c)
		} else {
			rest = append(rest, c)
		}
	}

	selected := make([]Question, 0, MaxQuestions)
	seen := make(map[string]bool)

	take := func(c Category) {
		n := 0
		for _, q := range c.Questions {
			if len(selected) == MaxQuestions || n == MaxPerCategory {
				return
			}
			if seen[q.ID] {
				continue
			}
			seen[q.ID] = true
			selected = append(selected, q)
			n++
		}
	}

	for _, c := range preferred {
		take(c)
	}
	for _, c := range rest {
		take(c)
	}

	if len(selected) < MinQuestions {
		for _, q := range b.generic.Questions {
			if len(selected) == MinQuestions {
				break
			}
			if !seen[q.ID] {
				seen[q.ID] = true
				selected = append(selected, q)
			}
		}
	}

	return selected
}

func leaning(scores map[keywords.DocumentType]int) string {
	rti, aff := scores[keywords.RTI], scores[keywords.Affidavit]
	switch {
	case rti > aff:
		return string(keywords.RTI)
	case aff > rti:
		return string(keywords.Affidavit)
	}
	return Both
}

func checkQuestion(q Question) error {
	if q.ID == "" || q.Text == "" {
		return errors.New("question requires id and text")
	}
	for _, dt := range []keywords.DocumentType{q.YesLeadsTo, q.NoLeadsTo} {
		if dt != keywords.RTI && dt != keywords.Affidavit {
			return fmt.Errorf("question %s: unknown document type %q", q.ID, dt)
		}
	}
	if q.YesLeadsTo == q.NoLeadsTo {
		return fmt.Errorf("question %s: both answers lead to %s", q.ID, q.YesLeadsTo)
	}
	return nil
}
