// Package drafting assembles jurisdiction-aware RTI applications, first
// appeals, and affidavits into a renderer-neutral Draft.
package drafting

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/JaimeStill/nyaysetu/internal/jurisdiction"
	"github.com/JaimeStill/nyaysetu/internal/keywords"
)

var ErrInvalidInput = errors.New("invalid drafting input")

// Align controls horizontal placement of a section.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Section is a block of paragraphs under an optional heading. Compact
// sections render their paragraphs as consecutive lines.
type Section struct {
	Heading    string   `json:"heading,omitempty"`
	Paragraphs []string `json:"paragraphs"`
	Align      Align    `json:"align,omitempty"`
	Compact    bool     `json:"compact,omitempty"`
	Small      bool     `json:"small,omitempty"`
}

// Explanation records why a clause was added to a draft.
type Explanation struct {
	Clause         string `json:"clause"`
	Reason         string `json:"reason"`
	LegalReference string `json:"legal_reference,omitempty"`
}

// Draft is a fully assembled document ready for rendering.
type Draft struct {
	Type         keywords.DocumentType `json:"type"`
	Title        string                `json:"title"`
	Subject      string                `json:"subject"`
	State        string                `json:"state"`
	Sections     []Section             `json:"sections"`
	Explanations []Explanation         `json:"explanations"`
	Metadata     map[string]any        `json:"metadata"`
}

func (d *Draft) add(s Section) {
	d.Sections = append(d.Sections, s)
}

func (d *Draft) explain(clause, reason, ref string) {
	d.Explanations = append(d.Explanations, Explanation{
		Clause:         clause,
		Reason:         reason,
		LegalReference: ref,
	})
}

// Engine drafts documents from validated forms.
type Engine struct {
	reg *jurisdiction.Registry
	now func() time.Time
}

func New(reg *jurisdiction.Registry) *Engine {
	return &Engine{reg: reg, now: time.Now}
}

// WithClock returns a copy of e that reads the current time from now.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	c := *e
	c.now = now
	return &c
}

// state returns the canonical state name, the raw name when unknown, or
// the fallback state when blank.
func (e *Engine) state(name string) string {
	if strings.TrimSpace(name) == "" {
		return e.reg.Fallback()
	}
	if s, ok := e.reg.Canonical(name); ok {
		return s
	}
	return strings.TrimSpace(name)
}

// Text renders a draft as plain text.
func Text(d *Draft) string {
	var b strings.Builder
	b.WriteString(d.Title)
	b.WriteString("\n\n")

	for _, s := range d.Sections {
		if s.Heading != "" {
			b.WriteString(s.Heading)
			b.WriteString("\n")
		}
		sep := "\n\n"
		if s.Compact {
			sep = "\n"
		}
		b.WriteString(strings.Join(s.Paragraphs, sep))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// ExplanationReport lists the clauses added to a draft and their legal basis.
func ExplanationReport(d *Draft) string {
	if len(d.Explanations) == 0 {
		return "Standard document generated without additional clauses."
	}

	lines := []string{"Document Generation Explanation:", strings.Repeat("=", 50)}
	for i, e := range d.Explanations {
		lines = append(lines, fmt.Sprintf("\n%d. %s", i+1, e.Clause))
		lines = append(lines, "   Reason: "+e.Reason)
		if e.LegalReference != "" {
			lines = append(lines, "   Legal Basis: "+e.LegalReference)
		}
	}
	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}

// numbered formats items as "1. item;" lines, ending the last with a period.
func numbered(items []string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = fmt.Sprintf("%d. %s;", i+1, it)
	}
	if n := len(out); n > 0 {
		out[n-1] = strings.TrimSuffix(out[n-1], ";") + "."
	}
	return out
}
