package validation

import "strings"

// Severity ranks a finding by how strongly it affects generation.
type Severity string

const (
	Blocking   Severity = "blocking"
	Error      Severity = "error"
	Warning    Severity = "warning"
	Suggestion Severity = "suggestion"
)

// Finding is a single validation message.
type Finding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report partitions the findings of one validation run by severity,
// preserving the order in which they were raised.
type Report struct {
	Blocking    []string `json:"blocking_issues"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// Passed reports whether generation may proceed. Warnings and suggestions
// never block.
func (r *Report) Passed() bool {
	return len(r.Blocking) == 0 && len(r.Errors) == 0
}

// Findings flattens the report in severity order.
func (r *Report) Findings() []Finding {
	out := make([]Finding, 0, len(r.Blocking)+len(r.Errors)+len(r.Warnings)+len(r.Suggestions))
	for _, s := range sections(r) {
		for _, m := range s.items {
			out = append(out, Finding{Severity: s.severity, Message: m})
		}
	}
	return out
}

func (r *Report) add(sev Severity, msg string) {
	switch sev {
	case Blocking:
		r.Blocking = append(r.Blocking, msg)
	case Error:
		r.Errors = append(r.Errors, msg)
	case Warning:
		r.Warnings = append(r.Warnings, msg)
	case Suggestion:
		r.Suggestions = append(r.Suggestions, msg)
	}
}

type section struct {
	severity Severity
	header   string
	items    []string
}

func sections(r *Report) []section {
	return []section{
		{Blocking, "BLOCKING ISSUES (CANNOT PROCEED):", r.Blocking},
		{Error, "ERRORS (Must Fix):", r.Errors},
		{Warning, "WARNINGS (Strongly Recommended):", r.Warnings},
		{Suggestion, "SUGGESTIONS (For Better Results):", r.Suggestions},
	}
}

var rule = strings.Repeat("=", 60)

// String renders the human-readable report, Blocking through Suggestion.
func (r *Report) String() string {
	var lines []string
	for _, s := range sections(r) {
		if len(s.items) == 0 {
			continue
		}
		lines = append(lines, s.header, rule)
		for _, m := range s.items {
			lines = append(lines, "  "+m)
		}
		lines = append(lines, "")
	}

	if r.Passed() && len(r.Warnings) == 0 {
		lines = append(lines, "All validations passed! Document is ready for generation.", rule)
	}
	return strings.Join(lines, "\n")
}

func newReport() *Report {
	return &Report{
		Blocking:    []string{},
		Errors:      []string{},
		Warnings:    []string{},
		Suggestions: []string{},
	}
}
