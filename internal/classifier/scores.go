package classifier

import (
	"strings"

	"github.com/JaimeStill/nyaysetu/internal/keywords"
)

// Scores maps each document type to its non-negative score.
type Scores map[keywords.DocumentType]int

// Leader returns the highest-scoring type, its score, and the gap to the
// runner-up. Ties go to the type listed first in keywords.Types.
func (s Scores) Leader() (primary keywords.DocumentType, top, gap int) {
	second := 0
	for i, dt := range keywords.Types {
		v := s[dt]
		switch {
		case i == 0:
			primary, top = dt, v
		case v > top:
			second = top
			primary, top = dt, v
		case v > second:
			second = v
		}
	}
	if len(keywords.Types) > 1 {
		gap = top - second
	}
	return primary, top, gap
}

type bucket struct {
	minScore   int
	minGap     int
	confidence int
	either     bool
}

// Buckets are checked in order; each lower bound is inclusive.
var buckets = []bucket{
	{minScore: 50, minGap: 30, confidence: 98, either: true},
	{minScore: 30, minGap: 15, confidence: 95},
	{minScore: 20, minGap: 10, confidence: 85},
	{minScore: 15, minGap: 5, confidence: 75},
	{minScore: 10, minGap: 0, confidence: 65},
}

const floorConfidence = 50

// Confidence maps the leading score and its gap to a percentage.
func Confidence(top, gap int) int {
	for _, b := range buckets {
		scoreOK, gapOK := top >= b.minScore, gap >= b.minGap
		if (b.either && (scoreOK || gapOK)) || (scoreOK && gapOK) {
			return b.confidence
		}
	}
	return floorConfidence
}

// Challenges lists contextual warnings for a resolved classification.
func Challenges(description string, dt keywords.DocumentType) []string {
	text := strings.ToLower(description)
	out := make([]string, 0, 2)

	if containsAny(text, "urgent", "emergency", "immediate") {
		out = append(out, "Urgent request - ensure timeline compliance")
	}
	if dt == keywords.RTI && containsAny(text, "court", "legal", "case") {
		out = append(out, "Legal matter - verify if RTI is appropriate or if Affidavit is needed")
	}
	return out
}

// Approach returns the recommended filing approach for a document type.
func Approach(dt keywords.DocumentType) string {
	switch dt {
	case keywords.RTI:
		return "Submit RTI application to the Public Information Officer (PIO) of the relevant authority. " +
			"Include specific details of information needed, payment proof, and contact details."
	case keywords.Affidavit:
		return "Prepare sworn affidavit with clear statement of facts. " +
			"Get it notarized before submitting to the concerned authority or court."
	}
	return ""
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
