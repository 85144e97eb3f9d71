package classifier

import (
	"fmt"

	"github.com/JaimeStill/nyaysetu/internal/keywords"
)

const (
	ValidationWeight = 15
	BlockchainWeight = 10
	CitationWeight   = 10
)

// ComplexityRequest selects the features included in a complexity estimate.
// Nil toggles default to enabled.
type ComplexityRequest struct {
	DocumentType      keywords.DocumentType `json:"type"`
	ValidationEnabled *bool                 `json:"validation_enabled,omitempty"`
	BlockchainEnabled *bool                 `json:"blockchain_enabled,omitempty"`
	Citations         *bool                 `json:"citations,omitempty"`
}

// ComplexityReport is the itemised complexity estimate.
type ComplexityReport struct {
	TotalScore int      `json:"total_score"`
	Breakdown  []string `json:"breakdown"`
	Level      string   `json:"level"`
}

// Complexity estimates drafting complexity for a document type. Unknown
// types are estimated as RTI applications.
func (c *Classifier) Complexity(req ComplexityRequest) ComplexityReport {
	set, ok := c.tables.Set(req.DocumentType)
	if !ok {
		set = c.tables.RTI
	}

	base := set.BaseWeight * 10
	r := ComplexityReport{
		TotalScore: base,
		Breakdown:  []string{fmt.Sprintf("Template base: %d", base)},
	}

	add := func(enabled *bool, weight int, label string) {
		if enabled != nil && !*enabled {
			return
		}
		r.TotalScore += weight
		r.Breakdown = append(r.Breakdown, fmt.Sprintf("%s: +%d", label, weight))
	}

	add(req.ValidationEnabled, ValidationWeight, "AI validation")
	add(req.BlockchainEnabled, BlockchainWeight, "Blockchain")
	add(req.Citations, CitationWeight, "Legal citations")

	r.Level = Level(r.TotalScore)
	return r
}

// Level buckets a complexity score.
func Level(score int) string {
	switch {
	case score > 70:
		return "HIGH"
	case score > 40:
		return "MEDIUM"
	}
	return "LOW"
}
