package validation

import "github.com/JaimeStill/nyaysetu/internal/keywords"

const (
	JurisdictionRulesWeight = 5
	CategoryWeight          = 3
	SmartFeaturesWeight     = 8
)

// ComplexityBreakdown scores how much rule machinery a validation run used.
type ComplexityBreakdown struct {
	ValidationChecks  int `json:"validation_checks"`
	JurisdictionRules int `json:"jurisdiction_rules"`
	LegalCompliance   int `json:"legal_compliance"`
	SmartFeatures     int `json:"smart_features"`
	Total             int `json:"total"`
}

// Complexity scores a completed report. Blocking findings are not counted
// as checks. info is only consulted for RTI applications.
func (v *Validator) Complexity(dt keywords.DocumentType, r *Report, state, info string) ComplexityBreakdown {
	b := ComplexityBreakdown{
		ValidationChecks: len(r.Errors) + len(r.Warnings) + len(r.Suggestions),
		SmartFeatures:    SmartFeaturesWeight,
	}
	if _, ok := v.reg.Profile(state); ok {
		b.JurisdictionRules = JurisdictionRulesWeight
	}
	if dt == keywords.RTI {
		b.LegalCompliance = len(v.reg.Detect(info)) * CategoryWeight
	}
	b.Total = b.ValidationChecks + b.JurisdictionRules + b.LegalCompliance + b.SmartFeatures
	return b
}
