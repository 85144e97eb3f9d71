// Package jurisdiction holds the read-only per-state legal rules used when
// validating and drafting documents, and the RTI exemption category table.
package jurisdiction

import (
	"embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// States enumerates the states and union territories accepted as a
// document jurisdiction.
var States = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya",
	"Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim",
	"Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand",
	"West Bengal", "Delhi", "Jammu and Kashmir", "Ladakh",
}

// Verification formats for affidavits.
const (
	VerificationNotary     = "notary"
	VerificationMagistrate = "magistrate_court"
)

// RTIRules are the state rules for RTI applications.
type RTIRules struct {
	Fee                  int      `yaml:"fee" json:"fee"`
	PaymentModes         []string `yaml:"payment_modes" json:"payment_modes"`
	BPLExemption         bool     `yaml:"bpl_exemption" json:"bpl_exemption"`
	PIODesignation       string   `yaml:"pio_designation" json:"pio_designation"`
	AppellateDesignation string   `yaml:"appellate_designation" json:"appellate_designation"`
	Languages            []string `yaml:"languages" json:"languages"`
}

// AffidavitRules are the state rules for affidavits.
type AffidavitRules struct {
	StampMandatory     bool   `yaml:"stamp_mandatory" json:"stamp_mandatory"`
	StampPaperValue    int    `yaml:"stamp_paper_value" json:"stamp_paper_value"`
	GuardianAgeLimit   int    `yaml:"guardian_age_limit" json:"guardian_age_limit"`
	VerificationFormat string `yaml:"verification_format" json:"verification_format"`
	CourtDesignation   string `yaml:"court_designation" json:"court_designation"`
	WitnessRequired    bool   `yaml:"witness_required" json:"witness_required"`
}

// Profile is the complete rule set for one state.
type Profile struct {
	State     string         `yaml:"-" json:"state"`
	RTI       RTIRules       `yaml:"rti_rules" json:"rti_rules"`
	Affidavit AffidavitRules `yaml:"affidavit_rules" json:"affidavit_rules"`
}

// Summary is the short listing form of a profile.
type Summary struct {
	State        string   `json:"state"`
	Fee          int      `json:"fee"`
	BPLExemption bool     `json:"bpl_exemption"`
	Languages    []string `json:"languages"`
}

// Category is an RTI information category with its exemption status.
type Category struct {
	Key                string   `yaml:"key" json:"key"`
	Name               string   `yaml:"name" json:"name"`
	Keywords           []string `yaml:"keywords" json:"keywords"`
	Section8Exempt     bool     `yaml:"section_8_exempt" json:"section_8_exempt"`
	ExemptionReference string   `yaml:"exemption_reference" json:"exemption_reference"`
	BlockGeneration    bool     `yaml:"block_generation" json:"block_generation"`
	BlockMessage       string   `yaml:"block_message" json:"block_message,omitempty"`
	Warnings           []string `yaml:"warnings" json:"warnings"`
	AdditionalClauses  []string `yaml:"additional_clauses" json:"additional_clauses,omitempty"`
}

// Clause is a reusable paragraph added to RTI applications in a category.
type Clause struct {
	Key            string `yaml:"-" json:"key"`
	Text           string `yaml:"text" json:"text"`
	LegalReference string `yaml:"legal_reference" json:"legal_reference"`
}

// Match is a detected category and the keyword that triggered it.
type Match struct {
	Category Category `json:"category"`
	Keyword  string   `json:"keyword"`
}

// Registry is the immutable lookup over state profiles and categories.
type Registry struct {
	fallback   string
	profiles   map[string]Profile
	categories []Category
	clauses    map[string]Clause
	canonical  map[string]string
}

type profilesFile struct {
	Fallback string             `yaml:"fallback"`
	Profiles map[string]Profile `yaml:"profiles"`
}

type categoriesFile struct {
	Categories []Category        `yaml:"categories"`
	Clauses    map[string]Clause `yaml:"clauses"`
}

// Load decodes and validates profile and category tables.
func Load(profiles, categories []byte) (*Registry, error) {
	var pf profilesFile
	if err := yaml.Unmarshal(profiles, &pf); err != nil {
		return nil, fmt.Errorf("%w: profiles: %v", ErrInvalidData, err)
	}
	var cf categoriesFile
	if err := yaml.Unmarshal(categories, &cf); err != nil {
		return nil, fmt.Errorf("%w: categories: %v", ErrInvalidData, err)
	}

	r := &Registry{
		profiles:  make(map[string]Profile, len(pf.Profiles)),
		clauses:   make(map[string]Clause, len(cf.Clauses)),
		canonical: make(map[string]string, len(States)),
	}
	for _, s := range States {
		r.canonical[fold(s)] = s
	}

	for name, p := range pf.Profiles {
		state, ok := r.Canonical(name)
		if !ok {
			return nil, fmt.Errorf("%w: profile for unknown state %q", ErrInvalidData, name)
		}
		if p.Affidavit.GuardianAgeLimit == 0 {
			p.Affidavit.GuardianAgeLimit = 18
		}
		if p.Affidavit.VerificationFormat == "" {
			p.Affidavit.VerificationFormat = VerificationNotary
		}
		p.State = state
		r.profiles[state] = p
	}

	fallback, ok := r.Canonical(pf.Fallback)
	if !ok {
		return nil, fmt.Errorf("%w: fallback state %q", ErrInvalidData, pf.Fallback)
	}
	if _, ok := r.profiles[fallback]; !ok {
		return nil, fmt.Errorf("%w: fallback state %s has no profile", ErrInvalidData, fallback)
	}
	r.fallback = fallback

	for key, c := range cf.Clauses {
		c.Key = key
		r.clauses[key] = c
	}

	seen := make(map[string]bool, len(cf.Categories))
	for _, c := range cf.Categories {
		if c.Key == "" || seen[c.Key] {
			return nil, fmt.Errorf("%w: missing or duplicate category key %q", ErrInvalidData, c.Key)
		}
		seen[c.Key] = true
		for i, k := range c.Keywords {
			c.Keywords[i] = fold(k)
		}
		for _, ck := range c.AdditionalClauses {
			if _, ok := r.clauses[ck]; !ok {
				return nil, fmt.Errorf("%w: category %s references unknown clause %s", ErrInvalidData, c.Key, ck)
			}
		}
		r.categories = append(r.categories, c)
	}

	return r, nil
}

// Default returns the embedded registry. It panics if the embedded data is
// malformed.
func Default() *Registry {
	profiles, err := dataFS.ReadFile("data/profiles.yaml")
	if err != nil {
		panic(err)
	}
	categories, err := dataFS.ReadFile("data/categories.yaml")
	if err != nil {
		panic(err)
	}
	r, err := Load(profiles, categories)
	if err != nil {
		panic(fmt.Sprintf("load jurisdiction data: %v", err))
	}
	return r
}

// Canonical returns the canonical spelling of a state name, matched
// case-insensitively after trimming.
func (r *Registry) Canonical(state string) (string, bool) {
	s, ok := r.canonical[fold(state)]
	return s, ok
}

// ValidState reports whether state is an accepted jurisdiction.
func (r *Registry) ValidState(state string) bool {
	_, ok := r.Canonical(state)
	return ok
}

// Fallback is the state whose profile stands in for unprofiled states.
func (r *Registry) Fallback() string {
	return r.fallback
}

// Profile returns the full rule profile for state, if one exists.
func (r *Registry) Profile(state string) (Profile, bool) {
	s, ok := r.Canonical(state)
	if !ok {
		return Profile{}, false
	}
	p, ok := r.profiles[s]
	return p, ok
}

// Resolve returns the profile for state, or the fallback profile when the
// state has none.
func (r *Registry) Resolve(state string) Profile {
	if p, ok := r.Profile(state); ok {
		return p
	}
	return r.profiles[r.fallback]
}

// Summaries lists every profiled state sorted by name.
func (r *Registry) Summaries() []Summary {
	out := make([]Summary, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, Summary{
			State:        p.State,
			Fee:          p.RTI.Fee,
			BPLExemption: p.RTI.BPLExemption,
			Languages:    p.RTI.Languages,
		})
	}
	slices.SortFunc(out, func(a, b Summary) int {
		return strings.Compare(a.State, b.State)
	})
	return out
}

// Detect returns the categories whose keywords appear in text, in table
// order. Each category matches at most once, on its first listed keyword.
func (r *Registry) Detect(text string) []Match {
	text = strings.ToLower(text)
	var out []Match
	for _, c := range r.categories {
		for _, k := range c.Keywords {
			if strings.Contains(text, k) {
				out = append(out, Match{Category: c, Keyword: k})
				break
			}
		}
	}
	return out
}

// Category returns the category with the given key.
func (r *Registry) Category(key string) (Category, bool) {
	for _, c := range r.categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// Clause returns the additional clause with the given key.
func (r *Registry) Clause(key string) (Clause, bool) {
	c, ok := r.clauses[key]
	return c, ok
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
