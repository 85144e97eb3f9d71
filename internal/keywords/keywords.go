// Package keywords builds the immutable keyword tables used to score free-text
// descriptions against the supported document types.
package keywords

import (
	"fmt"
	"slices"
	"strings"
)

// DocumentType identifies a document the assistant can draft.
type DocumentType string

const (
	RTI       DocumentType = "RTI_APPLICATION"
	Affidavit DocumentType = "AFFIDAVIT"

	// Drafted and tracked, but never produced by classification.
	FirstAppeal DocumentType = "RTI_FIRST_APPEAL"
	LegalNotice DocumentType = "LEGAL_NOTICE"
)

// Types lists every classifiable document type in scoring order.
var Types = []DocumentType{RTI, Affidavit}

// Parse accepts canonical identifiers and the common short forms.
func Parse(s string) (DocumentType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RTI_APPLICATION", "RTI", "RTI_REQUEST":
		return RTI, nil
	case "AFFIDAVIT":
		return Affidavit, nil
	}
	return "", fmt.Errorf("unknown document type: %q", s)
}

// ParseTracked accepts every document type that can carry a lifecycle.
func ParseTracked(s string) (DocumentType, error) {
	switch dt := DocumentType(strings.ToUpper(strings.TrimSpace(s))); dt {
	case FirstAppeal, LegalNotice:
		return dt, nil
	}
	return Parse(s)
}

// Name returns the human-readable document name.
func (t DocumentType) Name() string {
	switch t {
	case RTI:
		return "RTI Application"
	case Affidavit:
		return "Affidavit"
	case FirstAppeal:
		return "RTI First Appeal"
	case LegalNotice:
		return "Legal Notice"
	}
	return string(t)
}

// Other returns the opposite document type.
func (t DocumentType) Other() DocumentType {
	if t == RTI {
		return Affidavit
	}
	return RTI
}

// KeywordSet holds the trigger phrases for one document type.
type KeywordSet struct {
	Type       DocumentType
	Name       string
	Keywords   []string
	Negatives  []string
	BaseWeight int
}

// Positive counts the distinct keywords contained in text.
// text must already be lower-cased.
func (k KeywordSet) Positive(text string) int {
	return countContained(text, k.Keywords)
}

// Negative counts the distinct negative keywords contained in text.
// text must already be lower-cased.
func (k KeywordSet) Negative(text string) int {
	return countContained(text, k.Negatives)
}

// Tables is the complete scoring configuration. It is built once and
// treated as read-only afterward.
type Tables struct {
	RTI         KeywordSet
	Affidavit   KeywordSet
	EdgePhrases []string
}

// NewTables expands the base lists of both sets and returns the assembled tables.
func NewTables(rti, affidavit KeywordSet, edge []string) *Tables {
	return &Tables{
		RTI:         prepare(rti),
		Affidavit:   prepare(affidavit),
		EdgePhrases: normalize(edge),
	}
}

// Set returns the keyword set for a document type.
func (t *Tables) Set(dt DocumentType) (KeywordSet, bool) {
	switch dt {
	case RTI:
		return t.RTI, true
	case Affidavit:
		return t.Affidavit, true
	}
	return KeywordSet{}, false
}

// EdgeBonus counts every occurrence of every edge phrase in text and
// multiplies by bonus. text must already be lower-cased.
func (t *Tables) EdgeBonus(text string, bonus int) int {
	hits := 0
	for _, p := range t.EdgePhrases {
		hits += strings.Count(text, p)
	}
	return hits * bonus
}

// Expand produces the deduplicated variant set of the given phrases:
// singular/plural toggling plus hyphenated and concatenated forms of
// multi-word phrases. Output is sorted.
func Expand(phrases []string) []string {
	seen := make(map[string]struct{}, len(phrases)*3)
	add := func(p string) {
		if p != "" {
			seen[p] = struct{}{}
		}
	}

	for _, raw := range phrases {
		p := strings.ToLower(strings.TrimSpace(raw))
		if p == "" {
			continue
		}
		add(p)

		if strings.HasSuffix(p, "s") {
			if len(p) > 3 {
				add(p[:len(p)-1])
			}
		} else {
			add(p + "s")
		}

		if strings.Contains(p, " ") {
			add(strings.ReplaceAll(p, " ", "-"))
			add(strings.ReplaceAll(p, " ", ""))
		}
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

func prepare(s KeywordSet) KeywordSet {
	s.Keywords = Expand(s.Keywords)
	s.Negatives = normalize(s.Negatives)
	if s.Name == "" {
		s.Name = s.Type.Name()
	}
	return s
}

func normalize(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

func countContained(text string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(text, p) {
			n++
		}
	}
	return n
}
