package clarify_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/nyaysetu/internal/clarify"
	"github.com/JaimeStill/nyaysetu/internal/keywords"
)

func ids(qs []clarify.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func TestSelect(t *testing.T) {
	bank := clarify.Default()

	tests := []struct {
		name   string
		text   string
		scores map[keywords.DocumentType]int
		want   []string
	}{
		{
			name:   "single triggered category",
			text:   "Government file",
			scores: map[keywords.DocumentType]int{keywords.RTI: 20},
			want:   []string{"gov_records_held", "gov_copy_request"},
		},
		{
			name:   "leaning category first",
			text:   "I am asking for a copy of my birth certificate from the municipal office",
			scores: map[keywords.DocumentType]int{keywords.RTI: 10, keywords.Affidavit: 20},
			want: []string{
				"personal_sworn_statement", "personal_submit_proof",
				"gov_records_held", "gov_copy_request",
			},
		},
		{
			name:   "tie prefers shared categories",
			text:   "government record for court case",
			scores: map[keywords.DocumentType]int{keywords.RTI: 10, keywords.Affidavit: 10},
			want: []string{
				"court_filing", "court_records",
				"gov_records_held", "gov_copy_request",
			},
		},
		{
			name:   "non-matching lean keeps table order",
			text:   "my marriage certificate for the court",
			scores: map[keywords.DocumentType]int{keywords.Affidavit: 10},
			want: []string{
				"cert_issued_by_authority", "cert_replacement",
				"court_filing", "court_records",
			},
		},
		{
			name:   "no triggers falls back to generic",
			text:   "hello there",
			scores: map[keywords.DocumentType]int{},
			want:   []string{"generic_obtain_information", "generic_sworn_statement"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(bank.Select(tt.text, tt.scores))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Select mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectBounds(t *testing.T) {
	bank := clarify.Default()
	texts := []string{
		"",
		"court case about my lost certificate held by the government department",
		"i am declaring my income and address, and need a copy of the police fir file",
	}

	for _, text := range texts {
		got := bank.Select(text, nil)
		if len(got) < clarify.MinQuestions || len(got) > clarify.MaxQuestions {
			t.Errorf("Select(%q) returned %d questions", text, len(got))
		}
		for _, q := range got {
			if q.YesLeadsTo == q.NoLeadsTo {
				t.Errorf("question %s has identical branches", q.ID)
			}
		}
	}
}

func TestSelectDeterministic(t *testing.T) {
	bank := clarify.Default()
	text := "copy of court record about my birth"
	scores := map[keywords.DocumentType]int{keywords.RTI: 30}

	first := ids(bank.Select(text, scores))
	for range 3 {
		if diff := cmp.Diff(first, ids(bank.Select(text, scores))); diff != "" {
			t.Fatalf("Select not deterministic:\n%s", diff)
		}
	}
}

func TestSelectPadsWithGeneric(t *testing.T) {
	data := []byte(`
categories:
  - id: narrow
    lean: RTI_APPLICATION
    triggers: [tender]
    questions:
      - id: tender_q
        text: Is this about a public tender?
        yes_leads_to: RTI_APPLICATION
        no_leads_to: AFFIDAVIT
generic:
  id: generic
  lean: BOTH
  questions:
    - id: g1
      text: First?
      yes_leads_to: RTI_APPLICATION
      no_leads_to: AFFIDAVIT
    - id: g2
      text: Second?
      yes_leads_to: AFFIDAVIT
      no_leads_to: RTI_APPLICATION
`)
	bank, err := clarify.Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := ids(bank.Select("tender documents", nil))
	want := []string{"tender_q", "g1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Select mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "categories: [:"},
		{"thin generic", "generic:\n  questions: []\n"},
		{
			"unknown document type",
			`generic:
  questions:
    - {id: a, text: A?, yes_leads_to: LEGAL_NOTICE, no_leads_to: AFFIDAVIT}
    - {id: b, text: B?, yes_leads_to: RTI_APPLICATION, no_leads_to: AFFIDAVIT}
`,
		},
		{
			"duplicate ids",
			`generic:
  questions:
    - {id: a, text: A?, yes_leads_to: RTI_APPLICATION, no_leads_to: AFFIDAVIT}
    - {id: a, text: B?, yes_leads_to: AFFIDAVIT, no_leads_to: RTI_APPLICATION}
`,
		},
		{
			"same branch",
			`generic:
  questions:
    - {id: a, text: A?, yes_leads_to: AFFIDAVIT, no_leads_to: AFFIDAVIT}
    - {id: b, text: B?, yes_leads_to: RTI_APPLICATION, no_leads_to: AFFIDAVIT}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := clarify.Load([]byte(tt.data))
			if !errors.Is(err, clarify.ErrInvalidBank) {
				t.Errorf("Load error = %v, want ErrInvalidBank", err)
			}
		})
	}
}

func TestFind(t *testing.T) {
	bank := clarify.Default()

	q, ok := bank.Find("personal_sworn_statement")
	if !ok {
		t.Fatal("expected question to be found")
	}
	if q.LeadsTo(true) != keywords.Affidavit || q.LeadsTo(false) != keywords.RTI {
		t.Errorf("unexpected branches: %+v", q)
	}

	if _, ok := bank.Find("missing"); ok {
		t.Error("expected missing question to be absent")
	}
}
