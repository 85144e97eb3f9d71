package keywords_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/nyaysetu/internal/keywords"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "appends plural",
			input: []string{"record"},
			want:  []string{"record", "records"},
		},
		{
			name:  "strips plural when long enough",
			input: []string{"marks"},
			want:  []string{"mark", "marks"},
		},
		{
			name:  "short plural kept as is",
			input: []string{"sos"},
			want:  []string{"sos"},
		},
		{
			name:  "multi-word variants",
			input: []string{"mark sheet"},
			want:  []string{"mark sheet", "mark sheets", "mark-sheet", "marksheet"},
		},
		{
			name:  "duplicates collapse",
			input: []string{"file", "files", "FILE "},
			want:  []string{"file", "files"},
		},
		{
			name:  "blank entries dropped",
			input: []string{"", "  "},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keywords.Expand(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Expand mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpandDeterministic(t *testing.T) {
	in := []string{"copy of", "answer sheet", "rti", "records"}
	first := keywords.Expand(in)
	for range 5 {
		if got := keywords.Expand(in); !slices.Equal(first, got) {
			t.Fatalf("Expand not deterministic: %v vs %v", first, got)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    keywords.DocumentType
		wantErr bool
	}{
		{"RTI_APPLICATION", keywords.RTI, false},
		{"rti", keywords.RTI, false},
		{" affidavit ", keywords.Affidavit, false},
		{"legal_notice", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := keywords.Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDocumentTypeOther(t *testing.T) {
	if keywords.RTI.Other() != keywords.Affidavit {
		t.Errorf("RTI.Other() = %s", keywords.RTI.Other())
	}
	if keywords.Affidavit.Other() != keywords.RTI {
		t.Errorf("Affidavit.Other() = %s", keywords.Affidavit.Other())
	}
}

func TestDefault(t *testing.T) {
	tables := keywords.Default()

	if tables != keywords.Default() {
		t.Error("Default should return the same tables on every call")
	}

	t.Run("rti set", func(t *testing.T) {
		set, ok := tables.Set(keywords.RTI)
		if !ok {
			t.Fatal("RTI set missing")
		}
		if set.BaseWeight != 8 {
			t.Errorf("BaseWeight = %d, want 8", set.BaseWeight)
		}
		if set.Name != "RTI Application" {
			t.Errorf("Name = %q", set.Name)
		}
		for _, kw := range []string{"marksheet", "copy of", "university", "file-noting", "records"} {
			if !slices.Contains(set.Keywords, kw) {
				t.Errorf("RTI keywords missing %q", kw)
			}
		}
	})

	t.Run("affidavit set", func(t *testing.T) {
		set, ok := tables.Set(keywords.Affidavit)
		if !ok {
			t.Fatal("Affidavit set missing")
		}
		if set.BaseWeight != 7 {
			t.Errorf("BaseWeight = %d, want 7", set.BaseWeight)
		}
		if !slices.Contains(set.Negatives, "public information officer") {
			t.Error("Affidavit negatives missing public information officer")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, ok := tables.Set("LEGAL_NOTICE"); ok {
			t.Error("expected no set for unknown type")
		}
	})
}

func TestKeywordSetCounts(t *testing.T) {
	tables := keywords.Default()
	text := "i need a copy of my marksheet from my university"

	if got := tables.RTI.Positive(text); got != 3 {
		t.Errorf("RTI positive = %d, want 3", got)
	}
	if got := tables.RTI.Negative(text); got != 0 {
		t.Errorf("RTI negative = %d, want 0", got)
	}
	if got := tables.Affidavit.Positive(text); got != 0 {
		t.Errorf("Affidavit positive = %d, want 0", got)
	}
}

func TestEdgeBonus(t *testing.T) {
	tables := keywords.Default()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"none", "copy of the tender file", 0},
		{"single", "i want to declare that i am unmarried", 50},
		{"overlapping phrases", "proof that i am a resident", 100},
		{"repeated", "i hereby state this. i hereby confirm that.", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tables.EdgeBonus(tt.text, keywords.EdgeBonus); got != tt.want {
				t.Errorf("EdgeBonus = %d, want %d", got, tt.want)
			}
		})
	}
}
