package jurisdiction_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/nyaysetu/internal/jurisdiction"
	"github.com/JaimeStill/nyaysetu/pkg/routes"
)

func TestStates(t *testing.T) {
	if len(jurisdiction.States) != 31 {
		t.Errorf("len(States) = %d, want 31", len(jurisdiction.States))
	}
}

func TestValidState(t *testing.T) {
	reg := jurisdiction.Default()

	tests := []struct {
		state string
		valid bool
		canon string
	}{
		{"Maharashtra", true, "Maharashtra"},
		{"  tamil nadu ", true, "Tamil Nadu"},
		{"LADAKH", true, "Ladakh"},
		{"Atlantis", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			if got := reg.ValidState(tt.state); got != tt.valid {
				t.Errorf("ValidState(%q) = %v, want %v", tt.state, got, tt.valid)
			}
			canon, _ := reg.Canonical(tt.state)
			if canon != tt.canon {
				t.Errorf("Canonical(%q) = %q, want %q", tt.state, canon, tt.canon)
			}
		})
	}
}

func TestProfileAndResolve(t *testing.T) {
	reg := jurisdiction.Default()

	p, ok := reg.Profile("Rajasthan")
	if !ok {
		t.Fatal("Rajasthan profile missing")
	}
	if p.RTI.BPLExemption {
		t.Error("Rajasthan should not waive fees for BPL applicants")
	}
	if p.State != "Rajasthan" {
		t.Errorf("State = %q, want Rajasthan", p.State)
	}

	if _, ok := reg.Profile("Goa"); ok {
		t.Error("Goa should have no profile")
	}

	got := reg.Resolve("Goa")
	if got.State != reg.Fallback() || got.State != "Maharashtra" {
		t.Errorf("Resolve(Goa).State = %q, want Maharashtra", got.State)
	}

	k := reg.Resolve("karnataka")
	if k.Affidavit.VerificationFormat != jurisdiction.VerificationMagistrate {
		t.Errorf("Karnataka verification = %q", k.Affidavit.VerificationFormat)
	}
}

func TestSummariesSorted(t *testing.T) {
	sums := jurisdiction.Default().Summaries()
	if len(sums) != 8 {
		t.Fatalf("len(Summaries) = %d, want 8", len(sums))
	}
	for i := 1; i < len(sums); i++ {
		if sums[i-1].State >= sums[i].State {
			t.Errorf("summaries not sorted at %d: %s >= %s", i, sums[i-1].State, sums[i].State)
		}
	}
}

func TestDetect(t *testing.T) {
	reg := jurisdiction.Default()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "ordered matches",
			text: "Provide the salary of my neighbour who works in the department",
			want: []string{"personal_information", "third_party"},
		},
		{
			name: "one match per category",
			text: "Defence procurement and military weapons budget",
			want: []string{"national_security"},
		},
		{
			name: "case insensitive",
			text: "MEASUREMENT BOOK for the ward",
			want: []string{"public_works"},
		},
		{
			name: "no match",
			text: "number of meetings held by the committee",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, m := range reg.Detect(tt.text) {
				got = append(got, m.Category.Key)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Detect mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCategoryAndClause(t *testing.T) {
	reg := jurisdiction.Default()

	c, ok := reg.Category("national_security")
	if !ok || !c.BlockGeneration || !c.Section8Exempt {
		t.Errorf("national_security = %+v, %v", c, ok)
	}

	for _, key := range []string{"public_interest", "third_party_notice", "inspection_request", "own_records", "life_liberty"} {
		cl, ok := reg.Clause(key)
		if !ok || cl.Text == "" || cl.Key != key {
			t.Errorf("Clause(%q) = %+v, %v", key, cl, ok)
		}
	}

	if _, ok := reg.Category("missing"); ok {
		t.Error("unexpected category")
	}
}

func TestLoadErrors(t *testing.T) {
	profiles := []byte(`
fallback: Goa
profiles:
  Goa:
    rti_rules: {fee: 10}
`)
	categories := []byte(`categories: []`)

	tests := []struct {
		name       string
		profiles   []byte
		categories []byte
	}{
		{"bad yaml", []byte("fallback: [\n"), categories},
		{"unknown profile state", []byte("fallback: Goa\nprofiles:\n  Narnia: {}\n"), categories},
		{"fallback without profile", []byte("fallback: Delhi\nprofiles:\n  Goa: {}\n"), categories},
		{"unknown clause", profiles, []byte("categories:\n  - key: x\n    additional_clauses: [nope]\n")},
		{"duplicate category", profiles, []byte("categories:\n  - key: x\n  - key: x\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jurisdiction.Load(tt.profiles, tt.categories)
			if !errors.Is(err, jurisdiction.ErrInvalidData) {
				t.Errorf("err = %v, want ErrInvalidData", err)
			}
		})
	}

	reg, err := jurisdiction.Load(profiles, categories)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := reg.Resolve("Goa").Affidavit.GuardianAgeLimit; got != 18 {
		t.Errorf("default guardian age limit = %d, want 18", got)
	}
}

func setupMux() *http.ServeMux {
	h := jurisdiction.NewHandler(jurisdiction.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return mux
}

func TestHandler(t *testing.T) {
	mux := setupMux()

	tests := []struct {
		name     string
		path     string
		status   int
		profiled bool
		state    string
	}{
		{"profiled", "/states/Delhi", http.StatusOK, true, "Delhi"},
		{"fallback", "/states/goa", http.StatusOK, false, "Goa"},
		{"escaped name", "/states/Tamil%20Nadu", http.StatusOK, true, "Tamil Nadu"},
		{"unknown", "/states/Atlantis", http.StatusNotFound, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}

			var resp jurisdiction.StateResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.State != tt.state || resp.Profiled != tt.profiled {
				t.Errorf("got state=%q profiled=%v", resp.State, resp.Profiled)
			}
		})
	}

	t.Run("list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/states", nil))
		var sums []jurisdiction.Summary
		if err := json.NewDecoder(rec.Body).Decode(&sums); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(sums) != 8 {
			t.Errorf("len = %d, want 8", len(sums))
		}
	})
}
