package lifecycles_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/nyaysetu/internal/keywords"
	"github.com/JaimeStill/nyaysetu/internal/lifecycles"
)

var created = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestParseState(t *testing.T) {
	tests := []struct {
		in      string
		want    lifecycles.State
		wantErr bool
	}{
		{in: "SUBMITTED", want: lifecycles.Submitted},
		{in: " reply_received ", want: lifecycles.ReplyReceived},
		{in: "closed", want: lifecycles.Closed},
		{in: "FILED", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := lifecycles.ParseState(tt.in)
			if tt.wantErr {
				if !errors.Is(err, lifecycles.ErrInvalidState) {
					t.Fatalf("err = %v, want ErrInvalidState", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("state = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStateDescriptions(t *testing.T) {
	for _, s := range lifecycles.States {
		if s.Description() == "" {
			t.Errorf("%s has no description", s)
		}
	}
	if got := lifecycles.Drafted.Description(); got != "Document has been generated" {
		t.Errorf("drafted description = %q", got)
	}

	open := map[lifecycles.State]bool{
		lifecycles.Drafted:      true,
		lifecycles.Submitted:    true,
		lifecycles.Acknowledged: true,
	}
	for _, s := range lifecycles.States {
		if s.Open() != open[s] {
			t.Errorf("%s open = %v", s, s.Open())
		}
	}
}

func TestDeadlines(t *testing.T) {
	type due struct {
		Name string
		Due  time.Time
		Days int
	}

	tests := []struct {
		name     string
		dt       keywords.DocumentType
		metadata map[string]any
		want     []due
	}{
		{
			name: "rti reply and appeal",
			dt:   keywords.RTI,
			want: []due{
				{Name: "reply_deadline", Due: created.AddDate(0, 0, 30), Days: 30},
				{Name: "first_appeal_deadline", Due: created.AddDate(0, 0, 60), Days: 30},
			},
		},
		{
			name: "first appeal decision",
			dt:   keywords.FirstAppeal,
			want: []due{
				{Name: "decision_deadline", Due: created.AddDate(0, 0, 30), Days: 30},
				{Name: "extended_decision_deadline", Due: created.AddDate(0, 0, 45), Days: 45},
			},
		},
		{
			name: "legal notice default period",
			dt:   keywords.LegalNotice,
			want: []due{
				{Name: "response_deadline", Due: created.AddDate(0, 0, 15), Days: 15},
			},
		},
		{
			name:     "legal notice decoded json period",
			dt:       keywords.LegalNotice,
			metadata: map[string]any{"notice_period_days": float64(21)},
			want: []due{
				{Name: "response_deadline", Due: created.AddDate(0, 0, 21), Days: 21},
			},
		},
		{
			name:     "legal notice invalid period",
			dt:       keywords.LegalNotice,
			metadata: map[string]any{"notice_period_days": "soon"},
			want: []due{
				{Name: "response_deadline", Due: created.AddDate(0, 0, 15), Days: 15},
			},
		},
		{
			name: "affidavit has none",
			dt:   keywords.Affidavit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []due
			for _, d := range lifecycles.Deadlines(tt.dt, tt.metadata, created) {
				got = append(got, due{Name: d.Name, Due: d.Due, Days: d.Days})
				if d.Description == "" {
					t.Errorf("%s has no description", d.Name)
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("deadlines mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("rti reply description", func(t *testing.T) {
		got := lifecycles.Deadlines(keywords.RTI, nil, created)[0].Description
		if got != "RTI Act 2005 mandates response within 30 days of receipt" {
			t.Errorf("description = %q", got)
		}
	})

	t.Run("notice description carries period", func(t *testing.T) {
		got := lifecycles.Deadlines(keywords.LegalNotice, map[string]any{"notice_period_days": 7}, created)[0].Description
		if got != "Recipient must respond within 7 days" {
			t.Errorf("description = %q", got)
		}
	})
}

func TestPending(t *testing.T) {
	rti := lifecycles.Lifecycle{
		Hash:         "aaa",
		DocumentType: keywords.RTI,
		State:        lifecycles.Submitted,
		Deadlines:    lifecycles.Deadlines(keywords.RTI, nil, created),
	}
	notice := lifecycles.Lifecycle{
		Hash:         "bbb",
		DocumentType: keywords.LegalNotice,
		State:        lifecycles.Drafted,
		Deadlines:    lifecycles.Deadlines(keywords.LegalNotice, nil, created),
	}
	closed := lifecycles.Lifecycle{
		Hash:         "ccc",
		DocumentType: keywords.RTI,
		State:        lifecycles.Closed,
		Deadlines:    lifecycles.Deadlines(keywords.RTI, nil, created),
	}

	type item struct {
		Hash     string
		Deadline string
		Days     int
		Urgent   bool
	}

	tests := []struct {
		name string
		now  time.Time
		want []item
	}{
		{
			name: "sorted by days remaining",
			now:  created.AddDate(0, 0, 10),
			want: []item{
				{Hash: "bbb", Deadline: "response_deadline", Days: 5, Urgent: true},
				{Hash: "aaa", Deadline: "reply_deadline", Days: 20},
				{Hash: "aaa", Deadline: "first_appeal_deadline", Days: 50},
			},
		},
		{
			name: "passed deadlines dropped",
			now:  created.AddDate(0, 0, 31),
			want: []item{
				{Hash: "aaa", Deadline: "first_appeal_deadline", Days: 29},
			},
		},
		{
			name: "partial day rounds down",
			now:  created.AddDate(0, 0, 52).Add(time.Hour),
			want: []item{
				{Hash: "aaa", Deadline: "first_appeal_deadline", Days: 7, Urgent: true},
			},
		},
		{
			name: "due today is kept",
			now:  created.AddDate(0, 0, 60),
			want: []item{
				{Hash: "aaa", Deadline: "first_appeal_deadline", Days: 0, Urgent: true},
			},
		},
		{
			name: "nothing left",
			now:  created.AddDate(0, 0, 61),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []item
			for _, p := range lifecycles.Pending([]lifecycles.Lifecycle{rti, notice, closed}, tt.now) {
				got = append(got, item{Hash: p.Hash, Deadline: p.Deadline, Days: p.DaysRemaining, Urgent: p.IsUrgent})
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("pending mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
