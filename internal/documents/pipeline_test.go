package documents_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/nyaysetu/internal/documents"
	"github.com/JaimeStill/nyaysetu/internal/drafting"
	"github.com/JaimeStill/nyaysetu/internal/forms"
	"github.com/JaimeStill/nyaysetu/internal/jurisdiction"
	"github.com/JaimeStill/nyaysetu/internal/keywords"
	"github.com/JaimeStill/nyaysetu/internal/validation"
)

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newPipeline() *documents.Pipeline {
	reg := jurisdiction.Default()
	clock := func() time.Time { return fixedNow }
	v := validation.New(reg, nil, slog.New(slog.NewTextHandler(io.Discard, nil))).WithClock(clock)
	e := drafting.New(reg).WithClock(clock)
	return documents.NewPipeline(v, e).WithClock(clock)
}

func validRTI() forms.RTIApplication {
	return forms.RTIApplication{
		Name:       "Rajesh Kumar",
		Address:    "Flat 12, Shanti Nagar, Andheri East, Mumbai - 400069",
		State:      "Maharashtra",
		Authority:  "Municipal Corporation of Greater Mumbai",
		PIOAddress: "Head Office, Mahapalika Marg, Mumbai - 400001",
		Info:       "Copy of the measurement book for road repairs in Ward K-East during financial year 2023-24",
		Contact:    "9876543210",
	}
}

func validAffidavit() forms.Affidavit {
	return forms.Affidavit{
		DeponentName: "Priya Sharma",
		Age:          "30",
		FatherName:   "Ramesh Sharma",
		Gender:       "female",
		Address:      "House 4, MG Road, Bengaluru, Karnataka - 560001",
		State:        "Karnataka",
		Statements: []string{
			"that I am a resident of the above address since 2015",
			"that I have not changed my name at any time",
		},
	}
}

func TestPipelineRTI(t *testing.T) {
	p := newPipeline()

	t.Run("prepares valid application", func(t *testing.T) {
		got, err := p.RTI(validRTI())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want, _ := drafting.Hash(keywords.RTI, validRTI())
		if got.Hash != want {
			t.Errorf("hash = %s, want %s", got.Hash, want)
		}
		if got.Draft.Type != keywords.RTI {
			t.Errorf("type = %s", got.Draft.Type)
		}
		if got.ApplicantName != "Rajesh Kumar" {
			t.Errorf("applicant = %q", got.ApplicantName)
		}
		if got.ReferenceNumber == nil || !strings.HasPrefix(*got.ReferenceNumber, "RTI/MAH/2026/") {
			t.Errorf("reference = %v", got.ReferenceNumber)
		}
		if !got.Report.Passed() {
			t.Errorf("report not passed:\n%s", got.Report)
		}
	})

	t.Run("custom reference kept", func(t *testing.T) {
		app := validRTI()
		app.ReferenceNumber = "MCGM/2026/17"

		got, err := p.RTI(app)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *got.ReferenceNumber != "MCGM/2026/17" {
			t.Errorf("reference = %s", *got.ReferenceNumber)
		}
	})

	t.Run("same request same hash", func(t *testing.T) {
		a, _ := p.RTI(validRTI())
		b, _ := p.RTI(validRTI())
		if a.Hash != b.Hash {
			t.Errorf("hashes differ: %s %s", a.Hash, b.Hash)
		}
	})

	t.Run("rejected with report", func(t *testing.T) {
		app := validRTI()
		app.Info = "Details of weapons procurement by the defence ministry"

		_, err := p.RTI(app)

		var rejected *documents.RejectedError
		if !errors.As(err, &rejected) {
			t.Fatalf("err = %v, want RejectedError", err)
		}
		if !errors.Is(err, documents.ErrValidationFailed) {
			t.Error("rejection does not wrap ErrValidationFailed")
		}
		if len(rejected.Report.Blocking) == 0 {
			t.Errorf("expected blocking issues:\n%s", rejected.Report)
		}
		if documents.MapHTTPStatus(err) != http.StatusUnprocessableEntity {
			t.Errorf("status = %d", documents.MapHTTPStatus(err))
		}
	})
}

func TestPipelineAffidavit(t *testing.T) {
	p := newPipeline()

	t.Run("prepares valid affidavit", func(t *testing.T) {
		got, err := p.Affidavit(validAffidavit())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Draft.Type != keywords.Affidavit {
			t.Errorf("type = %s", got.Draft.Type)
		}
		if got.ApplicantName != "Priya Sharma" {
			t.Errorf("applicant = %q", got.ApplicantName)
		}
		if got.ReferenceNumber != nil {
			t.Errorf("reference = %v, want nil", *got.ReferenceNumber)
		}
	})

	t.Run("minor without guardian rejected", func(t *testing.T) {
		aff := validAffidavit()
		aff.Age = "15"

		_, err := p.Affidavit(aff)
		if !errors.Is(err, documents.ErrValidationFailed) {
			t.Fatalf("err = %v, want ErrValidationFailed", err)
		}
	})
}

func storedRTI(t *testing.T) documents.Document {
	t.Helper()
	request, err := json.Marshal(validRTI())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	ref := "RTI/MAH/2026/0A1B2C3D"
	return documents.Document{
		Type:            keywords.RTI,
		Hash:            "0a1b2c3d4e5f",
		ReferenceNumber: &ref,
		Request:         request,
		CreatedAt:       time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestPipelineAppeal(t *testing.T) {
	p := newPipeline()

	t.Run("defaults application date to creation", func(t *testing.T) {
		got, err := p.Appeal(storedRTI(t), documents.AppealCommand{ReasonCode: forms.ReasonNoResponse})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Draft.Type != keywords.FirstAppeal {
			t.Errorf("type = %s", got.Draft.Type)
		}
		if got.AppealOf != "0a1b2c3d4e5f" {
			t.Errorf("appeal of = %q", got.AppealOf)
		}
		if got.Draft.Metadata["application_date"] != "02/04/2026" {
			t.Errorf("application date = %v", got.Draft.Metadata["application_date"])
		}
		if !strings.Contains(drafting.Text(got.Draft), "dated 02/04/2026") {
			t.Error("appeal text missing application date")
		}
	})

	t.Run("explicit date wins", func(t *testing.T) {
		got, err := p.Appeal(storedRTI(t), documents.AppealCommand{
			ReasonCode:      forms.ReasonIncomplete,
			ApplicationDate: "10/03/2026",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Draft.Metadata["application_date"] != "10/03/2026" {
			t.Errorf("application date = %v", got.Draft.Metadata["application_date"])
		}
	})

	t.Run("affidavit not appealable", func(t *testing.T) {
		doc := storedRTI(t)
		doc.Type = keywords.Affidavit

		_, err := p.Appeal(doc, documents.AppealCommand{})
		if !errors.Is(err, documents.ErrNotAppealable) {
			t.Fatalf("err = %v, want ErrNotAppealable", err)
		}
	})

	t.Run("empty custom reason", func(t *testing.T) {
		_, err := p.Appeal(storedRTI(t), documents.AppealCommand{ReasonCode: forms.ReasonCustom})
		if documents.MapHTTPStatus(err) != http.StatusBadRequest {
			t.Fatalf("err = %v, status = %d", err, documents.MapHTTPStatus(err))
		}
	})

	t.Run("corrupt stored request", func(t *testing.T) {
		doc := storedRTI(t)
		doc.Request = []byte(`{"name":`)

		_, err := p.Appeal(doc, documents.AppealCommand{})
		if !errors.Is(err, documents.ErrInvalidRequest) {
			t.Fatalf("err = %v, want ErrInvalidRequest", err)
		}
	})
}

func TestPipelineWithClock(t *testing.T) {
	base := newPipeline()
	later := base.WithClock(func() time.Time { return time.Date(2031, 1, 10, 0, 0, 0, 0, time.UTC) })
	if later == base {
		t.Fatal("WithClock returned the receiver")
	}

	tests := []struct {
		name string
		p    *documents.Pipeline
		want string
	}{
		{"copy uses new clock", later, "RTI/MAH/2031/"},
		{"receiver keeps its clock", base, "RTI/MAH/2026/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.p.RTI(validRTI())
			if err != nil {
				t.Fatalf("RTI: %v", err)
			}
			if !strings.HasPrefix(*got.ReferenceNumber, tt.want) {
				t.Errorf("reference = %s, want prefix %s", *got.ReferenceNumber, tt.want)
			}
		})
	}
}
