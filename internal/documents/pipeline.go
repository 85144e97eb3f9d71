package documents

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/nyaysetu/internal/drafting"
	"github.com/JaimeStill/nyaysetu/internal/forms"
	"github.com/JaimeStill/nyaysetu/internal/keywords"
	"github.com/JaimeStill/nyaysetu/internal/validation"
)

// AppealNotes is recorded on the original application's lifecycle when a
// first appeal is generated against it.
const AppealNotes = "First appeal generated"

// Prepared is a validated and drafted document, hashed and ready to render.
type Prepared struct {
	Draft           *drafting.Draft
	Request         any
	Hash            string
	ApplicantName   string
	ReferenceNumber *string
	// AppealOf is the hash of the application a first appeal contests.
	AppealOf string
	Report   *validation.Report
}

// Pipeline turns form input into prepared documents. It holds no storage
// and is shared by the HTTP system and the command line.
type Pipeline struct {
	validator *validation.Validator
	engine    *drafting.Engine
	now       func() time.Time
}

// NewPipeline creates a Pipeline over a validator and drafting engine.
func NewPipeline(v *validation.Validator, e *drafting.Engine) *Pipeline {
	return &Pipeline{validator: v, engine: e, now: time.Now}
}

// WithClock returns a copy of p that reads the time from now for reference
// numbers and default dates. p is left unchanged.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	c := *p
	c.now = now
	return &c
}

// RTI validates and drafts an RTI application. A failed validation returns
// a *RejectedError carrying the report.
func (p *Pipeline) RTI(app forms.RTIApplication) (*Prepared, error) {
	report := p.validator.RTI(app)
	if !report.Passed() {
		return nil, &RejectedError{Report: report}
	}

	draft := p.engine.RTI(app)
	hash, err := drafting.Hash(keywords.RTI, app)
	if err != nil {
		return nil, err
	}

	ref := drafting.ReferenceNumber(draft.State, p.now().Year(), hash)
	if custom := strings.TrimSpace(app.ReferenceNumber); custom != "" {
		ref = custom
	}

	return &Prepared{
		Draft:           draft,
		Request:         app,
		Hash:            hash,
		ApplicantName:   app.Name,
		ReferenceNumber: &ref,
		Report:          report,
	}, nil
}

// Affidavit validates and drafts an affidavit.
func (p *Pipeline) Affidavit(aff forms.Affidavit) (*Prepared, error) {
	report := p.validator.Affidavit(aff)
	if !report.Passed() {
		return nil, &RejectedError{Report: report}
	}

	draft, err := p.engine.Affidavit(aff)
	if err != nil {
		return nil, err
	}

	hash, err := drafting.Hash(keywords.Affidavit, aff)
	if err != nil {
		return nil, err
	}

	return &Prepared{
		Draft:         draft,
		Request:       aff,
		Hash:          hash,
		ApplicantName: aff.DeponentName,
		Report:        report,
	}, nil
}

// Appeal drafts a first appeal against a stored RTI application. The
// application date defaults to the day the original was generated.
func (p *Pipeline) Appeal(original Document, cmd AppealCommand) (*Prepared, error) {
	if original.Type != keywords.RTI {
		return nil, fmt.Errorf("%w: %s", ErrNotAppealable, original.Type)
	}

	var app forms.RTIApplication
	if err := json.Unmarshal(original.Request, &app); err != nil {
		return nil, fmt.Errorf("%w: stored application: %v", ErrInvalidRequest, err)
	}

	switch {
	case strings.TrimSpace(cmd.ApplicationDate) != "":
		app.ApplicationDate = cmd.ApplicationDate
	case strings.TrimSpace(app.ApplicationDate) == "" && !original.CreatedAt.IsZero():
		app.ApplicationDate = original.CreatedAt.Format(drafting.SignatureDate)
	}

	appeal := forms.Appeal{
		Original:   app,
		ReasonCode: cmd.ReasonCode,
		Reason:     cmd.Reason,
	}

	draft, err := p.engine.Appeal(appeal)
	if err != nil {
		return nil, err
	}

	hash, err := drafting.Hash(keywords.FirstAppeal, appeal)
	if err != nil {
		return nil, err
	}

	return &Prepared{
		Draft:           draft,
		Request:         appeal,
		Hash:            hash,
		ApplicantName:   app.Name,
		ReferenceNumber: original.ReferenceNumber,
		AppealOf:        original.Hash,
	}, nil
}
