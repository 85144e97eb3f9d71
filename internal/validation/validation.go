// Package validation runs the legal-quality rule battery against RTI
// applications and affidavits before a document is drafted.
package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/JaimeStill/nyaysetu/internal/forms"
	"github.com/JaimeStill/nyaysetu/internal/jurisdiction"
	"github.com/JaimeStill/nyaysetu/internal/keywords"
	"github.com/JaimeStill/nyaysetu/internal/metrics"
)

const (
	MinNameLength      = 3
	MinAddressLength   = 15
	BriefAddressLength = 30
	MinAuthorityLength = 5
	BriefInfoLength    = 30
	MaxInfoLength      = 3000
	MaxQuestionMarks   = 2
	StaleAfterDays     = 90
	MinAge             = 1
	MaxAge             = 120
	AdultAge           = 18
	MaxStatements      = 30
	BriefStatement     = 10

	DateLayout = "2006-01-02"
)

var ErrUnsupportedType = errors.New("unsupported document type")

var (
	namePattern    = regexp.MustCompile(`^[A-Za-z\s.]+$`)
	pinPattern     = regexp.MustCompile(`\b\d{6}\b`)
	mobilePattern  = regexp.MustCompile(`^[6-9]\d{9}$`)
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	yearPattern    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	periodPattern  = regexp.MustCompile(`\b(years?|months?|period|from|during|since|between|till|until)\b`)
	abbrevPattern  = regexp.MustCompile(`\b(Corp|Dept|Off)\b\.?`)
	specificMarks  = []string{"copy of", "details of", "list of", "information regarding"}
	opinionWords   = []string{"think", "believe", "feel", "probably", "maybe", "might", "could be"}
	hearsayPhrases = []string{"i heard", "someone told", "it is said", "people say", "rumor", "rumour"}
)

// Validator applies the rule battery using jurisdiction data. It holds no
// per-call state and is safe for concurrent use.
type Validator struct {
	reg     *jurisdiction.Registry
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a Validator. m may be nil.
func New(reg *jurisdiction.Registry, m *metrics.Metrics, logger *slog.Logger) *Validator {
	return &Validator{
		reg:     reg,
		metrics: m,
		logger:  logger.With("system", "validation"),
		now:     time.Now,
	}
}

// WithClock returns a copy of v that reads the current time from now.
func (v *Validator) WithClock(now func() time.Time) *Validator {
	c := *v
	c.now = now
	return &c
}

// Validate decodes fields for the given document type and validates them.
func (v *Validator) Validate(dt keywords.DocumentType, fields map[string]any) (*Report, error) {
	switch dt {
	case keywords.RTI:
		app, err := forms.Decode[forms.RTIApplication](fields)
		if err != nil {
			return nil, err
		}
		return v.RTI(app), nil
	case keywords.Affidavit:
		aff, err := forms.Decode[forms.Affidavit](fields)
		if err != nil {
			return nil, err
		}
		return v.Affidavit(aff), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, dt)
}

// RTI validates an RTI application. Missing required fields end the run
// before any other rule executes.
func (v *Validator) RTI(app forms.RTIApplication) *Report {
	r := newReport()
	defer v.observe(keywords.RTI, r)

	if missing(r, app.Missing()) {
		return r
	}

	v.name(r, app.Name, "Applicant Name")
	v.address(r, app.Address)
	state, _ := v.state(r, app.State)
	v.authority(r, app.Authority)
	v.information(r, app.Info)

	if strings.TrimSpace(app.Contact) != "" {
		v.contact(r, app.Contact)
	}
	if app.BPL {
		v.bpl(r, app, state)
	}
	v.exemptions(r, app.Info)
	if strings.TrimSpace(app.ApplicationDate) != "" {
		v.applicationDate(r, app.ApplicationDate)
	}

	return r
}

// Affidavit validates an affidavit. A minor deponent without guardian
// details is a blocking finding.
func (v *Validator) Affidavit(aff forms.Affidavit) *Report {
	r := newReport()
	defer v.observe(keywords.Affidavit, r)

	if missing(r, aff.Missing()) {
		return r
	}

	age, ok := v.age(r, aff.Age)
	if !ok {
		return r
	}

	limit := AdultAge
	if p, ok := v.reg.Profile(aff.State); ok {
		limit = p.Affidavit.GuardianAgeLimit
	}

	guardian := age < limit
	if guardian {
		r.add(Warning, fmt.Sprintf("Deponent is minor (age %d). Guardian details are REQUIRED", age))
		r.add(Suggestion, "Provide guardian's name, age, and father's name")
		v.guardian(r, aff, limit)
	}

	v.name(r, aff.DeponentName, "Deponent Name")
	v.name(r, aff.FatherName, "Father's/Husband's Name")
	if guardian && strings.TrimSpace(aff.GuardianName) != "" {
		v.name(r, aff.GuardianName, "Guardian Name")
	}

	v.address(r, aff.Address)
	v.statements(r, aff.Statements)

	if strings.TrimSpace(aff.State) != "" {
		if state, ok := v.state(r, aff.State); ok {
			v.stamp(r, state)
		}
	}

	return r
}

func (v *Validator) observe(dt keywords.DocumentType, r *Report) {
	v.metrics.ObserveValidation(string(dt), r.Passed())
	if !r.Passed() {
		v.logger.Debug("validation failed",
			"document_type", dt,
			"blocking", len(r.Blocking),
			"errors", len(r.Errors),
		)
	}
}

func missing(r *Report, fields []string) bool {
	for _, f := range fields {
		r.add(Error, "Missing required field: "+f)
	}
	return len(fields) > 0
}

func (v *Validator) name(r *Report, name, field string) {
	if utf8.RuneCountInString(name) < MinNameLength {
		r.add(Error, fmt.Sprintf("%s must be at least %d characters", field, MinNameLength))
	}
	if !namePattern.MatchString(name) {
		r.add(Warning, field+" contains special characters. Legal documents typically use only letters")
	}
	if singleCase(name) {
		r.add(Suggestion, fmt.Sprintf("Use proper capitalization for %s (e.g., 'Rajesh Kumar')", field))
	}
}

func (v *Validator) address(r *Report, address string) {
	n := utf8.RuneCountInString(address)
	if n < MinAddressLength {
		r.add(Warning, "Address seems very short. Provide complete address including house/flat number, street, city, and PIN code")
	}
	if !pinPattern.MatchString(address) {
		r.add(Warning, "Address should include 6-digit PIN code")
	}
	if n < BriefAddressLength {
		r.add(Suggestion, "Recommended address format: 'House No., Street/Area, City, State - PIN'")
	}
}

// state returns the canonical state name when it is a valid jurisdiction.
func (v *Validator) state(r *Report, name string) (string, bool) {
	state, ok := v.reg.Canonical(name)
	if !ok {
		r.add(Error, fmt.Sprintf("'%s' is not a valid Indian state/UT", name))
		r.add(Suggestion, "Did you mean one of: Maharashtra, Karnataka, Delhi, Gujarat, Tamil Nadu?")
		return "", false
	}

	if _, ok := v.reg.Profile(state); !ok {
		r.add(Warning, fmt.Sprintf("Limited jurisdiction data for %s. Using default rules", state))
		r.add(Suggestion, "For best results, use: "+v.profiledStates())
	}
	return state, true
}

func (v *Validator) profiledStates() string {
	sums := v.reg.Summaries()
	names := make([]string, len(sums))
	for i, s := range sums {
		names[i] = s.State
	}
	if len(names) < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}

func (v *Validator) authority(r *Report, authority string) {
	if utf8.RuneCountInString(strings.TrimSpace(authority)) < MinAuthorityLength {
		r.add(Error, "Authority/Department name is too short")
	}
	if abbrevPattern.MatchString(authority) {
		r.add(Suggestion, "Use full authority name (e.g., 'Municipal Corporation' not 'Municipal Corp')")
	}
}

func (v *Validator) information(r *Report, info string) {
	n := utf8.RuneCountInString(strings.TrimSpace(info))
	lower := strings.ToLower(info)

	if n < BriefInfoLength {
		r.add(Warning, "Information request is very brief. Be more specific for better results")
		r.add(Suggestion, "Include: specific documents, time periods, file numbers, departments")
	}
	if n > MaxInfoLength {
		r.add(Warning, "Request is very long. Consider breaking into multiple applications")
	}

	if !containsAny(lower, specificMarks) {
		r.add(Suggestion, "Start with specific phrases: 'Copy of...', 'Details of...', 'List of...'")
	}

	if !yearPattern.MatchString(lower) && !periodPattern.MatchString(lower) {
		r.add(Warning, "No time period specified. Specify date range for better clarity")
		r.add(Suggestion, "Example: 'from January 2023 to December 2023' or 'for financial year 2023-24'")
	}

	if strings.Count(info, "?") > MaxQuestionMarks {
		r.add(Warning, "RTI is for information/documents, not for answering questions")
		r.add(Suggestion, "Instead of 'Why was X done?', request 'Copy of file noting explaining decision on X'")
	}
}

func (v *Validator) contact(r *Report, contact string) {
	c := strings.TrimSpace(contact)
	if !mobilePattern.MatchString(c) && !emailPattern.MatchString(c) {
		r.add(Warning, "Contact should be valid 10-digit mobile (starting with 6-9) or email")
	}
}

func (v *Validator) bpl(r *Report, app forms.RTIApplication, state string) {
	if strings.TrimSpace(app.BPLCardNumber) == "" {
		r.add(Warning, "BPL applicants should provide BPL card number for verification")
		r.add(Suggestion, "Add BPL card number to avoid fee payment issues")
	}
	if p, ok := v.reg.Profile(state); ok && !p.RTI.BPLExemption {
		r.add(Warning, fmt.Sprintf("%s may not offer BPL fee exemption. Verify with local rules", state))
	}
}

func (v *Validator) exemptions(r *Report, info string) {
	var exempt []jurisdiction.Match
	for _, m := range v.reg.Detect(info) {
		if !m.Category.Section8Exempt {
			continue
		}
		exempt = append(exempt, m)
		if m.Category.BlockGeneration {
			msg := m.Category.BlockMessage
			if msg == "" {
				msg = "Highly exempt category"
			}
			r.add(Blocking, "Request likely to be REJECTED: "+msg)
		}
	}

	if len(exempt) == 0 {
		return
	}

	r.add(Warning, fmt.Sprintf("Detected %d potential exemption(s) under RTI Act:", len(exempt)))
	for _, m := range exempt {
		ref := m.Category.ExemptionReference
		if ref == "" {
			ref = "Section 8"
		}
		r.add(Warning, fmt.Sprintf("  - %s (%s) - keyword: '%s'", m.Category.Name, ref, m.Keyword))
	}
	r.add(Suggestion, "Review Section 8 & 9 of RTI Act. Consider narrowing request to non-exempt aspects")
}

func (v *Validator) applicationDate(r *Report, value string) {
	now := v.now()
	date, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), now.Location())
	if err != nil {
		r.add(Error, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	if date.After(now) {
		r.add(Error, "Application date cannot be in the future")
	}
	if days := int(now.Sub(date).Hours() / 24); days > StaleAfterDays {
		r.add(Warning, fmt.Sprintf("Application date is %d days old. RTI must be filed within reasonable time", days))
	}
}

func (v *Validator) age(r *Report, value forms.Value) (int, bool) {
	age, err := value.Int()
	if err != nil {
		r.add(Error, "Age must be a valid number")
		return 0, false
	}
	if age < MinAge || age > MaxAge {
		r.add(Error, fmt.Sprintf("Invalid age. Must be between %d and %d", MinAge, MaxAge))
		return 0, false
	}
	return age, true
}

func (v *Validator) guardian(r *Report, aff forms.Affidavit, limit int) {
	if strings.TrimSpace(aff.GuardianName) == "" {
		r.add(Blocking, fmt.Sprintf("Deponent is minor (under %d). Guardian details are MANDATORY.", limit))
		r.add(Error, "Guardian name is required for minor deponents")
	}
	if aff.GuardianAge.Empty() {
		r.add(Error, "Guardian age is required")
	}
	if strings.TrimSpace(aff.GuardianFatherName) == "" {
		r.add(Error, "Guardian's father's name is required")
	}

	if aff.GuardianAge.Empty() {
		return
	}
	g, err := aff.GuardianAge.Int()
	if err != nil {
		r.add(Error, "Guardian age must be a valid number")
		return
	}
	if g < AdultAge {
		r.add(Blocking, fmt.Sprintf("Guardian must be at least %d years old", AdultAge))
	}
}

func (v *Validator) statements(r *Report, statements []string) {
	if len(statements) > MaxStatements {
		r.add(Warning, "Affidavit has many statements. Consider creating multiple affidavits if unrelated")
	}

	for i, s := range statements {
		n := i + 1
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			r.add(Error, fmt.Sprintf("Statement %d is empty", n))
			continue
		}

		lower := strings.ToLower(trimmed)
		if utf8.RuneCountInString(s) < BriefStatement {
			r.add(Warning, fmt.Sprintf("Statement %d is very brief. Be more specific", n))
		}
		if containsAny(lower, opinionWords) {
			r.add(Warning, fmt.Sprintf("Statement %d contains opinion words. Affidavits should state facts only", n))
			r.add(Suggestion, fmt.Sprintf("Statement %d: Replace opinions with factual statements", n))
		}
		if containsAny(lower, hearsayPhrases) {
			r.add(Warning, fmt.Sprintf("Statement %d may be based on hearsay. Use direct knowledge only", n))
		}
		if !strings.HasPrefix(lower, "that") {
			r.add(Suggestion, fmt.Sprintf("Statement %d: Should start with 'that' as per legal format", n))
		}
	}
}

func (v *Validator) stamp(r *Report, state string) {
	p, ok := v.reg.Profile(state)
	if !ok || !p.Affidavit.StampMandatory {
		return
	}
	r.add(Suggestion, fmt.Sprintf(
		"%s requires affidavit on stamp paper of Rs. %d/-. This will be noted in the generated document",
		state, p.Affidavit.StampPaperValue,
	))
}

// singleCase reports whether s has letters that are all upper or all lower case.
func singleCase(s string) bool {
	var upper, lower bool
	for _, c := range s {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		}
	}
	return upper != lower
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
