package drafting

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/JaimeStill/nyaysetu/internal/forms"
	"github.com/JaimeStill/nyaysetu/internal/jurisdiction"
	"github.com/JaimeStill/nyaysetu/internal/keywords"
)

const (
	RTITitle    = "APPLICATION UNDER THE RIGHT TO INFORMATION ACT, 2005"
	AppealTitle = "FIRST APPEAL UNDER SECTION 19(1) OF THE RIGHT TO INFORMATION ACT, 2005"

	DefaultFormat = "electronic/physical"
	SignatureDate = "02/01/2006"

	subjectPreview = 100
)

var (
	severabilityClause = "If any portion of the requested information is exempt from disclosure, I request that " +
		"the remaining non-exempt portions be provided separately as per Section 10 of the RTI Act, 2005."
	declarationClause = "I hereby declare that the information sought does not fall within the restricted " +
		"categories under Sections 8 and 9 of the RTI Act, 2005, to the best of my knowledge and belief."

	appealSubject = "First Appeal under Section 19(1) of the RTI Act, 2005 against the decision/non-decision " +
		"of the Public Information Officer"
	appealGrounds = []string{
		"The Public Information Officer has failed to provide information within the stipulated period of 30 days as mandated under Section 7(1) of the RTI Act, 2005.",
		"The information requested is not exempt under any provisions of Section 8 or Section 9 of the Act.",
		"The delay/refusal has caused undue hardship and is contrary to the spirit of transparency enshrined in the RTI Act, 2005.",
	}
	appealPrayer = "In light of the above, I humbly pray that this Hon'ble Appellate Authority may be pleased to " +
		"direct the Public Information Officer to provide the requested information at the earliest and impose " +
		"appropriate penalties for the delay as per Section 20 of the RTI Act, 2005."

	amountWords = map[int]string{
		10: "Ten", 20: "Twenty", 30: "Thirty", 50: "Fifty",
		100: "One Hundred", 200: "Two Hundred", 500: "Five Hundred",
	}
)

// RTI drafts an RTI application under Section 6(1).
func (e *Engine) RTI(app forms.RTIApplication) *Draft {
	state := e.state(app.State)
	rules := e.reg.Resolve(state).RTI
	matches := e.reg.Detect(app.Info)

	d := &Draft{
		Type:    keywords.RTI,
		Title:   RTITitle,
		Subject: Subject(app.Info),
		State:   state,
	}

	d.add(Section{Compact: true, Paragraphs: []string{
		"To,",
		fmt.Sprintf("The %s,", rules.PIODesignation),
		app.Authority + ",",
		app.PIOAddress,
	}})
	if ref := strings.TrimSpace(app.ReferenceNumber); ref != "" {
		d.add(Section{Paragraphs: []string{"Ref No.: " + ref}})
	}
	d.add(Section{Paragraphs: []string{"Subject: " + d.Subject}})
	d.add(Section{Paragraphs: []string{"Respected Sir/Madam,", Intro(app.Name, app.Address)}})
	d.add(Section{Heading: "INFORMATION SOUGHT:", Paragraphs: InformationRequests(app.Info)})

	if clauses := e.categoryClauses(d, matches); len(clauses) > 0 {
		d.add(Section{Paragraphs: clauses})
	}

	format := strings.TrimSpace(app.FormatPreference)
	if format == "" {
		format = DefaultFormat
	}

	d.add(Section{Paragraphs: []string{
		FeeClause(app, state, rules),
		fmt.Sprintf("I request that the information be provided in %s format as per my convenience.", format),
		severabilityClause,
		declarationClause,
	}})
	d.explain("Fee Clause", "State-specific fee rules applied for "+state, state+" RTI Rules")
	d.explain("Severability Clause",
		"Added to ensure partial information is disclosed even if some parts are exempt",
		"Section 10, RTI Act 2005")

	d.add(Section{Compact: true, Paragraphs: []string{"Thanking you,", "Yours faithfully,"}})
	d.add(e.signature("(Signature of Applicant)", app, true))

	keys := make([]string, len(matches))
	for i, m := range matches {
		keys[i] = m.Category.Key
	}
	d.Metadata = map[string]any{
		"applicant_name":      app.Name,
		"authority":           app.Authority,
		"state":               state,
		"detected_categories": keys,
		"jurisdiction":        state,
	}
	return d
}

// Appeal drafts a first appeal from the original application.
func (e *Engine) Appeal(a forms.Appeal) (*Draft, error) {
	reason, err := a.AppealReason()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	app := a.Original
	state := e.state(app.State)
	rules := e.reg.Resolve(state).RTI

	date := strings.TrimSpace(app.ApplicationDate)
	if date == "" {
		date = "____"
	}

	d := &Draft{
		Type:    keywords.FirstAppeal,
		Title:   AppealTitle,
		Subject: appealSubject,
		State:   state,
	}

	d.add(Section{Compact: true, Paragraphs: []string{
		"To,",
		fmt.Sprintf("The %s,", rules.AppellateDesignation),
		app.Authority + ",",
		app.PIOAddress,
	}})
	d.add(Section{Paragraphs: []string{"Subject: " + appealSubject}})
	d.add(Section{Paragraphs: []string{
		"Respected Sir/Madam,",
		fmt.Sprintf("I, %s, had filed an RTI application dated %s with the Public Information Officer of your office. "+
			"The application sought specific information as detailed below. However, %s. "+
			"Therefore, I am filing this First Appeal under Section 19(1) of the RTI Act, 2005.",
			app.Name, date, reason),
	}})
	d.add(Section{Heading: "ORIGINAL INFORMATION REQUESTED:", Paragraphs: InformationRequests(app.Info)})

	grounds := make([]string, len(appealGrounds))
	for i, g := range appealGrounds {
		grounds[i] = fmt.Sprintf("%d. %s", i+1, g)
	}
	d.add(Section{Heading: "GROUNDS OF APPEAL:", Paragraphs: grounds})
	d.add(Section{Heading: "PRAYER:", Paragraphs: []string{appealPrayer}})
	d.add(Section{Compact: true, Paragraphs: []string{"Thanking you,", "Yours faithfully,"}})
	d.add(e.signature("(Signature of Appellant)", app, false))

	d.explain("Appeal Grounds", "First appeal filed because "+reason, "Section 19(1), RTI Act 2005")

	d.Metadata = map[string]any{
		"applicant_name":   app.Name,
		"authority":        app.Authority,
		"state":            state,
		"appeal_reason":    reason,
		"application_date": app.ApplicationDate,
	}
	return d, nil
}

func (e *Engine) categoryClauses(d *Draft, matches []jurisdiction.Match) []string {
	var out []string
	for _, m := range matches {
		c := m.Category
		if len(c.Warnings) > 0 {
			out = append(out, "Note: "+c.Warnings[0])
			d.explain(c.Name+" Warning", "Auto-detected category: "+c.Key, c.ExemptionReference)
		}
		for _, key := range c.AdditionalClauses {
			cl, ok := e.reg.Clause(key)
			if !ok {
				continue
			}
			out = append(out, cl.Text)
			d.explain(key, fmt.Sprintf("Required for %s requests", c.Name), cl.LegalReference)
		}
	}
	return out
}

func (e *Engine) signature(label string, app forms.RTIApplication, withEmail bool) Section {
	lines := []string{
		"Place: _____________________",
		"Date: " + e.now().Format(SignatureDate),
		label,
		"Name: " + app.Name,
		"Address: " + app.Address,
	}
	if c := strings.TrimSpace(app.Contact); c != "" {
		lines = append(lines, "Contact: "+c)
	}
	if m := strings.TrimSpace(app.Email); withEmail && m != "" {
		lines = append(lines, "Email: "+m)
	}
	return Section{Compact: true, Paragraphs: lines}
}

// Subject picks the subject line from the opening of the request.
func Subject(info string) string {
	preview := []rune(strings.TrimSpace(info))
	if len(preview) > subjectPreview {
		preview = preview[:subjectPreview]
	}
	p := strings.ToLower(string(preview))

	switch {
	case strings.Contains(p, "copy"):
		return "Request for certified copies under RTI Act, 2005"
	case strings.Contains(p, "details"), strings.Contains(p, "information"):
		return "Application seeking information under Section 6(1) of RTI Act, 2005"
	case strings.Contains(p, "list"):
		return "Request for list/details under Right to Information Act, 2005"
	}
	return "Application for information under Section 6(1) of RTI Act, 2005"
}

var introVariants = []string{
	"I, %s, a citizen of India residing at %s, hereby submit this application under Section 6(1) of the " +
		"Right to Information Act, 2005, seeking information from your esteemed office as detailed below:",
	"Respectfully, I, %s, permanent resident of %s, do hereby make this application under the provisions of " +
		"the Right to Information Act, 2005, requesting the following information which is under the control of your office:",
	"I, %s, residing at %s, submit this application in exercise of my right under Section 6 of the " +
		"Right to Information Act, 2005, requesting disclosure of the following information:",
}

// IntroVariant selects an introduction deterministically from the
// applicant name so the same applicant always receives the same wording.
func IntroVariant(name string) int {
	h := fnv.New32a()
	h.Write([]byte(name))
	return int(h.Sum32() % uint32(len(introVariants)))
}

// Intro renders the opening paragraph for an applicant.
func Intro(name, address string) string {
	return fmt.Sprintf(introVariants[IntroVariant(name)], name, address)
}

// InformationRequests splits free text into numbered request paragraphs.
// Lines and sentences each become one item.
func InformationRequests(info string) []string {
	raw := strings.Split(strings.ReplaceAll(info, "\n", ". "), ".")
	items := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if len(items) == 0 {
			items = append(items, capitalize(r))
		} else {
			items = append(items, lowerFirst(r))
		}
	}
	return numbered(items)
}

// FeeClause states the fee payment or the BPL exemption.
func FeeClause(app forms.RTIApplication, state string, rules jurisdiction.RTIRules) string {
	if app.BPL && rules.BPLExemption {
		card := strings.TrimSpace(app.BPLCardNumber)
		if card == "" {
			card = "[To be provided]"
		}
		return "Being a holder of Below Poverty Line (BPL) card, I am exempted from payment of the application fee " +
			"as per the provisions of the RTI Act, 2005. My BPL Card Number is " + card + "."
	}
	return fmt.Sprintf(
		"I am submitting the prescribed application fee of Rs. %d/- (Rupees %s only) through %s as per the RTI Rules applicable in %s.",
		rules.Fee, AmountInWords(rules.Fee), strings.Join(rules.PaymentModes, " / "), state,
	)
}

// AmountInWords spells common fee amounts, falling back to digits.
func AmountInWords(amount int) string {
	if w, ok := amountWords[amount]; ok {
		return w
	}
	return strconv.Itoa(amount)
}
