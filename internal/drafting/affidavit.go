package drafting

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/nyaysetu/internal/forms"
	"github.com/JaimeStill/nyaysetu/internal/jurisdiction"
	"github.com/JaimeStill/nyaysetu/internal/keywords"
)

const AffidavitTitle = "AFFIDAVIT"

// Affidavit drafts a sworn affidavit using the state's stamp and
// verification rules. A deponent below the guardian age limit is
// introduced through the guardian.
func (e *Engine) Affidavit(aff forms.Affidavit) (*Draft, error) {
	age, err := aff.Age.Int()
	if err != nil {
		return nil, fmt.Errorf("%w: age: %v", ErrInvalidInput, err)
	}

	state := e.state(aff.State)
	rules := e.reg.Resolve(state).Affidavit
	guardian := age < rules.GuardianAgeLimit

	d := &Draft{
		Type:    keywords.Affidavit,
		Title:   AffidavitTitle,
		Subject: "Affidavit of " + aff.DeponentName,
		State:   state,
	}

	if rules.StampMandatory {
		d.add(Section{Small: true, Paragraphs: []string{fmt.Sprintf(
			"To be executed on Non-Judicial Stamp Paper of Rs. %d/- as per %s Stamp Act",
			rules.StampPaperValue, state,
		)}})
		d.explain("Stamp Paper Requirement",
			fmt.Sprintf("%s requires stamp paper of Rs. %d", state, rules.StampPaperValue),
			state+" Stamp Act")
	}

	var intro string
	if guardian {
		intro = fmt.Sprintf(
			"I, %s, aged %s years, son/daughter/wife of %s, resident of %s, being the lawful guardian of %s, "+
				"a minor aged %d years, do hereby solemnly affirm and state on oath as under:",
			aff.GuardianName, strings.TrimSpace(string(aff.GuardianAge)), aff.GuardianFatherName,
			aff.Address, aff.DeponentName, age,
		)
		d.explain("Guardian Declaration",
			fmt.Sprintf("Deponent is minor (age %d), guardian declaration added as per %s law", age, state),
			state+" Majority Act / Indian Contract Act")
	} else {
		intro = fmt.Sprintf(
			"I, %s, aged %d years, %s %s, resident of %s, do hereby solemnly affirm and state on oath as under:",
			aff.DeponentName, age, Relation(aff.Gender), aff.FatherName, aff.Address,
		)
	}
	d.add(Section{Paragraphs: []string{intro}})

	statements := Statements(aff.Statements)
	d.add(Section{Paragraphs: statements})

	d.add(Section{Paragraphs: []string{e.verification(rules.VerificationFormat, len(statements))}})
	d.add(Section{Align: AlignRight, Paragraphs: []string{"DEPONENT"}})

	witness := "Identified by me"
	if rules.WitnessRequired {
		witness = "Identified by me / Identified by _________________________ (Witness Name & Address)"
		d.explain("Witness Requirement",
			state+" requires witness identification for affidavits",
			state+" Court Rules")
	}

	d.add(Section{
		Heading: fmt.Sprintf("VERIFICATION BY %s/NOTARY PUBLIC/OATH COMMISSIONER", strings.ToUpper(rules.CourtDesignation)),
		Compact: true,
		Paragraphs: []string{
			witness,
			"Signature: _____________________",
			"Name: _________________________",
			fmt.Sprintf("Designation: %s/Notary Public/Oath Commissioner", rules.CourtDesignation),
			"Registration No.: ______________",
			"Seal:",
		},
	})

	d.Metadata = map[string]any{
		"deponent_name":     aff.DeponentName,
		"state":             state,
		"stamp_value":       rules.StampPaperValue,
		"guardian_required": guardian,
	}
	return d, nil
}

func (e *Engine) verification(format string, statements int) string {
	if format == jurisdiction.VerificationMagistrate {
		return fmt.Sprintf(
			"I, the above-named deponent, do hereby verify and state on solemn affirmation that the contents of "+
				"paragraphs 1 to %d stated hereinabove are true and correct to the best of my knowledge and belief, "+
				"and nothing material has been concealed therefrom. I further state that no part of this affidavit "+
				"is false and nothing has been concealed herein.",
			statements,
		)
	}
	return fmt.Sprintf(
		"Verified at _____________ on this _____ day of _____________ %d. I, the deponent above-named, do hereby "+
			"verify that the contents of this affidavit are true to the best of my knowledge and belief.",
		e.now().Year(),
	)
}

// Relation returns the parentage phrase for the deponent's gender.
func Relation(gender string) string {
	if strings.EqualFold(strings.TrimSpace(gender), "female") {
		return "daughter/wife of"
	}
	return "son of"
}

// Statements numbers each statement and prefixes it with "that" when the
// deponent omitted it. Blank statements are dropped.
func Statements(in []string) []string {
	items := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(s), "that") {
			s = "that " + s
		}
		items = append(items, capitalize(strings.TrimRight(s, ".;")))
	}
	return numbered(items)
}
