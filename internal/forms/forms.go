// Package forms defines the structured inputs for each document the
// assistant can draft.
package forms

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidForm   = errors.New("invalid form")
	ErrUnknownReason = errors.New("unknown appeal reason")
)

// Value is a scalar form field that accepts JSON strings and numbers.
type Value string

// UnmarshalJSON stores strings as-is and numbers in their literal form.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("value must be a string or number: %s", data)
		}
		*v = Value(n.String())
	}
	return nil
}

// Int parses the value as a whole number.
func (v Value) Int() (int, error) {
	return strconv.Atoi(strings.TrimSpace(string(v)))
}

// Empty reports whether the value is blank.
func (v Value) Empty() bool {
	return strings.TrimSpace(string(v)) == ""
}

// RTIApplication is a request for information under the RTI Act.
type RTIApplication struct {
	Name             string `json:"name"`
	Address          string `json:"address"`
	State            string `json:"state"`
	Authority        string `json:"authority"`
	PIOAddress       string `json:"pio_address"`
	Info             string `json:"info"`
	Contact          string `json:"contact,omitempty"`
	Email            string `json:"email,omitempty"`
	BPL              bool   `json:"bpl,omitempty"`
	BPLCardNumber    string `json:"bpl_card_number,omitempty"`
	ApplicationDate  string `json:"application_date,omitempty"`
	ReferenceNumber  string `json:"reference_number,omitempty"`
	FormatPreference string `json:"format_preference,omitempty"`
}

// Missing lists the required fields that are blank, in form order.
func (a RTIApplication) Missing() []string {
	return blank(
		"name", a.Name,
		"address", a.Address,
		"state", a.State,
		"authority", a.Authority,
		"pio_address", a.PIOAddress,
		"info", a.Info,
	)
}

// Affidavit is a sworn statement by a deponent, or by a guardian on behalf
// of a minor deponent.
type Affidavit struct {
	DeponentName       string   `json:"deponent_name"`
	Age                Value    `json:"age"`
	FatherName         string   `json:"father_name"`
	Gender             string   `json:"gender,omitempty"`
	Address            string   `json:"address"`
	State              string   `json:"state,omitempty"`
	Statements         []string `json:"statements"`
	GuardianName       string   `json:"guardian_name,omitempty"`
	GuardianAge        Value    `json:"guardian_age,omitempty"`
	GuardianFatherName string   `json:"guardian_father_name,omitempty"`
}

// Missing lists the required fields that are blank, in form order.
func (a Affidavit) Missing() []string {
	out := blank(
		"deponent_name", a.DeponentName,
		"age", string(a.Age),
		"father_name", a.FatherName,
		"address", a.Address,
	)
	if len(a.Statements) == 0 {
		out = append(out, "statements")
	}
	return out
}

// Appeal reason codes.
const (
	ReasonNoResponse = iota + 1
	ReasonIncomplete
	ReasonWronglyDenied
	ReasonExcessiveFee
	ReasonCustom
)

var reasons = map[int]string{
	ReasonNoResponse:    "I have not received any response within the statutory period of 30 days",
	ReasonIncomplete:    "the information provided is incomplete and does not address my specific queries",
	ReasonWronglyDenied: "the information has been wrongly denied citing exemptions that do not apply",
	ReasonExcessiveFee:  "excessive fee has been demanded without proper justification",
}

// Appeal is a first appeal under Section 19(1) against an earlier RTI
// application.
type Appeal struct {
	Original   RTIApplication `json:"original"`
	ReasonCode int            `json:"reason_code"`
	Reason     string         `json:"reason,omitempty"`
}

// AppealReason returns the grounds sentence for an appeal. A zero code
// defaults to non-response; the custom code requires a reason.
func (a Appeal) AppealReason() (string, error) {
	code := a.ReasonCode
	if code == 0 {
		code = ReasonNoResponse
	}
	if code == ReasonCustom {
		r := strings.TrimSpace(a.Reason)
		if r == "" {
			return "", fmt.Errorf("%w: custom reason is empty", ErrUnknownReason)
		}
		return r, nil
	}
	r, ok := reasons[code]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownReason, a.ReasonCode)
	}
	return r, nil
}

// Decode converts a loosely typed field map into a form struct.
func Decode[T any](fields map[string]any) (T, error) {
	var out T
	data, err := json.Marshal(fields)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return out, nil
}

func blank(pairs ...string) []string {
	var out []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			out = append(out, pairs[i])
		}
	}
	return out
}
