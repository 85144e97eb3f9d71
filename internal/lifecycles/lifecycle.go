// Package lifecycles tracks generated documents after drafting: their
// current filing state, the append-only transition history, and the
// statutory deadlines derived from the document type.
package lifecycles

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/JaimeStill/nyaysetu/internal/keywords"
)

// State is a position in the filing lifecycle of a document.
type State string

const (
	Drafted       State = "DRAFTED"
	Submitted     State = "SUBMITTED"
	Acknowledged  State = "ACKNOWLEDGED"
	ReplyReceived State = "REPLY_RECEIVED"
	AppealFiled   State = "APPEAL_FILED"
	Closed        State = "CLOSED"
)

// States lists every lifecycle state in filing order.
var States = []State{Drafted, Submitted, Acknowledged, ReplyReceived, AppealFiled, Closed}

var descriptions = map[State]string{
	Drafted:       "Document has been generated",
	Submitted:     "Document submitted to authority",
	Acknowledged:  "Receipt acknowledged by authority",
	ReplyReceived: "Response received from authority",
	AppealFiled:   "First appeal filed",
	Closed:        "Matter resolved/closed",
}

// Description returns the human-readable meaning of s.
func (s State) Description() string {
	return descriptions[s]
}

// Open reports whether deadlines are still tracked in state s.
func (s State) Open() bool {
	return s == Drafted || s == Submitted || s == Acknowledged
}

// ParseState accepts a state name in any case.
func ParseState(s string) (State, error) {
	st := State(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := descriptions[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidState, s)
	}
	return st, nil
}

// InitialNotes is recorded with the DRAFTED event when a lifecycle is created.
const InitialNotes = "Document generated"

// RegeneratedNotes is recorded when a document whose lifecycle is already
// tracked is generated again.
const RegeneratedNotes = "Document regenerated"

// Event is one entry of a lifecycle's transition history.
type Event struct {
	State     State     `json:"state"`
	Notes     string    `json:"notes"`
	Timestamp time.Time `json:"timestamp"`
}

// Deadline is a statutory due date computed when the lifecycle is created.
type Deadline struct {
	Name        string    `json:"name"`
	Due         time.Time `json:"due"`
	Days        int       `json:"days"`
	Description string    `json:"description"`
}

// Lifecycle is the tracked state of one generated document, keyed by its
// content hash.
type Lifecycle struct {
	Hash         string                `json:"document_hash"`
	DocumentType keywords.DocumentType `json:"document_type"`
	State        State                 `json:"current_state"`
	Metadata     map[string]any        `json:"metadata"`
	Deadlines    []Deadline            `json:"deadlines"`
	History      []Event               `json:"history"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// StateDescription returns the description of the current state.
func (l Lifecycle) StateDescription() string {
	return l.State.Description()
}

// CreateCommand carries what is needed to start tracking a document.
type CreateCommand struct {
	Hash         string
	DocumentType keywords.DocumentType
	Metadata     map[string]any
	CreatedAt    time.Time
}

// UpdateCommand moves a lifecycle to a new state.
type UpdateCommand struct {
	State State  `json:"state"`
	Notes string `json:"notes"`
}

const (
	RTIReplyDays         = 30
	RTIFirstAppealDays   = 30
	AppealDecisionDays   = 30
	AppealExtendedDays   = 45
	DefaultNoticePeriod  = 15
	NoticePeriodMetadata = "notice_period_days"
	UrgentWithinDays     = 7
	deadlineSuffix       = "_deadline"
	rtiReplyDescription  = "RTI Act 2005 mandates response within 30 days of receipt"
	rtiAppealDescription = "First appeal lies within 30 days after the reply period lapses"
	appealDecisionDesc   = "First appellate authority must decide within 30 days"
	appealExtendedDesc   = "Decision period may be extended to 45 days with recorded reasons under Section 19(6)"
	noticeResponseFormat = "Recipient must respond within %d days"
)

// Deadlines computes the statutory deadlines for a document type created at
// from. Types without statutory deadlines yield nil.
func Deadlines(dt keywords.DocumentType, metadata map[string]any, from time.Time) []Deadline {
	switch dt {
	case keywords.RTI:
		return []Deadline{
			{
				Name:        "reply" + deadlineSuffix,
				Due:         from.AddDate(0, 0, RTIReplyDays),
				Days:        RTIReplyDays,
				Description: rtiReplyDescription,
			},
			{
				Name:        "first_appeal" + deadlineSuffix,
				Due:         from.AddDate(0, 0, RTIReplyDays+RTIFirstAppealDays),
				Days:        RTIFirstAppealDays,
				Description: rtiAppealDescription,
			},
		}
	case keywords.FirstAppeal:
		return []Deadline{
			{
				Name:        "decision" + deadlineSuffix,
				Due:         from.AddDate(0, 0, AppealDecisionDays),
				Days:        AppealDecisionDays,
				Description: appealDecisionDesc,
			},
			{
				Name:        "extended_decision" + deadlineSuffix,
				Due:         from.AddDate(0, 0, AppealExtendedDays),
				Days:        AppealExtendedDays,
				Description: appealExtendedDesc,
			},
		}
	case keywords.LegalNotice:
		days := noticePeriod(metadata)
		return []Deadline{
			{
				Name:        "response" + deadlineSuffix,
				Due:         from.AddDate(0, 0, days),
				Days:        days,
				Description: fmt.Sprintf(noticeResponseFormat, days),
			},
		}
	}
	return nil
}

func noticePeriod(metadata map[string]any) int {
	switch v := metadata[NoticePeriodMetadata].(type) {
	case int:
		if v > 0 {
			return v
		}
	case float64:
		if v > 0 {
			return int(v)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
	}
	return DefaultNoticePeriod
}

// PendingDeadline is an upcoming deadline of an open lifecycle.
type PendingDeadline struct {
	Hash          string                `json:"document_hash"`
	DocumentType  keywords.DocumentType `json:"document_type"`
	State         State                 `json:"current_state"`
	Deadline      string                `json:"deadline_type"`
	Due           time.Time             `json:"deadline_date"`
	DaysRemaining int                   `json:"days_remaining"`
	IsUrgent      bool                  `json:"is_urgent"`
}

// Pending collects the deadlines of open lifecycles that have not yet
// passed at now, soonest first.
func Pending(lcs []Lifecycle, now time.Time) []PendingDeadline {
	out := make([]PendingDeadline, 0)
	for _, lc := range lcs {
		if !lc.State.Open() {
			continue
		}
		for _, d := range lc.Deadlines {
			if !strings.HasSuffix(d.Name, deadlineSuffix) {
				continue
			}
			days := DaysRemaining(d.Due, now)
			if days < 0 {
				continue
			}
			out = append(out, PendingDeadline{
				Hash:          lc.Hash,
				DocumentType:  lc.DocumentType,
				State:         lc.State,
				Deadline:      d.Name,
				Due:           d.Due,
				DaysRemaining: days,
				IsUrgent:      days <= UrgentWithinDays,
			})
		}
	}
	slices.SortStableFunc(out, func(a, b PendingDeadline) int {
		return a.DaysRemaining - b.DaysRemaining
	})
	return out
}

// DaysRemaining counts whole days from now until due, rounding down.
func DaysRemaining(due, now time.Time) int {
	return int(math.Floor(due.Sub(now).Hours() / 24))
}
