package ticket

import (
	"strings"
	"time"

	ticketDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/ticket"
)

// DefaultAuthor is recorded when a ticket is opened without a session name.
const DefaultAuthor = "Administrador"

const (
	TypeIncident    = "incident"
	TypeRequest     = "request"
	TypeImprovement = "improvement"
	TypeScheduled   = "scheduled"
)

var Types = []string{TypeIncident, TypeRequest, TypeImprovement, TypeScheduled}

const (
	UrgencyNormal = "normal"
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
	UrgencyUrgent = "urgent"
)

var Urgencies = []string{UrgencyNormal, UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyUrgent}

const (
	StatePending    = "pending"
	StateInProgress = "in_progress"
	StateClosed     = "closed"
)

// CanonicalStates are the fixed board columns, in display order.
var CanonicalStates = []string{StatePending, StateInProgress, StateClosed}

func IsCanonicalState(s string) bool {
	for _, c := range CanonicalStates {
		if s == c {
			return true
		}
	}
	return false
}

type Channel string

const (
	ChannelPublic   Channel = "public"
	ChannelInternal Channel = "internal"
)

func ParseChannel(s string) (Channel, bool) {
	switch Channel(strings.ToLower(strings.TrimSpace(s))) {
	case ChannelPublic:
		return ChannelPublic, true
	case ChannelInternal:
		return ChannelInternal, true
	}
	return "", false
}

// Status is either one of the canonical states or the name of the staff member the
// ticket is assigned to. Both share the single stored status column.
type Status struct {
	state    string
	assignee string
}

func Canonical(state string) Status {
	return Status{state: state}
}

func AssignedTo(name string) Status {
	return Status{assignee: strings.TrimSpace(name)}
}

// ParseStatus reads a stored value. Blank values are pending.
func ParseStatus(raw string) Status {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return Canonical(StatePending)
	case IsCanonicalState(raw):
		return Canonical(raw)
	default:
		return AssignedTo(raw)
	}
}

func (s Status) IsCanonical() bool { return s.state != "" }

// State is the canonical state, or empty when the status names an assignee.
func (s Status) State() string { return s.state }

// Assignee is the staff name carried by the status, or empty for canonical states.
func (s Status) Assignee() string { return s.assignee }

// String renders the value stored in the status column.
func (s Status) String() string {
	if s.state != "" {
		return s.state
	}
	return s.assignee
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	*s = ParseStatus(string(b))
	return nil
}

type Ticket struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Author       string    `json:"author"`
	Type         string    `json:"type"`
	Urgency      string    `json:"urgency"`
	Attachment   string    `json:"attachment"`
	Assignee     string    `json:"assignee"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	LegacySource string    `json:"legacy_source,omitempty"`
	LegacyID     *int64    `json:"legacy_id,omitempty"`
}

type Message struct {
	ID         int64     `json:"id"`
	TicketID   int64     `json:"ticket_id"`
	Channel    Channel   `json:"channel"`
	Author     string    `json:"author"`
	Message    string    `json:"message"`
	Attachment string    `json:"attachment"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromDataModel(t *ticketDatamodel.Ticket) *Ticket {
	return &Ticket{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Author:       t.Author,
		Type:         t.Type,
		Urgency:      t.Urgency,
		Attachment:   t.Attachment,
		Assignee:     t.Assignee,
		Status:       ParseStatus(t.Status),
		CreatedAt:    t.CreatedAt,
		LegacySource: t.LegacySource,
		LegacyID:     t.LegacyID,
	}
}

func MessageFromDataModel(m *ticketDatamodel.TicketMessage) *Message {
	return &Message{
		ID:         m.ID,
		TicketID:   m.TicketID,
		Channel:    Channel(m.Channel),
		Author:     m.Author,
		Message:    m.Message,
		Attachment: m.Attachment,
		CreatedAt:  m.CreatedAt,
	}
}
