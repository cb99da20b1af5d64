package ticket

import (
	"fmt"
	"strconv"
	"strings"
)

const staffColumnPrefix = "user_"

var canonicalTitles = map[string]string{
	StatePending:    "Pending",
	StateInProgress: "In progress",
	StateClosed:     "Closed",
}

// StaffMember is one support staff column on the board.
type StaffMember struct {
	ID   int64
	Name string
}

type Column struct {
	Key     string    `json:"key"`
	Title   string    `json:"title"`
	StaffID int64     `json:"staff_id,omitempty"`
	Tickets []*Ticket `json:"tickets"`
}

type Board struct {
	Columns []*Column `json:"columns"`
}

// Column returns the column with the given key, or nil.
func (b *Board) Column(key string) *Column {
	for _, c := range b.Columns {
		if c.Key == key {
			return c
		}
	}
	return nil
}

func StaffColumnKey(userID int64) string {
	return fmt.Sprintf("%s%d", staffColumnPrefix, userID)
}

// ParseStaffColumnKey extracts the user id from a "user_<id>" key.
func ParseStaffColumnKey(key string) (int64, bool) {
	rest, ok := strings.CutPrefix(strings.ToLower(strings.TrimSpace(key)), staffColumnPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ResolveColumn picks the board column for a stored status: an exact canonical state
// wins, then a staff member matched by name or column key, and anything else is pending.
func ResolveColumn(status Status, staff []StaffMember) string {
	if status.IsCanonical() {
		return status.State()
	}

	name := strings.ToLower(strings.TrimSpace(status.Assignee()))
	for _, m := range staff {
		if strings.ToLower(strings.TrimSpace(m.Name)) == name {
			return StaffColumnKey(m.ID)
		}
	}
	if id, ok := ParseStaffColumnKey(name); ok {
		for _, m := range staff {
			if m.ID == id {
				return StaffColumnKey(m.ID)
			}
		}
	}
	return StatePending
}

// BuildBoard lays tickets out in the canonical columns followed by one column per
// staff member, keeping the order tickets are given in.
func BuildBoard(tickets []*Ticket, staff []StaffMember) *Board {
	board := &Board{Columns: make([]*Column, 0, len(CanonicalStates)+len(staff))}
	for _, state := range CanonicalStates {
		board.Columns = append(board.Columns, &Column{Key: state, Title: canonicalTitles[state], Tickets: []*Ticket{}})
	}
	for _, m := range staff {
		board.Columns = append(board.Columns, &Column{
			Key:     StaffColumnKey(m.ID),
			Title:   m.Name,
			StaffID: m.ID,
			Tickets: []*Ticket{},
		})
	}

	for _, t := range tickets {
		col := board.Column(ResolveColumn(t.Status, staff))
		if col == nil {
			col = board.Columns[0]
		}
		col.Tickets = append(col.Tickets, t)
	}
	return board
}
