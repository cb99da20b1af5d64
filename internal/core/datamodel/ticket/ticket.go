package ticket

import "time"

// Ticket.Status holds either a canonical state or the name of the assigned staff member.
type Ticket struct {
	ID           int64     `gorm:"primaryKey"`
	Title        string    `gorm:"column:title;not null"`
	Description  string    `gorm:"column:description;not null"`
	Author       string    `gorm:"column:author;not null;default:''"`
	Type         string    `gorm:"column:type;not null;default:''"`
	Urgency      string    `gorm:"column:urgency;not null;default:''"`
	Attachment   string    `gorm:"column:attachment;not null;default:''"`
	Assignee     string    `gorm:"column:assignee;not null;default:''"`
	Status       string    `gorm:"column:status;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	LegacySource string    `gorm:"column:legacy_source;not null;default:'';uniqueIndex:idx_tickets_legacy"`
	LegacyID     *int64    `gorm:"column:legacy_id;uniqueIndex:idx_tickets_legacy"`
}

func (Ticket) TableName() string { return "tickets" }

type TicketMessage struct {
	ID         int64     `gorm:"primaryKey"`
	TicketID   int64     `gorm:"column:ticket_id;not null;index"`
	Channel    string    `gorm:"column:channel;not null"`
	Author     string    `gorm:"column:author;not null;default:''"`
	Message    string    `gorm:"column:message;not null"`
	Attachment string    `gorm:"column:attachment;not null;default:''"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (TicketMessage) TableName() string { return "ticket_messages" }
