package ticket

import (
	"strings"

	errors "github.com/fabianopolone123/ERP-TI/internal"
	"github.com/fabianopolone123/ERP-TI/internal/core/common/validation"
)

type CreateTicketDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Urgency     string `json:"urgency"`
	Attachment  string `json:"attachment"`
}

func (d CreateTicketDTO) Trimmed() CreateTicketDTO {
	return CreateTicketDTO{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Type:        strings.ToLower(strings.TrimSpace(d.Type)),
		Urgency:     strings.ToLower(strings.TrimSpace(d.Urgency)),
		Attachment:  strings.TrimSpace(d.Attachment),
	}
}

func (d CreateTicketDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MaxLength(180)
	v.Field("description", d.Description).Required()
	v.Field("type", d.Type).Required().OneOf(Types...)
	v.Field("urgency", d.Urgency).Required().OneOf(Urgencies...)
	v.Field("attachment", d.Attachment).MaxLength(255)
	return v.Validate()
}

// MoveTicketDTO names the target board column: a canonical state or "user_<id>".
type MoveTicketDTO struct {
	Column string `json:"column"`
}

type PostMessageDTO struct {
	Message    string `json:"message"`
	Attachment string `json:"attachment"`
}

type TicketsResponse struct {
	Tickets []*Ticket `json:"tickets"`
}

type MessagesResponse struct {
	Messages []*Message `json:"messages"`
}
