package ticket

import (
	"context"
	"log/slog"
	"strings"

	errors "github.com/fabianopolone123/ERP-TI/internal"
	ticketDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/ticket"
	"github.com/fabianopolone123/ERP-TI/internal/core/events"
	"github.com/fabianopolone123/ERP-TI/internal/user"
)

// ListLimit caps the ticket list, newest first.
const ListLimit = 500

type RepositoryAPI interface {
	Create(ctx context.Context, t *ticketDatamodel.Ticket) error
	GetByID(ctx context.Context, id int64) (*ticketDatamodel.Ticket, error)
	ListRecent(ctx context.Context, limit int) ([]*ticketDatamodel.Ticket, error)
	ListAll(ctx context.Context) ([]*ticketDatamodel.Ticket, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	UpdateStatusAndAssignee(ctx context.Context, id int64, status, assignee string) error
	CreateMessage(ctx context.Context, m *ticketDatamodel.TicketMessage) error
	ListMessages(ctx context.Context, ticketID int64, channel string) ([]*ticketDatamodel.TicketMessage, error)
}

// StaffDirectory supplies the current members of the support staff group.
type StaffDirectory interface {
	StaffMembers(ctx context.Context) ([]*user.User, error)
}

type Service struct {
	repo      RepositoryAPI
	staff     StaffDirectory
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, staff StaffDirectory, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		repo:      repo,
		staff:     staff,
		publisher: publisher,
		logger:    logger,
	}
}

// Create opens a pending ticket authored by the caller.
func (s *Service) Create(ctx context.Context, identity errors.Identity, dto CreateTicketDTO) (*Ticket, error) {
	dto = dto.Trimmed()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &ticketDatamodel.Ticket{
		Title:       dto.Title,
		Description: dto.Description,
		Author:      identity.DisplayName(DefaultAuthor),
		Type:        dto.Type,
		Urgency:     dto.Urgency,
		Attachment:  dto.Attachment,
		Status:      StatePending,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create ticket", "author", row.Author, "error", err)
		return nil, errors.NewInternalError("failed to create ticket", err)
	}

	s.logger.Info("ticket created", "ticket_id", row.ID, "author", row.Author, "urgency", row.Urgency)
	s.publish(ctx, events.NewTicketCreatedEvent(row.ID, row.Author, row.Type, row.Urgency))
	return FromDataModel(row), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Ticket, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) List(ctx context.Context) ([]*Ticket, error) {
	rows, err := s.repo.ListRecent(ctx, ListLimit)
	if err != nil {
		s.logger.Error("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets", err)
	}
	return fromRows(rows), nil
}

// Move places a ticket in any board column. There is no transition guard. A staff
// column stores the member's name as both status and assignee.
func (s *Service) Move(ctx context.Context, id int64, column string) (*Ticket, error) {
	column = strings.TrimSpace(column)
	if column == "" {
		return nil, errors.NewValidationFieldError("column", "column is required", errors.ErrCodeRequiredField)
	}

	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	from := row.Status

	switch {
	case IsCanonicalState(column):
		if err := s.repo.UpdateStatus(ctx, id, column); err != nil {
			s.logger.Error("failed to move ticket", "ticket_id", id, "to", column, "error", err)
			return nil, errors.NewInternalError("failed to move ticket", err)
		}
		row.Status = column

	default:
		member, err := s.staffForColumn(ctx, column)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSpace(member.FullName)
		if name == "" {
			return nil, errors.NewValidationFieldError("column",
				"staff member "+column+" has no name", errors.ErrCodeInvalidColumn)
		}
		if err := s.repo.UpdateStatusAndAssignee(ctx, id, name, name); err != nil {
			s.logger.Error("failed to assign ticket", "ticket_id", id, "assignee", name, "error", err)
			return nil, errors.NewInternalError("failed to assign ticket", err)
		}
		row.Status = name
		row.Assignee = name
	}

	s.logger.Info("ticket moved", "ticket_id", id, "from", from, "to", row.Status)
	s.publish(ctx, events.NewTicketMovedEvent(id, from, row.Status))
	return FromDataModel(row), nil
}

// Finalize moves the ticket to closed.
func (s *Service) Finalize(ctx context.Context, id int64) (*Ticket, error) {
	return s.Move(ctx, id, StateClosed)
}

// PostMessage appends to one of the ticket's two message logs. Who may read or write
// the internal log is decided by the caller.
func (s *Service) PostMessage(ctx context.Context, identity errors.Identity, ticketID int64, channel Channel, dto PostMessageDTO) (*Message, error) {
	ch, ok := ParseChannel(string(channel))
	if !ok {
		return nil, invalidChannel(channel)
	}
	text := strings.TrimSpace(dto.Message)
	if text == "" {
		return nil, errors.ErrEmptyMessage
	}

	if _, err := s.load(ctx, ticketID); err != nil {
		return nil, err
	}

	row := &ticketDatamodel.TicketMessage{
		TicketID:   ticketID,
		Channel:    string(ch),
		Author:     identity.DisplayName(DefaultAuthor),
		Message:    text,
		Attachment: strings.TrimSpace(dto.Attachment),
	}
	if err := s.repo.CreateMessage(ctx, row); err != nil {
		s.logger.Error("failed to post message", "ticket_id", ticketID, "channel", ch, "error", err)
		return nil, errors.NewInternalError("failed to post message", err)
	}

	s.logger.Info("ticket message posted", "ticket_id", ticketID, "channel", ch, "message_id", row.ID)
	s.publish(ctx, events.NewMessagePostedEvent(ticketID, row.ID, string(ch), row.Author))
	return MessageFromDataModel(row), nil
}

func (s *Service) ListMessages(ctx context.Context, ticketID int64, channel Channel) ([]*Message, error) {
	ch, ok := ParseChannel(string(channel))
	if !ok {
		return nil, invalidChannel(channel)
	}
	if _, err := s.load(ctx, ticketID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListMessages(ctx, ticketID, string(ch))
	if err != nil {
		return nil, errors.NewInternalError("failed to list messages", err)
	}
	msgs := make([]*Message, 0, len(rows))
	for _, row := range rows {
		msgs = append(msgs, MessageFromDataModel(row))
	}
	return msgs, nil
}

// Board rebuilds the columns from the current staff roster on every call.
func (s *Service) Board(ctx context.Context) (*Board, error) {
	staff, err := s.staffMembers(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to load tickets for board", "error", err)
		return nil, errors.NewInternalError("failed to load tickets", err)
	}
	return BuildBoard(fromRows(rows), staff), nil
}

func (s *Service) staffMembers(ctx context.Context) ([]StaffMember, error) {
	users, err := s.staff.StaffMembers(ctx)
	if err != nil {
		return nil, err
	}
	members := make([]StaffMember, 0, len(users))
	for _, u := range users {
		members = append(members, StaffMember{ID: u.ID, Name: u.FullName})
	}
	return members, nil
}

func (s *Service) staffForColumn(ctx context.Context, column string) (*user.User, error) {
	id, ok := ParseStaffColumnKey(column)
	if ok {
		users, err := s.staff.StaffMembers(ctx)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			if u.ID == id {
				return u, nil
			}
		}
	}
	return nil, errors.NewValidationFieldError("column",
		"unknown board column "+column, errors.ErrCodeInvalidColumn)
}

func (s *Service) load(ctx context.Context, id int64) (*ticketDatamodel.Ticket, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load ticket", "ticket_id", id, "error", err)
		return nil, errors.NewInternalError("failed to load ticket", err)
	}
	if row == nil {
		return nil, errors.ErrTicketNotFound
	}
	return row, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", "event_type", event.EventType(), "error", err)
	}
}

func invalidChannel(channel Channel) error {
	return errors.NewValidationFieldError("channel",
		"unknown channel "+string(channel)+", use public or internal", errors.ErrCodeInvalidChoice)
}

func fromRows(rows []*ticketDatamodel.Ticket) []*Ticket {
	tickets := make([]*Ticket, 0, len(rows))
	for _, row := range rows {
		tickets = append(tickets, FromDataModel(row))
	}
	return tickets
}
