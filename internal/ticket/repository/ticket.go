package repository

import (
	"context"
	"errors"

	ticketDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/ticket"
	"gorm.io/gorm"
)

// TicketRepository owns the tickets and ticket_messages tables. It serves both the
// ticket service and the legacy importer.
type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticketDatamodel.Ticket) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*ticketDatamodel.Ticket, error) {
	var t ticketDatamodel.Ticket
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) ListRecent(ctx context.Context, limit int) ([]*ticketDatamodel.Ticket, error) {
	var tickets []*ticketDatamodel.Ticket
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&tickets).Error
	return tickets, err
}

func (r *TicketRepository) ListAll(ctx context.Context) ([]*ticketDatamodel.Ticket, error) {
	var tickets []*ticketDatamodel.Ticket
	err := r.db.WithContext(ctx).Order("id ASC").Find(&tickets).Error
	return tickets, err
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&ticketDatamodel.Ticket{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *TicketRepository) UpdateStatusAndAssignee(ctx context.Context, id int64, status, assignee string) error {
	return r.db.WithContext(ctx).
		Model(&ticketDatamodel.Ticket{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "assignee": assignee}).Error
}

func (r *TicketRepository) CreateMessage(ctx context.Context, m *ticketDatamodel.TicketMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *TicketRepository) ListMessages(ctx context.Context, ticketID int64, channel string) ([]*ticketDatamodel.TicketMessage, error) {
	var msgs []*ticketDatamodel.TicketMessage
	err := r.db.WithContext(ctx).
		Where("ticket_id = ? AND channel = ?", ticketID, channel).
		Order("created_at ASC").
		Order("id ASC").
		Find(&msgs).Error
	return msgs, err
}

// LegacyExists reports whether a ticket carrying this legacy tag and id was already imported.
func (r *TicketRepository) LegacyExists(ctx context.Context, source string, legacyID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ticketDatamodel.Ticket{}).
		Where("legacy_source = ? AND legacy_id = ?", source, legacyID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}
