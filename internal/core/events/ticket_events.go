package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeTicketCreated       = "ticket.created"
	EventTypeTicketMoved         = "ticket.moved"
	EventTypeTicketMessagePosted = "ticket.message_posted"
	EventTypeLegacyImported      = "ticket.legacy_imported"
)

// TicketEventTypes lists the event types emitted by the ticket and import services.
var TicketEventTypes = []string{
	EventTypeTicketCreated,
	EventTypeTicketMoved,
	EventTypeTicketMessagePosted,
	EventTypeLegacyImported,
}

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func NewTicketCreatedEvent(ticketID int64, author, ticketType, urgency string) BaseEvent {
	return newBase(EventTypeTicketCreated, map[string]interface{}{
		"ticket_id": ticketID,
		"author":    author,
		"type":      ticketType,
		"urgency":   urgency,
	})
}

func NewTicketMovedEvent(ticketID int64, from, to string) BaseEvent {
	return newBase(EventTypeTicketMoved, map[string]interface{}{
		"ticket_id": ticketID,
		"from":      from,
		"to":        to,
	})
}

func NewMessagePostedEvent(ticketID, messageID int64, channel, author string) BaseEvent {
	return newBase(EventTypeTicketMessagePosted, map[string]interface{}{
		"ticket_id":  ticketID,
		"message_id": messageID,
		"channel":    channel,
		"author":     author,
	})
}

func NewLegacyImportedEvent(source string, imported, skipped int) BaseEvent {
	return newBase(EventTypeLegacyImported, map[string]interface{}{
		"source":   source,
		"imported": imported,
		"skipped":  skipped,
	})
}

// LogHandler writes each event to the logger. Nothing is persisted.
func LogHandler(logger *slog.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		logger.InfoContext(ctx, "ticket event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	}
}

// SubscribeTicketLogging attaches LogHandler to every ticket event type.
func SubscribeTicketLogging(bus *EventBus, logger *slog.Logger) {
	for _, t := range TicketEventTypes {
		bus.Subscribe(t, LogHandler(logger))
	}
}
