// Package legacy merges tickets from the previous helpdesk database into the ticket
// tables. The merge only ever appends: rows already imported are skipped by their
// (source tag, legacy id) pair.
package legacy

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"
	"strings"

	errors "github.com/fabianopolone123/ERP-TI/internal"
	ticketDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/ticket"
	"github.com/fabianopolone123/ERP-TI/internal/core/events"
	"github.com/fabianopolone123/ERP-TI/internal/ticket"
	"gorm.io/gorm"
)

// DefaultAuthor is used when the legacy creator has neither a name nor a login.
const DefaultAuthor = "Requester"

var closedStates = map[string]bool{
	"resolved":  true,
	"closed":    true,
	"cancelled": true,
	"canceled":  true,
	"done":      true,
}

// Target is the ticket store the import writes into.
type Target interface {
	LegacyExists(ctx context.Context, source string, legacyID int64) (bool, error)
	Create(ctx context.Context, t *ticketDatamodel.Ticket) error
}

type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type Importer struct {
	target      Target
	tag         string
	defaultPath string
	publisher   events.Publisher
	logger      *slog.Logger
}

func NewImporter(target Target, cfg errors.LegacyConfig, publisher events.Publisher, logger *slog.Logger) *Importer {
	tag := strings.TrimSpace(cfg.SourceTag)
	if tag == "" {
		tag = errors.DefaultLegacySourceTag
	}
	path := strings.TrimSpace(cfg.SourcePath)
	if path == "" {
		path = errors.DefaultLegacySourcePath
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Importer{
		target:      target,
		tag:         tag,
		defaultPath: path,
		publisher:   publisher,
		logger:      logger,
	}
}

// Import reads every legacy ticket from sourcePath (or the configured default) and
// inserts the ones not seen before. On a write failure the counts so far are returned
// with the error; running the import again is safe.
func (i *Importer) Import(ctx context.Context, sourcePath string) (Result, error) {
	path := strings.TrimSpace(sourcePath)
	if path == "" {
		path = i.defaultPath
	}

	src, err := OpenSource(ctx, path)
	if err != nil {
		i.logger.Error("failed to open legacy source", "path", path, "error", err)
		return Result{}, errors.NewInternalError("failed to open legacy source", err)
	}
	defer src.Close()

	rows, err := ReadSource(ctx, src)
	if err != nil {
		i.logger.Error("failed to read legacy source", "path", path, "error", err)
		return Result{}, errors.NewInternalError("failed to read legacy source", err)
	}

	var res Result
	for _, row := range rows {
		exists, err := i.target.LegacyExists(ctx, i.tag, row.ID)
		if err != nil {
			return res, errors.NewInternalError("failed to check imported ticket", err)
		}
		if exists {
			res.Skipped++
			continue
		}

		err = i.target.Create(ctx, i.convert(row))
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			res.Skipped++
			continue
		}
		if err != nil {
			i.logger.Error("failed to import legacy ticket", "legacy_id", row.ID, "error", err)
			return res, errors.NewInternalError("failed to import legacy ticket", err)
		}
		res.Imported++
	}

	i.logger.Info("legacy import finished",
		"path", path,
		"source", i.tag,
		"imported", res.Imported,
		"skipped", res.Skipped)
	if err := i.publisher.Publish(ctx, events.NewLegacyImportedEvent(i.tag, res.Imported, res.Skipped)); err != nil {
		i.logger.Warn("event handler failed", "event_type", events.EventTypeLegacyImported, "error", err)
	}
	return res, nil
}

func (i *Importer) convert(row SourceRow) *ticketDatamodel.Ticket {
	legacyID := row.ID
	status, assignee := MapStatus(text(row.Status), firstNonEmpty(text(row.AssigneeName), text(row.AssigneeLogin)))
	return &ticketDatamodel.Ticket{
		Title:        text(row.Title),
		Description:  text(row.Description),
		Author:       firstNonEmpty(text(row.CreatorName), text(row.CreatorLogin), DefaultAuthor),
		Type:         text(row.TicketType),
		Urgency:      text(row.Urgency),
		Attachment:   text(row.Files),
		Assignee:     assignee,
		Status:       status,
		LegacySource: i.tag,
		LegacyID:     &legacyID,
	}
}

// MapStatus translates a legacy status. Terminal states close the ticket, in-progress
// keeps the legacy assignee, and anything else starts over as pending and unassigned.
func MapStatus(legacyStatus, legacyAssignee string) (status, assignee string) {
	s := strings.ToLower(strings.TrimSpace(legacyStatus))
	s = strings.ReplaceAll(s, " ", "_")
	switch {
	case closedStates[s]:
		return ticket.StateClosed, ""
	case s == "in_progress":
		return ticket.StateInProgress, strings.TrimSpace(legacyAssignee)
	default:
		return ticket.StatePending, ""
	}
}

func text(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
