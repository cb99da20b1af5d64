package legacy

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// SourceRow is one ticket of the old helpdesk with its people and attachments joined in.
type SourceRow struct {
	ID            int64          `db:"id"`
	Title         sql.NullString `db:"title"`
	Description   sql.NullString `db:"description"`
	TicketType    sql.NullString `db:"ticket_type"`
	Urgency       sql.NullString `db:"urgency"`
	Status        sql.NullString `db:"status"`
	CreatorName   sql.NullString `db:"creator_name"`
	CreatorLogin  sql.NullString `db:"creator_login"`
	AssigneeName  sql.NullString `db:"assignee_name"`
	AssigneeLogin sql.NullString `db:"assignee_login"`
	Files         sql.NullString `db:"files"`
}

type tableColumn struct {
	CID     int            `db:"cid"`
	Name    string         `db:"name"`
	Type    string         `db:"type"`
	NotNull int            `db:"notnull"`
	Default sql.NullString `db:"dflt_value"`
	PK      int            `db:"pk"`
}

// OpenSource opens the old helpdesk database read-only. Nothing is ever written back.
func OpenSource(ctx context.Context, path string) (*sqlx.DB, error) {
	dsn := sourceDSN(path)
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open legacy source %q: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open legacy source %q: %w", path, err)
	}
	return db, nil
}

// sourceDSN builds an authority-less sqlite URI so relative paths stay relative.
func sourceDSN(path string) string {
	return "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
}

// ReadSource returns every legacy ticket ordered by id. Optional columns and tables
// that the source lacks read as NULL.
func ReadSource(ctx context.Context, db *sqlx.DB) ([]SourceRow, error) {
	query, err := buildSourceQuery(ctx, db)
	if err != nil {
		return nil, err
	}

	var rows []SourceRow
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("read legacy tickets: %w", err)
	}
	return rows, nil
}

func buildSourceQuery(ctx context.Context, db *sqlx.DB) (string, error) {
	var cols []tableColumn
	if err := db.SelectContext(ctx, &cols, "PRAGMA table_info(tickets_ticket)"); err != nil {
		return "", fmt.Errorf("inspect tickets_ticket: %w", err)
	}
	if len(cols) == 0 {
		return "", fmt.Errorf("legacy source has no tickets_ticket table")
	}
	present := make(map[string]bool, len(cols))
	for _, c := range cols {
		present[strings.ToLower(c.Name)] = true
	}
	pick := func(candidates ...string) string {
		for _, c := range candidates {
			if present[c] {
				return c
			}
		}
		return ""
	}

	hasUsers, err := tableExists(ctx, db, "auth_user")
	if err != nil {
		return "", err
	}
	hasFiles, err := tableExists(ctx, db, "tickets_ticketattachment")
	if err != nil {
		return "", err
	}

	col := func(name, alias string) string {
		if name == "" {
			return "NULL AS " + alias
		}
		return "t." + name + " AS " + alias
	}

	selects := []string{
		"t.id AS id",
		col(pick("title"), "title"),
		col(pick("description"), "description"),
		col(pick("ticket_type", "type"), "ticket_type"),
		col(pick("urgency", "priority"), "urgency"),
		col(pick("status"), "status"),
	}
	var joins []string

	creator := pick("created_by_id", "requester_id", "author_id")
	assignee := pick("assigned_to_id", "assignee_id")
	if hasUsers && creator != "" {
		selects = append(selects, displayName("c")+" AS creator_name", "c.username AS creator_login")
		joins = append(joins, "LEFT JOIN auth_user c ON c.id = t."+creator)
	} else {
		selects = append(selects, "NULL AS creator_name", "NULL AS creator_login")
	}
	if hasUsers && assignee != "" {
		selects = append(selects, displayName("u")+" AS assignee_name", "u.username AS assignee_login")
		joins = append(joins, "LEFT JOIN auth_user u ON u.id = t."+assignee)
	} else {
		selects = append(selects, "NULL AS assignee_name", "NULL AS assignee_login")
	}
	if hasFiles {
		selects = append(selects, "COALESCE(f.files, '') AS files")
		joins = append(joins, `LEFT JOIN (
    SELECT ticket_id, GROUP_CONCAT(file, '; ') AS files
    FROM tickets_ticketattachment
    GROUP BY ticket_id
) f ON f.ticket_id = t.id`)
	} else {
		selects = append(selects, "'' AS files")
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(selects, ", "))
	b.WriteString(" FROM tickets_ticket t ")
	b.WriteString(strings.Join(joins, " "))
	b.WriteString(" ORDER BY t.id")
	return b.String(), nil
}

func displayName(alias string) string {
	return fmt.Sprintf("TRIM(COALESCE(%[1]s.first_name, '') || ' ' || COALESCE(%[1]s.last_name, ''))", alias)
}

func tableExists(ctx context.Context, db *sqlx.DB, name string) (bool, error) {
	var n int
	err := db.GetContext(ctx, &n, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name)
	if err != nil {
		return false, fmt.Errorf("inspect legacy source: %w", err)
	}
	return n > 0, nil
}
