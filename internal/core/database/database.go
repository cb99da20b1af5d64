// Package database opens the gorm handle shared by every repository.
package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fabianopolone123/ERP-TI/internal"
	folderDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/folder"
	recordDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/record"
	ticketDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/ticket"
	userDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/user"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects with the configured dialect. Duplicate-key failures surface as gorm.ErrDuplicatedKey.
func Open(cfg internal.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case internal.DriverPostgres:
		dialector = postgres.Open(cfg.Source)
	case internal.DriverSQLite, "":
		dialector = sqlite.Open(sqliteDSN(cfg.Source))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(slogWriter{logger: logger}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// sqliteDSN turns on foreign keys and a busy timeout for file databases.
func sqliteDSN(source string) string {
	if source == ":memory:" {
		return source
	}
	sep := "?"
	if strings.Contains(source, "?") {
		sep = "&"
	}
	return source + sep + "_foreign_keys=on&_busy_timeout=5000"
}

type slogWriter struct {
	logger *slog.Logger
}

func (w slogWriter) Printf(format string, args ...interface{}) {
	w.logger.Warn(fmt.Sprintf(format, args...), "component", "gorm")
}

// Models lists every table owned by this application.
func Models() []interface{} {
	models := []interface{}{
		&userDatamodel.User{},
		&userDatamodel.UserGroup{},
		&userDatamodel.GroupMembership{},
		&folderDatamodel.AccessFolder{},
		&ticketDatamodel.Ticket{},
		&ticketDatamodel.TicketMessage{},
	}
	return append(models, recordDatamodel.Models()...)
}
