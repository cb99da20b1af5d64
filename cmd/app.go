package cmd

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fabianopolone123/ERP-TI/internal"
	"github.com/fabianopolone123/ERP-TI/internal/auth"
	authRepository "github.com/fabianopolone123/ERP-TI/internal/auth/repository"
	"github.com/fabianopolone123/ERP-TI/internal/core/events"
	"github.com/fabianopolone123/ERP-TI/internal/credential"
	"github.com/fabianopolone123/ERP-TI/internal/folder"
	folderRepository "github.com/fabianopolone123/ERP-TI/internal/folder/repository"
	"github.com/fabianopolone123/ERP-TI/internal/legacy"
	"github.com/fabianopolone123/ERP-TI/internal/registry"
	registryRepository "github.com/fabianopolone123/ERP-TI/internal/registry/repository"
	"github.com/fabianopolone123/ERP-TI/internal/ticket"
	ticketRepository "github.com/fabianopolone123/ERP-TI/internal/ticket/repository"
	"github.com/fabianopolone123/ERP-TI/internal/transport"
	"github.com/fabianopolone123/ERP-TI/internal/transport/rest"
	"github.com/fabianopolone123/ERP-TI/internal/user"
	userRepository "github.com/fabianopolone123/ERP-TI/internal/user/repository"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// Application holds the wired services shared by the web server and the CLI commands.
type Application struct {
	Config *internal.Config
	DB     *gorm.DB
	SQL    *sqlx.DB
	Logger *slog.Logger
	Events *events.EventBus

	Users    *user.Service
	Auth     *auth.Service
	Tickets  *ticket.Service
	Folders  *folder.Service
	Registry *registry.Service
	Importer *legacy.Importer
}

func NewApplication(cfg *internal.Config, db *gorm.DB, logger *slog.Logger) (*Application, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	_, driverName := cfg.Database.GooseDialect()

	bus := events.NewEventBus(logger)
	events.SubscribeTicketLogging(bus, logger)

	users := user.NewService(userRepository.NewUserRepository(db), cfg.Staff.GroupName, logger)
	tickets := ticketRepository.NewTicketRepository(db)
	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)

	return &Application{
		Config:   cfg,
		DB:       db,
		SQL:      sqlx.NewDb(sqlDB, driverName),
		Logger:   logger,
		Events:   bus,
		Users:    users,
		Auth:     auth.NewService(authRepository.NewRepository(db), credential.NewHasher(cfg.Security.PasswordIterations), tokens, logger),
		Tickets:  ticket.NewService(tickets, users, bus, logger),
		Folders:  folder.NewService(folderRepository.NewFolderRepository(db), logger),
		Registry: registry.NewService(registryRepository.NewRecordRepository(db), logger),
		Importer: legacy.NewImporter(tickets, cfg.Legacy, bus, logger),
	}, nil
}

// Router builds the full web surface.
func (a *Application) Router() http.Handler {
	base := transport.NewBaseHandler(a.Logger)
	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.Handlers{
		Auth:     auth.NewHandler(base, a.Auth),
		User:     user.NewHandler(base, a.Users),
		Ticket:   ticket.NewHandler(base, a.Tickets),
		Legacy:   legacy.NewHandler(base, a.Importer),
		Folder:   folder.NewHandler(base, a.Folders),
		Registry: registry.NewHandler(base, a.Registry, rest.RecordsIndexPath),
		Health:   rest.NewHealthHandler(a.SQL),
		Staff:    a.Users,
	}, a.Config.Server.AllowedOrigins, a.Logger)
	return router
}

func (a *Application) Close() error {
	return a.SQL.Close()
}
