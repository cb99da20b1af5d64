package rest

import (
	"log/slog"
	"net/http"

	"github.com/fabianopolone123/ERP-TI/internal/auth"
	"github.com/fabianopolone123/ERP-TI/internal/folder"
	"github.com/fabianopolone123/ERP-TI/internal/legacy"
	"github.com/fabianopolone123/ERP-TI/internal/registry"
	"github.com/fabianopolone123/ERP-TI/internal/ticket"
	"github.com/fabianopolone123/ERP-TI/internal/transport/middleware"
	"github.com/fabianopolone123/ERP-TI/internal/transport/swagger"
	"github.com/fabianopolone123/ERP-TI/internal/user"
	"github.com/go-chi/chi"
)

const APIPrefix = "/api/v1"

// RecordsIndexPath lists the registry modules; unknown module reads land here.
const RecordsIndexPath = APIPrefix + "/records"

// Handlers groups everything the router mounts. Nil handlers are skipped.
type Handlers struct {
	Auth     *auth.Handler
	User     *user.Handler
	Ticket   *ticket.Handler
	Legacy   *legacy.Handler
	Folder   *folder.Handler
	Registry *registry.Handler
	Health   *HealthHandler
	Staff    middleware.StaffChecker
}

func RegisterAllRoutes(router chi.Router, h Handlers, allowedOrigins string, logger *slog.Logger) {
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", swagger.SpecHandler())
	router.Handle("/swagger/*", swagger.Handler())

	router.Route(APIPrefix, func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.healthCheckHandler)
			r.Get("/ping", h.Health.pingHandler)
		}

		if h.Auth == nil {
			return
		}
		r.Route("/auth", func(ar chi.Router) {
			ar.Post("/login", h.Auth.Login)
			ar.Post("/refresh", h.Auth.RefreshToken)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Get("/auth/me", h.Auth.Me)

			staffOnly := middleware.RequireStaff(h.Staff, logger)

			if h.Ticket != nil {
				pr.Route("/tickets", func(tr chi.Router) {
					tr.Get("/", h.Ticket.ListTickets)
					tr.Post("/", h.Ticket.CreateTicket)
					if h.Legacy != nil {
						tr.With(staffOnly).Post("/import", h.Legacy.ImportTickets)
					}
					tr.Get("/board", h.Ticket.GetBoard)
					tr.Get("/{id}", h.Ticket.GetTicket)
					tr.Post("/{id}/move", h.Ticket.MoveTicket)
					tr.Post("/{id}/finalize", h.Ticket.FinalizeTicket)
					tr.Get("/{id}/messages", h.Ticket.ListPublicMessages)
					tr.Post("/{id}/messages", h.Ticket.PostPublicMessage)
					tr.Group(func(sr chi.Router) {
						sr.Use(staffOnly)
						sr.Get("/{id}/internal-messages", h.Ticket.ListInternalMessages)
						sr.Post("/{id}/internal-messages", h.Ticket.PostInternalMessage)
					})
				})
			}

			if h.User != nil {
				pr.Route("/users", func(ur chi.Router) {
					ur.Get("/", h.User.ListUsers)
					ur.Post("/", h.User.CreateUser)
					ur.Get("/{id}", h.User.GetUser)
					ur.Get("/{id}/groups", h.User.GetGroupLabel)
					ur.With(middleware.RequireSelfOrStaff(h.Staff, "id", logger)).
						Post("/{id}/credentials", h.Auth.SetCredentials)
				})
				pr.Route("/groups", func(gr chi.Router) {
					gr.Get("/", h.User.ListGroups)
					gr.Post("/", h.User.CreateGroup)
					gr.Get("/{id}/members", h.User.ListGroupMembers)
					gr.Post("/{id}/members", h.User.AddGroupMember)
					gr.Delete("/{id}/members/{userID}", h.User.RemoveGroupMember)
				})
				pr.Get("/staff", h.User.ListStaff)
			}

			if h.Folder != nil {
				pr.Get("/folders", h.Folder.ListFolders)
				pr.Post("/folders", h.Folder.AddFolder)
				pr.Post("/folders/remove", h.Folder.RemoveFolders)
			}

			if h.Registry != nil {
				pr.Get("/records", h.Registry.ListModules)
				pr.Get("/records/{module}", h.Registry.ListRecords)
				pr.Post("/records/{module}", h.Registry.CreateRecord)
			}
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"NOT_FOUND","code":"ROUTE_NOT_FOUND","message":"route not found"}}`))
	})
}
