package ticket_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/fabianopolone123/ERP-TI/internal"
	"github.com/fabianopolone123/ERP-TI/internal/core/database/dbtest"
	"github.com/fabianopolone123/ERP-TI/internal/ticket"
	ticketRepository "github.com/fabianopolone123/ERP-TI/internal/ticket/repository"
	"github.com/fabianopolone123/ERP-TI/internal/transport"
	"github.com/fabianopolone123/ERP-TI/internal/transport/middleware"
	"github.com/fabianopolone123/ERP-TI/internal/user"
	userRepository "github.com/fabianopolone123/ERP-TI/internal/user/repository"
	"github.com/fabianopolone123/ERP-TI/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Ticket Handler Integration", func() {
	var (
		router  *chi.Mux
		users   *user.Service
		service *ticket.Service
		bruno   *user.User
	)

	BeforeEach(func() {
		ctx := context.Background()
		db, err := dbtest.Open()
		Expect(err).NotTo(HaveOccurred())

		users = user.NewService(userRepository.NewUserRepository(db), "TI", logger.Discard())
		service = ticket.NewService(ticketRepository.NewTicketRepository(db), users, nil, logger.Discard())
		handler := ticket.NewHandler(transport.NewBaseHandler(logger.Discard()), service)

		group, err := users.CreateGroup(ctx, user.CreateGroupDTO{Name: "TI"})
		Expect(err).NotTo(HaveOccurred())
		bruno, err = users.CreateUser(ctx, user.CreateUserDTO{Department: "TI", FullName: "Bruno"})
		Expect(err).NotTo(HaveOccurred())
		Expect(users.AssignToGroup(ctx, group.ID, bruno.ID)).To(Succeed())

		// stands in for the JWT middleware: the caller name comes from X-Test-User
		withIdentity := func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if name := r.Header.Get("X-Test-User"); name != "" {
					r = r.WithContext(internal.ContextWithIdentity(r.Context(), internal.Identity{Name: name}))
				}
				next.ServeHTTP(w, r)
			})
		}

		router = chi.NewRouter()
		router.Use(withIdentity)
		router.Get("/tickets", handler.ListTickets)
		router.Post("/tickets", handler.CreateTicket)
		router.Get("/tickets/board", handler.GetBoard)
		router.Get("/tickets/{id}", handler.GetTicket)
		router.Post("/tickets/{id}/move", handler.MoveTicket)
		router.Post("/tickets/{id}/finalize", handler.FinalizeTicket)
		router.Get("/tickets/{id}/messages", handler.ListPublicMessages)
		router.Post("/tickets/{id}/messages", handler.PostPublicMessage)
		router.Group(func(r chi.Router) {
			r.Use(middleware.RequireStaff(users, logger.Discard()))
			r.Get("/tickets/{id}/internal-messages", handler.ListInternalMessages)
			r.Post("/tickets/{id}/internal-messages", handler.PostInternalMessage)
		})
	})

	do := func(method, path, caller, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if caller != "" {
			req.Header.Set("X-Test-User", caller)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	createTicket := func() *ticket.Ticket {
		w := do(http.MethodPost, "/tickets", "Ana",
			`{"title":"VPN","description":"cannot connect","type":"request","urgency":"normal"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		var t ticket.Ticket
		Expect(json.NewDecoder(w.Body).Decode(&t)).To(Succeed())
		return &t
	}

	It("creates a ticket authored by the caller", func() {
		t := createTicket()
		Expect(t.Author).To(Equal("Ana"))
		Expect(t.Status.String()).To(Equal("pending"))
	})

	It("requires an identity to create tickets", func() {
		w := do(http.MethodPost, "/tickets", "", `{"title":"x"}`)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("returns 400 for incomplete tickets", func() {
		w := do(http.MethodPost, "/tickets", "Ana", `{"title":"VPN"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("description is required"))
	})

	It("moves a ticket onto a staff column and shows it on the board", func() {
		t := createTicket()
		body := fmt.Sprintf(`{"column":"user_%d"}`, bruno.ID)
		w := do(http.MethodPost, fmt.Sprintf("/tickets/%d/move", t.ID), "Bruno", body)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = do(http.MethodGet, "/tickets/board", "Bruno", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var board ticket.Board
		Expect(json.NewDecoder(w.Body).Decode(&board)).To(Succeed())
		Expect(board.Columns).To(HaveLen(4))
		Expect(board.Column(ticket.StaffColumnKey(bruno.ID)).Tickets).To(HaveLen(1))
	})

	It("finalizes a ticket", func() {
		t := createTicket()
		w := do(http.MethodPost, fmt.Sprintf("/tickets/%d/finalize", t.ID), "Bruno", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"status":"closed"`))
	})

	It("returns 404 for unknown tickets", func() {
		w := do(http.MethodGet, "/tickets/999", "Ana", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("lets anyone use the public channel", func() {
		t := createTicket()
		w := do(http.MethodPost, fmt.Sprintf("/tickets/%d/messages", t.ID), "Ana", `{"message":"hello"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		w = do(http.MethodGet, fmt.Sprintf("/tickets/%d/messages", t.ID), "Ana", "")
		var resp ticket.MessagesResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Messages).To(HaveLen(1))
		Expect(resp.Messages[0].Channel).To(Equal(ticket.ChannelPublic))
	})

	It("rejects empty messages", func() {
		t := createTicket()
		w := do(http.MethodPost, fmt.Sprintf("/tickets/%d/messages", t.ID), "Ana", `{"message":" "}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("keeps the internal channel to support staff", func() {
		t := createTicket()
		path := fmt.Sprintf("/tickets/%d/internal-messages", t.ID)

		w := do(http.MethodPost, path, "Ana", `{"message":"peek"}`)
		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(w.Body.String()).To(ContainSubstring("STAFF_ONLY"))

		w = do(http.MethodPost, path, "bruno", `{"message":"restart the concentrator"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		w = do(http.MethodGet, path, "Bruno", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("restart the concentrator"))

		w = do(http.MethodGet, path, "", "")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})
