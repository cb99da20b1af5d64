package ticket

import (
	"context"
	"net/http"

	errors "github.com/fabianopolone123/ERP-TI/internal"
	"github.com/fabianopolone123/ERP-TI/internal/transport"
)

type ServiceAPI interface {
	Create(ctx context.Context, identity errors.Identity, dto CreateTicketDTO) (*Ticket, error)
	Get(ctx context.Context, id int64) (*Ticket, error)
	List(ctx context.Context) ([]*Ticket, error)
	Move(ctx context.Context, id int64, column string) (*Ticket, error)
	Finalize(ctx context.Context, id int64) (*Ticket, error)
	PostMessage(ctx context.Context, identity errors.Identity, ticketID int64, channel Channel, dto PostMessageDTO) (*Message, error)
	ListMessages(ctx context.Context, ticketID int64, channel Channel) ([]*Message, error)
	Board(ctx context.Context) (*Board, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("ListTickets: failed to list tickets", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, TicketsResponse{Tickets: tickets})
}

func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r, "CreateTicket")
	if !ok {
		return
	}

	var dto CreateTicketDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.Service.Create(r.Context(), identity, dto)
	if err != nil {
		h.Logger.Warn("CreateTicket: rejected", "author", identity.Name, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.Service.Board(r.Context())
	if err != nil {
		h.Logger.Error("GetBoard: failed to build board", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, board)
}

// MoveTicket handles POST /tickets/{id}/move
func (h *Handler) MoveTicket(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var dto MoveTicketDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.Service.Move(r.Context(), id, dto.Column)
	if err != nil {
		h.Logger.Warn("MoveTicket: rejected", "ticket_id", id, "column", dto.Column, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) FinalizeTicket(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.Service.Finalize(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) ListPublicMessages(w http.ResponseWriter, r *http.Request) {
	h.listMessages(w, r, ChannelPublic)
}

func (h *Handler) PostPublicMessage(w http.ResponseWriter, r *http.Request) {
	h.postMessage(w, r, ChannelPublic)
}

// ListInternalMessages is mounted behind the staff-only middleware.
func (h *Handler) ListInternalMessages(w http.ResponseWriter, r *http.Request) {
	h.listMessages(w, r, ChannelInternal)
}

func (h *Handler) PostInternalMessage(w http.ResponseWriter, r *http.Request) {
	h.postMessage(w, r, ChannelInternal)
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request, channel Channel) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	msgs, err := h.Service.ListMessages(r.Context(), id, channel)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessagesResponse{Messages: msgs})
}

func (h *Handler) postMessage(w http.ResponseWriter, r *http.Request, channel Channel) {
	identity, ok := h.Identity(w, r, "PostMessage")
	if !ok {
		return
	}
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var dto PostMessageDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.Service.PostMessage(r.Context(), identity, id, channel, dto)
	if err != nil {
		h.Logger.Warn("PostMessage: rejected", "ticket_id", id, "channel", channel, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, msg)
}
