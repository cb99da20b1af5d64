package registry

import (
	"context"
	"net/http"

	errors "github.com/fabianopolone123/ERP-TI/internal"
	"github.com/fabianopolone123/ERP-TI/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Modules() []Module
	Module(key string) (*Module, error)
	Insert(ctx context.Context, key string, input map[string]string) (Row, error)
	List(ctx context.Context, key string) ([]Row, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	// IndexPath is where unknown module keys are redirected on reads.
	IndexPath string
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, indexPath string) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		IndexPath:   indexPath,
	}
}

func (h *Handler) ListModules(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, ModulesResponse{Modules: h.Service.Modules()})
}

// ListRecords handles GET /records/{module}. Unknown modules fall back to the index.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "module")
	m, err := h.Service.Module(key)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeNotFound) && h.IndexPath != "" {
			h.Logger.Debug("ListRecords: unknown module, redirecting", "module", key)
			http.Redirect(w, r, h.IndexPath, http.StatusSeeOther)
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	rows, err := h.Service.List(r.Context(), m.Key)
	if err != nil {
		h.Logger.Error("ListRecords: failed to list records", "module", key, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, RecordsResponse{Module: m, Records: rows})
}

func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "module")

	var input map[string]string
	if err := h.DecodeJSON(r, &input); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	row, err := h.Service.Insert(r.Context(), key, input)
	if err != nil {
		h.Logger.Warn("CreateRecord: rejected", "module", key, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, row)
}
