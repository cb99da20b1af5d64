package legacy

import (
	"context"
	"net/http"

	"github.com/fabianopolone123/ERP-TI/internal/transport"
)

type ImporterAPI interface {
	Import(ctx context.Context, sourcePath string) (Result, error)
}

type ImportDTO struct {
	SourcePath string `json:"source_path"`
}

type Handler struct {
	*transport.BaseHandler
	Importer ImporterAPI
}

func NewHandler(baseHandler *transport.BaseHandler, importer ImporterAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Importer:    importer,
	}
}

// ImportTickets handles POST /tickets/import. An empty body uses the configured source.
func (h *Handler) ImportTickets(w http.ResponseWriter, r *http.Request) {
	var dto ImportDTO
	if r.ContentLength != 0 {
		if err := h.DecodeJSON(r, &dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	res, err := h.Importer.Import(r.Context(), dto.SourcePath)
	if err != nil {
		h.Logger.Error("ImportTickets: import failed", "error", err, "imported", res.Imported, "skipped", res.Skipped)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}
