package folder

import (
	"context"
	"net/http"

	"github.com/fabianopolone123/ERP-TI/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]*Folder, error)
	Add(ctx context.Context, dto AddFolderDTO) (*Folder, error)
	Remove(ctx context.Context, dto RemoveFoldersDTO) (int64, error)
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

func (h *Handler) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("ListFolders: failed to list folders", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, FoldersResponse{Folders: folders})
}

func (h *Handler) AddFolder(w http.ResponseWriter, r *http.Request) {
	var dto AddFolderDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := h.Service.Add(r.Context(), dto)
	if err != nil {
		h.Logger.Warn("AddFolder: rejected", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, f)
}

// RemoveFolders handles POST /folders/remove with a list of names.
func (h *Handler) RemoveFolders(w http.ResponseWriter, r *http.Request) {
	var dto RemoveFoldersDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	removed, err := h.Service.Remove(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}
