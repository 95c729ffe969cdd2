package handlers

import (
	"net/http"

	"github.com/tagfiler/tagfiler/internal/browse"
)

// BrowseHandler serves directory listing endpoints.
type BrowseHandler struct {
	lister *browse.Lister
}

// NewBrowseHandler creates a new BrowseHandler.
func NewBrowseHandler(lister *browse.Lister) *BrowseHandler {
	return &BrowseHandler{lister: lister}
}

// List handles GET /api/v1/browse?path=.
// Returns the visible contents of the directory at path.
func (h *BrowseHandler) List(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		BadRequest(w, "Query parameter 'path' is required")
		return
	}

	info, err := h.lister.List(path)
	if err != nil {
		writeOperationError(w, err)
		return
	}
	WriteJSONOK(w, info)
}

// Roots handles GET /api/v1/browse/roots.
// Lists the available drive roots on platforms that have them.
func (h *BrowseHandler) Roots(w http.ResponseWriter, r *http.Request) {
	info, err := h.lister.ListRoots()
	if err != nil {
		writeOperationError(w, err)
		return
	}
	WriteJSONOK(w, info)
}

// ExistsResponse is the response body for GET /api/v1/browse/exists.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// Exists handles GET /api/v1/browse/exists?path=.
// Reports whether path names an existing directory. Never fails.
func (h *BrowseHandler) Exists(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		BadRequest(w, "Query parameter 'path' is required")
		return
	}
	WriteJSONOK(w, ExistsResponse{Exists: h.lister.ExistsAsDirectory(path)})
}

// HomeResponse is the response body for GET /api/v1/browse/home.
type HomeResponse struct {
	Path string `json:"path"`
}

// Home handles GET /api/v1/browse/home.
// Returns the configured or OS-reported home directory.
func (h *BrowseHandler) Home(w http.ResponseWriter, r *http.Request) {
	home, err := h.lister.HomeDir()
	if err != nil {
		InternalServerError(w, err.Error())
		return
	}
	WriteJSONOK(w, HomeResponse{Path: home})
}
