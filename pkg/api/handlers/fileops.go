package handlers

import (
	"net/http"

	"github.com/tagfiler/tagfiler/internal/fileops"
)

// FileOpsHandler serves the batch file-operation endpoints.
type FileOpsHandler struct {
	coordinator *fileops.Coordinator
}

// NewFileOpsHandler creates a new FileOpsHandler.
func NewFileOpsHandler(coordinator *fileops.Coordinator) *FileOpsHandler {
	return &FileOpsHandler{coordinator: coordinator}
}

// BatchTargetRequest is the request body for move and copy.
type BatchTargetRequest struct {
	Paths     []string `json:"paths"`
	TargetDir string   `json:"target_dir"`
}

// RenameRequest is the request body for rename.
type RenameRequest struct {
	OldPath string `json:"old_path"`
	NewName string `json:"new_name"`
}

// DeleteRequest is the request body for delete.
type DeleteRequest struct {
	Paths []string `json:"paths"`
}

// AttachTagsRequest is the request body for tag attachment.
type AttachTagsRequest struct {
	Paths []string `json:"paths"`
	TagID uint     `json:"tag_id"`
}

// Move handles POST /api/v1/files/move.
func (h *FileOpsHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req BatchTargetRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if len(req.Paths) == 0 {
		BadRequest(w, "At least one path is required")
		return
	}
	if req.TargetDir == "" {
		BadRequest(w, "Target directory is required")
		return
	}

	if err := h.coordinator.Move(r.Context(), req.Paths, req.TargetDir); err != nil {
		writeOperationError(w, err)
		return
	}
	WriteNoContent(w)
}

// Copy handles POST /api/v1/files/copy.
func (h *FileOpsHandler) Copy(w http.ResponseWriter, r *http.Request) {
	var req BatchTargetRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if len(req.Paths) == 0 {
		BadRequest(w, "At least one path is required")
		return
	}
	if req.TargetDir == "" {
		BadRequest(w, "Target directory is required")
		return
	}

	if err := h.coordinator.Copy(r.Context(), req.Paths, req.TargetDir); err != nil {
		writeOperationError(w, err)
		return
	}
	WriteNoContent(w)
}

// Rename handles POST /api/v1/files/rename.
func (h *FileOpsHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req RenameRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.OldPath == "" {
		BadRequest(w, "Old path is required")
		return
	}

	if err := h.coordinator.Rename(r.Context(), req.OldPath, req.NewName); err != nil {
		writeOperationError(w, err)
		return
	}
	WriteNoContent(w)
}

// Delete handles POST /api/v1/files/delete.
func (h *FileOpsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if len(req.Paths) == 0 {
		BadRequest(w, "At least one path is required")
		return
	}

	if err := h.coordinator.Delete(r.Context(), req.Paths); err != nil {
		writeOperationError(w, err)
		return
	}
	WriteNoContent(w)
}

// AttachTags handles POST /api/v1/files/tags.
func (h *FileOpsHandler) AttachTags(w http.ResponseWriter, r *http.Request) {
	var req AttachTagsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if len(req.Paths) == 0 {
		BadRequest(w, "At least one path is required")
		return
	}
	if req.TagID == 0 {
		BadRequest(w, "Tag id is required")
		return
	}

	if err := h.coordinator.AttachTags(r.Context(), req.Paths, req.TagID); err != nil {
		writeOperationError(w, err)
		return
	}
	WriteNoContent(w)
}
