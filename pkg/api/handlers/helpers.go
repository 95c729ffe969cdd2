package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tagfiler/tagfiler/internal/browse"
	"github.com/tagfiler/tagfiler/internal/fileops"
	"github.com/tagfiler/tagfiler/pkg/metastore/models"
)

// decodeJSONBody decodes a JSON request body, writing a 400 on failure.
// Returns true if decoding succeeded.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "Invalid request body")
		return false
	}
	return true
}

// writeOperationError maps coordinator and store errors onto problem
// responses. Every operation returns a single error payload; there is no
// partial-success shape.
func writeOperationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, fileops.ErrNotFound),
		errors.Is(err, browse.ErrNotFound),
		errors.Is(err, models.ErrTagNotFound),
		errors.Is(err, models.ErrFileRecordNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, fileops.ErrAlreadyExists),
		errors.Is(err, models.ErrDuplicateTag):
		Conflict(w, err.Error())
	case errors.Is(err, fileops.ErrNotADirectory),
		errors.Is(err, browse.ErrNotADirectory),
		errors.Is(err, fileops.ErrInvalidName),
		errors.Is(err, models.ErrEmptyTagName),
		errors.Is(err, models.ErrInvalidFileType):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, browse.ErrRootsUnsupported):
		NotImplemented(w, err.Error())
	default:
		InternalServerError(w, err.Error())
	}
}
