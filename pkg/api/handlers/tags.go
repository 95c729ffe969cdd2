package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tagfiler/tagfiler/pkg/metastore/models"
	"github.com/tagfiler/tagfiler/pkg/metastore/store"
	"github.com/tagfiler/tagfiler/pkg/metrics"
)

// TagHandler serves the tag CRUD endpoints.
type TagHandler struct {
	store   *store.Store
	metrics *metrics.Metrics
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(st *store.Store, m *metrics.Metrics) *TagHandler {
	return &TagHandler{store: st, metrics: m}
}

// CreateTagRequest is the request body for POST /api/v1/tags.
type CreateTagRequest struct {
	Name string `json:"name"`
}

// ModifyTagRequest is the request body for PATCH /api/v1/tags/{id}.
//
// color, font_color and parent_id are tri-state: a key absent from the
// body leaves the column unchanged, an explicit null clears it, and a
// value sets it. The distinction is recovered in UnmarshalJSON, since
// encoding/json alone collapses "absent" and "null".
type ModifyTagRequest struct {
	Name      *string
	Color     models.Field[string]
	FontColor models.Field[string]
	ParentID  models.Field[uint]
}

// UnmarshalJSON decodes the tri-state fields by first inspecting which
// keys are present in the raw body.
func (req *ModifyTagRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["name"]; ok {
		if err := json.Unmarshal(v, &req.Name); err != nil {
			return err
		}
	}
	if v, ok := raw["color"]; ok {
		f, err := decodeTriState[string](v)
		if err != nil {
			return err
		}
		req.Color = f
	}
	if v, ok := raw["font_color"]; ok {
		f, err := decodeTriState[string](v)
		if err != nil {
			return err
		}
		req.FontColor = f
	}
	if v, ok := raw["parent_id"]; ok {
		f, err := decodeTriState[uint](v)
		if err != nil {
			return err
		}
		req.ParentID = f
	}
	return nil
}

// decodeTriState turns a present JSON value into Null (literal null) or
// Set (anything else).
func decodeTriState[T any](data json.RawMessage) (models.Field[T], error) {
	if string(data) == "null" {
		return models.Null[T](), nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return models.Field[T]{}, err
	}
	return models.Set(v), nil
}

// List handles GET /api/v1/tags?limit=&order=.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	order := models.OrderMostUsed
	if o := r.URL.Query().Get("order"); o != "" {
		order = models.TagOrder(o)
		if !order.IsValid() {
			BadRequest(w, "Order must be most_used or recently_used")
			return
		}
	}

	tags, err := h.store.ListTags(r.Context(), limit, order)
	if err != nil {
		writeOperationError(w, err)
		return
	}
	WriteJSONOK(w, tags)
}

// Search handles GET /api/v1/tags/search?q=&limit=.
func (h *TagHandler) Search(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")
	if keyword == "" {
		BadRequest(w, "Query parameter 'q' is required")
		return
	}
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	tags, err := h.store.SearchTags(r.Context(), keyword, limit)
	if err != nil {
		writeOperationError(w, err)
		return
	}
	WriteJSONOK(w, tags)
}

// Create handles POST /api/v1/tags.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	tag, err := h.store.CreateTag(r.Context(), req.Name)
	if err != nil {
		h.metrics.ObserveTagOperation("create", metrics.StatusError)
		writeOperationError(w, err)
		return
	}
	h.metrics.ObserveTagOperation("create", metrics.StatusOK)
	WriteJSONCreated(w, tag)
}

// Modify handles PATCH /api/v1/tags/{id}.
func (h *TagHandler) Modify(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		BadRequest(w, "Tag id must be a positive integer")
		return
	}

	var req ModifyTagRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	tag, err := h.store.ModifyTag(r.Context(), uint(id), models.TagUpdate{
		Name:      req.Name,
		Color:     req.Color,
		FontColor: req.FontColor,
		ParentID:  req.ParentID,
	})
	if err != nil {
		h.metrics.ObserveTagOperation("modify", metrics.StatusError)
		writeOperationError(w, err)
		return
	}
	h.metrics.ObserveTagOperation("modify", metrics.StatusOK)
	WriteJSONOK(w, tag)
}

// parseLimit reads the optional limit query parameter. Zero means "use the
// store default".
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		BadRequest(w, "Limit must be a non-negative integer")
		return 0, false
	}
	return limit, true
}
