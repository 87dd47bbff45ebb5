// Package api provides HTTP handlers exposing the sitecontent service:
// multipart create/update with an optional image upload, paginated
// listing, deletion, and the CV export download.
package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/shaktatech/sitecontent/pkg/sitecontent"
	"github.com/shaktatech/sitecontent/pkg/sitecontent/docgen"
)

// maxUploadBytes caps multipart memory use; upstream validation owns the
// real size policy.
const maxUploadBytes = 10 << 20

// EntityHandler handles entity CRUD and export endpoints
type EntityHandler struct {
	service  sitecontent.Service
	compiler *docgen.Compiler
}

// NewEntityHandler creates a handler around a service. A nil compiler
// falls back to the member CV profile.
func NewEntityHandler(service sitecontent.Service, compiler *docgen.Compiler) *EntityHandler {
	if compiler == nil {
		compiler = docgen.NewCompiler()
	}
	return &EntityHandler{service: service, compiler: compiler}
}

// Routes returns the router for entity endpoints
func (h *EntityHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/{collection}", func(r chi.Router) {
		r.Get("/", h.ListEntities)
		r.Post("/", h.CreateEntity)
		r.Put("/singleton", h.UpsertSingleton)
		r.Get("/{entityID}", h.GetEntity)
		r.Put("/{entityID}", h.UpdateEntity)
		r.Delete("/{entityID}", h.DeleteEntity)
		r.Get("/{entityID}/export", h.ExportEntity)
	})
	return r
}

// EntityResponse is the wire shape of one entity
type EntityResponse struct {
	ID         string             `json:"id"`
	Collection string             `json:"collection"`
	Fields     sitecontent.Record `json:"fields"`
	ImageURL   string             `json:"image_url,omitempty"`
	CreatedAt  string             `json:"created_at"`
	UpdatedAt  string             `json:"updated_at"`
}

// ListResponse mirrors the catalog API's listing envelope
type ListResponse struct {
	Success     bool             `json:"success"`
	Data        []EntityResponse `json:"data"`
	Total       int64            `json:"total"`
	CurrentPage int              `json:"current_page"`
	PerPage     int              `json:"per_page"`
	TotalPages  int              `json:"total_pages"`
}

func (h *EntityHandler) entityResponse(entity *sitecontent.Entity) EntityResponse {
	return EntityResponse{
		ID:         entity.ID.String(),
		Collection: entity.Collection,
		Fields:     entity.Fields,
		ImageURL:   h.service.AssetURL(entity),
		CreatedAt:  entity.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:  entity.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ListEntities returns one page of a collection
func (h *EntityHandler) ListEntities(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.service.ListEntities(r.Context(), sitecontent.ListEntitiesRequest{
		Collection: collection,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		slog.Error("Failed to list entities", "collection", collection, "error", err)
		http.Error(w, "Failed to fetch records", http.StatusInternalServerError)
		return
	}

	data := make([]EntityResponse, 0, len(result.Items))
	for _, entity := range result.Items {
		data = append(data, h.entityResponse(entity))
	}

	render.JSON(w, r, ListResponse{
		Success:     true,
		Data:        data,
		Total:       result.Pagination.Total,
		CurrentPage: result.Pagination.Page,
		PerPage:     result.Pagination.Limit,
		TotalPages:  result.Pagination.TotalPages,
	})
}

// CreateEntity creates an entity from a multipart form with an optional
// "image" file part
func (h *EntityHandler) CreateEntity(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	fields, upload, err := parseMultipartEntity(r)
	if err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entity, err := h.service.CreateEntity(r.Context(), sitecontent.CreateEntityRequest{
		Collection: collection,
		Fields:     fields,
		Upload:     upload,
	})
	if err != nil {
		slog.Error("Failed to create entity", "collection", collection, "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, sitecontent.ErrInvalidAssetName) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, "Failed to create record", status)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{"success": true, "data": h.entityResponse(entity)})
}

// GetEntity returns a single entity
func (h *EntityHandler) GetEntity(w http.ResponseWriter, r *http.Request) {
	entity, ok := h.loadEntity(w, r)
	if !ok {
		return
	}

	render.JSON(w, r, map[string]interface{}{"success": true, "data": h.entityResponse(entity)})
}

// UpdateEntity applies a multipart update; fields absent from the form
// keep their stored values
func (h *EntityHandler) UpdateEntity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "entityID"))
	if err != nil {
		http.Error(w, "Invalid entity ID", http.StatusBadRequest)
		return
	}

	fields, upload, err := parseMultipartEntity(r)
	if err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entity, err := h.service.UpdateEntity(r.Context(), sitecontent.UpdateEntityRequest{
		ID:         id,
		Fields:     fields,
		Upload:     upload,
		ClearAsset: r.FormValue("remove_image") == "true",
	})
	switch {
	case errors.Is(err, sitecontent.ErrNoChanges):
		render.JSON(w, r, map[string]interface{}{"success": false, "message": "No changes made"})
		return
	case errors.Is(err, sitecontent.ErrEntityNotFound):
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	case err != nil:
		slog.Error("Failed to update entity", "entity_id", id, "error", err)
		http.Error(w, "Failed to update record", http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, map[string]interface{}{"success": true, "data": h.entityResponse(entity)})
}

// DeleteEntity removes an entity and its bound asset
func (h *EntityHandler) DeleteEntity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "entityID"))
	if err != nil {
		http.Error(w, "Invalid entity ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteEntity(r.Context(), id); err != nil {
		if errors.Is(err, sitecontent.ErrEntityNotFound) {
			http.Error(w, "Record not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to delete entity", "entity_id", id, "error", err)
		http.Error(w, "Failed to delete record", http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, map[string]interface{}{"success": true, "message": "Record deleted successfully"})
}

// UpsertSingleton updates a settings-style single-row collection,
// creating the row on first write
func (h *EntityHandler) UpsertSingleton(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	fields, upload, err := parseMultipartEntity(r)
	if err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entity, err := h.service.UpsertSingleton(r.Context(), sitecontent.UpsertSingletonRequest{
		Collection: collection,
		Fields:     fields,
		Upload:     upload,
	})
	if err != nil {
		slog.Error("Failed to upsert singleton", "collection", collection, "error", err)
		http.Error(w, "Failed to save record", http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, map[string]interface{}{"success": true, "data": h.entityResponse(entity)})
}

// ExportEntity compiles the entity's record into the CV document and
// serves it as a plain-text download
func (h *EntityHandler) ExportEntity(w http.ResponseWriter, r *http.Request) {
	entity, ok := h.loadEntity(w, r)
	if !ok {
		return
	}

	doc, err := h.compiler.Compile(entity.Fields)
	if err != nil {
		slog.Error("Failed to compile document", "entity_id", entity.ID, "error", err)
		http.Error(w, "Failed to generate export", http.StatusInternalServerError)
		return
	}

	filename := docgen.ExportFilename(entity.Fields.Get(sitecontent.FieldName), "txt")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	io.WriteString(w, docgen.RenderText(doc))
}

func (h *EntityHandler) loadEntity(w http.ResponseWriter, r *http.Request) (*sitecontent.Entity, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "entityID"))
	if err != nil {
		http.Error(w, "Invalid entity ID", http.StatusBadRequest)
		return nil, false
	}

	entity, err := h.service.GetEntity(r.Context(), id)
	if err != nil {
		if errors.Is(err, sitecontent.ErrEntityNotFound) {
			http.Error(w, "Record not found", http.StatusNotFound)
			return nil, false
		}
		slog.Error("Failed to load entity", "entity_id", id, "error", err)
		http.Error(w, "Failed to retrieve record", http.StatusInternalServerError)
		return nil, false
	}

	return entity, true
}

// parseMultipartEntity extracts record fields and the optional "image"
// file from a multipart form.
func parseMultipartEntity(r *http.Request) (sitecontent.Record, *sitecontent.AssetUpload, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, err
	}

	fields := make(sitecontent.Record)
	for key, values := range r.MultipartForm.Value {
		if key == "remove_image" {
			continue
		}
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	var upload *sitecontent.AssetUpload
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, nil, err
		}
		upload = &sitecontent.AssetUpload{
			Data:      data,
			Extension: strings.TrimPrefix(filepath.Ext(header.Filename), "."),
		}
	}

	return fields, upload, nil
}
