package documents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/edustack/lessonlab/internal/classes"
	"github.com/edustack/lessonlab/internal/storage"
	"github.com/edustack/lessonlab/internal/users"
	"github.com/edustack/lessonlab/pkg/handlers"
	"github.com/edustack/lessonlab/pkg/pagination"
	"github.com/edustack/lessonlab/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP endpoints for document operations.
type Handler struct {
	sys           System
	classes       classes.System
	users         users.System
	ingestor      Ingestor
	storage       storage.System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// NewHandler creates a document handler with the specified configuration.
func NewHandler(
	sys System,
	classes classes.System,
	users users.System,
	ingestor Ingestor,
	storage storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		sys:           sys,
		classes:       classes,
		users:         users,
		ingestor:      ingestor,
		storage:       storage,
		logger:        logger.With("handler", "documents"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the document endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/documents",
		Description: "Document upload, ingestion, and retrieval",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Upload},
			{Method: "GET", Pattern: "/class/{classId}", Handler: h.ListByClass},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/{id}/download", Handler: h.Download},
			{Method: "GET", Pattern: "/{id}/thumbnail", Handler: h.Thumbnail},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// Upload accepts a multipart document upload, creates the document record
// in the processing status, and enqueues it for ingestion. Validation
// failures leave no file and no record behind.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	// Stop reading an oversized body instead of spooling it to disk
	// before the size check rejects it.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+UploadFormOverhead)

	upload, err := ParseUpload(r, h.maxUploadSize)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	cls, err := h.classes.Find(r.Context(), upload.ClassID)
	if err != nil {
		if errors.Is(err, classes.ErrNotFound) {
			err = ErrClassNotFound
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var uploader *users.User
	if upload.UploadedBy != nil {
		uploader, err = h.users.Find(r.Context(), *upload.UploadedBy)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				err = ErrUserNotFound
			}
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
	}

	doc, err := h.sys.Create(r.Context(), CreateCommand{
		Title:            upload.Title,
		Description:      upload.Description,
		OriginalFilename: upload.OriginalFilename,
		FilePath:         upload.StorageKey,
		FileSize:         upload.Size,
		FileType:         upload.Extension,
		MimeType:         upload.MimeType,
		ClassID:          upload.ClassID,
		UploadedBy:       upload.UploadedBy,
		LessonDate:       upload.LessonDate,
		LessonTopic:      upload.LessonTopic,
		Data:             upload.Data,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	doc.ClassName = cls.Name
	if uploader != nil {
		doc.UploadedByName = &uploader.FullName
	}

	if err := h.ingestor.Enqueue(doc); err != nil {
		// The record exists; ingestion state is reported through reads.
		h.logger.Error("enqueue failed", "id", doc.ID, "error", err)
	}

	handlers.RespondJSON(w, http.StatusCreated, doc)
}

func (h *Handler) ListByClass(w http.ResponseWriter, r *http.Request) {
	classID, err := uuid.Parse(r.PathValue("classId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cls, err := h.classes.Find(r.Context(), classID)
	if err != nil {
		if errors.Is(err, classes.ErrNotFound) {
			err = ErrClassNotFound
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.ListByClass(r.Context(), classID, page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	names := map[uuid.UUID]*string{}
	for i := range result.Data {
		result.Data[i].ClassName = cls.Name
		result.Data[i].UploadedByName = h.uploaderName(r.Context(), result.Data[i].UploadedBy, names)
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// uploaderName resolves an uploader's display name, memoizing lookups so a
// page of documents from one uploader costs a single query. Unknown or
// anonymous uploaders resolve to nil.
func (h *Handler) uploaderName(ctx context.Context, id *uuid.UUID, cache map[uuid.UUID]*string) *string {
	if id == nil {
		return nil
	}
	if name, ok := cache[*id]; ok {
		return name
	}
	var name *string
	if usr, err := h.users.Find(ctx, *id); err == nil {
		name = &usr.FullName
	}
	cache[*id] = name
	return name
}

// Find returns the document and, for PDFs, its rasterized pages in
// ascending page order.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	doc, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	pages := []Page{}
	if doc.IsPDF() {
		pages, err = h.sys.Pages(r.Context(), id)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
			return
		}
	}

	if cls, err := h.classes.Find(r.Context(), doc.ClassID); err == nil {
		doc.ClassName = cls.Name
	}
	if doc.UploadedBy != nil {
		if usr, err := h.users.Find(r.Context(), *doc.UploadedBy); err == nil {
			doc.UploadedByName = &usr.FullName
		}
	}

	h.sys.LogAccess(r.Context(), id, doc.UploadedBy, AccessView, r.RemoteAddr, r.UserAgent())

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"document": doc,
		"pages":    pages,
	})
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	data, doc, err := h.sys.FileData(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.sys.LogAccess(r.Context(), id, doc.UploadedBy, AccessDownload, r.RemoteAddr, r.UserAgent())

	w.Header().Set("Content-Type", doc.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.OriginalFilename))
	w.Write(data)
}

// Thumbnail serves the document's preview image. Thumbnails are derived
// from the first rasterized page and only exist for completed PDFs.
func (h *Handler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	key := fmt.Sprintf("%s/thumb_%s.jpeg", storage.ThumbnailsPrefix, id)
	data, err := h.storage.Retrieve(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Write(data)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
