package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/edustack/lessonlab/internal/storage"
	"github.com/edustack/lessonlab/pkg/pagination"
	"github.com/edustack/lessonlab/pkg/query"
	"github.com/edustack/lessonlab/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a document repository with database and file storage integration.
func New(db *sql.DB, storage storage.System, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		storage:    storage,
		logger:     logger.With("system", "documents"),
		pagination: pagination,
	}
}

func (r *repo) ListByClass(ctx context.Context, classID uuid.UUID, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("ClassID", classID).
		WhereSearch(page.Search, "Title", "OriginalFilename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	docs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	doc, err := repository.QueryOne(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &doc, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Document, error) {
	if err := r.storage.Store(ctx, cmd.FilePath, cmd.Data); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	q := `INSERT INTO documents(id, title, description, original_filename, file_path,
			file_size, file_type, mime_type, class_id, uploaded_by, lesson_date,
			lesson_topic, status)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, title, description, original_filename, file_path, file_size,
			file_type, mime_type, class_id, uploaded_by, lesson_date, lesson_topic,
			total_pages, status, created_at, updated_at`

	doc, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			uuid.New(), cmd.Title, cmd.Description, cmd.OriginalFilename, cmd.FilePath,
			cmd.FileSize, cmd.FileType, cmd.MimeType, cmd.ClassID, cmd.UploadedBy,
			cmd.LessonDate, cmd.LessonTopic, StatusProcessing,
		}, scanDocument)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, cmd.FilePath); delErr != nil {
			r.logger.Error("cleanup failed after db error", "file_path", cmd.FilePath, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document created",
		"id", doc.ID,
		"title", doc.Title,
		"file_path", doc.FilePath,
		"status", doc.Status,
	)
	return &doc, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := r.Find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	q := `DELETE FROM documents WHERE id = $1`
	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, id)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.storage.Delete(ctx, doc.FilePath); err != nil {
		r.logger.Warn("failed to delete original file", "file_path", doc.FilePath, "error", err)
	}

	if doc.IsPDF() {
		pagesKey := fmt.Sprintf("%s/%s", storage.PagesPrefix, doc.ID)
		if err := r.storage.RemoveAll(ctx, pagesKey); err != nil {
			r.logger.Warn("failed to delete page images", "key", pagesKey, "error", err)
		}
	}

	thumbKey := fmt.Sprintf("%s/thumb_%s.jpeg", storage.ThumbnailsPrefix, doc.ID)
	if err := r.storage.Delete(ctx, thumbKey); err != nil {
		r.logger.Warn("failed to delete thumbnail", "key", thumbKey, "error", err)
	}

	r.logger.Info("document deleted", "id", id)
	return nil
}

func (r *repo) FileData(ctx context.Context, id uuid.UUID) ([]byte, *Document, error) {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := r.storage.Retrieve(ctx, doc.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrFileMissing
		}
		return nil, nil, fmt.Errorf("retrieve file: %w", err)
	}

	return data, doc, nil
}

func (r *repo) Pages(ctx context.Context, id uuid.UUID) ([]Page, error) {
	q, args := query.
		NewBuilder(pageProjection, query.SortField{Field: "PageNumber"}).
		WhereEquals("DocumentID", id).
		BuildList()

	pages, err := repository.QueryMany(ctx, r.db, q, args, scanPage)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	return pages, nil
}

func (r *repo) Complete(ctx context.Context, id uuid.UUID, totalPages int) error {
	q := `UPDATE documents SET total_pages = $1, status = $2, updated_at = NOW() WHERE id = $3`
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, totalPages, StatusCompleted, id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document completed", "id", id, "total_pages", totalPages)
	return nil
}

func (r *repo) MarkFailed(ctx context.Context, id uuid.UUID) error {
	q := `UPDATE documents SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, StatusFailed, id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Warn("document failed", "id", id)
	return nil
}

func (r *repo) InsertPage(ctx context.Context, page Page) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO document_pages(document_id, page_number, image_path, image_width, image_height)
		VALUES($1, $2, $3, $4, $5)`,
		page.DocumentID, page.PageNumber, page.ImagePath, page.Width, page.Height,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (r *repo) LogAccess(ctx context.Context, id uuid.UUID, userID *uuid.UUID, access AccessType, remoteAddr, userAgent string) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO document_access_logs(document_id, user_id, access_type, ip_address, user_agent)
		VALUES($1, $2, $3, $4, $5)`,
		id, userID, access, remoteAddr, userAgent,
	)
	if err != nil {
		r.logger.Warn("access log insert failed", "document_id", id, "error", err)
	}
}
