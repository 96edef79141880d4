package documents

import (
	"context"

	"github.com/edustack/lessonlab/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the document management operations. Implementations
// handle file storage and database persistence. The status-mutation and
// page-insertion operations form the persistence gateway used by the
// ingestion pipeline.
type System interface {
	ListByClass(ctx context.Context, classID uuid.UUID, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error)
	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// FileData returns the original file bytes and metadata for download.
	FileData(ctx context.Context, id uuid.UUID) ([]byte, *Document, error)

	// Pages returns the rasterized page records in ascending page order.
	Pages(ctx context.Context, id uuid.UUID) ([]Page, error)

	// Complete records the total page count and transitions the document
	// to the completed status.
	Complete(ctx context.Context, id uuid.UUID, totalPages int) error

	// MarkFailed transitions the document to the failed status.
	MarkFailed(ctx context.Context, id uuid.UUID) error

	// InsertPage persists one page record. The pipeline calls this in
	// ascending page-number order.
	InsertPage(ctx context.Context, page Page) error

	// LogAccess records a view or download in the access log.
	// Failures are logged and swallowed; auditing never blocks reads.
	LogAccess(ctx context.Context, id uuid.UUID, userID *uuid.UUID, access AccessType, remoteAddr, userAgent string)
}
