package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/edustack/lessonlab/internal/config"
	"github.com/edustack/lessonlab/internal/documents"
	"github.com/edustack/lessonlab/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// System accepts uploaded documents and processes them asynchronously:
// PDFs are validated, rasterized to page images, optimized, and
// persisted; the document record moves from processing to completed or
// failed. Non-PDF documents complete immediately with no pages.
type System interface {
	documents.Ingestor

	// Start launches the worker pool. Workers run until Close is called
	// or ctx is cancelled.
	Start(ctx context.Context)

	// Close stops accepting work, drains the queue, and waits for
	// in-flight documents to finish.
	Close() error
}

type system struct {
	gateway documents.System
	storage storage.System
	config  *config.PipelineConfig
	logger  *slog.Logger

	queue chan *documents.Document
	group *errgroup.Group

	mu       sync.Mutex
	inflight map[uuid.UUID]struct{}
	closed   bool
}

// NewSystem creates a pipeline backed by the document persistence
// gateway and the blob store.
func NewSystem(gateway documents.System, store storage.System, cfg *config.PipelineConfig, logger *slog.Logger) System {
	return &system{
		gateway:  gateway,
		storage:  store,
		config:   cfg,
		logger:   logger.With("component", "pipeline"),
		queue:    make(chan *documents.Document, cfg.QueueSize),
		inflight: make(map[uuid.UUID]struct{}),
	}
}

// process runs one document through the pipeline. Any validation,
// rasterization, or persistence error marks the document failed and
// removes its pages directory.
func (s *system) process(ctx context.Context, doc *documents.Document) {
	ctx, cancel := context.WithTimeout(ctx, s.config.TimeoutDuration())
	defer cancel()

	if !doc.IsPDF() {
		if err := s.gateway.Complete(ctx, doc.ID, 0); err != nil {
			s.logger.Error("failed to complete non-PDF document", "document_id", doc.ID, "error", err)
			s.fail(doc.ID)
		}
		return
	}

	if err := s.processPDF(ctx, doc); err != nil {
		s.logger.Error("document processing failed", "document_id", doc.ID, "error", err)
		s.fail(doc.ID)
		return
	}

	s.logger.Info("document processing completed", "document_id", doc.ID)
}

func (s *system) processPDF(ctx context.Context, doc *documents.Document) error {
	docID := doc.ID.String()

	pdfPath, err := s.storage.Path(doc.FilePath)
	if err != nil {
		return err
	}

	pagesKey := storage.PagesPrefix + "/" + docID
	pagesDir, err := s.storage.Path(pagesKey)
	if err != nil {
		return err
	}

	if _, ok := probePDF(pdfPath); !ok {
		return ErrInvalidPDF
	}

	if err := rasterize(ctx, pdfPath, pagesDir, docID, s.config.Quality); err != nil {
		return err
	}

	pages, err := collectPages(pagesDir, docID, s.config.MaxDimension, s.config.OptimizeQuality, s.logger)
	if err != nil {
		return err
	}

	if err := s.gateway.Complete(ctx, doc.ID, len(pages)); err != nil {
		return err
	}

	for _, page := range pages {
		record := documents.Page{
			DocumentID: doc.ID,
			PageNumber: page.PageNumber,
			ImagePath:  pagesKey + "/" + page.FileName,
			Width:      page.Width,
			Height:     page.Height,
		}
		if err := s.gateway.InsertPage(ctx, record); err != nil {
			return err
		}
	}

	// Thumbnail generation never fails the document.
	if len(pages) > 0 {
		first := filepath.Join(pagesDir, pages[0].FileName)
		if err := s.generateThumbnail(ctx, docID, first); err != nil {
			s.logger.Warn("thumbnail generation failed", "document_id", doc.ID, "error", err)
		}
	}

	return nil
}

// fail marks the document failed and removes its pages directory.
// Cleanup errors are logged; the failed status is what readers see.
func (s *system) fail(id uuid.UUID) {
	ctx := context.Background()

	if err := s.gateway.MarkFailed(ctx, id); err != nil {
		s.logger.Error("failed to mark document as failed", "document_id", id, "error", err)
	}

	pagesKey := storage.PagesPrefix + "/" + id.String()
	if err := s.storage.RemoveAll(ctx, pagesKey); err != nil {
		s.logger.Warn("failed to remove pages directory", "document_id", id, "error", err)
	}
}
