package pipeline

import (
	"context"

	"github.com/edustack/lessonlab/internal/documents"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Enqueue submits a document for asynchronous processing. A document
// already queued or in flight is rejected with ErrAlreadyProcessing; a
// full queue rejects with ErrQueueFull. The send happens under the same
// mutex Close takes before closing the queue, so Enqueue can never send
// on a closed channel.
func (s *system) Enqueue(doc *documents.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if _, exists := s.inflight[doc.ID]; exists {
		return ErrAlreadyProcessing
	}

	select {
	case s.queue <- doc:
		s.inflight[doc.ID] = struct{}{}
		s.logger.Info("document queued", "document_id", doc.ID, "file_type", doc.FileType)
		return nil
	default:
		return ErrQueueFull
	}
}

// Start launches the configured number of workers. Workers drain the
// queue until Close closes it; cancelling ctx aborts the document
// currently being processed rather than abandoning queued ones.
func (s *system) Start(ctx context.Context) {
	s.group = &errgroup.Group{}

	for i := 0; i < s.config.Workers; i++ {
		s.group.Go(func() error {
			s.work(ctx)
			return nil
		})
	}

	s.logger.Info("pipeline started", "workers", s.config.Workers, "queue_size", s.config.QueueSize)
}

func (s *system) work(ctx context.Context) {
	for doc := range s.queue {
		s.process(ctx, doc)
		s.release(doc.ID)
	}
}

// Close stops accepting new documents and waits for the workers to
// drain the queue. Documents still queued are processed before Close
// returns; none are left stranded in the processing status.
func (s *system) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	if s.group != nil {
		return s.group.Wait()
	}
	return nil
}

func (s *system) release(id uuid.UUID) {
	s.mu.Lock()
	delete(s.inflight, id)
	s.mu.Unlock()
}
