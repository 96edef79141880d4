// Package pipeline implements the document ingestion pipeline: PDF
// validation, page rasterization, image optimization, thumbnail
// generation, and the status state machine that sequences them.
package pipeline

import "errors"

// Pipeline errors.
var (
	// ErrInvalidPDF indicates the uploaded file could not be parsed as a PDF.
	ErrInvalidPDF = errors.New("invalid pdf file")

	// ErrConversionFailed indicates rasterization failed for the whole document.
	ErrConversionFailed = errors.New("pdf conversion failed")

	// ErrAlreadyProcessing indicates the document is already queued or running.
	// Duplicate concurrent processing of one document id is rejected.
	ErrAlreadyProcessing = errors.New("document is already being processed")

	// ErrQueueFull indicates the ingestion queue is at capacity.
	ErrQueueFull = errors.New("ingestion queue is full")

	// ErrClosed indicates the orchestrator has been shut down.
	ErrClosed = errors.New("ingestion pipeline is closed")
)
