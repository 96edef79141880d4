// Package documents provides document upload, storage, and management for
// classroom learning material. Uploaded PDFs are handed to the ingestion
// pipeline, which rasterizes pages for the whiteboard viewer and tracks
// processing status on the document record.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks a document through the ingestion pipeline.
type Status string

// Document status values. Processing is the initial state; Completed and
// Failed are terminal.
const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Document represents one uploaded learning artifact.
type Document struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Description      *string    `json:"description,omitempty"`
	OriginalFilename string     `json:"original_filename"`
	FilePath         string     `json:"file_path"`
	FileSize         int64      `json:"file_size"`
	FileType         string     `json:"file_type"`
	MimeType         string     `json:"mime_type"`
	ClassID          uuid.UUID  `json:"class_id"`
	ClassName        string     `json:"class_name,omitempty"`
	UploadedBy       *uuid.UUID `json:"uploaded_by,omitempty"`
	UploadedByName   *string    `json:"uploaded_by_name,omitempty"`
	LessonDate       time.Time  `json:"lesson_date"`
	LessonTopic      *string    `json:"lesson_topic,omitempty"`
	TotalPages       int        `json:"total_pages"`
	Status           Status     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// IsPDF reports whether the document was uploaded as a PDF and is
// therefore subject to rasterization.
func (d *Document) IsPDF() bool {
	return d.FileType == ".pdf"
}

// Page represents one rasterized page image belonging to a document.
// Page numbers are contiguous starting at 1.
type Page struct {
	DocumentID uuid.UUID `json:"document_id"`
	PageNumber int       `json:"page_number"`
	ImagePath  string    `json:"image_path"`
	Width      int       `json:"image_width"`
	Height     int       `json:"image_height"`
}

// CreateCommand contains the data required to create a document record.
// FilePath references the already-stored upload.
type CreateCommand struct {
	Title            string
	Description      *string
	OriginalFilename string
	FilePath         string
	FileSize         int64
	FileType         string
	MimeType         string
	ClassID          uuid.UUID
	UploadedBy       *uuid.UUID
	LessonDate       time.Time
	LessonTopic      *string
	Data             []byte
}

// AccessType identifies how a document was accessed for the audit log.
type AccessType string

// Access log entry types.
const (
	AccessView     AccessType = "view"
	AccessDownload AccessType = "download"
)

// Ingestor accepts documents for asynchronous pipeline processing.
// Implemented by the pipeline orchestrator.
type Ingestor interface {
	Enqueue(doc *Document) error
}
