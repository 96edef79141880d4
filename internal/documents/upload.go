package documents

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/edustack/lessonlab/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// UploadFileField is the multipart form field the document file is read from.
const UploadFileField = "file"

// UploadFormOverhead is the allowance for multipart boundaries and
// metadata fields on top of the file size ceiling when capping the
// request body.
const UploadFormOverhead = 64 << 10

// Content types accepted for upload, paired with the extension allow-list.
var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".ppt":  true,
	".pptx": true,
	".xls":  true,
	".xlsx": true,
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// Metadata holds the validated form fields submitted alongside the file.
type Metadata struct {
	Title       string  `validate:"required,min=1,max=255"`
	Description *string `validate:"omitempty,max=1000"`
	ClassID     string  `validate:"required,uuid4"`
	LessonDate  string  `validate:"required,datetime=2006-01-02"`
	LessonTopic *string `validate:"omitempty,max=255"`
	UploadedBy  *string `validate:"omitempty,uuid4"`
}

// Upload is a validated, not-yet-persisted document upload.
type Upload struct {
	Title            string
	Description      *string
	ClassID          uuid.UUID
	UploadedBy       *uuid.UUID
	LessonDate       time.Time
	LessonTopic      *string
	OriginalFilename string
	StorageKey       string
	Size             int64
	MimeType         string
	Extension        string
	Data             []byte
}

// ParseUpload reads and validates a multipart upload request. Exactly one
// file is accepted, under the "file" field, matching both the MIME and
// extension allow-lists and within maxSize bytes. Nothing is persisted;
// the file contents are returned in memory for the caller to store.
func ParseUpload(r *http.Request, maxSize int64) (*Upload, error) {
	if err := r.ParseMultipartForm(maxSize); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileTooLarge, err)
	}

	header, err := singleFile(r.MultipartForm)
	if err != nil {
		return nil, err
	}

	if header.Size > maxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	mimeType := header.Header.Get("Content-Type")

	if !allowedMimeTypes[mimeType] || !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, ext, mimeType)
	}

	meta := Metadata{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: optionalField(r, "description"),
		ClassID:     r.FormValue("classId"),
		LessonDate:  r.FormValue("lessonDate"),
		LessonTopic: optionalField(r, "lessonTopic"),
		UploadedBy:  optionalField(r, "uploadedBy"),
	}

	if err := validate.Struct(meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFile, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	lessonDate, _ := time.Parse("2006-01-02", meta.LessonDate)
	classID, _ := uuid.Parse(meta.ClassID)

	var uploadedBy *uuid.UUID
	if meta.UploadedBy != nil {
		id, _ := uuid.Parse(*meta.UploadedBy)
		uploadedBy = &id
	}

	return &Upload{
		Title:            meta.Title,
		Description:      meta.Description,
		ClassID:          classID,
		UploadedBy:       uploadedBy,
		LessonDate:       lessonDate,
		LessonTopic:      meta.LessonTopic,
		OriginalFilename: header.Filename,
		StorageKey:       BuildStorageKey(header.Filename),
		Size:             header.Size,
		MimeType:         mimeType,
		Extension:        ext,
		Data:             data,
	}, nil
}

// BuildStorageKey composes the destination key for an uploaded file:
// documents/<unix-millis>_<uuid>_<sanitized name><ext>. The original
// extension is preserved; all other non [a-zA-Z0-9_-] characters in the
// base name are replaced with underscores.
func BuildStorageKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	sanitized := unsafeFilenameChars.ReplaceAllString(name, "_")

	return fmt.Sprintf("%s/%d_%s_%s%s",
		storage.DocumentsPrefix,
		time.Now().UnixMilli(),
		uuid.New(),
		sanitized,
		ext,
	)
}

func singleFile(form *multipart.Form) (*multipart.FileHeader, error) {
	if form == nil {
		return nil, ErrNoFile
	}

	for field := range form.File {
		if field != UploadFileField {
			return nil, fmt.Errorf("%w: %s", ErrUnexpectedField, field)
		}
	}

	headers := form.File[UploadFileField]
	switch {
	case len(headers) == 0:
		return nil, ErrNoFile
	case len(headers) > 1:
		return nil, ErrTooManyFiles
	}

	return headers[0], nil
}

func optionalField(r *http.Request, name string) *string {
	if v := strings.TrimSpace(r.FormValue(name)); v != "" {
		return &v
	}
	return nil
}
