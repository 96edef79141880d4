package documents_test

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"regexp"
	"strings"
	"testing"

	"github.com/edustack/lessonlab/internal/documents"
	"github.com/google/uuid"
)

const testMaxUploadSize = 1 << 20

type formFile struct {
	field    string
	filename string
	mimeType string
	content  []byte
}

func uploadRequest(t *testing.T, fields map[string]string, files ...formFile) (body *bytes.Buffer, contentType string) {
	t.Helper()

	body = &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			t.Fatalf("WriteField(%s) failed: %v", key, err)
		}
	}

	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.filename))
		header.Set("Content-Type", f.mimeType)

		part, err := w.CreatePart(header)
		if err != nil {
			t.Fatalf("CreatePart failed: %v", err)
		}
		if _, err := part.Write(f.content); err != nil {
			t.Fatalf("part write failed: %v", err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("multipart close failed: %v", err)
	}

	return body, w.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"title":      "Algebra Basics",
		"classId":    uuid.New().String(),
		"lessonDate": "2026-03-15",
	}
}

func pdfFile() formFile {
	return formFile{
		field:    documents.UploadFileField,
		filename: "lesson.pdf",
		mimeType: "application/pdf",
		content:  []byte("%PDF-1.4 test"),
	}
}

func parseUpload(t *testing.T, fields map[string]string, files ...formFile) (*documents.Upload, error) {
	t.Helper()

	body, contentType := uploadRequest(t, fields, files...)
	r := httptest.NewRequest("POST", "/api/documents", body)
	r.Header.Set("Content-Type", contentType)

	return documents.ParseUpload(r, testMaxUploadSize)
}

func TestParseUpload_Valid(t *testing.T) {
	fields := validFields()
	fields["description"] = "Introductory material"
	fields["lessonTopic"] = "Linear equations"

	upload, err := parseUpload(t, fields, pdfFile())
	if err != nil {
		t.Fatalf("ParseUpload() failed: %v", err)
	}

	if upload.Title != "Algebra Basics" {
		t.Errorf("Title = %q, want %q", upload.Title, "Algebra Basics")
	}
	if upload.Extension != ".pdf" {
		t.Errorf("Extension = %q, want .pdf", upload.Extension)
	}
	if upload.MimeType != "application/pdf" {
		t.Errorf("MimeType = %q, want application/pdf", upload.MimeType)
	}
	if upload.OriginalFilename != "lesson.pdf" {
		t.Errorf("OriginalFilename = %q, want lesson.pdf", upload.OriginalFilename)
	}
	if upload.Description == nil || *upload.Description != "Introductory material" {
		t.Errorf("Description = %v, want Introductory material", upload.Description)
	}
	if upload.LessonTopic == nil || *upload.LessonTopic != "Linear equations" {
		t.Errorf("LessonTopic = %v, want Linear equations", upload.LessonTopic)
	}
	if upload.LessonDate.Format("2006-01-02") != "2026-03-15" {
		t.Errorf("LessonDate = %v, want 2026-03-15", upload.LessonDate)
	}
	if len(upload.Data) == 0 {
		t.Error("Data is empty, want file contents")
	}
}

func TestParseUpload_NoFile(t *testing.T) {
	_, err := parseUpload(t, validFields())
	if !errors.Is(err, documents.ErrNoFile) {
		t.Fatalf("ParseUpload() error = %v, want ErrNoFile", err)
	}
}

func TestParseUpload_TooManyFiles(t *testing.T) {
	_, err := parseUpload(t, validFields(), pdfFile(), pdfFile())
	if !errors.Is(err, documents.ErrTooManyFiles) {
		t.Fatalf("ParseUpload() error = %v, want ErrTooManyFiles", err)
	}
}

func TestParseUpload_UnexpectedField(t *testing.T) {
	rogue := pdfFile()
	rogue.field = "attachment"

	_, err := parseUpload(t, validFields(), rogue)
	if !errors.Is(err, documents.ErrUnexpectedField) {
		t.Fatalf("ParseUpload() error = %v, want ErrUnexpectedField", err)
	}
}

func TestParseUpload_UnsupportedType(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mimeType string
	}{
		{"executable", "malware.exe", "application/octet-stream"},
		{"image", "photo.jpg", "image/jpeg"},
		{"mime mismatch", "lesson.pdf", "text/html"},
		{"extension mismatch", "lesson.txt", "application/pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := formFile{
				field:    documents.UploadFileField,
				filename: tt.filename,
				mimeType: tt.mimeType,
				content:  []byte("content"),
			}

			_, err := parseUpload(t, validFields(), f)
			if !errors.Is(err, documents.ErrUnsupportedType) {
				t.Fatalf("ParseUpload() error = %v, want ErrUnsupportedType", err)
			}
		})
	}
}

func TestParseUpload_AllowedTypes(t *testing.T) {
	tests := []struct {
		filename string
		mimeType string
	}{
		{"notes.doc", "application/msword"},
		{"notes.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"slides.ppt", "application/vnd.ms-powerpoint"},
		{"slides.pptx", "application/vnd.openxmlformats-officedocument.presentationml.presentation"},
		{"grades.xls", "application/vnd.ms-excel"},
		{"grades.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			f := formFile{
				field:    documents.UploadFileField,
				filename: tt.filename,
				mimeType: tt.mimeType,
				content:  []byte("content"),
			}

			upload, err := parseUpload(t, validFields(), f)
			if err != nil {
				t.Fatalf("ParseUpload() failed: %v", err)
			}
			if upload.MimeType != tt.mimeType {
				t.Errorf("MimeType = %q, want %q", upload.MimeType, tt.mimeType)
			}
		})
	}
}

func TestParseUpload_InvalidMetadata(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"missing title", func(f map[string]string) { delete(f, "title") }},
		{"blank title", func(f map[string]string) { f["title"] = "   " }},
		{"long title", func(f map[string]string) { f["title"] = strings.Repeat("x", 256) }},
		{"missing class", func(f map[string]string) { delete(f, "classId") }},
		{"bad class id", func(f map[string]string) { f["classId"] = "not-a-uuid" }},
		{"missing lesson date", func(f map[string]string) { delete(f, "lessonDate") }},
		{"bad lesson date", func(f map[string]string) { f["lessonDate"] = "15/03/2026" }},
		{"bad uploader id", func(f map[string]string) { f["uploadedBy"] = "teacher-1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			tt.mutate(fields)

			_, err := parseUpload(t, fields, pdfFile())
			if !errors.Is(err, documents.ErrInvalidMetadata) {
				t.Fatalf("ParseUpload() error = %v, want ErrInvalidMetadata", err)
			}
		})
	}
}

func TestParseUpload_FileTooLarge(t *testing.T) {
	f := pdfFile()
	f.content = bytes.Repeat([]byte("a"), testMaxUploadSize+1)

	_, err := parseUpload(t, validFields(), f)
	if !errors.Is(err, documents.ErrFileTooLarge) {
		t.Fatalf("ParseUpload() error = %v, want ErrFileTooLarge", err)
	}
}

func TestParseUpload_CappedBody(t *testing.T) {
	f := pdfFile()
	f.content = bytes.Repeat([]byte("a"), testMaxUploadSize+documents.UploadFormOverhead+1)

	body, contentType := uploadRequest(t, validFields(), f)
	r := httptest.NewRequest("POST", "/api/documents", body)
	r.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.Body = http.MaxBytesReader(w, r.Body, testMaxUploadSize+documents.UploadFormOverhead)

	_, err := documents.ParseUpload(r, testMaxUploadSize)
	if !errors.Is(err, documents.ErrFileTooLarge) {
		t.Fatalf("ParseUpload() error = %v, want ErrFileTooLarge", err)
	}
}

var storageKeyPattern = regexp.MustCompile(
	`^documents/\d+_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}_[a-zA-Z0-9_-]+\.[a-z0-9]+$`)

func TestBuildStorageKey(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantName string
		wantExt  string
	}{
		{"plain", "lesson.pdf", "lesson", ".pdf"},
		{"spaces and symbols", "my lesson (final)!.pdf", "my_lesson__final__", ".pdf"},
		{"unicode", "leçon.docx", "le_on", ".docx"},
		{"uppercase extension", "NOTES.PDF", "NOTES", ".pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := documents.BuildStorageKey(tt.filename)

			if !storageKeyPattern.MatchString(key) {
				t.Fatalf("BuildStorageKey(%q) = %q, does not match expected pattern", tt.filename, key)
			}
			if !strings.HasSuffix(key, tt.wantName+tt.wantExt) {
				t.Errorf("BuildStorageKey(%q) = %q, want suffix %q", tt.filename, key, tt.wantName+tt.wantExt)
			}
		})
	}
}

func TestBuildStorageKey_Unique(t *testing.T) {
	a := documents.BuildStorageKey("lesson.pdf")
	b := documents.BuildStorageKey("lesson.pdf")
	if a == b {
		t.Fatalf("BuildStorageKey produced duplicate keys: %q", a)
	}
}
