package documents

import "github.com/edustack/lessonlab/pkg/query"

var projection = query.NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("title", "Title").
	Project("description", "Description").
	Project("original_filename", "OriginalFilename").
	Project("file_path", "FilePath").
	Project("file_size", "FileSize").
	Project("file_type", "FileType").
	Project("mime_type", "MimeType").
	Project("class_id", "ClassID").
	Project("uploaded_by", "UploadedBy").
	Project("lesson_date", "LessonDate").
	Project("lesson_topic", "LessonTopic").
	Project("total_pages", "TotalPages").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// Listings order newest lesson first, ties broken by upload time.
var defaultSort = []query.SortField{
	{Field: "LessonDate", Descending: true},
	{Field: "CreatedAt", Descending: true},
}

var pageProjection = query.NewProjectionMap("public", "document_pages", "p").
	Project("document_id", "DocumentID").
	Project("page_number", "PageNumber").
	Project("image_path", "ImagePath").
	Project("image_width", "Width").
	Project("image_height", "Height")
