package documents

import "github.com/edustack/lessonlab/pkg/repository"

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.Title,
		&d.Description,
		&d.OriginalFilename,
		&d.FilePath,
		&d.FileSize,
		&d.FileType,
		&d.MimeType,
		&d.ClassID,
		&d.UploadedBy,
		&d.LessonDate,
		&d.LessonTopic,
		&d.TotalPages,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

func scanPage(s repository.Scanner) (Page, error) {
	var p Page
	err := s.Scan(
		&p.DocumentID,
		&p.PageNumber,
		&p.ImagePath,
		&p.Width,
		&p.Height,
	)
	return p, err
}
