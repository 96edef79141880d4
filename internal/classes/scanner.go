package classes

import "github.com/edustack/lessonlab/pkg/repository"

func scanClass(s repository.Scanner) (Class, error) {
	var c Class
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Code,
		&c.Subject,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
