package documents

import (
	"net/url"

	"github.com/edustack/lessonlab/pkg/query"
)

// Filters contains optional criteria for filtering document queries.
type Filters struct {
	LessonDate *string
	Status     *string
}

// FiltersFromQuery extracts document filters from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if d := values.Get("date"); d != "" {
		f.LessonDate = &d
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	return f
}

// Apply adds filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.LessonDate != nil {
		b.WhereEquals("LessonDate", *f.LessonDate)
	}
	if f.Status != nil {
		b.WhereEquals("Status", *f.Status)
	}
	return b
}
