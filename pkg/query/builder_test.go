package query_test

import (
	"testing"

	"github.com/edustack/lessonlab/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "documents", "d").
		Project("id", "ID").
		Project("title", "Title").
		Project("status", "Status").
		Project("lesson_date", "LessonDate").
		Project("created_at", "CreatedAt")
}

func TestProjectionMap_Table(t *testing.T) {
	p := testProjection()
	if got := p.Table(); got != "public.documents d" {
		t.Fatalf("Table() = %q, want %q", got, "public.documents d")
	}
}

func TestProjectionMap_Column(t *testing.T) {
	p := testProjection()

	if got := p.Column("Title"); got != "d.title" {
		t.Errorf("Column(Title) = %q, want d.title", got)
	}
	if got := p.Column("Unknown"); got != "Unknown" {
		t.Errorf("Column(Unknown) = %q, want passthrough", got)
	}
}

func TestProjectionMap_ColumnsOrder(t *testing.T) {
	p := testProjection()
	want := "d.id, d.title, d.status, d.lesson_date, d.created_at"
	if got := p.Columns(); got != want {
		t.Fatalf("Columns() = %q, want %q", got, want)
	}
}

func TestBuilder_BuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("ID", "abc")

	want := "SELECT d.id, d.title, d.status, d.lesson_date, d.created_at FROM public.documents d WHERE d.id = $1"
	if sql != want {
		t.Errorf("BuildSingle() sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("BuildSingle() args = %v, want [abc]", args)
	}
}

func TestBuilder_BuildCount_NoConditions(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildCount()

	if sql != "SELECT COUNT(*) FROM public.documents d" {
		t.Errorf("BuildCount() sql = %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("BuildCount() args = %v, want none", args)
	}
}

func TestBuilder_ParameterNumbering(t *testing.T) {
	status := "completed"
	search := "algebra"

	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("Status", status).
		WhereContains("Title", &search).
		BuildCount()

	want := "SELECT COUNT(*) FROM public.documents d WHERE d.status = $1 AND d.title ILIKE $2"
	if sql != want {
		t.Errorf("BuildCount() sql = %q, want %q", sql, want)
	}
	if len(args) != 2 || args[0] != "completed" || args[1] != "%algebra%" {
		t.Errorf("BuildCount() args = %v", args)
	}
}

func TestBuilder_WhereEquals_NilIgnored(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("Status", nil).
		BuildCount()

	if sql != "SELECT COUNT(*) FROM public.documents d" {
		t.Errorf("nil condition was not ignored: %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestBuilder_WhereSearch(t *testing.T) {
	search := "notes"

	sql, args := query.NewBuilder(testProjection()).
		WhereSearch(&search, "Title", "Status").
		BuildCount()

	want := "SELECT COUNT(*) FROM public.documents d WHERE (d.title ILIKE $1 OR d.status ILIKE $2)"
	if sql != want {
		t.Errorf("BuildCount() sql = %q, want %q", sql, want)
	}
	if len(args) != 2 {
		t.Errorf("args = %v, want two patterns", args)
	}
}

func TestBuilder_BuildPage_DefaultSort(t *testing.T) {
	b := query.NewBuilder(testProjection(),
		query.SortField{Field: "LessonDate", Descending: true},
		query.SortField{Field: "CreatedAt", Descending: true},
	)

	sql, _ := b.BuildPage(2, 25)

	want := "SELECT d.id, d.title, d.status, d.lesson_date, d.created_at " +
		"FROM public.documents d ORDER BY d.lesson_date DESC, d.created_at DESC LIMIT 25 OFFSET 25"
	if sql != want {
		t.Fatalf("BuildPage() sql = %q, want %q", sql, want)
	}
}

func TestBuilder_OrderByFields_OverridesDefault(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true}).
		OrderByFields([]query.SortField{{Field: "Title"}})

	sql, _ := b.BuildList()

	want := "SELECT d.id, d.title, d.status, d.lesson_date, d.created_at " +
		"FROM public.documents d ORDER BY d.title ASC"
	if sql != want {
		t.Fatalf("BuildList() sql = %q, want %q", sql, want)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"single ascending", "Title", []query.SortField{{Field: "Title"}}},
		{"single descending", "-CreatedAt", []query.SortField{{Field: "CreatedAt", Descending: true}}},
		{"mixed", "Title,-LessonDate", []query.SortField{
			{Field: "Title"},
			{Field: "LessonDate", Descending: true},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSortFields(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSortFields(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}
