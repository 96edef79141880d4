package classes

import "github.com/edustack/lessonlab/pkg/query"

var projection = query.NewProjectionMap("public", "classes", "c").
	Project("id", "ID").
	Project("class_name", "Name").
	Project("class_code", "Code").
	Project("subject", "Subject").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Name"}
