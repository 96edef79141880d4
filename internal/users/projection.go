package users

import "github.com/edustack/lessonlab/pkg/query"

var projection = query.NewProjectionMap("public", "users", "u").
	Project("id", "ID").
	Project("full_name", "FullName").
	Project("email", "Email").
	Project("role", "Role").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "FullName"}
