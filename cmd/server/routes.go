package main

import (
	"net/http"

	"github.com/edustack/lessonlab/internal/classes"
	"github.com/edustack/lessonlab/internal/documents"
	"github.com/edustack/lessonlab/internal/pipeline"
	"github.com/edustack/lessonlab/internal/users"
	"github.com/edustack/lessonlab/pkg/routes"
)

// routes wires the domain systems, registers the API surface, and
// returns the complete handler with middleware applied. The document
// system doubles as the pipeline's persistence gateway.
func (app *Application) routes() http.Handler {
	classSys := classes.New(app.db, app.logger, app.config.Pagination)
	userSys := users.New(app.db, app.logger, app.config.Pagination)
	docSys := documents.New(app.db, app.storage, app.logger, app.config.Pagination)

	app.pipeline = pipeline.NewSystem(docSys, app.storage, &app.config.Pipeline, app.logger)

	classHandler := classes.NewHandler(classSys, app.logger, app.config.Pagination)
	userHandler := users.NewHandler(userSys, app.logger, app.config.Pagination)
	docHandler := documents.NewHandler(
		docSys,
		classSys,
		userSys,
		app.pipeline,
		app.storage,
		app.logger,
		app.config.Pagination,
		app.config.Storage.MaxUploadSizeBytes(),
	)

	r := routes.New()
	r.RegisterGroup(routes.Group{
		Prefix:      "/api",
		Description: "LessonLab API",
		Children: []routes.Group{
			classHandler.Routes(),
			userHandler.Routes(),
			docHandler.Routes(),
		},
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: handleHealthCheck,
	})

	return app.logRequests(app.enableCORS(r.Build()))
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
