package classes

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/edustack/lessonlab/pkg/pagination"
	"github.com/edustack/lessonlab/pkg/query"
	"github.com/edustack/lessonlab/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a class repository backed by the database.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "classes"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Class], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Code")

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count classes: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanClass)
	if err != nil {
		return nil, fmt.Errorf("query classes: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Class, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	cls, err := repository.QueryOne(ctx, r.db, q, args, scanClass)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &cls, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Class, error) {
	if cmd.Name == "" || cmd.Code == "" {
		return nil, fmt.Errorf("%w: name and code required", ErrInvalid)
	}

	q := `INSERT INTO classes(id, class_name, class_code, subject)
		VALUES($1, $2, $3, $4)
		RETURNING id, class_name, class_code, subject, created_at, updated_at`

	cls, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Class, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			uuid.New(), cmd.Name, cmd.Code, cmd.Subject,
		}, scanClass)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("class created", "id", cls.ID, "code", cls.Code)
	return &cls, nil
}
