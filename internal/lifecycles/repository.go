package lifecycles

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/nyaysetu/pkg/pagination"
	"github.com/JaimeStill/nyaysetu/pkg/query"
	"github.com/JaimeStill/nyaysetu/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a lifecycle repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "lifecycles"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Lifecycle], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Hash", "DocumentType")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count lifecycles: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanLifecycle)
	if err != nil {
		return nil, fmt.Errorf("query lifecycles: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, hash string) (*Lifecycle, error) {
	return find(ctx, r.db, hash)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Lifecycle, error) {
	var created bool
	l, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Lifecycle, error) {
		var err error
		if created, err = Record(ctx, tx, cmd); err != nil {
			return nil, err
		}
		return find(ctx, tx, cmd.Hash)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("lifecycle recorded", "hash", l.Hash, "type", l.DocumentType, "created", created)
	return l, nil
}

func (r *repo) UpdateState(ctx context.Context, hash string, cmd UpdateCommand) (*Lifecycle, error) {
	state, err := ParseState(string(cmd.State))
	if err != nil {
		return nil, err
	}

	l, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Lifecycle, error) {
		if err := Transition(ctx, tx, hash, state, cmd.Notes, time.Now().UTC()); err != nil {
			return nil, err
		}
		return find(ctx, tx, hash)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("lifecycle state updated", "hash", hash, "state", state)
	return l, nil
}

func (r *repo) Pending(ctx context.Context, now time.Time) ([]PendingDeadline, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereIn("State", []any{string(Drafted), string(Submitted), string(Acknowledged)}).
		Build()

	open, err := repository.QueryMany(ctx, r.db, q, args, scanLifecycle)
	if err != nil {
		return nil, fmt.Errorf("query open lifecycles: %w", err)
	}
	return Pending(open, now), nil
}

// Record tracks the lifecycle of a generated document. A new hash starts in
// the DRAFTED state with its initial history event and deadlines computed
// from cmd.CreatedAt, or the current time when zero. A hash that is already
// tracked keeps its state and deadlines and gains a RegeneratedNotes event.
// Record reports whether a new lifecycle was created.
func Record(ctx context.Context, e repository.Executor, cmd CreateCommand) (bool, error) {
	created := cmd.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	metadata := cmd.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	deadlines := Deadlines(cmd.DocumentType, metadata, created)
	if deadlines == nil {
		deadlines = []Deadline{}
	}

	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return false, fmt.Errorf("encode metadata: %w", err)
	}
	deadlineJSON, err := json.Marshal(deadlines)
	if err != nil {
		return false, fmt.Errorf("encode deadlines: %w", err)
	}

	res, err := e.ExecContext(
		ctx,
		`INSERT INTO lifecycles(hash, document_type, state, metadata, deadlines, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (hash) DO NOTHING`,
		cmd.Hash, string(cmd.DocumentType), string(Drafted), metaJSON, deadlineJSON, created,
	)
	if err != nil {
		return false, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert lifecycle: %w", err)
	}

	if n == 0 {
		if _, err := e.ExecContext(
			ctx,
			`INSERT INTO lifecycle_events(hash, state, notes, occurred_at)
			SELECT hash, state, $2, $3 FROM lifecycles WHERE hash = $1`,
			cmd.Hash, RegeneratedNotes, created,
		); err != nil {
			return false, fmt.Errorf("insert lifecycle event: %w", err)
		}
		return false, nil
	}

	if err := insertEvent(ctx, e, cmd.Hash, Event{State: Drafted, Notes: InitialNotes, Timestamp: created}); err != nil {
		return false, err
	}
	return true, nil
}

// Transition sets the state of an existing lifecycle and appends the
// matching history event. Returns ErrNotFound when hash is not tracked.
func Transition(ctx context.Context, tx repository.Executor, hash string, state State, notes string, at time.Time) error {
	if err := repository.ExecExpectOne(
		ctx, tx,
		"UPDATE lifecycles SET state = $2, updated_at = $3 WHERE hash = $1",
		hash, string(state), at,
	); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return insertEvent(ctx, tx, hash, Event{State: state, Notes: notes, Timestamp: at})
}

func insertEvent(ctx context.Context, e repository.Executor, hash string, ev Event) error {
	if _, err := e.ExecContext(
		ctx,
		"INSERT INTO lifecycle_events(hash, state, notes, occurred_at) VALUES ($1, $2, $3, $4)",
		hash, string(ev.State), ev.Notes, ev.Timestamp,
	); err != nil {
		return fmt.Errorf("insert lifecycle event: %w", err)
	}
	return nil
}

func find(ctx context.Context, q repository.Querier, hash string) (*Lifecycle, error) {
	sqlStr, args := query.NewBuilder(projection).BuildSingle("Hash", hash)

	l, err := repository.QueryOne(ctx, q, sqlStr, args, scanLifecycle)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	history, err := repository.QueryMany(
		ctx, q,
		"SELECT state, notes, occurred_at FROM lifecycle_events WHERE hash = $1 ORDER BY occurred_at, id",
		[]any{hash},
		scanEvent,
	)
	if err != nil {
		return nil, fmt.Errorf("query lifecycle history: %w", err)
	}
	l.History = history
	return &l, nil
}
