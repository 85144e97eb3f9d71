package analyses

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/nyaysetu/internal/classifier"
	"github.com/JaimeStill/nyaysetu/pkg/pagination"
	"github.com/JaimeStill/nyaysetu/pkg/query"
	"github.com/JaimeStill/nyaysetu/pkg/repository"
)

type repo struct {
	db         *sql.DB
	classifier *classifier.Classifier
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an analysis repository implementing the System interface.
// A nil db disables recording; classification still works.
func New(
	db *sql.DB,
	c *classifier.Classifier,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		classifier: c,
		logger:     logger.With("system", "analyses"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Analyze(ctx context.Context, description string) (*Outcome, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	result := r.classifier.Classify(ctx, description)
	return r.record(ctx, description, result), nil
}

func (r *repo) Refine(ctx context.Context, req RefineRequest) (*Outcome, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	result, err := r.classifier.Refine(description, req.Answers)
	if err != nil {
		return nil, err
	}
	return r.record(ctx, description, result), nil
}

func (r *repo) Batch(ctx context.Context, descriptions []string) ([]BatchItem, error) {
	if len(descriptions) == 0 {
		return nil, ErrEmptyDescription
	}
	if len(descriptions) > MaxBatch {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(descriptions), MaxBatch)
	}

	items := make([]BatchItem, len(descriptions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(BatchLimit)

	for i, d := range descriptions {
		g.Go(func() error {
			item := BatchItem{Index: i, Description: d}
			out, err := r.Analyze(gctx, d)
			if err != nil {
				item.Error = err.Error()
			} else {
				item.Outcome = out
			}
			items[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info("batch analyzed", "count", len(items))
	return items, nil
}

func (r *repo) Complexity(req classifier.ComplexityRequest) classifier.ComplexityReport {
	return r.classifier.Complexity(req)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Analysis], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAnalysis)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

// record stores a classification run. Storage failures are logged and the
// outcome is returned without an id.
func (r *repo) record(ctx context.Context, description string, result classifier.Result) *Outcome {
	out := &Outcome{Result: result}
	if r.db == nil {
		return out
	}

	var docType *string
	if dt := result.DocumentType; dt != "" {
		s := string(dt)
		docType = &s
	}

	q := `
		INSERT INTO analyses(id, description, document_type, confidence, status, source)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, description, document_type, confidence, status, source, created_at`

	args := []any{
		uuid.New(),
		description,
		docType,
		result.Confidence,
		string(result.Status),
		string(result.Source),
	}

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		r.logger.Warn("failed to record analysis", "error", err)
		return out
	}

	out.ID = &a.ID
	return out
}
