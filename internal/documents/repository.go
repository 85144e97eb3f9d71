package documents

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/JaimeStill/nyaysetu/internal/drafting"
	"github.com/JaimeStill/nyaysetu/internal/forms"
	"github.com/JaimeStill/nyaysetu/internal/lifecycles"
	"github.com/JaimeStill/nyaysetu/internal/metrics"
	"github.com/JaimeStill/nyaysetu/pkg/pagination"
	"github.com/JaimeStill/nyaysetu/pkg/query"
	"github.com/JaimeStill/nyaysetu/pkg/repository"
	"github.com/JaimeStill/nyaysetu/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	pipeline   *Pipeline
	metrics    *metrics.Metrics
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a document repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	pipeline *Pipeline,
	m *metrics.Metrics,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		pipeline:   pipeline,
		metrics:    m,
		logger:     logger.With("system", "documents"),
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
) (*pagination.PageResult[Document], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "ApplicantName", "ReferenceNumber")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	docs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	for i := range docs {
		docs[i].Request = nil
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	return find(ctx, r.db, id)
}

func (r *repo) Download(ctx context.Context, id uuid.UUID) (*Document, io.ReadCloser, error) {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := r.storage.Download(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("download document blob: %w", err)
	}
	return doc, rc, nil
}

func (r *repo) GenerateRTI(ctx context.Context, app forms.RTIApplication) (*Document, error) {
	p, err := r.pipeline.RTI(app)
	if err != nil {
		return nil, err
	}
	return r.store(ctx, p)
}

func (r *repo) GenerateAffidavit(ctx context.Context, aff forms.Affidavit) (*Document, error) {
	p, err := r.pipeline.Affidavit(aff)
	if err != nil {
		return nil, err
	}
	return r.store(ctx, p)
}

func (r *repo) GenerateAppeal(ctx context.Context, id uuid.UUID, cmd AppealCommand) (*Document, error) {
	original, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := r.pipeline.Appeal(*original, cmd)
	if err != nil {
		return nil, err
	}
	return r.store(ctx, p)
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM documents WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, doc.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", doc.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("document deleted", "id", id)
	return nil
}

// store renders a prepared document, uploads the PDF, and records the
// document row with its lifecycle in one transaction. The blob is removed
// again when the transaction fails.
func (r *repo) store(ctx context.Context, p *Prepared) (*Document, error) {
	data, err := drafting.PDF(p.Draft)
	if err != nil {
		return nil, err
	}

	request, err := json.Marshal(p.Request)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	id := uuid.New()
	pending := Document{ID: id, Type: p.Draft.Type, Hash: p.Hash}
	key := buildStorageKey(id, pending.Filename())

	if err := r.storage.Upload(ctx, key, bytes.NewReader(data), ContentType); err != nil {
		return nil, fmt.Errorf("upload document blob: %w", err)
	}

	insertArgs := []any{
		id,
		string(p.Draft.Type),
		p.Draft.Title,
		p.ApplicantName,
		p.Draft.State,
		p.Hash,
		p.ReferenceNumber,
		key,
		pageCount(r.logger, data),
		int64(len(data)),
		request,
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Document, error) {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO documents(id, type, title, applicant_name, state, hash, reference_number, storage_key, page_count, size_bytes, request)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			insertArgs...,
		); err != nil {
			return nil, err
		}

		if _, err := lifecycles.Record(ctx, tx, lifecycles.CreateCommand{
			Hash:         p.Hash,
			DocumentType: p.Draft.Type,
			Metadata:     p.Draft.Metadata,
		}); err != nil {
			return nil, err
		}

		if p.AppealOf != "" {
			err := lifecycles.Transition(ctx, tx, p.AppealOf, lifecycles.AppealFiled, AppealNotes, time.Now().UTC())
			switch {
			case errors.Is(err, lifecycles.ErrNotFound):
				r.logger.Warn("appealed application has no lifecycle", "hash", p.AppealOf)
			case err != nil:
				return nil, err
			}
		}

		return find(ctx, tx, id)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		if errors.Is(err, lifecycles.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.metrics.ObserveDocument(string(d.Type))
	r.logger.Info("document generated", "id", d.ID, "type", d.Type, "hash", d.Hash)
	return d, nil
}

func find(ctx context.Context, q repository.Querier, id uuid.UUID) (*Document, error) {
	sqlStr, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, q, sqlStr, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("documents/%s/%s", id, filename)
}

func pageCount(logger *slog.Logger, data []byte) *int {
	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		logger.Warn("failed to read generated page count", "error", err)
		return nil
	}
	return &count
}
