package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/nyaysetu/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func TestMapError(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name    string
		err     error
		want    error
		wantMsg string
	}{
		{"nil", nil, nil, ""},
		{"no rows", sql.ErrNoRows, errNotFound, ""},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), errNotFound, ""},
		{"unique", &pgconn.PgError{Code: "23505"}, errDuplicate, ""},
		{"foreign key", &pgconn.PgError{Code: "23503", ConstraintName: "lifecycle_events_hash_fkey"}, repository.ErrConstraint, "lifecycle_events_hash_fkey"},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "documents_type_check"}, repository.ErrConstraint, "documents_type_check"},
		{"other pg error", &pgconn.PgError{Code: "42P01"}, nil, "42P01"},
		{"passthrough", other, other, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, errNotFound, errDuplicate)

			if tt.err == nil {
				if got != nil {
					t.Errorf("MapError(nil) = %v", got)
				}
				return
			}
			if tt.want != nil && !errors.Is(got, tt.want) {
				t.Errorf("MapError() = %v, want %v", got, tt.want)
			}
			if tt.want == nil {
				var pgErr *pgconn.PgError
				if !errors.As(got, &pgErr) {
					t.Errorf("MapError() = %v, want unchanged pg error", got)
				}
			}
			if tt.wantMsg != "" && !strings.Contains(got.Error(), tt.wantMsg) {
				t.Errorf("MapError() = %q, want it to mention %q", got, tt.wantMsg)
			}
		})
	}
}

type result struct {
	rows int64
	err  error
}

func (r result) LastInsertId() (int64, error) { return 0, nil }
func (r result) RowsAffected() (int64, error) { return r.rows, r.err }

type executor struct {
	result sql.Result
	err    error
	query  string
	args   []any
}

func (e *executor) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	e.query, e.args = query, args
	return e.result, e.err
}

func TestExecExpectOne(t *testing.T) {
	execErr := errors.New("syntax error")

	tests := []struct {
		name    string
		exec    *executor
		wantErr error
		anyErr  bool
	}{
		{"one row", &executor{result: result{rows: 1}}, nil, false},
		{"no rows", &executor{result: result{rows: 0}}, sql.ErrNoRows, false},
		{"many rows", &executor{result: result{rows: 3}}, nil, true},
		{"exec error", &executor{err: execErr}, execErr, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repository.ExecExpectOne(
				context.Background(), tt.exec,
				"DELETE FROM documents WHERE id = $1", 42,
			)

			switch {
			case tt.anyErr:
				if err == nil {
					t.Error("expected error")
				}
			case tt.wantErr == nil:
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			case !errors.Is(err, tt.wantErr):
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}

			if len(tt.exec.args) != 1 || tt.exec.args[0] != 42 {
				t.Errorf("args = %v", tt.exec.args)
			}
		})
	}
}
