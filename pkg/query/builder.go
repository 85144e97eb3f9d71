package query

import (
	"fmt"
	"strings"
)

// Builder assembles SELECT statements over a ProjectionMap. Conditions are
// joined with AND and their arguments are numbered in the order added.
type Builder struct {
	projection  *ProjectionMap
	conditions  []condition
	orderBy     []SortField
	defaultSort []SortField
}

// NewBuilder creates a Builder for projection. defaultSort applies when
// OrderByFields leaves no usable field.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// OrderByFields replaces the sort order.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.orderBy = fields
	return b
}

// Build returns the filtered and ordered SELECT.
func (b *Builder) Build() (string, []any) {
	where, args := b.whereClause()
	return b.selectFrom() + where + b.orderClause(), args
}

// BuildCount returns a COUNT(*) over the filtered rows.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.whereClause()
	return "SELECT COUNT(*) FROM " + b.projection.From() + where, args
}

// BuildPage returns the filtered and ordered SELECT for a 1-based page.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	where, args := b.whereClause()
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf(
		"%s%s%s LIMIT %d OFFSET %d",
		b.selectFrom(), where, b.orderClause(),
		pageSize, (page-1)*pageSize,
	), args
}

// BuildSingle returns a SELECT of the row whose idField equals id. It
// panics when idField is not projected.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	col, ok := b.projection.Column(idField)
	if !ok {
		panic(fmt.Sprintf("query: %s is not projected", idField))
	}
	return b.selectFrom() + " WHERE " + col + " = $1", []any{id}
}

func (b *Builder) selectFrom() string {
	return "SELECT " + b.projection.Columns() + " FROM " + b.projection.From()
}

func (b *Builder) whereClause() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	p := &params{}
	terms := make([]string, len(b.conditions))
	for i, c := range b.conditions {
		terms[i] = c(p)
	}
	return " WHERE " + strings.Join(terms, " AND "), p.args
}

func (b *Builder) orderClause() string {
	terms := b.sortTerms(b.orderBy)
	if len(terms) == 0 {
		terms = b.sortTerms(b.defaultSort)
	}
	if len(terms) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

func (b *Builder) sortTerms(fields []SortField) []string {
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		col, ok := b.projection.Column(f.Field)
		if !ok {
			continue
		}
		if f.Descending {
			terms = append(terms, col+" DESC")
		} else {
			terms = append(terms, col+" ASC")
		}
	}
	return terms
}
