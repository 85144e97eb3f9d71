package query

import (
	"reflect"
	"strconv"
	"strings"
)

// params numbers positional arguments as they are appended.
type params struct {
	args []any
}

func (p *params) add(v any) string {
	p.args = append(p.args, v)
	return "$" + strconv.Itoa(len(p.args))
}

// condition renders one WHERE term, registering its arguments with p.
type condition func(p *params) string

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern wraps value for a substring ILIKE match with its
// wildcard characters escaped.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

// WhereEquals adds an equality condition. Nil values and unknown fields
// are ignored.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	col, ok := b.projection.Column(field)
	if !ok || isNil(value) {
		return b
	}
	return b.where(func(p *params) string {
		return col + " = " + p.add(deref(value))
	})
}

// WhereContains adds a case-insensitive substring condition. Nil or empty
// values are ignored.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	col, ok := b.projection.Column(field)
	if !ok || value == nil || *value == "" {
		return b
	}
	return b.where(func(p *params) string {
		return col + " ILIKE " + p.add(containsPattern(*value))
	})
}

// WhereIn adds an IN condition. An empty value list is ignored.
func (b *Builder) WhereIn(field string, values []any) *Builder {
	col, ok := b.projection.Column(field)
	if !ok || len(values) == 0 {
		return b
	}
	return b.where(func(p *params) string {
		placeholders := make([]string, len(values))
		for i, v := range values {
			placeholders[i] = p.add(v)
		}
		return col + " IN (" + strings.Join(placeholders, ", ") + ")"
	})
}

// WhereRange bounds field to [from, to). Either bound may be nil.
func (b *Builder) WhereRange(field string, from, to any) *Builder {
	col, ok := b.projection.Column(field)
	if !ok {
		return b
	}
	if !isNil(from) {
		b.where(func(p *params) string {
			return col + " >= " + p.add(deref(from))
		})
	}
	if !isNil(to) {
		b.where(func(p *params) string {
			return col + " < " + p.add(deref(to))
		})
	}
	return b
}

// WhereSearch matches search as a case-insensitive substring of any of
// fields. Empty searches are ignored.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" {
		return b
	}

	var cols []string
	for _, f := range fields {
		if col, ok := b.projection.Column(f); ok {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		return b
	}

	return b.where(func(p *params) string {
		ph := p.add(containsPattern(*search))
		terms := make([]string, len(cols))
		for i, col := range cols {
			terms[i] = col + " ILIKE " + ph
		}
		return "(" + strings.Join(terms, " OR ") + ")"
	})
}

func (b *Builder) where(c condition) *Builder {
	b.conditions = append(b.conditions, c)
	return b
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// deref unwraps a non-nil pointer so drivers receive the value itself.
func deref(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer {
		return v.Elem().Interface()
	}
	return value
}
