// Package query builds parameterized PostgreSQL SELECT statements from a
// mapping of view field names to table columns.
package query

import "strings"

// ProjectionMap maps view field names to qualified columns of a base table
// and any joined tables. Only projected names can be filtered or sorted on.
type ProjectionMap struct {
	from    string
	current string
	joins   []string
	columns map[string]string
	order   []string
}

// NewProjectionMap creates a ProjectionMap over schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		from:    schema + "." + table + " " + alias,
		current: alias,
		columns: make(map[string]string),
	}
}

// Project maps column of the current table to viewName.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	qualified := p.current + "." + column
	p.columns[viewName] = qualified
	p.order = append(p.order, qualified)
	return p
}

// Join adds a joined table; kind is the join keyword such as "LEFT JOIN".
// Project calls that follow qualify columns with alias.
func (p *ProjectionMap) Join(schema, table, alias, kind, on string) *ProjectionMap {
	p.joins = append(p.joins, kind+" "+schema+"."+table+" "+alias+" ON "+on)
	p.current = alias
	return p
}

// From returns the FROM clause body: the base table followed by any joins.
func (p *ProjectionMap) From() string {
	if len(p.joins) == 0 {
		return p.from
	}
	return p.from + " " + strings.Join(p.joins, " ")
}

// Column returns the qualified column projected as viewName.
func (p *ProjectionMap) Column(viewName string) (string, bool) {
	col, ok := p.columns[viewName]
	return col, ok
}

// Columns returns the projected columns in projection order.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.order, ", ")
}
