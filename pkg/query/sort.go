package query

import "strings"

// SortField is one ORDER BY term. Field is a projected view name; fields
// the projection does not know are dropped when the query is built.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending,omitempty"`
}

// ParseSortFields parses a comma-separated sort string such as
// "Title,-CreatedAt". A leading "-" sorts descending. Empty input yields nil.
func ParseSortFields(s string) []SortField {
	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		name, desc := strings.CutPrefix(part, "-")
		if name == "" {
			continue
		}
		fields = append(fields, SortField{Field: name, Descending: desc})
	}
	return fields
}

// String renders the field in the form ParseSortFields accepts.
func (f SortField) String() string {
	if f.Descending {
		return "-" + f.Field
	}
	return f.Field
}
