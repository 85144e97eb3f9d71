package analyses

import (
	"net/url"

	"github.com/JaimeStill/nyaysetu/pkg/query"
	"github.com/JaimeStill/nyaysetu/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "analyses", "a").
	Project("id", "ID").
	Project("description", "Description").
	Project("document_type", "DocumentType").
	Project("confidence", "Confidence").
	Project("status", "Status").
	Project("source", "Source").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional exact-match criteria for analysis queries.
type Filters struct {
	DocumentType *string `json:"document_type,omitempty"`
	Status       *string `json:"status,omitempty"`
	Source       *string `json:"source,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("DocumentType", f.DocumentType).
		WhereEquals("Status", f.Status).
		WhereEquals("Source", f.Source)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if dt := values.Get("document_type"); dt != "" {
		f.DocumentType = &dt
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if src := values.Get("source"); src != "" {
		f.Source = &src
	}

	return f
}

func scanAnalysis(s repository.Scanner) (Analysis, error) {
	var a Analysis
	err := s.Scan(
		&a.ID,
		&a.Description,
		&a.DocumentType,
		&a.Confidence,
		&a.Status,
		&a.Source,
		&a.CreatedAt,
	)
	return a, err
}
