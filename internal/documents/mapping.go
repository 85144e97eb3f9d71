package documents

import (
	"net/url"
	"time"

	"github.com/JaimeStill/nyaysetu/pkg/query"
	"github.com/JaimeStill/nyaysetu/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("type", "Type").
	Project("title", "Title").
	Project("applicant_name", "ApplicantName").
	Project("state", "State").
	Project("hash", "Hash").
	Project("reference_number", "ReferenceNumber").
	Project("storage_key", "StorageKey").
	Project("page_count", "PageCount").
	Project("size_bytes", "SizeBytes").
	Project("request", "Request").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Join("public", "lifecycles", "l", "LEFT JOIN", "d.hash = l.hash").
	Project("state", "Status")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for document queries.
// Nil fields are ignored. Type, State, and Status use exact matching.
// ApplicantName and ReferenceNumber use case-insensitive contains matching.
// CreatedAfter is inclusive and CreatedBefore exclusive.
type Filters struct {
	Type            *string    `json:"type,omitempty"`
	State           *string    `json:"state,omitempty"`
	Status          *string    `json:"status,omitempty"`
	ApplicantName   *string    `json:"applicant_name,omitempty"`
	ReferenceNumber *string    `json:"reference_number,omitempty"`
	CreatedAfter    *time.Time `json:"created_after,omitempty"`
	CreatedBefore   *time.Time `json:"created_before,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Type", f.Type).
		WhereEquals("State", f.State).
		WhereEquals("Status", f.Status).
		WhereContains("ApplicantName", f.ApplicantName).
		WhereContains("ReferenceNumber", f.ReferenceNumber).
		WhereRange("CreatedAt", f.CreatedAfter, f.CreatedBefore)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("type"); t != "" {
		f.Type = &t
	}

	if s := values.Get("state"); s != "" {
		f.State = &s
	}

	if st := values.Get("status"); st != "" {
		f.Status = &st
	}

	if n := values.Get("applicant_name"); n != "" {
		f.ApplicantName = &n
	}

	if ref := values.Get("reference_number"); ref != "" {
		f.ReferenceNumber = &ref
	}

	f.CreatedAfter = parseDate(values.Get("created_after"))
	f.CreatedBefore = parseDate(values.Get("created_before"))

	return f
}

// parseDate accepts RFC 3339 timestamps or YYYY-MM-DD dates. Anything
// else is ignored.
func parseDate(s string) *time.Time {
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func scanDocument(s repository.Scanner) (Document, error) {
	var (
		d       Document
		request []byte
	)
	err := s.Scan(
		&d.ID,
		&d.Type,
		&d.Title,
		&d.ApplicantName,
		&d.State,
		&d.Hash,
		&d.ReferenceNumber,
		&d.StorageKey,
		&d.PageCount,
		&d.SizeBytes,
		&request,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.Status,
	)
	if len(request) > 0 {
		d.Request = request
	}
	return d, err
}
