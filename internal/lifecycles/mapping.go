package lifecycles

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/JaimeStill/nyaysetu/pkg/query"
	"github.com/JaimeStill/nyaysetu/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "lifecycles", "l").
	Project("hash", "Hash").
	Project("document_type", "DocumentType").
	Project("state", "State").
	Project("metadata", "Metadata").
	Project("deadlines", "Deadlines").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UpdatedAt",
	Descending: true,
}

// Filters contains optional exact-match criteria for lifecycle queries.
type Filters struct {
	State        *string `json:"state,omitempty"`
	DocumentType *string `json:"document_type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("State", f.State).
		WhereEquals("DocumentType", f.DocumentType)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if s := values.Get("state"); s != "" {
		f.State = &s
	}
	if dt := values.Get("document_type"); dt != "" {
		f.DocumentType = &dt
	}
	return f
}

func scanLifecycle(s repository.Scanner) (Lifecycle, error) {
	var (
		l         Lifecycle
		metadata  []byte
		deadlines []byte
	)
	err := s.Scan(
		&l.Hash,
		&l.DocumentType,
		&l.State,
		&metadata,
		&deadlines,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return l, err
	}
	if err := decodeJSON(metadata, &l.Metadata); err != nil {
		return l, fmt.Errorf("decode metadata: %w", err)
	}
	if err := decodeJSON(deadlines, &l.Deadlines); err != nil {
		return l, fmt.Errorf("decode deadlines: %w", err)
	}
	return l, nil
}

func scanEvent(s repository.Scanner) (Event, error) {
	var e Event
	err := s.Scan(&e.State, &e.Notes, &e.Timestamp)
	return e, err
}

func decodeJSON(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}
