package analyses

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/nyaysetu/internal/classifier"
	"github.com/JaimeStill/nyaysetu/pkg/pagination"
)

// System defines the public contract for analysis operations.
type System interface {
	Handler() *Handler

	// Analyze classifies description and records the run.
	Analyze(ctx context.Context, description string) (*Outcome, error)
	// Refine re-classifies after clarification answers and records the run.
	Refine(ctx context.Context, req RefineRequest) (*Outcome, error)
	// Batch analyzes descriptions concurrently. Items keep request order.
	Batch(ctx context.Context, descriptions []string) ([]BatchItem, error)
	Complexity(req classifier.ComplexityRequest) classifier.ComplexityReport

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Analysis], error)

	Find(ctx context.Context, id uuid.UUID) (*Analysis, error)
}
