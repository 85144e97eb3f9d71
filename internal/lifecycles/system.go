package lifecycles

import (
	"context"
	"time"

	"github.com/JaimeStill/nyaysetu/pkg/pagination"
)

// System defines the public contract for lifecycle tracking.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Lifecycle], error)

	// Find returns the lifecycle for a document hash including its history.
	Find(ctx context.Context, hash string) (*Lifecycle, error)
	Create(ctx context.Context, cmd CreateCommand) (*Lifecycle, error)
	// UpdateState moves the lifecycle to cmd.State and appends a history event.
	UpdateState(ctx context.Context, hash string, cmd UpdateCommand) (*Lifecycle, error)
	// Pending lists upcoming deadlines of open lifecycles as of now.
	Pending(ctx context.Context, now time.Time) ([]PendingDeadline, error)
}
