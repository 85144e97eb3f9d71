package documents

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/JaimeStill/nyaysetu/internal/forms"
	"github.com/JaimeStill/nyaysetu/pkg/pagination"
)

// System defines the public contract for document domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	// Download returns the document and a reader over its PDF. The caller
	// must close the reader.
	Download(ctx context.Context, id uuid.UUID) (*Document, io.ReadCloser, error)

	GenerateRTI(ctx context.Context, app forms.RTIApplication) (*Document, error)
	GenerateAffidavit(ctx context.Context, aff forms.Affidavit) (*Document, error)
	// GenerateAppeal drafts a first appeal against the RTI application id
	// and marks the original lifecycle APPEAL_FILED.
	GenerateAppeal(ctx context.Context, id uuid.UUID, cmd AppealCommand) (*Document, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
