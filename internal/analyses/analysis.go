// Package analyses exposes the requirement classifier over HTTP and keeps a
// record of each classification run.
package analyses

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/nyaysetu/internal/classifier"
)

// MaxBatch bounds the number of descriptions accepted by one batch request.
const MaxBatch = 50

// BatchLimit is the number of descriptions classified concurrently.
const BatchLimit = 4

// Analysis is a stored classification run.
type Analysis struct {
	ID           uuid.UUID         `json:"id"`
	Description  string            `json:"description"`
	DocumentType *string           `json:"document_type"`
	Confidence   int               `json:"confidence"`
	Status       classifier.Status `json:"status"`
	Source       classifier.Source `json:"source"`
	CreatedAt    time.Time         `json:"created_at"`
}

// Outcome is a classifier result with the id of its stored record. ID is
// nil when the run could not be recorded.
type Outcome struct {
	ID *uuid.UUID `json:"analysis_id,omitempty"`
	classifier.Result
}

// AnalyzeRequest is the body of an analysis request.
type AnalyzeRequest struct {
	Description string `json:"description"`
}

// RefineRequest carries clarification answers for an earlier description.
type RefineRequest struct {
	Description string              `json:"description"`
	Answers     []classifier.Answer `json:"answers"`
}

// BatchRequest classifies several descriptions at once.
type BatchRequest struct {
	Descriptions []string `json:"descriptions"`
}

// BatchItem reports the outcome of one description within a batch.
// On failure Outcome is nil and Error describes the problem.
type BatchItem struct {
	Index       int      `json:"index"`
	Description string   `json:"description"`
	Outcome     *Outcome `json:"outcome,omitempty"`
	Error       string   `json:"error,omitempty"`
}
