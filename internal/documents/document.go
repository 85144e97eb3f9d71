// Package documents implements the generated-document domain.
// It runs the validate, draft, render, store pipeline for RTI applications,
// first appeals, and affidavits, and persists the resulting PDFs with
// metadata and an attached lifecycle.
package documents

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/nyaysetu/internal/keywords"
)

// ContentType is the media type of every generated document.
const ContentType = "application/pdf"

// Document represents a generated document with its metadata and blob storage reference.
// Status mirrors the current lifecycle state.
type Document struct {
	ID              uuid.UUID             `json:"id"`
	Type            keywords.DocumentType `json:"type"`
	Title           string                `json:"title"`
	ApplicantName   string                `json:"applicant_name"`
	State           string                `json:"state"`
	Hash            string                `json:"hash"`
	ReferenceNumber *string               `json:"reference_number"`
	StorageKey      string                `json:"storage_key"`
	PageCount       *int                  `json:"page_count"`
	SizeBytes       int64                 `json:"size_bytes"`
	Request         json.RawMessage       `json:"request,omitempty"`
	Status          *string               `json:"status"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// Filename returns the download name of the document.
func (d Document) Filename() string {
	short := d.Hash
	if len(short) > 8 {
		short = short[:8]
	}
	return filenamePrefix(d.Type) + "_" + short + ".pdf"
}

// AppealCommand carries the grounds for a first appeal against a stored
// RTI application.
type AppealCommand struct {
	ReasonCode      int    `json:"reason_code"`
	Reason          string `json:"reason,omitempty"`
	ApplicationDate string `json:"application_date,omitempty"`
}

func filenamePrefix(dt keywords.DocumentType) string {
	switch dt {
	case keywords.RTI:
		return "rti_application"
	case keywords.Affidavit:
		return "affidavit"
	case keywords.FirstAppeal:
		return "rti_first_appeal"
	case keywords.LegalNotice:
		return "legal_notice"
	}
	return "document"
}
