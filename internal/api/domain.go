package api

import (
	"github.com/JaimeStill/nyaysetu/internal/analyses"
	"github.com/JaimeStill/nyaysetu/internal/clarify"
	"github.com/JaimeStill/nyaysetu/internal/classifier"
	"github.com/JaimeStill/nyaysetu/internal/documents"
	"github.com/JaimeStill/nyaysetu/internal/drafting"
	"github.com/JaimeStill/nyaysetu/internal/jurisdiction"
	"github.com/JaimeStill/nyaysetu/internal/keywords"
	"github.com/JaimeStill/nyaysetu/internal/lifecycles"
	"github.com/JaimeStill/nyaysetu/internal/validation"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Registry   *jurisdiction.Registry
	Validator  *validation.Validator
	Analyses   analyses.System
	Documents  documents.System
	Lifecycles lifecycles.System
}

// NewDomain creates all domain systems from the API runtime. The rule
// tables are loaded once here and shared read-only by every system.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()
	registry := jurisdiction.Default()

	c := classifier.New(
		runtime.Classifier,
		keywords.Default(),
		clarify.Default(),
		runtime.Service,
		runtime.Metrics,
		runtime.Logger,
	)

	validator := validation.New(registry, runtime.Metrics, runtime.Logger)
	pipeline := documents.NewPipeline(validator, drafting.New(registry))

	return &Domain{
		Registry:   registry,
		Validator:  validator,
		Analyses:   analyses.New(db, c, runtime.Logger, runtime.Pagination),
		Documents:  documents.New(db, runtime.Storage, pipeline, runtime.Metrics, runtime.Logger, runtime.Pagination),
		Lifecycles: lifecycles.New(db, runtime.Logger, runtime.Pagination),
	}
}
