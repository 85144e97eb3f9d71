package api

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/nyaysetu/internal/jurisdiction"
	"github.com/JaimeStill/nyaysetu/internal/validation"
	"github.com/JaimeStill/nyaysetu/pkg/routes"
)

// registerRoutes mounts every domain handler and serves the endpoint index
// at the module root.
func registerRoutes(mux *http.ServeMux, basePath string, domain *Domain, logger *slog.Logger) []routes.Endpoint {
	endpoints := routes.Register(
		mux,
		jurisdiction.NewHandler(domain.Registry, logger).Routes(),
		validation.NewHandler(domain.Validator, logger).Routes(),
		domain.Analyses.Handler().Routes(),
		domain.Documents.Handler().Routes(),
		domain.Lifecycles.Handler().Routes(),
	)
	mux.HandleFunc("GET /{$}", routes.Index(basePath, endpoints))
	return endpoints
}
