// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/nyaysetu/internal/config"
	"github.com/JaimeStill/nyaysetu/internal/infrastructure"
	"github.com/JaimeStill/nyaysetu/pkg/middleware"
	"github.com/JaimeStill/nyaysetu/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	endpoints := registerRoutes(mux, cfg.API.BasePath, domain, runtime.Logger)
	runtime.Logger.Info("api routes registered", "base_path", cfg.API.BasePath, "endpoints", len(endpoints))

	return newModule(cfg, runtime, mux)
}

func newModule(cfg *config.Config, runtime *Runtime, mux *http.ServeMux) (*module.Module, error) {
	m, err := module.New(cfg.API.BasePath, mux)
	if err != nil {
		return nil, err
	}
	m.Use(
		middleware.RequestID(),
		middleware.Logger(runtime.Logger),
		middleware.Recover(runtime.Logger),
		middleware.CORS(&cfg.API.CORS),
		middleware.MaxBytes(cfg.API.MaxBodySizeBytes()),
	)
	return m, nil
}
