package main

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/nyaysetu/internal/api"
	"github.com/JaimeStill/nyaysetu/internal/config"
	"github.com/JaimeStill/nyaysetu/internal/infrastructure"
	"github.com/JaimeStill/nyaysetu/pkg/handlers"
	"github.com/JaimeStill/nyaysetu/pkg/lifecycle"
	"github.com/JaimeStill/nyaysetu/pkg/module"
)

type readiness struct {
	Status string            `json:"status"`
	Checks []lifecycle.Check `json:"checks"`
}

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, fmt.Errorf("api module: %w", err)
	}
	return &Modules{API: apiModule}, nil
}

func (m *Modules) Mount(router *module.Router) error {
	return router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))

	router.HandleNative("GET /readyz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := readiness{Status: "ready", Checks: infra.Lifecycle.Checks()}

		switch {
		case !infra.Lifecycle.Ready():
			resp.Status = "starting"
		default:
			if err := infra.Database.Ping(r.Context()); err != nil {
				infra.Logger.Warn("readiness check failed", "error", err)
				resp.Status = "database unavailable"
			}
		}

		status := http.StatusOK
		if resp.Status != "ready" {
			status = http.StatusServiceUnavailable
		}
		handlers.RespondJSON(w, status, resp)
	}))

	router.HandleNative("GET /metrics", infra.Metrics.Handler())

	return router
}
