package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/nyaysetu/internal/mcptools"
)

func newMCPCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the classifier, validator, and state rules as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a := get()
			srv := mcptools.New(a.classifier, a.validator, a.registry, version, a.logger)
			return srv.Run(ctx)
		},
	}
}
