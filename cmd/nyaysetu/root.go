package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/nyaysetu/internal/clarify"
	"github.com/JaimeStill/nyaysetu/internal/classifier"
	"github.com/JaimeStill/nyaysetu/internal/config"
	"github.com/JaimeStill/nyaysetu/internal/documents"
	"github.com/JaimeStill/nyaysetu/internal/drafting"
	"github.com/JaimeStill/nyaysetu/internal/jurisdiction"
	"github.com/JaimeStill/nyaysetu/internal/keywords"
	"github.com/JaimeStill/nyaysetu/internal/llm"
	"github.com/JaimeStill/nyaysetu/internal/validation"
	"github.com/JaimeStill/nyaysetu/pkg/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootFlags struct {
	config string
	json   bool
}

// app holds the offline systems shared by the subcommands. It is built
// once per invocation in the root pre-run hook.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	registry   *jurisdiction.Registry
	classifier *classifier.Classifier
	validator  *validation.Validator
	pipeline   *documents.Pipeline
	service    llm.Client
}

func newApp(ctx context.Context, path string, stderr io.Writer) (*app, error) {
	cfg, err := config.LoadCore(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(&cfg.Logging, stderr)

	service, err := llm.New(ctx, &cfg.Classifier.Service, logger)
	if err != nil {
		return nil, fmt.Errorf("classification service: %w", err)
	}

	registry := jurisdiction.Default()
	validator := validation.New(registry, nil, logger)

	return &app{
		cfg:        cfg,
		logger:     logger,
		registry:   registry,
		classifier: classifier.New(cfg.Classifier, keywords.Default(), clarify.Default(), service, nil, logger),
		validator:  validator,
		pipeline:   documents.NewPipeline(validator, drafting.New(registry)),
		service:    service,
	}, nil
}

func (a *app) close() {
	if c, ok := a.service.(io.Closer); ok {
		c.Close()
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	var a *app

	root := &cobra.Command{
		Use:   "nyaysetu",
		Short: "Suggest, validate, and draft RTI applications and affidavits",
		Long: "NyaySetu suggests whether a legal need calls for an RTI application or an\n" +
			"affidavit, checks the form against state rules, and drafts the document.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a, err = newApp(cmd.Context(), flags.config, cmd.ErrOrStderr())
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a != nil {
				a.close()
			}
		},
	}
	root.Version = version

	pf := root.PersistentFlags()
	pf.StringVar(&flags.config, "config", config.BaseConfigFile, "path to config.toml")
	pf.BoolVar(&flags.json, "json", false, "print machine-readable JSON")

	get := func() *app { return a }
	root.AddCommand(
		newClassifyCmd(get, flags),
		newValidateCmd(get, flags),
		newStatesCmd(get, flags),
		newDraftCmd(get, flags),
		newMCPCmd(get),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readJSON(in io.Reader, path string, v any) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
