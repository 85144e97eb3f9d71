// Package mcptools serves the classifier, the legal validator, and the
// jurisdiction tables as Model Context Protocol tools.
package mcptools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JaimeStill/nyaysetu/internal/classifier"
	"github.com/JaimeStill/nyaysetu/internal/jurisdiction"
	"github.com/JaimeStill/nyaysetu/internal/keywords"
	"github.com/JaimeStill/nyaysetu/internal/validation"
)

// Name is the implementation name announced to MCP clients.
const Name = "nyaysetu"

var errEmptyDescription = errors.New("description is required")

// Server wraps the MCP SDK server with the domain tools registered.
type Server struct {
	MCPServer *sdkmcp.Server

	classifier *classifier.Classifier
	validator  *validation.Validator
	registry   *jurisdiction.Registry
	logger     *slog.Logger
}

// New creates a Server exposing classify, validate_rti, validate_affidavit,
// and jurisdiction tools.
func New(
	c *classifier.Classifier,
	v *validation.Validator,
	reg *jurisdiction.Registry,
	version string,
	logger *slog.Logger,
) *Server {
	s := &Server{
		MCPServer: sdkmcp.NewServer(
			&sdkmcp.Implementation{Name: Name, Version: version},
			nil,
		),
		classifier: c,
		validator:  v,
		registry:   reg,
		logger:     logger.With("system", "mcp"),
	}
	s.registerTools()
	return s
}

// Run serves the tools over stdin and stdout until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server over stdio")
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "classify",
		Description: "Suggest whether a legal requirement needs an RTI application or an affidavit. Returns clarification questions when ambiguous.",
	}, s.handleClassify)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "validate_rti",
		Description: "Check RTI application fields against legal and jurisdiction rules before drafting.",
	}, s.handleValidateRTI)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "validate_affidavit",
		Description: "Check affidavit fields against legal and jurisdiction rules before drafting.",
	}, s.handleValidateAffidavit)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "jurisdiction",
		Description: "Look up RTI fee and affidavit rules for an Indian state or union territory. Lists profiled states when state is empty.",
	}, s.handleJurisdiction)
}

type classifyInput struct {
	Description string `json:"description" jsonschema:"free-text description of what the user needs"`
}

type validateInput struct {
	Fields map[string]any `json:"fields" jsonschema:"form fields keyed by their JSON names"`
}

type validateOutput struct {
	Passed   bool               `json:"passed"`
	Report   *validation.Report `json:"report"`
	Rendered string             `json:"rendered"`
}

type jurisdictionInput struct {
	State string `json:"state,omitempty" jsonschema:"state or union territory name; empty lists profiled states"`
}

type jurisdictionOutput struct {
	State    string                 `json:"state,omitempty"`
	Valid    bool                   `json:"valid"`
	Profiled bool                   `json:"profiled"`
	Fallback string                 `json:"fallback"`
	Profile  *jurisdiction.Profile  `json:"profile,omitempty"`
	States   []jurisdiction.Summary `json:"states,omitempty"`
}

func (s *Server) handleClassify(ctx context.Context, _ *sdkmcp.CallToolRequest, in classifyInput) (*sdkmcp.CallToolResult, classifier.Result, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, classifier.Result{}, errEmptyDescription
	}
	return nil, s.classifier.Classify(ctx, description), nil
}

func (s *Server) handleValidateRTI(_ context.Context, _ *sdkmcp.CallToolRequest, in validateInput) (*sdkmcp.CallToolResult, validateOutput, error) {
	return s.validate(keywords.RTI, in.Fields)
}

func (s *Server) handleValidateAffidavit(_ context.Context, _ *sdkmcp.CallToolRequest, in validateInput) (*sdkmcp.CallToolResult, validateOutput, error) {
	return s.validate(keywords.Affidavit, in.Fields)
}

func (s *Server) validate(dt keywords.DocumentType, fields map[string]any) (*sdkmcp.CallToolResult, validateOutput, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	report, err := s.validator.Validate(dt, fields)
	if err != nil {
		return nil, validateOutput{}, err
	}
	return nil, validateOutput{
		Passed:   report.Passed(),
		Report:   report,
		Rendered: report.String(),
	}, nil
}

func (s *Server) handleJurisdiction(_ context.Context, _ *sdkmcp.CallToolRequest, in jurisdictionInput) (*sdkmcp.CallToolResult, jurisdictionOutput, error) {
	out := jurisdictionOutput{Fallback: s.registry.Fallback()}

	if strings.TrimSpace(in.State) == "" {
		out.States = s.registry.Summaries()
		return nil, out, nil
	}

	name, ok := s.registry.Canonical(in.State)
	if !ok {
		return nil, jurisdictionOutput{}, fmt.Errorf("%w: %s", jurisdiction.ErrUnknownState, in.State)
	}

	_, profiled := s.registry.Profile(name)
	profile := s.registry.Resolve(name)
	out.State = name
	out.Valid = true
	out.Profiled = profiled
	out.Profile = &profile
	return nil, out, nil
}
