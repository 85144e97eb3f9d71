package mcptools_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JaimeStill/nyaysetu/internal/clarify"
	"github.com/JaimeStill/nyaysetu/internal/classifier"
	"github.com/JaimeStill/nyaysetu/internal/jurisdiction"
	"github.com/JaimeStill/nyaysetu/internal/keywords"
	"github.com/JaimeStill/nyaysetu/internal/mcptools"
	"github.com/JaimeStill/nyaysetu/internal/validation"
)

func newTestServer(t *testing.T) *mcptools.Server {
	t.Helper()

	var cfg classifier.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := jurisdiction.Default()
	c := classifier.New(cfg, keywords.Default(), clarify.Default(), nil, nil, logger)
	v := validation.New(reg, nil, logger)
	return mcptools.New(c, v, reg, "test", logger)
}

func connectInMemory(t *testing.T, ctx context.Context, srv *mcptools.Server) *sdkmcp.ClientSession {
	t.Helper()
	t1, t2 := sdkmcp.NewInMemoryTransports()
	if _, err := srv.MCPServer.Connect(ctx, t1, nil); err != nil {
		t.Fatalf("server.Connect: %v", err)
	}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("client.Connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool(t *testing.T, ctx context.Context, session *sdkmcp.ClientSession, name string, args map[string]any) map[string]any {
	t.Helper()
	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if res.IsError {
		t.Fatalf("CallTool(%s) returned error: %s", name, text(res))
	}
	result := make(map[string]any)
	if err := json.Unmarshal([]byte(text(res)), &result); err != nil {
		t.Fatalf("unmarshal tool result: %v (text: %s)", err, text(res))
	}
	return result
}

func callToolExpectError(t *testing.T, ctx context.Context, session *sdkmcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return err.Error()
	}
	if !res.IsError {
		t.Fatal("expected error but got success")
	}
	return text(res)
}

func text(res *sdkmcp.CallToolResult) string {
	for _, c := range res.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestServer_ToolDiscovery(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx, newTestServer(t))

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}

	got := make(map[string]bool)
	for _, tool := range tools.Tools {
		got[tool.Name] = true
	}
	for _, name := range []string{"classify", "validate_rti", "validate_affidavit", "jurisdiction"} {
		if !got[name] {
			t.Errorf("tool %q not registered", name)
		}
	}
}

func TestServer_Classify(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx, newTestServer(t))

	t.Run("resolved", func(t *testing.T) {
		out := callTool(t, ctx, session, "classify", map[string]any{
			"description": "I need a copy of my marksheet from my university",
		})
		if out["status"] != string(classifier.StatusResolved) {
			t.Errorf("status = %v", out["status"])
		}
		if out["primary_document"] != string(keywords.RTI) {
			t.Errorf("primary_document = %v", out["primary_document"])
		}
	})

	t.Run("ambiguous asks questions", func(t *testing.T) {
		out := callTool(t, ctx, session, "classify", map[string]any{
			"description": "hello world",
		})
		if out["status"] != string(classifier.StatusNeedsClarification) {
			t.Fatalf("status = %v", out["status"])
		}
		questions, _ := out["questions"].([]any)
		if len(questions) == 0 {
			t.Error("expected clarification questions")
		}
	})

	t.Run("blank description", func(t *testing.T) {
		msg := callToolExpectError(t, ctx, session, "classify", map[string]any{"description": "  "})
		if !strings.Contains(msg, "description is required") {
			t.Errorf("error = %q", msg)
		}
	})
}

func TestServer_Validate(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx, newTestServer(t))

	t.Run("rti missing fields", func(t *testing.T) {
		out := callTool(t, ctx, session, "validate_rti", map[string]any{
			"fields": map[string]any{"name": "Rajesh Kumar"},
		})
		if out["passed"] != false {
			t.Errorf("passed = %v", out["passed"])
		}
		rendered, _ := out["rendered"].(string)
		if !strings.Contains(rendered, "Missing required field") {
			t.Errorf("rendered = %q", rendered)
		}
	})

	t.Run("rti valid", func(t *testing.T) {
		out := callTool(t, ctx, session, "validate_rti", map[string]any{
			"fields": map[string]any{
				"name":        "Rajesh Kumar",
				"address":     "Flat 12, Shanti Nagar, Andheri East, Mumbai - 400069",
				"state":       "Maharashtra",
				"authority":   "Municipal Corporation of Greater Mumbai",
				"pio_address": "Head Office, Mahapalika Marg, Mumbai - 400001",
				"info":        "Copy of the measurement book for road repairs in Ward K-East during financial year 2023-24",
				"contact":     "9876543210",
			},
		})
		if out["passed"] != true {
			t.Errorf("passed = %v, rendered:\n%v", out["passed"], out["rendered"])
		}
	})

	t.Run("affidavit minor", func(t *testing.T) {
		out := callTool(t, ctx, session, "validate_affidavit", map[string]any{
			"fields": map[string]any{
				"deponent_name": "Priya Sharma",
				"age":           15,
				"father_name":   "Ramesh Sharma",
				"gender":        "female",
				"address":       "House 4, MG Road, Bengaluru, Karnataka - 560001",
				"state":         "Karnataka",
				"statements":    []any{"that I am a resident of the above address since 2015"},
			},
		})
		if out["passed"] != false {
			t.Errorf("passed = %v", out["passed"])
		}
	})
}

func TestServer_Jurisdiction(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx, newTestServer(t))

	t.Run("profiled state", func(t *testing.T) {
		out := callTool(t, ctx, session, "jurisdiction", map[string]any{"state": "maharashtra"})
		if out["state"] != "Maharashtra" || out["profiled"] != true {
			t.Errorf("out = %v", out)
		}
	})

	t.Run("unprofiled falls back", func(t *testing.T) {
		out := callTool(t, ctx, session, "jurisdiction", map[string]any{"state": "Sikkim"})
		if out["profiled"] != false || out["valid"] != true {
			t.Errorf("out = %v", out)
		}
		profile, _ := out["profile"].(map[string]any)
		if profile["state"] != out["fallback"] {
			t.Errorf("profile state = %v, fallback = %v", profile["state"], out["fallback"])
		}
	})

	t.Run("lists states", func(t *testing.T) {
		out := callTool(t, ctx, session, "jurisdiction", map[string]any{})
		states, _ := out["states"].([]any)
		if len(states) == 0 {
			t.Error("expected state summaries")
		}
	})

	t.Run("unknown state", func(t *testing.T) {
		msg := callToolExpectError(t, ctx, session, "jurisdiction", map[string]any{"state": "Atlantis"})
		if !strings.Contains(msg, "Atlantis") {
			t.Errorf("error = %q", msg)
		}
	})
}
