package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/toolsathi/toolsathi/pkg/ledger"
	"github.com/toolsathi/toolsathi/pkg/models"
	"github.com/toolsathi/toolsathi/pkg/quota"
)

func setupMCP(t *testing.T) (*Server, ledger.Ledger) {
	t.Helper()
	l, err := ledger.New(filepath.Join(t.TempDir(), "usage.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	return New(l, nil, nil, nil, "test"), l
}

// run feeds newline-delimited JSON-RPC requests to the server and returns the
// decoded responses in order.
func run(t *testing.T, s *Server, requests ...string) []Response {
	t.Helper()
	in := strings.NewReader(strings.Join(requests, "\n") + "\n")
	var out bytes.Buffer

	if err := s.Run(context.Background(), in, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var responses []Response
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp Response
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		responses = append(responses, resp)
	}
	return responses
}

func TestInitialize(t *testing.T) {
	s, _ := setupMCP(t)

	resps := run(t, s, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	if len(resps) != 1 {
		t.Fatalf("expected 1 response, got %d", len(resps))
	}
	result, err := json.Marshal(resps[0].Result)
	if err != nil {
		t.Fatal(err)
	}
	var init InitializeResult
	if err := json.Unmarshal(result, &init); err != nil {
		t.Fatal(err)
	}
	if init.ServerInfo.Name != "toolsathi" {
		t.Errorf("server name = %q", init.ServerInfo.Name)
	}
}

func TestInitializedNotificationSilent(t *testing.T) {
	s, _ := setupMCP(t)

	resps := run(t, s, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	if len(resps) != 0 {
		t.Errorf("notification must not produce a response, got %d", len(resps))
	}
}

func TestToolsList(t *testing.T) {
	s, _ := setupMCP(t)

	resps := run(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	result, _ := json.Marshal(resps[0].Result)
	var list ToolsListResult
	if err := json.Unmarshal(result, &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Tools) != 5 {
		t.Errorf("expected 5 tools, got %d", len(list.Tools))
	}
	names := map[string]bool{}
	for _, tool := range list.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"toolsathi_usage", "toolsathi_quota", "toolsathi_cache_stats", "toolsathi_calculate", "toolsathi_audit_search"} {
		if !names[want] {
			t.Errorf("missing tool %s", want)
		}
	}
}

func TestUnknownMethod(t *testing.T) {
	s, _ := setupMCP(t)

	resps := run(t, s, `{"jsonrpc":"2.0","id":3,"method":"bogus"}`)
	if resps[0].Error == nil || resps[0].Error.Code != CodeMethodNotFound {
		t.Errorf("expected method-not-found error, got %+v", resps[0].Error)
	}
}

func callTool(t *testing.T, s *Server, name, args string) ToolCallResult {
	t.Helper()
	req := `{"jsonrpc":"2.0","id":9,"method":"tools/call","params":{"name":"` + name + `","arguments":` + args + `}}`
	resps := run(t, s, req)
	if len(resps) != 1 {
		t.Fatalf("expected 1 response, got %d", len(resps))
	}
	raw, err := json.Marshal(resps[0].Result)
	if err != nil {
		t.Fatal(err)
	}
	var result ToolCallResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatal(err)
	}
	return result
}

func TestUsageTool(t *testing.T) {
	s, l := setupMCP(t)
	ctx := context.Background()
	for range 3 {
		if err := l.Record(ctx, "emi"); err != nil {
			t.Fatal(err)
		}
	}

	result := callTool(t, s, "toolsathi_usage", `{}`)
	if result.IsError {
		t.Fatalf("unexpected error: %s", result.Content[0].Text)
	}
	text := result.Content[0].Text
	if !strings.Contains(text, "emi") || !strings.Contains(text, "3") {
		t.Errorf("unexpected usage table:\n%s", text)
	}
}

func TestCalculateTool(t *testing.T) {
	s, _ := setupMCP(t)

	result := callTool(t, s, "toolsathi_calculate",
		`{"tool_id":"risk-reward","args":{"entry":50000,"stop_loss":49000,"take_profit":53000}}`)
	if result.IsError {
		t.Fatalf("unexpected error: %s", result.Content[0].Text)
	}
	if !strings.Contains(result.Content[0].Text, `"ratio": 3`) {
		t.Errorf("unexpected result: %s", result.Content[0].Text)
	}
}

func TestCalculateToolBadInput(t *testing.T) {
	s, _ := setupMCP(t)

	result := callTool(t, s, "toolsathi_calculate",
		`{"tool_id":"risk-reward","args":{"entry":100,"stop_loss":100,"take_profit":110}}`)
	if !result.IsError {
		t.Error("expected error result for undefined ratio")
	}
}

func TestQuotaToolUnconfigured(t *testing.T) {
	s, _ := setupMCP(t)

	result := callTool(t, s, "toolsathi_quota", `{}`)
	if result.IsError {
		t.Fatal("unconfigured quota should not be an error")
	}
	if !strings.Contains(result.Content[0].Text, "not configured") {
		t.Errorf("unexpected text: %s", result.Content[0].Text)
	}
}

func TestQuotaTool(t *testing.T) {
	l, err := ledger.New(filepath.Join(t.TempDir(), "usage.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })

	e := quota.New([]models.QuotaPolicy{{ToolID: "tags", MaxPerDay: 50}}, zeroCounter{})
	s := New(l, nil, e, nil, "test")

	result := callTool(t, s, "toolsathi_quota", `{}`)
	if result.IsError {
		t.Fatalf("unexpected error: %s", result.Content[0].Text)
	}
	if !strings.Contains(result.Content[0].Text, "tags") {
		t.Errorf("unexpected quota table: %s", result.Content[0].Text)
	}
}

type zeroCounter struct{}

func (zeroCounter) CountSince(context.Context, string, time.Time) (int64, error) {
	return 0, nil
}

func TestUnknownTool(t *testing.T) {
	s, _ := setupMCP(t)

	result := callTool(t, s, "toolsathi_nope", `{}`)
	if !result.IsError {
		t.Error("expected error result for unknown tool")
	}
}

func TestParseError(t *testing.T) {
	s, _ := setupMCP(t)

	resps := run(t, s, `{not json`)
	if resps[0].Error == nil || resps[0].Error.Code != CodeParseError {
		t.Errorf("expected parse error, got %+v", resps[0].Error)
	}
}
