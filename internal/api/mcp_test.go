package api

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/syntra-ai/syntra/internal/reports"
	"github.com/syntra-ai/syntra/internal/tasks"
)

func newTestMCPDeps(t *testing.T) MCPDeps {
	t.Helper()
	deps := setupDeps(t)
	return MCPDeps{Tasks: deps.Tasks, Tools: deps.Tools}
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func makeCallToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func makeReadResourceRequest(uri string) mcp.ReadResourceRequest {
	return mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestNewMCPServer_Builds(t *testing.T) {
	if s := NewMCPServer(newTestMCPDeps(t), "test"); s == nil {
		t.Fatal("NewMCPServer returned nil")
	}
}

func TestMCPTool_AskAssistant(t *testing.T) {
	result, err := mcpAskAssistant()(context.Background(), makeCallToolRequest("ask_assistant", map[string]any{
		"message": "plan a date for monday",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %s", toolText(t, result))
	}
	if !strings.Contains(toolText(t, result), "Monday") {
		t.Errorf("reply = %q, want the date planning template", toolText(t, result))
	}
}

func TestMCPTool_AskAssistant_MissingMessage(t *testing.T) {
	result, _ := mcpAskAssistant()(context.Background(), makeCallToolRequest("ask_assistant", map[string]any{}))
	if !result.IsError {
		t.Error("expected an error result without a message")
	}
}

func TestMCPTool_AddTask(t *testing.T) {
	deps := newTestMCPDeps(t)

	result, err := mcpAddTask(deps)(context.Background(), makeCallToolRequest("add_task", map[string]any{
		"title":    "Call the florist",
		"date":     "Jan 9, 2025",
		"priority": "high",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %s", toolText(t, result))
	}
	if !strings.HasSuffix(toolText(t, result), "to upcoming") {
		t.Errorf("text = %q", toolText(t, result))
	}

	up := deps.Tasks.Bucket(tasks.BucketUpcoming)
	last := up[len(up)-1]
	if last.Title != "Call the florist" || last.Origin != tasks.OriginAssistant || last.Priority != tasks.PriorityHigh {
		t.Errorf("stored task = %+v", last)
	}
}

func TestMCPTool_AddTask_UnknownPriorityDefaults(t *testing.T) {
	deps := newTestMCPDeps(t)
	result, _ := mcpAddTask(deps)(context.Background(), makeCallToolRequest("add_task", map[string]any{
		"title":    "x",
		"priority": "urgent",
	}))
	if result.IsError {
		t.Fatalf("unexpected error: %s", toolText(t, result))
	}

	today := deps.Tasks.Bucket(tasks.BucketToday)
	last := today[len(today)-1]
	if last.Title != "x" || last.Priority != tasks.PriorityMedium {
		t.Errorf("stored task = %+v, want medium priority", last)
	}
}

func TestMCPTool_ListTasks(t *testing.T) {
	deps := newTestMCPDeps(t)

	result, err := mcpListTasks(deps)(context.Background(), makeCallToolRequest("list_tasks", map[string]any{
		"sort": "priority",
	}))
	if err != nil || result.IsError {
		t.Fatalf("list_tasks failed: %v", err)
	}
	var ts []tasks.Task
	if err := json.Unmarshal([]byte(toolText(t, result)), &ts); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(ts) != 3 || ts[0].Priority != tasks.PriorityHigh {
		t.Errorf("tasks = %+v", ts)
	}

	result, _ = mcpListTasks(deps)(context.Background(), makeCallToolRequest("list_tasks", map[string]any{
		"bucket": "later",
	}))
	if !result.IsError {
		t.Error("expected an error result for an unknown bucket")
	}
}

func TestMCPTool_ToggleTask(t *testing.T) {
	deps := newTestMCPDeps(t)

	result, _ := mcpToggleTask(deps)(context.Background(), makeCallToolRequest("toggle_task", map[string]any{
		"id": "1",
	}))
	if result.IsError {
		t.Fatalf("unexpected error: %s", toolText(t, result))
	}
	if got, _, _ := deps.Tasks.Get("1"); !got.Completed {
		t.Error("task 1 not completed after toggle")
	}

	result, _ = mcpToggleTask(deps)(context.Background(), makeCallToolRequest("toggle_task", map[string]any{
		"id":     "1",
		"bucket": "upcoming",
	}))
	if result.IsError {
		t.Fatalf("toggling a task in the wrong bucket returned an error: %s", toolText(t, result))
	}
	if !strings.Contains(toolText(t, result), "changed=false") {
		t.Errorf("text = %q, want changed=false", toolText(t, result))
	}
	if got, _, _ := deps.Tasks.Get("1"); !got.Completed {
		t.Error("wrong-bucket toggle changed task 1")
	}

	result, _ = mcpToggleTask(deps)(context.Background(), makeCallToolRequest("toggle_task", map[string]any{
		"id": "nope",
	}))
	if result.IsError || !strings.Contains(toolText(t, result), "changed=false") {
		t.Errorf("unknown id: error=%t text=%q", result.IsError, toolText(t, result))
	}
}

func TestMCPResource_Buckets(t *testing.T) {
	deps := newTestMCPDeps(t)

	contents, err := mcpResourceBucket(deps, tasks.BucketUpcoming)(context.Background(), makeReadResourceRequest("tasks://upcoming"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected TextResourceContents, got %T", contents[0])
	}
	if tc.URI != "tasks://upcoming" || tc.MIMEType != "application/json" {
		t.Errorf("contents = %+v", tc)
	}
	var ts []tasks.Task
	if err := json.Unmarshal([]byte(tc.Text), &ts); err != nil {
		t.Fatalf("failed to parse resource: %v", err)
	}
	if len(ts) != 3 {
		t.Errorf("upcoming = %d tasks, want 3", len(ts))
	}
}

func TestMCPResource_Report(t *testing.T) {
	deps := newTestMCPDeps(t)

	contents, err := mcpResourceReport(deps)(context.Background(), makeReadResourceRequest("reports://summary"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rep reports.Report
	if err := json.Unmarshal([]byte(contents[0].(mcp.TextResourceContents).Text), &rep); err != nil {
		t.Fatalf("failed to parse report: %v", err)
	}
	if rep.Total != 6 {
		t.Errorf("total = %d, want 6", rep.Total)
	}
}

func TestMCPResource_Tools(t *testing.T) {
	deps := newTestMCPDeps(t)

	contents, err := mcpResourceTools(deps)(context.Background(), makeReadResourceRequest("tools://connected"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(contents[0].(mcp.TextResourceContents).Text, "Gmail") {
		t.Error("connected tools resource does not list Gmail")
	}
}
