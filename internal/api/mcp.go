package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/syntra-ai/syntra/internal/reports"
	"github.com/syntra-ai/syntra/internal/responder"
	"github.com/syntra-ai/syntra/internal/tasks"
	"github.com/syntra-ai/syntra/internal/tools"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Tasks *tasks.Store
	Tools *tools.Registry
}

// NewMCPServer creates an MCP server exposing the task list, the tool
// catalog and the canned assistant to MCP clients.
func NewMCPServer(deps MCPDeps, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"syntra",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("syntra: a personal assistant with a task list and scheduling calendar."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("ask_assistant",
			mcp.WithDescription("Ask the assistant a question and get its reply immediately."),
			mcp.WithString("message", mcp.Description("The message to send"), mcp.Required()),
		),
		mcpAskAssistant(),
	)

	s.AddTool(
		mcp.NewTool("add_task",
			mcp.WithDescription("Add a task on behalf of the assistant. Blank fields take defaults."),
			mcp.WithString("title", mcp.Description("Task title"), mcp.Required()),
			mcp.WithString("date", mcp.Description("Display date; today's date routes to the today list")),
			mcp.WithString("time", mcp.Description("Time of day, e.g. 3:30 PM")),
			mcp.WithString("note", mcp.Description("Free-form note")),
			mcp.WithString("category", mcp.Description("Category, e.g. Work or Personal")),
			mcp.WithString("location", mcp.Description("Optional location")),
			mcp.WithString("priority", mcp.Description("low, medium or high; anything else means medium")),
		),
		mcpAddTask(deps),
	)

	s.AddTool(
		mcp.NewTool("list_tasks",
			mcp.WithDescription("List tasks in a bucket as JSON."),
			mcp.WithString("bucket", mcp.Description("today (default) or upcoming")),
			mcp.WithString("sort", mcp.Description("time (default) or priority")),
		),
		mcpListTasks(deps),
	)

	s.AddTool(
		mcp.NewTool("toggle_task",
			mcp.WithDescription("Flip the completed flag of a task. A task missing from the bucket is left alone and reported as changed=false."),
			mcp.WithString("id", mcp.Description("Task id"), mcp.Required()),
			mcp.WithString("bucket", mcp.Description("today (default) or upcoming")),
		),
		mcpToggleTask(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"tasks://today",
			"Today's Tasks",
			mcp.WithResourceDescription("Tasks scheduled for today as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceBucket(deps, tasks.BucketToday),
	)

	s.AddResource(
		mcp.NewResource(
			"tasks://upcoming",
			"Upcoming Tasks",
			mcp.WithResourceDescription("Tasks scheduled after today as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceBucket(deps, tasks.BucketUpcoming),
	)

	s.AddResource(
		mcp.NewResource(
			"reports://summary",
			"Task Report",
			mcp.WithResourceDescription("Completion statistics across both buckets"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceReport(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"tools://connected",
			"Connected Tools",
			mcp.WithResourceDescription("Integrations the user has connected"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceTools(deps),
	)

	return s
}

func mcpAskAssistant() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		msg, err := req.RequireString("message")
		if err != nil {
			return mcpError("message is required"), nil
		}
		return mcpText(responder.Text(msg)), nil
	}
}

func mcpAddTask(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := req.RequireString("title")
		if err != nil {
			return mcpError("title is required"), nil
		}
		t, b := deps.Tasks.AddFromAssistant(tasks.Draft{
			Title:    title,
			Date:     req.GetString("date", ""),
			Time:     req.GetString("time", ""),
			Note:     req.GetString("note", ""),
			Category: req.GetString("category", ""),
			Location: req.GetString("location", ""),
			Priority: tasks.Priority(req.GetString("priority", "")),
		})
		return mcpText(fmt.Sprintf("Added task %s to %s", t.ID, b)), nil
	}
}

func mcpListTasks(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, ok := tasks.ParseBucket(req.GetString("bucket", ""))
		if !ok {
			return mcpError("bucket must be today or upcoming"), nil
		}
		mode, err := tasks.ParseSortMode(req.GetString("sort", ""))
		if err != nil {
			return mcpError(err.Error()), nil
		}

		out, err := json.Marshal(tasks.Sort(deps.Tasks.Bucket(b), mode))
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal tasks: %v", err)), nil
		}
		return mcpText(string(out)), nil
	}
}

func mcpToggleTask(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcpError("id is required"), nil
		}
		b, ok := tasks.ParseBucket(req.GetString("bucket", ""))
		if !ok {
			return mcpError("bucket must be today or upcoming"), nil
		}
		if !deps.Tasks.Toggle(b, id) {
			return mcpText(fmt.Sprintf("Task %s changed=false", id)), nil
		}
		t, _, _ := deps.Tasks.Get(id)
		return mcpText(fmt.Sprintf("Task %s changed=true completed=%t", id, t.Completed)), nil
	}
}

func mcpResourceBucket(deps MCPDeps, b tasks.Bucket) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ts := deps.Tasks.Bucket(b)
		if ts == nil {
			ts = []tasks.Task{}
		}
		return jsonResource(req.Params.URI, ts)
	}
}

func mcpResourceReport(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(req.Params.URI, reports.Build(deps.Tasks))
	}
}

func mcpResourceTools(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ts := deps.Tools.List()
		if ts == nil {
			ts = []tools.Tool{}
		}
		return jsonResource(req.Params.URI, ts)
	}
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(b),
		},
	}, nil
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
