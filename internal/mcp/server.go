package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/fleetflow/contract-lifecycle/internal/engine"
)

// Server exposes the workflow engine as MCP tools so agent frontends can
// inspect and drive contract workflows.
type Server struct {
	mcpServer *server.MCPServer
	engine    *engine.Engine
}

// NewServer creates a new MCP Server over the engine.
func NewServer(eng *engine.Engine) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"Contract Lifecycle",
			"1.0.0",
			server.WithToolCapabilities(true),
		),
		engine: eng,
	}

	s.registerTools()
	return s
}

// GetMCPServer returns the underlying MCP server for mounting.
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_workflows",
			mcp.WithDescription("List contract workflows, optionally filtered by vendor"),
			mcp.WithString("vendor_id", mcp.Description("Only return workflows for this vendor")),
		),
		s.handleListWorkflows,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"workflow_summary",
			mcp.WithDescription("Aggregate counts of workflows by state and type"),
		),
		s.handleWorkflowSummary,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"complete_step",
			mcp.WithDescription("Signal external completion of a manual workflow step"),
			mcp.WithString("workflow_id", mcp.Required(), mcp.Description("The workflow id")),
			mcp.WithString("step_id", mcp.Required(), mcp.Description("The id of the workflow's current step")),
		),
		s.handleCompleteStep,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"cancel_workflow",
			mcp.WithDescription("Cancel a workflow so it makes no further progress"),
			mcp.WithString("workflow_id", mcp.Required(), mcp.Description("The workflow id")),
		),
		s.handleCancelWorkflow,
	)
}

func (s *Server) handleListWorkflows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	vendorID, _ := args["vendor_id"].(string)
	workflows := s.engine.AllWorkflows()
	if vendorID != "" {
		workflows = s.engine.WorkflowsByVendor(vendorID)
	}

	jsonBytes, _ := json.Marshal(workflows)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleWorkflowSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, _ := json.Marshal(s.engine.Summary())
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleCompleteStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Invalid arguments type"), nil
	}

	workflowID, ok := args["workflow_id"].(string)
	if !ok || workflowID == "" {
		return mcp.NewToolResultError("Missing required parameter: workflow_id"), nil
	}
	stepID, ok := args["step_id"].(string)
	if !ok || stepID == "" {
		return mcp.NewToolResultError("Missing required parameter: step_id"), nil
	}

	if err := s.engine.CompleteStep(ctx, workflowID, stepID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to complete step: %v", err)), nil
	}

	workflow, _ := s.engine.Workflow(workflowID)
	jsonBytes, _ := json.Marshal(workflow)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleCancelWorkflow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Invalid arguments type"), nil
	}

	workflowID, ok := args["workflow_id"].(string)
	if !ok || workflowID == "" {
		return mcp.NewToolResultError("Missing required parameter: workflow_id"), nil
	}

	if err := s.engine.Cancel(ctx, workflowID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to cancel workflow: %v", err)), nil
	}

	return mcp.NewToolResultText("Workflow cancelled"), nil
}

// MountHTTPHandlers mounts the MCP protocol endpoints on a mux.
func MountHTTPHandlers(mux *http.ServeMux, mcpServer *server.MCPServer) {
	sseServer := server.NewSSEServer(mcpServer, server.WithStaticBasePath("/mcp"))

	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			sseServer.ServeHTTP(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	mux.HandleFunc("/mcp/sse", sseServer.ServeHTTP)
	mux.HandleFunc("/mcp/message", sseServer.ServeHTTP)
}
