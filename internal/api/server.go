// Package api contains the HTTP handlers for the contract lifecycle service.
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fleetflow/contract-lifecycle/internal/engine"
)

// Server holds the dependencies for the API server.
type Server struct {
	Engine *engine.Engine
}

// NewServer creates a new Server.
func NewServer(eng *engine.Engine) *Server {
	return &Server{Engine: eng}
}

// RegisterRoutes mounts the workflow API on an echo group.
func (s *Server) RegisterRoutes(g *echo.Group) {
	g.GET("/workflows", s.ListWorkflows)
	g.GET("/workflows/summary", s.WorkflowSummary)
	g.GET("/workflows/:id", s.GetWorkflow)
	g.POST("/workflows/:id/steps/:stepID/complete", s.CompleteStep)
	g.POST("/workflows/:id/execute", s.ExecuteNext)
	g.POST("/workflows/:id/cancel", s.CancelWorkflow)
	g.POST("/workflows/:id/retry", s.RetryStep)
	g.POST("/sweep", s.Sweep)
	g.GET("/analytics", s.ListAnalytics)
	g.GET("/analytics/:contractID", s.GetAnalytics)
}

// HealthStatus represents the health check response.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

// HandleHealth returns basic health status (always returns 200 OK).
func (s *Server) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Service:   "contract-lifecycle",
		Version:   "1.0.0",
	})
}

// ListWorkflows returns workflows, optionally filtered by vendor or activity.
// (GET /api/v1/workflows?vendor_id=...&active=true)
func (s *Server) ListWorkflows(c echo.Context) error {
	if vendorID := c.QueryParam("vendor_id"); vendorID != "" {
		return c.JSON(http.StatusOK, s.Engine.WorkflowsByVendor(vendorID))
	}
	if c.QueryParam("active") == "true" {
		return c.JSON(http.StatusOK, s.Engine.ActiveWorkflows())
	}
	return c.JSON(http.StatusOK, s.Engine.AllWorkflows())
}

// GetWorkflow returns a single workflow by id.
// (GET /api/v1/workflows/:id)
func (s *Server) GetWorkflow(c echo.Context) error {
	workflow, ok := s.Engine.Workflow(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Workflow not found")
	}
	return c.JSON(http.StatusOK, workflow)
}

// WorkflowSummary returns the aggregate workflow counts.
// (GET /api/v1/workflows/summary)
func (s *Server) WorkflowSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Engine.Summary())
}

// CompleteStep signals external completion of a manual step.
// (POST /api/v1/workflows/:id/steps/:stepID/complete)
func (s *Server) CompleteStep(c echo.Context) error {
	ctx := c.Request().Context()

	err := s.Engine.CompleteStep(ctx, c.Param("id"), c.Param("stepID"))
	if err == engine.ErrWorkflowNotFound {
		return echo.NewHTTPError(http.StatusNotFound, "Workflow not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	workflow, _ := s.Engine.Workflow(c.Param("id"))
	return c.JSON(http.StatusOK, workflow)
}

// ExecuteNext re-drives a stalled workflow, e.g. after dependencies were
// satisfied externally.
// (POST /api/v1/workflows/:id/execute)
func (s *Server) ExecuteNext(c echo.Context) error {
	ctx := c.Request().Context()

	err := s.Engine.ExecuteNext(ctx, c.Param("id"))
	if err == engine.ErrWorkflowNotFound {
		return echo.NewHTTPError(http.StatusNotFound, "Workflow not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	workflow, _ := s.Engine.Workflow(c.Param("id"))
	return c.JSON(http.StatusOK, workflow)
}

// CancelWorkflow halts a workflow permanently.
// (POST /api/v1/workflows/:id/cancel)
func (s *Server) CancelWorkflow(c echo.Context) error {
	ctx := c.Request().Context()

	err := s.Engine.Cancel(ctx, c.Param("id"))
	if err == engine.ErrWorkflowNotFound {
		return echo.NewHTTPError(http.StatusNotFound, "Workflow not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	workflow, _ := s.Engine.Workflow(c.Param("id"))
	return c.JSON(http.StatusOK, workflow)
}

// RetryStep resets the current failed step and re-drives execution.
// (POST /api/v1/workflows/:id/retry)
func (s *Server) RetryStep(c echo.Context) error {
	ctx := c.Request().Context()

	err := s.Engine.RetryStep(ctx, c.Param("id"))
	if err == engine.ErrWorkflowNotFound {
		return echo.NewHTTPError(http.StatusNotFound, "Workflow not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	workflow, _ := s.Engine.Workflow(c.Param("id"))
	return c.JSON(http.StatusOK, workflow)
}

// SweepResult reports what a manually triggered sweep did.
type SweepResult struct {
	Initiated int `json:"initiated"`
	Overdue   int `json:"overdue"`
}

// Sweep runs the vendor scan and the overdue sweep once.
// (POST /api/v1/sweep)
func (s *Server) Sweep(c echo.Context) error {
	ctx := c.Request().Context()

	initiated, err := s.Engine.ScanVendors(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Sweep failed: "+err.Error())
	}
	overdue := s.Engine.SweepOverdue(ctx)

	return c.JSON(http.StatusOK, SweepResult{Initiated: initiated, Overdue: overdue})
}

// ListAnalytics returns every cached contract analytics report.
// (GET /api/v1/analytics)
func (s *Server) ListAnalytics(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Engine.AllContractAnalytics())
}

// GetAnalytics returns the cached analytics for one contract.
// (GET /api/v1/analytics/:contractID)
func (s *Server) GetAnalytics(c echo.Context) error {
	report := s.Engine.ContractAnalytics(c.Param("contractID"))
	if report == nil {
		return echo.NewHTTPError(http.StatusNotFound, "No analytics for contract")
	}
	return c.JSON(http.StatusOK, report)
}
