package engine

import (
	"sort"

	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

// Read projections over the in-memory workflow map. Returned workflows are
// the live objects; callers must treat them as read-only.

// AllWorkflows returns every tracked workflow, oldest first.
func (e *Engine) AllWorkflows() []*models.Workflow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sortedLocked(func(*models.Workflow) bool { return true })
}

// Workflow returns a workflow by id.
func (e *Engine) Workflow(id string) (*models.Workflow, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, ok := e.workflows[id]
	return w, ok
}

// WorkflowsByVendor returns the workflows tracked for a vendor.
func (e *Engine) WorkflowsByVendor(vendorID string) []*models.Workflow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sortedLocked(func(w *models.Workflow) bool { return w.VendorID == vendorID })
}

// ActiveWorkflows returns workflows that are pending or in progress.
func (e *Engine) ActiveWorkflows() []*models.Workflow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sortedLocked(func(w *models.Workflow) bool { return w.IsActive() })
}

// Summary aggregates workflow counts by state and type.
func (e *Engine) Summary() models.WorkflowSummary {
	e.mu.Lock()
	defer e.mu.Unlock()

	summary := models.WorkflowSummary{ByType: make(map[models.WorkflowType]int)}
	for _, w := range e.workflows {
		summary.Total++
		switch w.Status {
		case models.WorkflowStatusInProgress:
			summary.Active++
		case models.WorkflowStatusCompleted:
			summary.Completed++
		case models.WorkflowStatusOverdue:
			summary.Overdue++
		}
		summary.ByType[w.WorkflowType]++
	}
	return summary
}

// ContractAnalytics returns the cached analytics for a contract, or nil when
// no analysis has run.
func (e *Engine) ContractAnalytics(contractID string) *models.ContractAnalytics {
	return e.analytics.Cached(contractID)
}

// AllContractAnalytics returns every cached analytics report.
func (e *Engine) AllContractAnalytics() []*models.ContractAnalytics {
	return e.analytics.All()
}

func (e *Engine) sortedLocked(keep func(*models.Workflow) bool) []*models.Workflow {
	var out []*models.Workflow
	for _, w := range e.workflows {
		if keep(w) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
