package engine

import (
	"context"
	"time"

	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

// UrgencyForDays buckets days-until-expiry into an urgency level. Contracts
// more than 120 days out do not trigger a workflow; already-expired contracts
// fall into emergency renewal.
func UrgencyForDays(days int) (models.UrgencyLevel, bool) {
	switch {
	case days > 120:
		return "", false
	case days > 90:
		return models.UrgencyEarlyPlanning, true
	case days > 60:
		return models.UrgencyNegotiationPhase, true
	case days > 30:
		return models.UrgencyUrgentDecision, true
	default:
		return models.UrgencyEmergencyRenewal, true
	}
}

// ScanVendors is the monitoring sweep: it classifies every vendor's contract
// by days to expiry and initiates a renewal workflow for those in a
// triggering window. The sweep is idempotent per vendor: a vendor that
// already has a renewal_initiation workflow tracked is skipped, whatever
// state that workflow is in.
//
// Workflow state lives in memory, so a process restart without an archive
// re-initiates workflows for any vendor still inside a triggering window.
func (e *Engine) ScanVendors(ctx context.Context) (int, error) {
	vendors, err := e.dir.AllVendors(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	initiated := 0

	for _, vendor := range vendors {
		days := vendor.Contract.DaysUntilExpiry(now)
		urgency, ok := UrgencyForDays(days)
		if !ok {
			continue
		}

		if e.hasRenewalWorkflow(vendor.ID) {
			continue
		}

		if e.logger != nil {
			e.logger.Info("Contract in renewal window", "vendor", vendor.Name, "days_until_expiry", days, "urgency", urgency)
		}

		if _, err := e.InitiateRenewalWorkflow(ctx, vendor, urgency); err != nil {
			if e.logger != nil {
				e.logger.Error("Failed to initiate renewal workflow", "vendor_id", vendor.ID, "error", err)
			}
			continue
		}
		initiated++
	}

	return initiated, nil
}

func (e *Engine) hasRenewalWorkflow(vendorID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, w := range e.workflows {
		if w.VendorID == vendorID && w.WorkflowType == models.WorkflowTypeRenewalInitiation {
			return true
		}
	}
	return false
}

// SweepOverdue flags active workflows past their due date as overdue and
// sends the overdue notification. The execution loop never sets overdue
// itself; this sweep is the only driver.
func (e *Engine) SweepOverdue(ctx context.Context) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now().UTC()
	flagged := 0

	for _, workflow := range e.workflows {
		if !workflow.IsActive() {
			continue
		}
		if workflow.Metadata.DueDate.IsZero() || !workflow.Metadata.DueDate.Before(now) {
			continue
		}

		workflow.Status = models.WorkflowStatusOverdue
		workflow.UpdatedAt = now
		e.notifyLocked(ctx, workflow, EventOverdue)
		e.persistLocked(ctx, workflow)
		flagged++

		if e.logger != nil {
			e.logger.Warn("Workflow overdue", "workflow_id", workflow.ID, "due_date", workflow.Metadata.DueDate)
		}
	}

	return flagged
}
