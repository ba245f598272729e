package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

// performAnalysis runs the automated performance analysis step: it loads the
// vendor from the directory, builds contract analytics, and records the
// report as a step output. A missing vendor is a hard error and surfaces as a
// step failure.
func (e *Engine) performAnalysis(ctx context.Context, workflow *models.Workflow, step *models.WorkflowStep) error {
	vendor, err := e.dir.Vendor(ctx, workflow.VendorID)
	if err != nil {
		return fmt.Errorf("vendor not found: %s", workflow.VendorID)
	}

	report := e.analytics.Build(vendor)

	step.Outputs = append(step.Outputs, models.StepOutput{
		Type:      models.OutputTypeData,
		Name:      "Performance Analysis Report",
		Value:     report,
		Timestamp: time.Now().UTC(),
	})

	if e.logger != nil {
		e.logger.Info("Performance analysis completed", "vendor", vendor.Name, "score", report.PerformanceScore)
	}
	return nil
}

// performSystemIntegration records the downstream systems updated by an
// automated renewal execution.
func (e *Engine) performSystemIntegration(workflow *models.Workflow, step *models.WorkflowStep) error {
	step.Outputs = append(step.Outputs, models.StepOutput{
		Type: models.OutputTypeData,
		Name: "Integration Status",
		Value: map[string]interface{}{
			"status":          "completed",
			"systems_updated": []string{"vendor_db", "contract_management"},
		},
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// initiateDigitalSignature kicks off signature collection for the contract
// and records the envelope reference.
func (e *Engine) initiateDigitalSignature(workflow *models.Workflow, step *models.WorkflowStep) error {
	step.Outputs = append(step.Outputs, models.StepOutput{
		Type: models.OutputTypeDocument,
		Name: "Signature Request",
		Value: map[string]interface{}{
			"envelope_id": fmt.Sprintf("env-%s", workflow.ContractID),
			"status":      "sent",
		},
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// sendStepNotifications records the fan-out of a notification-type step to
// its assignees.
func (e *Engine) sendStepNotifications(workflow *models.Workflow, step *models.WorkflowStep) error {
	step.Outputs = append(step.Outputs, models.StepOutput{
		Type: models.OutputTypeData,
		Name: "Notifications Sent",
		Value: map[string]interface{}{
			"recipients":         step.AssignedTo,
			"notification_count": len(step.AssignedTo),
		},
		Timestamp: time.Now().UTC(),
	})
	return nil
}
