package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

// Event is a workflow lifecycle event that triggers notifications.
type Event string

const (
	EventInitiated     Event = "initiated"
	EventStepCompleted Event = "step_completed"
	EventOverdue       Event = "overdue"
	EventCompleted     Event = "completed"
)

// payload is one notification built from a per-event template, before
// delivery is attempted.
type payload struct {
	kind      models.CommunicationType
	recipient string
	subject   string
	content   string
}

// notifyLocked builds the notification payloads for an event and attempts
// delivery. Each attempt is appended to the workflow's communications log
// with status sent or failed; delivery failures never abort the workflow.
// Callers must hold e.mu.
func (e *Engine) notifyLocked(ctx context.Context, workflow *models.Workflow, event Event) {
	vendor, err := e.dir.Vendor(ctx, workflow.VendorID)
	if err != nil {
		return
	}

	for _, p := range e.buildNotifications(workflow, vendor, event) {
		var deliveryErr error
		switch p.kind {
		case models.CommunicationEmail:
			deliveryErr = e.notifier.SendEmail(ctx, p.recipient, p.subject, p.content)
		case models.CommunicationSMS:
			deliveryErr = e.notifier.SendSMS(ctx, p.recipient, p.content)
		}

		status := models.CommunicationSent
		if deliveryErr != nil {
			status = models.CommunicationFailed
			e.notifyFailures.Add(ctx, 1)
			if e.logger != nil {
				e.logger.Warn("Failed to send notification", "recipient", p.recipient, "error", deliveryErr)
			}
		}

		workflow.Communications = append(workflow.Communications, models.WorkflowCommunication{
			ID:        fmt.Sprintf("comm-%s", uuid.New().String()),
			Type:      p.kind,
			Recipient: p.recipient,
			Subject:   p.subject,
			Content:   p.content,
			Status:    status,
			SentAt:    time.Now().UTC(),
		})
	}
}

// buildNotifications is the fixed per-event template table. Events without a
// template produce no notifications.
func (e *Engine) buildNotifications(workflow *models.Workflow, vendor *models.VendorSnapshot, event Event) []payload {
	switch event {
	case EventInitiated:
		return []payload{{
			kind:      models.CommunicationEmail,
			recipient: e.procurementInbox,
			subject:   fmt.Sprintf("Contract Renewal Workflow Initiated - %s", vendor.Name),
			content: fmt.Sprintf(
				"A new contract renewal workflow has been initiated for %s.\n\n"+
					"Contract Details:\n"+
					"- Contract ID: %s\n"+
					"- Expiry Date: %s\n"+
					"- Current Performance: %.0f%%\n"+
					"- Priority: %s\n\n"+
					"Next Steps:\n"+
					"- Review automated recommendations\n"+
					"- Begin performance analysis\n"+
					"- Prepare negotiation strategy if needed",
				vendor.Name, workflow.ContractID,
				vendor.Contract.EndDate.Format("2006-01-02"),
				vendor.Performance.Overall.Score, workflow.Priority),
		}}

	case EventCompleted:
		return []payload{{
			kind:      models.CommunicationEmail,
			recipient: e.procurementInbox,
			subject:   fmt.Sprintf("Contract Workflow Completed - %s", vendor.Name),
			content: fmt.Sprintf(
				"Contract workflow has been completed for %s.\n\n"+
					"Final Status: %s\n"+
					"Completion Date: %s\n\n"+
					"Please review the updated contract details in the vendor management system.",
				vendor.Name, workflow.Status, time.Now().UTC().Format("2006-01-02")),
		}}

	case EventOverdue:
		return []payload{
			{
				kind:      models.CommunicationEmail,
				recipient: e.procurementInbox,
				subject:   fmt.Sprintf("Contract Workflow Overdue - %s", vendor.Name),
				content: fmt.Sprintf(
					"The %s workflow for %s has passed its due date (%s) without completing.\n\n"+
						"Current step: %s\nPriority: %s\n\nPlease review and escalate as needed.",
					workflow.WorkflowType, vendor.Name,
					workflow.Metadata.DueDate.Format("2006-01-02"),
					currentStepName(workflow), workflow.Priority),
			},
			{
				kind:      models.CommunicationSMS,
				recipient: vendor.Contact.Phone,
				content: fmt.Sprintf("FleetFlow: contract workflow for %s is overdue. Current step: %s.",
					vendor.Name, currentStepName(workflow)),
			},
		}
	}

	return nil
}

func currentStepName(workflow *models.Workflow) string {
	if step := workflow.CurrentStep(); step != nil {
		return step.Name
	}
	return "(none)"
}
