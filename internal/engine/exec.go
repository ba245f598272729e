package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

// ErrWorkflowNotFound is returned for unknown workflow ids.
var ErrWorkflowNotFound = fmt.Errorf("workflow not found")

// startExecution moves a pending workflow to in_progress, announces it, and
// drives the first step. Callers must hold e.mu.
func (e *Engine) startExecution(ctx context.Context, workflow *models.Workflow) {
	workflow.Status = models.WorkflowStatusInProgress
	workflow.UpdatedAt = time.Now().UTC()

	e.notifyLocked(ctx, workflow, EventInitiated)
	e.enqueue(workflow.ID)
}

// ExecuteNext re-drives a workflow's current step. Callers use it after
// dependencies of a stalled step have been satisfied externally.
func (e *Engine) ExecuteNext(ctx context.Context, workflowID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	workflow, ok := e.workflows[workflowID]
	if !ok {
		return ErrWorkflowNotFound
	}

	e.executeNext(ctx, workflow)
	e.drain(ctx)
	e.persistLocked(ctx, workflow)
	return nil
}

// enqueue schedules a workflow for another executeNext pass. The queue is
// drained iteratively by the public entry points, so step completion never
// recurses into the next step.
func (e *Engine) enqueue(workflowID string) {
	e.queue = append(e.queue, workflowID)
}

// drain processes the resumption queue until empty. Callers must hold e.mu.
func (e *Engine) drain(ctx context.Context) {
	for len(e.queue) > 0 {
		id := e.queue[0]
		e.queue = e.queue[1:]
		if workflow, ok := e.workflows[id]; ok {
			e.executeNext(ctx, workflow)
		}
	}
}

// executeNext is the core state-machine step: terminal check, dependency
// gate, then either automated execution or manual assignment of the current
// step. Callers must hold e.mu.
func (e *Engine) executeNext(ctx context.Context, workflow *models.Workflow) {
	if workflow.IsTerminal() {
		return
	}

	if workflow.CurrentStepIdx >= len(workflow.Steps) {
		e.completeWorkflow(ctx, workflow)
		return
	}

	step := workflow.Steps[workflow.CurrentStepIdx]

	// A failed step blocks the cursor until retried; an in_progress manual
	// step is already assigned and waits for its external completion signal.
	if step.Status != models.StepStatusPending {
		return
	}

	if !e.dependenciesMet(workflow, step) {
		if e.logger != nil {
			e.logger.Debug("Dependencies not met for step", "workflow_id", workflow.ID, "step", step.ID)
		}
		return
	}

	now := time.Now().UTC()
	step.Status = models.StepStatusInProgress
	step.StartedAt = &now

	if step.Automatable {
		e.runAutomatedStep(ctx, workflow, step)
	} else {
		e.assignStep(ctx, workflow, step)
	}

	workflow.UpdatedAt = time.Now().UTC()
}

// dependenciesMet reports whether every dependency of the step refers to a
// completed step in the same workflow. An unknown id counts as unmet.
func (e *Engine) dependenciesMet(workflow *models.Workflow, step *models.WorkflowStep) bool {
	for _, depID := range step.Dependencies {
		dep := workflow.Step(depID)
		if dep == nil || dep.Status != models.StepStatusCompleted {
			return false
		}
	}
	return true
}

// runAutomatedStep dispatches to the type-specific handler. A handler error
// marks the step failed and stops the workflow advancing; the error never
// escapes to the caller.
func (e *Engine) runAutomatedStep(ctx context.Context, workflow *models.Workflow, step *models.WorkflowStep) {
	var err error
	switch step.Type {
	case models.StepTypePerformanceAnalysis:
		err = e.performAnalysis(ctx, workflow, step)
	case models.StepTypeSystemIntegration:
		err = e.performSystemIntegration(workflow, step)
	case models.StepTypeSignatureCollection:
		err = e.initiateDigitalSignature(workflow, step)
	case models.StepTypeNotification:
		err = e.sendStepNotifications(workflow, step)
	default:
		if e.logger != nil {
			e.logger.Warn("Unknown automatable step type", "workflow_id", workflow.ID, "type", step.Type)
		}
	}

	if err != nil {
		step.Status = models.StepStatusFailed
		step.Notes = err.Error()
		e.stepsFailed.Add(ctx, 1)
		if e.logger != nil {
			e.logger.Error("Step execution failed", "workflow_id", workflow.ID, "step", step.ID, "error", err)
		}
		return
	}

	e.completeStepLocked(ctx, workflow, step)
}

// assignStep notifies each assignee of a manual step and records the
// assignment. The engine then waits for CompleteStep.
func (e *Engine) assignStep(ctx context.Context, workflow *models.Workflow, step *models.WorkflowStep) {
	for _, assignee := range step.AssignedTo {
		subject := fmt.Sprintf("Contract Workflow Task Assignment - %s", step.Name)
		content := fmt.Sprintf("You have been assigned a contract workflow task: %s\n\nDescription: %s\n\nDue: %s",
			step.Name, step.Description, step.DueDate.Format("2006-01-02"))

		status := models.CommunicationSent
		if err := e.notifier.SendEmail(ctx, assignee, subject, content); err != nil {
			status = models.CommunicationFailed
			e.notifyFailures.Add(ctx, 1)
			if e.logger != nil {
				e.logger.Warn("Failed to send assignment notification", "recipient", assignee, "error", err)
			}
		}

		workflow.Communications = append(workflow.Communications, models.WorkflowCommunication{
			ID:        fmt.Sprintf("assign-%s-%s", step.ID, assignee),
			Type:      models.CommunicationEmail,
			Recipient: assignee,
			Subject:   subject,
			Content:   content,
			Status:    status,
			SentAt:    time.Now().UTC(),
		})
	}
}

// CompleteStep is the external completion signal for a manual step. The step
// must be the workflow's current step; completion advances the cursor by one
// and resumes execution.
func (e *Engine) CompleteStep(ctx context.Context, workflowID, stepID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	workflow, ok := e.workflows[workflowID]
	if !ok {
		return ErrWorkflowNotFound
	}
	if workflow.IsTerminal() {
		return fmt.Errorf("workflow %s is %s", workflowID, workflow.Status)
	}

	step := workflow.CurrentStep()
	if step == nil {
		return fmt.Errorf("workflow %s has no step in flight", workflowID)
	}
	if step.ID != stepID {
		return fmt.Errorf("step %s is not the current step of workflow %s", stepID, workflowID)
	}
	if step.Status != models.StepStatusInProgress && step.Status != models.StepStatusPending {
		return fmt.Errorf("step %s is %s and cannot be completed", stepID, step.Status)
	}

	e.completeStepLocked(ctx, workflow, step)
	e.drain(ctx)
	e.persistLocked(ctx, workflow)
	return nil
}

// completeStepLocked marks the step completed, advances the cursor, and
// schedules the next executeNext pass. This is the only point at which the
// cursor advances. Callers must hold e.mu.
func (e *Engine) completeStepLocked(ctx context.Context, workflow *models.Workflow, step *models.WorkflowStep) {
	now := time.Now().UTC()
	step.Status = models.StepStatusCompleted
	step.CompletedAt = &now
	workflow.CurrentStepIdx++
	workflow.UpdatedAt = now

	e.stepsCompleted.Add(ctx, 1)
	if e.logger != nil {
		e.logger.Info("Step completed", "workflow_id", workflow.ID, "step", step.ID)
	}

	e.enqueue(workflow.ID)
}

// completeWorkflow is the terminal transition. Callers must hold e.mu.
func (e *Engine) completeWorkflow(ctx context.Context, workflow *models.Workflow) {
	workflow.Status = models.WorkflowStatusCompleted
	workflow.UpdatedAt = time.Now().UTC()

	e.workflowsCompleted.Add(ctx, 1)
	if e.logger != nil {
		e.logger.Info("Workflow completed", "workflow_id", workflow.ID, "vendor_id", workflow.VendorID)
	}

	e.notifyLocked(ctx, workflow, EventCompleted)
}

// RetryStep resets the workflow's current failed step to pending and
// re-drives execution. Failed steps are otherwise terminal.
func (e *Engine) RetryStep(ctx context.Context, workflowID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	workflow, ok := e.workflows[workflowID]
	if !ok {
		return ErrWorkflowNotFound
	}

	step := workflow.CurrentStep()
	if step == nil || step.Status != models.StepStatusFailed {
		return fmt.Errorf("workflow %s has no failed step to retry", workflowID)
	}

	step.Status = models.StepStatusPending
	step.StartedAt = nil
	step.Notes = ""
	workflow.UpdatedAt = time.Now().UTC()

	e.executeNext(ctx, workflow)
	e.drain(ctx)
	e.persistLocked(ctx, workflow)
	return nil
}

// Cancel halts a workflow. No further execution passes will touch it; the
// cancellation is terminal.
func (e *Engine) Cancel(ctx context.Context, workflowID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	workflow, ok := e.workflows[workflowID]
	if !ok {
		return ErrWorkflowNotFound
	}
	if workflow.Status == models.WorkflowStatusCompleted {
		return fmt.Errorf("workflow %s is already completed", workflowID)
	}

	workflow.Status = models.WorkflowStatusCancelled
	workflow.UpdatedAt = time.Now().UTC()
	e.persistLocked(ctx, workflow)

	if e.logger != nil {
		e.logger.Info("Workflow cancelled", "workflow_id", workflowID)
	}
	return nil
}
