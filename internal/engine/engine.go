// Package engine implements the contract lifecycle workflow engine: step
// construction, dependency-gated execution, status transitions, notification
// dispatch, and the monitoring sweep that initiates renewal workflows.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/fleetflow/contract-lifecycle/internal/analytics"
	"github.com/fleetflow/contract-lifecycle/internal/directory"
	"github.com/fleetflow/contract-lifecycle/internal/notify"
	"github.com/fleetflow/contract-lifecycle/internal/recommend"
	"github.com/fleetflow/contract-lifecycle/internal/repository"
	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

// Logger defines the logging interface compatible with the application logger.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Params collects the collaborators an Engine is constructed with.
type Params struct {
	Directory   directory.Directory
	Notifier    notify.Notifier
	Recommender recommend.Recommender
	Logger      Logger

	// Archive is an optional write-through workflow store. Archive failures
	// are logged and never abort workflow progress.
	Archive repository.WorkflowStore

	// Analytics defaults to a fresh analytics service when nil.
	Analytics *analytics.Service

	// ProcurementInbox and LegalInbox are the internal stakeholder addresses
	// used for step assignments and workflow notifications.
	ProcurementInbox string
	LegalInbox       string
}

// Engine owns the process-wide map of workflow id to workflow. All workflow
// mutation is serialized by a single mutex; resumption after a step completes
// goes through an internal FIFO queue drained iteratively, so long workflows
// never grow the stack.
type Engine struct {
	mu        sync.Mutex
	workflows map[string]*models.Workflow
	queue     []string

	dir       directory.Directory
	notifier  notify.Notifier
	rec       recommend.Recommender
	analytics *analytics.Service
	archive   repository.WorkflowStore
	logger    Logger

	procurementInbox string
	legalInbox       string

	workflowsInitiated metric.Int64Counter
	workflowsCompleted metric.Int64Counter
	stepsCompleted     metric.Int64Counter
	stepsFailed        metric.Int64Counter
	notifyFailures     metric.Int64Counter
}

// New creates an Engine from the given collaborators.
func New(p Params) *Engine {
	if p.Analytics == nil {
		p.Analytics = analytics.NewService()
	}
	if p.ProcurementInbox == "" {
		p.ProcurementInbox = "procurement@fleetflow.com"
	}
	if p.LegalInbox == "" {
		p.LegalInbox = "legal@fleetflow.com"
	}

	meter := otel.Meter("github.com/fleetflow/contract-lifecycle/internal/engine")
	workflowsInitiated, _ := meter.Int64Counter("workflows_initiated_total")
	workflowsCompleted, _ := meter.Int64Counter("workflows_completed_total")
	stepsCompleted, _ := meter.Int64Counter("workflow_steps_completed_total")
	stepsFailed, _ := meter.Int64Counter("workflow_steps_failed_total")
	notifyFailures, _ := meter.Int64Counter("workflow_notification_failures_total")

	return &Engine{
		workflows:          make(map[string]*models.Workflow),
		dir:                p.Directory,
		notifier:           p.Notifier,
		rec:                p.Recommender,
		analytics:          p.Analytics,
		archive:            p.Archive,
		logger:             p.Logger,
		procurementInbox:   p.ProcurementInbox,
		legalInbox:         p.LegalInbox,
		workflowsInitiated: workflowsInitiated,
		workflowsCompleted: workflowsCompleted,
		stepsCompleted:     stepsCompleted,
		stepsFailed:        stepsFailed,
		notifyFailures:     notifyFailures,
	}
}

// LoadFromArchive rehydrates the in-memory workflow map from the archive.
// Intended to run once at startup, before the engine serves traffic.
func (e *Engine) LoadFromArchive(ctx context.Context) error {
	if e.archive == nil {
		return nil
	}
	workflows, err := e.archive.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load workflows from archive: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, w := range workflows {
		e.workflows[w.ID] = w
	}
	if e.logger != nil && len(workflows) > 0 {
		e.logger.Info("Rehydrated workflows from archive", "count", len(workflows))
	}
	return nil
}

// InitiateRenewalWorkflow builds and starts a renewal workflow for a vendor
// at the given urgency level. The recommendation determines which branch of
// steps the workflow contains; priority derives from urgency.
func (e *Engine) InitiateRenewalWorkflow(ctx context.Context, vendor *models.VendorSnapshot, urgency models.UrgencyLevel) (*models.Workflow, error) {
	rec, err := e.rec.Recommend(ctx, vendor)
	if err != nil {
		return nil, fmt.Errorf("failed to generate renewal recommendation: %w", err)
	}

	now := time.Now().UTC()
	steps := e.buildRenewalSteps(vendor, rec, now)

	workflow := &models.Workflow{
		ID:           fmt.Sprintf("renewal-%s-%s", vendor.ID, uuid.New().String()),
		ContractID:   vendor.Contract.ID,
		VendorID:     vendor.ID,
		WorkflowType: models.WorkflowTypeRenewalInitiation,
		Status:       models.WorkflowStatusPending,
		Priority:     PriorityFromUrgency(urgency),
		Steps:        steps,
		Metadata: models.WorkflowMetadata{
			InitiatedBy:         "system",
			InitiatedAt:         now,
			DueDate:             now.Add(30 * 24 * time.Hour),
			EstimatedCompletion: estimatedCompletion(now, steps),
			Stakeholders:        []string{e.procurementInbox, e.legalInbox, vendor.Contact.Email},
			RequiredApprovals:   []string{"procurement_manager", "legal_counsel"},
			Documents:           []string{},
		},
		Communications: []models.WorkflowCommunication{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	e.mu.Lock()
	e.workflows[workflow.ID] = workflow
	e.startExecution(ctx, workflow)
	e.drain(ctx)
	e.persistLocked(ctx, workflow)
	e.mu.Unlock()

	e.workflowsInitiated.Add(ctx, 1)
	if e.logger != nil {
		e.logger.Info("Renewal workflow initiated",
			"workflow_id", workflow.ID, "vendor_id", vendor.ID,
			"recommendation", rec.Recommendation, "priority", workflow.Priority)
	}

	return workflow, nil
}

// PriorityFromUrgency maps contract urgency to workflow priority. Pure
// function, fixed mapping.
func PriorityFromUrgency(urgency models.UrgencyLevel) models.Priority {
	switch urgency {
	case models.UrgencyEarlyPlanning:
		return models.PriorityLow
	case models.UrgencyNegotiationPhase:
		return models.PriorityMedium
	case models.UrgencyUrgentDecision:
		return models.PriorityHigh
	case models.UrgencyEmergencyRenewal:
		return models.PriorityUrgent
	default:
		return models.PriorityMedium
	}
}

// Step ids within a renewal workflow. Dependencies reference these ids.
const (
	StepPerformanceAnalysis    = "performance_analysis"
	StepRecommendationReview   = "renewal_recommendation_review"
	StepAutoRenewalExecution   = "auto_renewal_execution"
	StepNegotiationPreparation = "negotiation_preparation"
	StepVendorNegotiation      = "vendor_negotiation"
	StepLegalReview            = "legal_review"
	StepContractExecution      = "contract_execution"
)

// buildRenewalSteps produces the deterministic renewal step sequence. All due
// dates are anchored to workflow creation time, not to when the previous step
// completes; a long-running early step can leave a later step already past
// due at assignment time. That anchoring is a deliberate policy carried over
// from the original process definition.
//
// "Legal Review" declares no dependencies on the branch steps that precede
// it. The strict cursor ordering still prevents it from starting early, but
// the dependency list is kept as-built.
func (e *Engine) buildRenewalSteps(vendor *models.VendorSnapshot, rec *models.RenewalRecommendation, now time.Time) []*models.WorkflowStep {
	day := 24 * time.Hour

	steps := []*models.WorkflowStep{
		{
			ID:                 StepPerformanceAnalysis,
			Name:               "Performance Analysis",
			Description:        "Analyze current vendor performance and contract compliance",
			Type:               models.StepTypePerformanceAnalysis,
			Status:             models.StepStatusPending,
			AssignedTo:         []string{"system", e.procurementInbox},
			DueDate:            now.Add(3 * day),
			EstimatedDuration:  8,
			Dependencies:       []string{},
			Automatable:        true,
			CompletionCriteria: []string{"Performance report generated", "Compliance verified"},
		},
		{
			ID:                 StepRecommendationReview,
			Name:               "Renewal Recommendation Review",
			Description:        "Review generated renewal recommendation and validate",
			Type:               models.StepTypeStakeholderApproval,
			Status:             models.StepStatusPending,
			AssignedTo:         []string{e.procurementInbox},
			DueDate:            now.Add(5 * day),
			EstimatedDuration:  4,
			Dependencies:       []string{StepPerformanceAnalysis},
			Automatable:        false,
			CompletionCriteria: []string{"Recommendation approved", "Strategy confirmed"},
		},
	}

	if rec.Recommendation == models.RecommendationAutoRenew {
		steps = append(steps, &models.WorkflowStep{
			ID:                 StepAutoRenewalExecution,
			Name:               "Auto-Renewal Execution",
			Description:        "Execute automatic contract renewal with current terms",
			Type:               models.StepTypeSystemIntegration,
			Status:             models.StepStatusPending,
			AssignedTo:         []string{"system"},
			DueDate:            now.Add(7 * day),
			EstimatedDuration:  1,
			Dependencies:       []string{StepRecommendationReview},
			Automatable:        true,
			CompletionCriteria: []string{"Contract renewed", "Systems updated"},
		})
	} else {
		steps = append(steps,
			&models.WorkflowStep{
				ID:                 StepNegotiationPreparation,
				Name:               "Negotiation Preparation",
				Description:        "Prepare negotiation strategy and terms",
				Type:               models.StepTypeDocumentGeneration,
				Status:             models.StepStatusPending,
				AssignedTo:         []string{e.legalInbox, e.procurementInbox},
				DueDate:            now.Add(7 * day),
				EstimatedDuration:  6,
				Dependencies:       []string{StepRecommendationReview},
				Automatable:        false,
				CompletionCriteria: []string{"Negotiation strategy prepared", "Terms drafted"},
			},
			&models.WorkflowStep{
				ID:                 StepVendorNegotiation,
				Name:               "Vendor Negotiation",
				Description:        "Conduct negotiations with vendor",
				Type:               models.StepTypeVendorNegotiation,
				Status:             models.StepStatusPending,
				AssignedTo:         []string{e.procurementInbox},
				DueDate:            now.Add(14 * day),
				EstimatedDuration:  16,
				Dependencies:       []string{StepNegotiationPreparation},
				Automatable:        false,
				CompletionCriteria: []string{"Terms agreed", "Contract drafted"},
			},
		)
	}

	steps = append(steps,
		&models.WorkflowStep{
			ID:                 StepLegalReview,
			Name:               "Legal Review",
			Description:        "Legal review of contract terms",
			Type:               models.StepTypeLegalReview,
			Status:             models.StepStatusPending,
			AssignedTo:         []string{e.legalInbox},
			DueDate:            now.Add(21 * day),
			EstimatedDuration:  8,
			Dependencies:       []string{},
			Automatable:        false,
			CompletionCriteria: []string{"Legal approval received"},
		},
		&models.WorkflowStep{
			ID:                 StepContractExecution,
			Name:               "Contract Execution",
			Description:        "Execute final contract with digital signatures",
			Type:               models.StepTypeSignatureCollection,
			Status:             models.StepStatusPending,
			AssignedTo:         []string{"system", e.procurementInbox},
			DueDate:            now.Add(28 * day),
			EstimatedDuration:  2,
			Dependencies:       []string{StepLegalReview},
			Automatable:        true,
			CompletionCriteria: []string{"All parties signed", "Contract active"},
		},
	)

	return steps
}

// estimatedCompletion projects completion from the summed step durations at
// eight working hours per business day.
func estimatedCompletion(now time.Time, steps []*models.WorkflowStep) time.Time {
	totalHours := 0
	for _, s := range steps {
		totalHours += s.EstimatedDuration
	}
	businessDays := (totalHours + 7) / 8
	return now.Add(time.Duration(businessDays) * 24 * time.Hour)
}

// persistLocked writes the workflow through to the archive, best-effort.
// Callers must hold e.mu.
func (e *Engine) persistLocked(ctx context.Context, workflow *models.Workflow) {
	if e.archive == nil {
		return
	}
	if err := e.archive.Save(ctx, workflow); err != nil && e.logger != nil {
		e.logger.Warn("Failed to archive workflow", "workflow_id", workflow.ID, "error", err)
	}
}
