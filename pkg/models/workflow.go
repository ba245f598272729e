// Package models defines the domain models for the contract lifecycle service.
package models

import (
	"time"
)

// WorkflowType identifies the kind of contract lifecycle process an instance drives.
type WorkflowType string

const (
	WorkflowTypeRenewalInitiation  WorkflowType = "renewal_initiation"
	WorkflowTypeRenewalNegotiation WorkflowType = "renewal_negotiation"
	WorkflowTypeAmendmentRequest   WorkflowType = "amendment_request"
	WorkflowTypePerformanceReview  WorkflowType = "performance_review"
	WorkflowTypeComplianceAudit    WorkflowType = "compliance_audit"
	WorkflowTypeTermination        WorkflowType = "termination_process"
	WorkflowTypeRenegotiation      WorkflowType = "renegotiation"
	WorkflowTypeEmergencyReview    WorkflowType = "emergency_review"
)

// WorkflowStatus represents the lifecycle state of a workflow.
type WorkflowStatus string

const (
	WorkflowStatusPending          WorkflowStatus = "pending"
	WorkflowStatusInProgress       WorkflowStatus = "in_progress"
	WorkflowStatusWaitingApproval  WorkflowStatus = "waiting_approval"
	WorkflowStatusWaitingSignature WorkflowStatus = "waiting_signature"
	WorkflowStatusCompleted        WorkflowStatus = "completed"
	WorkflowStatusCancelled        WorkflowStatus = "cancelled"
	WorkflowStatusOverdue          WorkflowStatus = "overdue"
)

// Priority represents the urgency-derived priority of a workflow. It is set
// once at creation and never recomputed.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// StepStatus represents the state of a single workflow step.
type StepStatus string

const (
	StepStatusPending    StepStatus = "pending"
	StepStatusInProgress StepStatus = "in_progress"
	StepStatusCompleted  StepStatus = "completed"
	StepStatusSkipped    StepStatus = "skipped"
	StepStatusFailed     StepStatus = "failed"
)

// StepType identifies the kind of work a step performs.
type StepType string

const (
	StepTypeDocumentGeneration     StepType = "document_generation"
	StepTypeLegalReview            StepType = "legal_review"
	StepTypeStakeholderApproval    StepType = "stakeholder_approval"
	StepTypeVendorNegotiation      StepType = "vendor_negotiation"
	StepTypeComplianceVerification StepType = "compliance_verification"
	StepTypeSignatureCollection    StepType = "signature_collection"
	StepTypeSystemIntegration      StepType = "system_integration"
	StepTypeNotification           StepType = "notification"
	StepTypePerformanceAnalysis    StepType = "performance_analysis"
)

// OutputType categorizes a step result.
type OutputType string

const (
	OutputTypeDocument OutputType = "document"
	OutputTypeApproval OutputType = "approval"
	OutputTypeData     OutputType = "data"
	OutputTypeDecision OutputType = "decision"
)

// CommunicationType identifies the channel a notification was sent through.
type CommunicationType string

const (
	CommunicationEmail        CommunicationType = "email"
	CommunicationSMS          CommunicationType = "sms"
	CommunicationNotification CommunicationType = "notification"
	CommunicationMeeting      CommunicationType = "meeting"
)

// CommunicationStatus represents the delivery state of a communication.
type CommunicationStatus string

const (
	CommunicationSent      CommunicationStatus = "sent"
	CommunicationDelivered CommunicationStatus = "delivered"
	CommunicationRead      CommunicationStatus = "read"
	CommunicationResponded CommunicationStatus = "responded"
	CommunicationFailed    CommunicationStatus = "failed"
)

// UrgencyLevel classifies how close a contract is to expiry.
type UrgencyLevel string

const (
	UrgencyEarlyPlanning    UrgencyLevel = "early_planning"
	UrgencyNegotiationPhase UrgencyLevel = "negotiation_phase"
	UrgencyUrgentDecision   UrgencyLevel = "urgent_decision"
	UrgencyEmergencyRenewal UrgencyLevel = "emergency_renewal"
)

// Recommendation is the renewal decision sourced from the recommender.
type Recommendation string

const (
	RecommendationAutoRenew        Recommendation = "auto_renew"
	RecommendationNegotiateTerms   Recommendation = "negotiate_terms"
	RecommendationSeekAlternatives Recommendation = "seek_alternatives"
	RecommendationTerminate        Recommendation = "terminate"
)

// Workflow is one contract lifecycle process instance. A workflow owns its
// steps; steps are never shared between workflows.
type Workflow struct {
	ID             string                  `json:"id" db:"id"`
	ContractID     string                  `json:"contract_id" db:"contract_id"`
	VendorID       string                  `json:"vendor_id" db:"vendor_id"`
	WorkflowType   WorkflowType            `json:"workflow_type" db:"workflow_type"`
	Status         WorkflowStatus          `json:"status" db:"status"`
	Priority       Priority                `json:"priority" db:"priority"`
	Steps          []*WorkflowStep         `json:"steps"`
	CurrentStepIdx int                     `json:"current_step_index"`
	Metadata       WorkflowMetadata        `json:"metadata"`
	Communications []WorkflowCommunication `json:"communications"`
	CreatedAt      time.Time               `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at" db:"updated_at"`
}

// IsTerminal reports whether the workflow can make no further progress.
func (w *Workflow) IsTerminal() bool {
	return w.Status == WorkflowStatusCompleted || w.Status == WorkflowStatusCancelled
}

// IsActive reports whether the workflow is still being driven.
func (w *Workflow) IsActive() bool {
	return w.Status == WorkflowStatusPending || w.Status == WorkflowStatusInProgress
}

// Step returns the step with the given id, or nil.
func (w *Workflow) Step(id string) *WorkflowStep {
	for _, s := range w.Steps {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// CurrentStep returns the step at the cursor, or nil when the cursor has
// reached the end of the sequence.
func (w *Workflow) CurrentStep() *WorkflowStep {
	if w.CurrentStepIdx < 0 || w.CurrentStepIdx >= len(w.Steps) {
		return nil
	}
	return w.Steps[w.CurrentStepIdx]
}

// WorkflowMetadata is read-only context attached at creation time. The engine
// never mutates it.
type WorkflowMetadata struct {
	InitiatedBy         string    `json:"initiated_by"`
	InitiatedAt         time.Time `json:"initiated_at"`
	DueDate             time.Time `json:"due_date"`
	EstimatedCompletion time.Time `json:"estimated_completion"`
	Stakeholders        []string  `json:"stakeholders"`
	RequiredApprovals   []string  `json:"required_approvals"`
	Documents           []string  `json:"documents"`
}

// WorkflowStep is one unit of work within a workflow. Dependencies reference
// other step ids within the same workflow; every referenced step must be
// completed before this step may start.
type WorkflowStep struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	Type               StepType     `json:"type"`
	Status             StepStatus   `json:"status"`
	AssignedTo         []string     `json:"assigned_to"`
	DueDate            time.Time    `json:"due_date"`
	EstimatedDuration  int          `json:"estimated_duration_hours"`
	Dependencies       []string     `json:"dependencies"`
	Automatable        bool         `json:"automatable"`
	CompletionCriteria []string     `json:"completion_criteria"`
	Outputs            []StepOutput `json:"outputs"`
	StartedAt          *time.Time   `json:"started_at,omitempty"`
	CompletedAt        *time.Time   `json:"completed_at,omitempty"`
	Notes              string       `json:"notes,omitempty"`
}

// StepOutput is a typed result appended when a step produces something.
type StepOutput struct {
	Type      OutputType  `json:"type"`
	Name      string      `json:"name"`
	Value     interface{} `json:"value"`
	Timestamp time.Time   `json:"timestamp"`
}

// WorkflowCommunication is an append-only record of a notification attempt.
// Delivery failures are recorded here and never abort the workflow.
type WorkflowCommunication struct {
	ID        string              `json:"id"`
	Type      CommunicationType   `json:"type"`
	Recipient string              `json:"recipient"`
	Subject   string              `json:"subject"`
	Content   string              `json:"content"`
	Status    CommunicationStatus `json:"status"`
	SentAt    time.Time           `json:"sent_at"`
}

// WorkflowSummary is the aggregate projection exposed by the query API.
type WorkflowSummary struct {
	Total     int                  `json:"total"`
	Active    int                  `json:"active"`
	Completed int                  `json:"completed"`
	Overdue   int                  `json:"overdue"`
	ByType    map[WorkflowType]int `json:"by_type"`
}
