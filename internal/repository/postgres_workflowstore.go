package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

// ErrWorkflowNotFound is returned when a workflow id is not in the archive.
var ErrWorkflowNotFound = errors.New("workflow not found")

// PostgresWorkflowStore is a PostgreSQL implementation of the WorkflowStore
// interface. Workflows are stored as JSONB documents with a few promoted
// columns for querying.
type PostgresWorkflowStore struct {
	db *pgxpool.Pool
}

// NewPostgresWorkflowStore creates a new PostgresWorkflowStore.
func NewPostgresWorkflowStore(db *pgxpool.Pool) *PostgresWorkflowStore {
	return &PostgresWorkflowStore{db: db}
}

// Save inserts or replaces the workflow snapshot.
func (s *PostgresWorkflowStore) Save(ctx context.Context, workflow *models.Workflow) error {
	doc, err := json.Marshal(workflow)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO workflows (id, contract_id, vendor_id, workflow_type, status, priority, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			priority = EXCLUDED.priority,
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at`,
		workflow.ID, workflow.ContractID, workflow.VendorID, workflow.WorkflowType,
		workflow.Status, workflow.Priority, doc, workflow.CreatedAt, workflow.UpdatedAt)
	return err
}

// Get retrieves a workflow by its id.
func (s *PostgresWorkflowStore) Get(ctx context.Context, id string) (*models.Workflow, error) {
	var doc []byte
	err := s.db.QueryRow(ctx, "SELECT document FROM workflows WHERE id = $1", id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWorkflowNotFound
	}
	if err != nil {
		return nil, err
	}

	var workflow models.Workflow
	if err := json.Unmarshal(doc, &workflow); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workflow: %w", err)
	}
	return &workflow, nil
}

// List returns all archived workflows, oldest first.
func (s *PostgresWorkflowStore) List(ctx context.Context) ([]*models.Workflow, error) {
	rows, err := s.db.Query(ctx, "SELECT document FROM workflows ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workflows []*models.Workflow
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var workflow models.Workflow
		if err := json.Unmarshal(doc, &workflow); err != nil {
			return nil, fmt.Errorf("failed to unmarshal workflow: %w", err)
		}
		workflows = append(workflows, &workflow)
	}

	return workflows, rows.Err()
}
