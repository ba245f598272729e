package repository

import (
	"context"

	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

// WorkflowStore is the archive interface for workflow snapshots. The engine's
// in-memory map remains the source of truth; the store is a write-through
// audit archive that can rehydrate the engine at startup.
type WorkflowStore interface {
	// Save inserts or replaces the workflow snapshot.
	Save(ctx context.Context, workflow *models.Workflow) error
	// Get retrieves a workflow by its id.
	Get(ctx context.Context, id string) (*models.Workflow, error)
	// List returns all archived workflows.
	List(ctx context.Context) ([]*models.Workflow, error)
}
