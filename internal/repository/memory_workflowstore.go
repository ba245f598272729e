package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

// MemoryWorkflowStore is an in-process WorkflowStore for dev and tests.
type MemoryWorkflowStore struct {
	mu        sync.RWMutex
	workflows map[string]*models.Workflow
}

// NewMemoryWorkflowStore creates an empty MemoryWorkflowStore.
func NewMemoryWorkflowStore() *MemoryWorkflowStore {
	return &MemoryWorkflowStore{workflows: make(map[string]*models.Workflow)}
}

// Save inserts or replaces the workflow snapshot.
func (s *MemoryWorkflowStore) Save(ctx context.Context, workflow *models.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workflows[workflow.ID] = workflow
	return nil
}

// Get retrieves a workflow by its id.
func (s *MemoryWorkflowStore) Get(ctx context.Context, id string) (*models.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workflows[id]
	if !ok {
		return nil, ErrWorkflowNotFound
	}
	return w, nil
}

// List returns all archived workflows, oldest first.
func (s *MemoryWorkflowStore) List(ctx context.Context) ([]*models.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Workflow, 0, len(s.workflows))
	for _, w := range s.workflows {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
