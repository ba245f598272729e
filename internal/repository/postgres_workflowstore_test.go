package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fleetflow/contract-lifecycle/internal/migrations"
	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

func sampleWorkflow(id string, createdAt time.Time) *models.Workflow {
	return &models.Workflow{
		ID:           id,
		ContractID:   "contract-1",
		VendorID:     "vendor-1",
		WorkflowType: models.WorkflowTypeRenewalInitiation,
		Status:       models.WorkflowStatusInProgress,
		Priority:     models.PriorityHigh,
		Steps: []*models.WorkflowStep{
			{
				ID:          "performance_analysis",
				Name:        "Performance Analysis",
				Type:        models.StepTypePerformanceAnalysis,
				Status:      models.StepStatusCompleted,
				Automatable: true,
			},
			{
				ID:           "legal_review",
				Name:         "Legal Review",
				Type:         models.StepTypeLegalReview,
				Status:       models.StepStatusPending,
				Dependencies: []string{"performance_analysis"},
			},
		},
		CurrentStepIdx: 1,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

func TestPostgresWorkflowStore(t *testing.T) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2)),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatal(err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Close()

	if err := migrations.Run(pool); err != nil {
		t.Fatal(err)
	}

	store := NewPostgresWorkflowStore(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Save and Get", func(t *testing.T) {
		workflow := sampleWorkflow("wf-1", now)

		err := store.Save(ctx, workflow)
		assert.NoError(t, err)

		retrieved, err := store.Get(ctx, "wf-1")
		assert.NoError(t, err)
		assert.Equal(t, workflow.ID, retrieved.ID)
		assert.Equal(t, workflow.VendorID, retrieved.VendorID)
		assert.Equal(t, workflow.Status, retrieved.Status)
		assert.Equal(t, workflow.CurrentStepIdx, retrieved.CurrentStepIdx)
		assert.Len(t, retrieved.Steps, 2)
		assert.Equal(t, []string{"performance_analysis"}, retrieved.Steps[1].Dependencies)
	})

	t.Run("Save is an upsert", func(t *testing.T) {
		workflow := sampleWorkflow("wf-2", now)
		assert.NoError(t, store.Save(ctx, workflow))

		workflow.Status = models.WorkflowStatusCompleted
		workflow.CurrentStepIdx = 2
		assert.NoError(t, store.Save(ctx, workflow))

		retrieved, err := store.Get(ctx, "wf-2")
		assert.NoError(t, err)
		assert.Equal(t, models.WorkflowStatusCompleted, retrieved.Status)
		assert.Equal(t, 2, retrieved.CurrentStepIdx)
	})

	t.Run("Get unknown id", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrWorkflowNotFound)
	})

	t.Run("List is ordered by creation", func(t *testing.T) {
		assert.NoError(t, store.Save(ctx, sampleWorkflow("wf-3", now.Add(time.Hour))))
		assert.NoError(t, store.Save(ctx, sampleWorkflow("wf-0", now.Add(-time.Hour))))

		workflows, err := store.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, workflows, 4)
		assert.Equal(t, "wf-0", workflows[0].ID)
		assert.Equal(t, "wf-3", workflows[len(workflows)-1].ID)
	})
}
