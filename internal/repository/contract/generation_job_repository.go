package contract

import (
	"context"

	"github.com/Fordjour12/monthly-zen-sub002/internal/entity"

	"github.com/google/uuid"
)

// GenerationJobRepository persists plan-generation job records. Jobs are
// mutated in place as they advance and never deleted by this service.
type GenerationJobRepository interface {
	Create(ctx context.Context, job *entity.PlanGenerationJob) error
	Update(ctx context.Context, job *entity.PlanGenerationJob) error
	FindOne(ctx context.Context, id uuid.UUID) (*entity.PlanGenerationJob, error)
	FindOneByUser(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*entity.PlanGenerationJob, error)
	FindLatestByUser(ctx context.Context, userId uuid.UUID) (*entity.PlanGenerationJob, error)
}
