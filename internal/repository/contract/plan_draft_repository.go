package contract

import (
	"context"
	"time"

	"github.com/Fordjour12/monthly-zen-sub002/internal/entity"

	"github.com/google/uuid"
)

// PlanDraftRepository persists transient plan drafts. Finders return
// (nil, nil) on miss and do NOT filter expired rows; expiry is the
// service's read-time predicate.
type PlanDraftRepository interface {
	Create(ctx context.Context, draft *entity.PlanDraft) error
	FindByKey(ctx context.Context, userId uuid.UUID, draftKey string) (*entity.PlanDraft, error)
	FindLatest(ctx context.Context, userId uuid.UUID) (*entity.PlanDraft, error)
	// DeleteByKey is idempotent: deleting a missing key is not an error.
	DeleteByKey(ctx context.Context, userId uuid.UUID, draftKey string) error
	// DeleteExpired removes every draft past its expiry, regardless of
	// owner, and reports how many rows went away.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
