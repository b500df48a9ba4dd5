package implementation

import (
	"context"
	"errors"
	"time"

	"github.com/Fordjour12/monthly-zen-sub002/internal/entity"
	"github.com/Fordjour12/monthly-zen-sub002/internal/mapper"
	"github.com/Fordjour12/monthly-zen-sub002/internal/model"
	"github.com/Fordjour12/monthly-zen-sub002/internal/repository/contract"
	"github.com/Fordjour12/monthly-zen-sub002/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlanDraftRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PlannerMapper
}

func NewPlanDraftRepository(db *gorm.DB) contract.PlanDraftRepository {
	return &PlanDraftRepositoryImpl{
		db:     db,
		mapper: mapper.NewPlannerMapper(),
	}
}

func (r *PlanDraftRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PlanDraftRepositoryImpl) Create(ctx context.Context, draft *entity.PlanDraft) error {
	m := r.mapper.DraftToModel(draft)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*draft = *r.mapper.DraftToEntity(m)
	return nil
}

func (r *PlanDraftRepositoryImpl) FindByKey(ctx context.Context, userId uuid.UUID, draftKey string) (*entity.PlanDraft, error) {
	var m model.PlanDraft
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.ByDraftKey{DraftKey: draftKey},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DraftToEntity(&m), nil
}

func (r *PlanDraftRepositoryImpl) FindLatest(ctx context.Context, userId uuid.UUID) (*entity.PlanDraft, error) {
	var m model.PlanDraft
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DraftToEntity(&m), nil
}

func (r *PlanDraftRepositoryImpl) DeleteByKey(ctx context.Context, userId uuid.UUID, draftKey string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND draft_key = ?", userId, draftKey).
		Delete(&model.PlanDraft{}).Error
}

func (r *PlanDraftRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.applySpecifications(r.db.WithContext(ctx),
		specification.ExpiresBefore{Now: now},
	).Delete(&model.PlanDraft{})
	return result.RowsAffected, result.Error
}
