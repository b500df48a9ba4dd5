package implementation

import (
	"context"
	"errors"

	"github.com/Fordjour12/monthly-zen-sub002/internal/entity"
	"github.com/Fordjour12/monthly-zen-sub002/internal/mapper"
	"github.com/Fordjour12/monthly-zen-sub002/internal/model"
	"github.com/Fordjour12/monthly-zen-sub002/internal/repository/contract"
	"github.com/Fordjour12/monthly-zen-sub002/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GenerationJobRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PlannerMapper
}

func NewGenerationJobRepository(db *gorm.DB) contract.GenerationJobRepository {
	return &GenerationJobRepositoryImpl{
		db:     db,
		mapper: mapper.NewPlannerMapper(),
	}
}

func (r *GenerationJobRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GenerationJobRepositoryImpl) Create(ctx context.Context, job *entity.PlanGenerationJob) error {
	m := r.mapper.JobToModel(job)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*job = *r.mapper.JobToEntity(m)
	return nil
}

func (r *GenerationJobRepositoryImpl) Update(ctx context.Context, job *entity.PlanGenerationJob) error {
	m := r.mapper.JobToModel(job)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*job = *r.mapper.JobToEntity(m)
	return nil
}

func (r *GenerationJobRepositoryImpl) FindOne(ctx context.Context, id uuid.UUID) (*entity.PlanGenerationJob, error) {
	var m model.PlanGenerationJob
	query := r.applySpecifications(r.db.WithContext(ctx), specification.ByID{ID: id})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.JobToEntity(&m), nil
}

func (r *GenerationJobRepositoryImpl) FindOneByUser(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*entity.PlanGenerationJob, error) {
	var m model.PlanGenerationJob
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.JobToEntity(&m), nil
}

func (r *GenerationJobRepositoryImpl) FindLatestByUser(ctx context.Context, userId uuid.UUID) (*entity.PlanGenerationJob, error) {
	var m model.PlanGenerationJob
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
	return r.mapper.JobToEntity(&m), nil
}
