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

type QuotaRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuotaMapper
}

func NewQuotaRepository(db *gorm.DB) contract.QuotaRepository {
	return &QuotaRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuotaMapper(),
	}
}

func (r *QuotaRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QuotaRepositoryImpl) CreatePeriod(ctx context.Context, period *entity.QuotaPeriod) error {
	m := r.mapper.PeriodToModel(period)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*period = *r.mapper.PeriodToEntity(m)
	return nil
}

func (r *QuotaRepositoryImpl) UpdatePeriod(ctx context.Context, period *entity.QuotaPeriod) error {
	m := r.mapper.PeriodToModel(period)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*period = *r.mapper.PeriodToEntity(m)
	return nil
}

// IncrementUsage pushes the counters forward inside the database so two
// concurrent grants cannot overwrite each other's read-modify-write.
func (r *QuotaRepositoryImpl) IncrementUsage(ctx context.Context, periodId uuid.UUID, used, requested int) error {
	return r.db.WithContext(ctx).Model(&model.QuotaPeriod{}).
		Where("id = ?", periodId).
		Updates(map[string]interface{}{
			"generations_used": gorm.Expr("generations_used + ?", used),
			"total_requested":  gorm.Expr("total_requested + ?", requested),
		}).Error
}

func (r *QuotaRepositoryImpl) FindLatestPeriod(ctx context.Context, userId uuid.UUID) (*entity.QuotaPeriod, error) {
	var m model.QuotaPeriod
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
	return r.mapper.PeriodToEntity(&m), nil
}

func (r *QuotaRepositoryImpl) FindPeriodByMonthYear(ctx context.Context, userId uuid.UUID, monthYear string) (*entity.QuotaPeriod, error) {
	var m model.QuotaPeriod
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.ByMonthYear{MonthYear: monthYear},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PeriodToEntity(&m), nil
}

func (r *QuotaRepositoryImpl) CreateHistoryEntry(ctx context.Context, entry *entity.QuotaHistoryEntry) error {
	m := r.mapper.HistoryToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.HistoryToEntity(m)
	return nil
}

func (r *QuotaRepositoryImpl) FindHistory(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.QuotaHistoryEntry, error) {
	var models []*model.QuotaHistoryEntry
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "period_start", Desc: true},
	)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entries := make([]*entity.QuotaHistoryEntry, len(models))
	for i, m := range models {
		entries[i] = r.mapper.HistoryToEntity(m)
	}
	return entries, nil
}
