package mapper

import (
	"github.com/Fordjour12/monthly-zen-sub002/internal/entity"
	"github.com/Fordjour12/monthly-zen-sub002/internal/model"
)

type QuotaMapper struct{}

func NewQuotaMapper() *QuotaMapper {
	return &QuotaMapper{}
}

func (m *QuotaMapper) PeriodToEntity(p *model.QuotaPeriod) *entity.QuotaPeriod {
	if p == nil {
		return nil
	}
	return &entity.QuotaPeriod{
		Id:              p.Id,
		UserId:          p.UserId,
		MonthYear:       p.MonthYear,
		TotalAllowed:    p.TotalAllowed,
		GenerationsUsed: p.GenerationsUsed,
		TotalRequested:  p.TotalRequested,
		ResetsOn:        p.ResetsOn,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (m *QuotaMapper) PeriodToModel(p *entity.QuotaPeriod) *model.QuotaPeriod {
	if p == nil {
		return nil
	}
	return &model.QuotaPeriod{
		Id:              p.Id,
		UserId:          p.UserId,
		MonthYear:       p.MonthYear,
		TotalAllowed:    p.TotalAllowed,
		GenerationsUsed: p.GenerationsUsed,
		TotalRequested:  p.TotalRequested,
		ResetsOn:        p.ResetsOn,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (m *QuotaMapper) HistoryToEntity(h *model.QuotaHistoryEntry) *entity.QuotaHistoryEntry {
	if h == nil {
		return nil
	}
	return &entity.QuotaHistoryEntry{
		Id:              h.Id,
		UserId:          h.UserId,
		PeriodStart:     h.PeriodStart,
		PeriodEnd:       h.PeriodEnd,
		MonthYear:       h.MonthYear,
		TotalAllowed:    h.TotalAllowed,
		GenerationsUsed: h.GenerationsUsed,
		TotalRequested:  h.TotalRequested,
		WasAutoReset:    h.WasAutoReset,
		CreatedAt:       h.CreatedAt,
	}
}

func (m *QuotaMapper) HistoryToModel(h *entity.QuotaHistoryEntry) *model.QuotaHistoryEntry {
	if h == nil {
		return nil
	}
	return &model.QuotaHistoryEntry{
		Id:              h.Id,
		UserId:          h.UserId,
		PeriodStart:     h.PeriodStart,
		PeriodEnd:       h.PeriodEnd,
		MonthYear:       h.MonthYear,
		TotalAllowed:    h.TotalAllowed,
		GenerationsUsed: h.GenerationsUsed,
		TotalRequested:  h.TotalRequested,
		WasAutoReset:    h.WasAutoReset,
		CreatedAt:       h.CreatedAt,
	}
}
