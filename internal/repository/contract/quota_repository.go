package contract

import (
	"context"

	"github.com/Fordjour12/monthly-zen-sub002/internal/entity"

	"github.com/google/uuid"
)

// QuotaRepository persists quota periods and their append-only history.
// Finders return (nil, nil) when no row matches.
type QuotaRepository interface {
	CreatePeriod(ctx context.Context, period *entity.QuotaPeriod) error
	UpdatePeriod(ctx context.Context, period *entity.QuotaPeriod) error
	// IncrementUsage applies an atomic in-database increment so concurrent
	// grants cannot lose updates. Denied requests pass used=0 to still be
	// counted in total_requested.
	IncrementUsage(ctx context.Context, periodId uuid.UUID, used, requested int) error

	// FindLatestPeriod returns the user's current period: the most recently
	// created row, never auto-created on miss.
	FindLatestPeriod(ctx context.Context, userId uuid.UUID) (*entity.QuotaPeriod, error)
	FindPeriodByMonthYear(ctx context.Context, userId uuid.UUID, monthYear string) (*entity.QuotaPeriod, error)

	CreateHistoryEntry(ctx context.Context, entry *entity.QuotaHistoryEntry) error
	// FindHistory returns archived periods newest-first, at most limit rows
	// (limit <= 0 means no cap).
	FindHistory(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.QuotaHistoryEntry, error)
}
