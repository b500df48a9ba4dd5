// FILE: internal/service/quota_service.go
// Service for monthly generation-quota accounting
package service

import (
	"context"
	"time"

	"github.com/Fordjour12/monthly-zen-sub002/internal/dto"
	"github.com/Fordjour12/monthly-zen-sub002/internal/entity"
	"github.com/Fordjour12/monthly-zen-sub002/internal/pkg/lock"
	"github.com/Fordjour12/monthly-zen-sub002/internal/pkg/logger"
	"github.com/Fordjour12/monthly-zen-sub002/internal/repository/unitofwork"
	plannerEvents "github.com/Fordjour12/monthly-zen-sub002/pkg/planner/events"

	"github.com/google/uuid"
)

// quotaCycleDays is the fixed divisor used to count how many periods
// elapsed while a user was away. Deliberately NOT calendar-accurate: the
// actual resets_on date advances by calendar months, so the cycle count
// and the real elapsed months can drift apart over long gaps.
const quotaCycleDays = 30

const rolloverLockTTL = 5 * time.Second

type QuotaService interface {
	// GetCurrentStatus returns the user's current period after any pending
	// rollover. A user with no period at all gets (nil, nil).
	GetCurrentStatus(ctx context.Context, userId uuid.UUID) (*dto.QuotaStatusResponse, error)
	// InitializePeriod creates the first period for a user who has none.
	// Calling it when a period already exists returns the existing one.
	InitializePeriod(ctx context.Context, userId uuid.UUID) (*dto.QuotaStatusResponse, error)
	RequestTokens(ctx context.Context, userId uuid.UUID, amount int) (*dto.TokenGrantResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID, months int) ([]*dto.QuotaHistoryResponse, error)

	// EnsureFreshPeriod is the internal entry point for workflows that need
	// a live period without the response mapping (plan generation).
	EnsureFreshPeriod(ctx context.Context, userId uuid.UUID) (*entity.QuotaPeriod, error)
}

type quotaService struct {
	uowFactory unitofwork.RepositoryFactory
	locker     lock.Locker
	events     plannerEvents.Publisher
	logger     logger.ILogger
}

func NewQuotaService(
	uowFactory unitofwork.RepositoryFactory,
	locker lock.Locker,
	events plannerEvents.Publisher,
	logger logger.ILogger,
) QuotaService {
	return &quotaService{
		uowFactory: uowFactory,
		locker:     locker,
		events:     events,
		logger:     logger,
	}
}

func (s *quotaService) GetCurrentStatus(ctx context.Context, userId uuid.UUID) (*dto.QuotaStatusResponse, error) {
	period, err := s.EnsureFreshPeriod(ctx, userId)
	if err != nil {
		return nil, err
	}
	if period == nil {
		// Missing period is reported, not silently created, so concurrent
		// initializers cannot race here.
		return nil, nil
	}

	return mapPeriodToStatus(period), nil
}

func (s *quotaService) InitializePeriod(ctx context.Context, userId uuid.UUID) (*dto.QuotaStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.QuotaRepository().FindLatestPeriod(ctx, userId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		fresh, err := s.EnsureFreshPeriod(ctx, userId)
		if err != nil {
			return nil, err
		}
		return mapPeriodToStatus(fresh), nil
	}

	now := time.Now()
	period := newQuotaPeriod(userId, now, now.AddDate(0, 1, 0))

	if err := uow.QuotaRepository().CreatePeriod(ctx, period); err != nil {
		// Unique (user_id, month_year) means a concurrent initializer won.
		// Re-read and use theirs.
		winner, readErr := uow.QuotaRepository().FindLatestPeriod(ctx, userId)
		if readErr != nil || winner == nil {
			return nil, err
		}
		period = winner
	}

	return mapPeriodToStatus(period), nil
}

func (s *quotaService) RequestTokens(ctx context.Context, userId uuid.UUID, amount int) (*dto.TokenGrantResponse, error) {
	period, err := s.EnsureFreshPeriod(ctx, userId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if period == nil {
		// First ever request: initialize on demand so the generation
		// workflow does not need a separate setup call.
		now := time.Now()
		period = newQuotaPeriod(userId, now, now.AddDate(0, 1, 0))
		if err := uow.QuotaRepository().CreatePeriod(ctx, period); err != nil {
			winner, readErr := uow.QuotaRepository().FindLatestPeriod(ctx, userId)
			if readErr != nil || winner == nil {
				return nil, err
			}
			period = winner
		}
	}

	remaining := period.Remaining()
	if remaining < amount {
		// Denied requests still count toward total_requested so the
		// history shows real demand, not just granted work.
		if err := uow.QuotaRepository().IncrementUsage(ctx, period.Id, 0, amount); err != nil {
			return nil, err
		}
		period.TotalRequested += amount

		s.events.PublishQuotaExceeded(ctx, userId, amount, remaining)

		return nil, &dto.QuotaExceededError{
			Requested:       amount,
			Remaining:       remaining,
			UsagePercentage: period.UsagePercentage(),
		}
	}

	if err := uow.QuotaRepository().IncrementUsage(ctx, period.Id, amount, amount); err != nil {
		return nil, err
	}
	period.GenerationsUsed += amount
	period.TotalRequested += amount

	return &dto.TokenGrantResponse{
		Granted:         true,
		Remaining:       period.Remaining(),
		UsagePercentage: period.UsagePercentage(),
		Status:          string(period.Status()),
	}, nil
}

func (s *quotaService) GetHistory(ctx context.Context, userId uuid.UUID, months int) ([]*dto.QuotaHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entries, err := uow.QuotaRepository().FindHistory(ctx, userId, months)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.QuotaHistoryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, &dto.QuotaHistoryResponse{
			MonthYear:       e.MonthYear,
			PeriodStart:     e.PeriodStart,
			PeriodEnd:       e.PeriodEnd,
			TotalAllowed:    e.TotalAllowed,
			GenerationsUsed: e.GenerationsUsed,
			TotalRequested:  e.TotalRequested,
			WasAutoReset:    e.WasAutoReset,
		})
	}

	return result, nil
}

// EnsureFreshPeriod returns the user's current period, rolling it forward
// first when it has elapsed. Returns (nil, nil) when the user has no
// period at all.
func (s *quotaService) EnsureFreshPeriod(ctx context.Context, userId uuid.UUID) (*entity.QuotaPeriod, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	period, err := uow.QuotaRepository().FindLatestPeriod(ctx, userId)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, nil
	}

	now := time.Now()
	if !period.ExpiredAt(now) {
		return period, nil
	}

	return s.rollover(ctx, userId, now)
}

// rollover serializes the archive-and-create sequence per user. The Redis
// lock keeps replicas from doing redundant work; the unique
// (user_id, month_year) index is the actual correctness guard, so a lost
// race degrades to a conflict we absorb by re-reading.
func (s *quotaService) rollover(ctx context.Context, userId uuid.UUID, now time.Time) (*entity.QuotaPeriod, error) {
	lockKey := "quota_rollover:" + userId.String()

	acquired, err := s.locker.TryLock(ctx, lockKey, rolloverLockTTL)
	if err != nil {
		// Redis being down must not take quota accounting with it.
		s.logger.Warn("QUOTA", "Rollover lock unavailable, proceeding unguarded", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		acquired = true
	} else if acquired {
		defer func() {
			if err := s.locker.Unlock(context.Background(), lockKey); err != nil {
				s.logger.Warn("QUOTA", "Failed to release rollover lock", map[string]interface{}{
					"user_id": userId,
					"error":   err.Error(),
				})
			}
		}()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Double-checked read: whoever held the lock first may already have
	// rolled the period forward.
	period, err := uow.QuotaRepository().FindLatestPeriod(ctx, userId)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, nil
	}
	if !period.ExpiredAt(now) {
		return period, nil
	}

	plan := buildRolloverPlan(period, now)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.QuotaRepository().CreateHistoryEntry(ctx, plan.Archived); err != nil {
		return nil, err
	}
	for _, skipped := range plan.Skipped {
		if err := uow.QuotaRepository().CreateHistoryEntry(ctx, skipped); err != nil {
			return nil, err
		}
	}
	if err := uow.QuotaRepository().CreatePeriod(ctx, plan.Next); err != nil {
		uow.Rollback()
		// Concurrent rollover won the month_year slot; their period is the
		// current one now.
		winner, readErr := s.uowFactory.NewUnitOfWork(ctx).QuotaRepository().FindLatestPeriod(ctx, userId)
		if readErr != nil || winner == nil {
			return nil, err
		}
		return winner, nil
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("QUOTA", "Rolled quota period forward", map[string]interface{}{
		"user_id":         userId,
		"from_month_year": period.MonthYear,
		"to_month_year":   plan.Next.MonthYear,
		"periods_skipped": len(plan.Skipped),
	})
	s.events.PublishQuotaRolledOver(ctx, userId, period.MonthYear, plan.Next.MonthYear, len(plan.Skipped))

	return plan.Next, nil
}

func newQuotaPeriod(userId uuid.UUID, start, resetsOn time.Time) *entity.QuotaPeriod {
	return &entity.QuotaPeriod{
		Id:           uuid.New(),
		UserId:       userId,
		MonthYear:    entity.MonthYearOf(start),
		TotalAllowed: entity.DefaultMonthlyAllowance,
		ResetsOn:     resetsOn,
		CreatedAt:    time.Now(),
	}
}

// rolloverPlan is the full set of rows a single rollover writes. Computed
// as a pure function of the expired period and the clock so the date
// arithmetic is testable without a store.
type rolloverPlan struct {
	Archived *entity.QuotaHistoryEntry
	Skipped  []*entity.QuotaHistoryEntry
	Next     *entity.QuotaPeriod
}

// cyclesElapsed counts elapsed quota cycles with the fixed 30-day divisor.
// Call only when resetsOn <= now; the result is always >= 1.
func cyclesElapsed(resetsOn, now time.Time) int {
	return int(now.Sub(resetsOn)/(quotaCycleDays*24*time.Hour)) + 1
}

// advanceCalendarMonths steps a boundary forward month by month, so a
// Jan 31 boundary normalizes the way time.AddDate does.
func advanceCalendarMonths(t time.Time, months int) time.Time {
	for i := 0; i < months; i++ {
		t = t.AddDate(0, 1, 0)
	}
	return t
}

// buildRolloverPlan closes an expired period and catches up across every
// elapsed cycle:
//   - the expired period's usage is archived against the first elapsed
//     cycle [resetsOn, resetsOn+1mo)
//   - each fully-skipped cycle gets a zero-usage history entry
//   - the final cycle becomes the new current period, its resetsOn one
//     calendar month past the last boundary
//
// Cycle counting uses the 30-day divisor while boundaries advance by
// calendar months, so a long-idle user's new period can land slightly off
// real time. That asymmetry is intentional.
func buildRolloverPlan(period *entity.QuotaPeriod, now time.Time) *rolloverPlan {
	cycles := cyclesElapsed(period.ResetsOn, now)

	archived := &entity.QuotaHistoryEntry{
		Id:              uuid.New(),
		UserId:          period.UserId,
		PeriodStart:     period.ResetsOn,
		PeriodEnd:       advanceCalendarMonths(period.ResetsOn, 1),
		MonthYear:       period.MonthYear,
		TotalAllowed:    period.TotalAllowed,
		GenerationsUsed: period.GenerationsUsed,
		TotalRequested:  period.TotalRequested,
		WasAutoReset:    &now,
		CreatedAt:       now,
	}

	var skipped []*entity.QuotaHistoryEntry
	for cycle := 2; cycle < cycles; cycle++ {
		start := advanceCalendarMonths(period.ResetsOn, cycle-1)
		skipped = append(skipped, &entity.QuotaHistoryEntry{
			Id:           uuid.New(),
			UserId:       period.UserId,
			PeriodStart:  start,
			PeriodEnd:    advanceCalendarMonths(period.ResetsOn, cycle),
			MonthYear:    entity.MonthYearOf(start),
			TotalAllowed: period.TotalAllowed,
			WasAutoReset: &now,
			CreatedAt:    now,
		})
	}

	nextStart := advanceCalendarMonths(period.ResetsOn, cycles-1)
	next := newQuotaPeriod(period.UserId, nextStart, advanceCalendarMonths(period.ResetsOn, cycles))

	return &rolloverPlan{
		Archived: archived,
		Skipped:  skipped,
		Next:     next,
	}
}

func mapPeriodToStatus(period *entity.QuotaPeriod) *dto.QuotaStatusResponse {
	return &dto.QuotaStatusResponse{
		PeriodId:        period.Id,
		MonthYear:       period.MonthYear,
		TotalAllowed:    period.TotalAllowed,
		GenerationsUsed: period.GenerationsUsed,
		Remaining:       period.Remaining(),
		UsagePercentage: period.UsagePercentage(),
		Status:          string(period.Status()),
		ResetsOn:        period.ResetsOn,
	}
}
