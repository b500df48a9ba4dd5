// FILE: internal/service/fakes_test.go
// In-memory doubles for the repository contracts so service behavior can
// be exercised without a database.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Fordjour12/monthly-zen-sub002/internal/entity"
	"github.com/Fordjour12/monthly-zen-sub002/internal/repository/contract"
	"github.com/Fordjour12/monthly-zen-sub002/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type fakeQuotaRepository struct {
	mu      sync.Mutex
	periods []*entity.QuotaPeriod
	history []*entity.QuotaHistoryEntry

	failNextCreatePeriod bool
}

func (r *fakeQuotaRepository) CreatePeriod(ctx context.Context, period *entity.QuotaPeriod) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNextCreatePeriod {
		r.failNextCreatePeriod = false
		return fmt.Errorf("duplicate key value violates unique constraint \"idx_quota_periods_user_month\"")
	}
	for _, p := range r.periods {
		if p.UserId == period.UserId && p.MonthYear == period.MonthYear {
			return fmt.Errorf("duplicate key value violates unique constraint \"idx_quota_periods_user_month\"")
		}
	}
	cp := *period
	r.periods = append(r.periods, &cp)
	return nil
}

func (r *fakeQuotaRepository) UpdatePeriod(ctx context.Context, period *entity.QuotaPeriod) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.periods {
		if p.Id == period.Id {
			cp := *period
			r.periods[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("period not found")
}

func (r *fakeQuotaRepository) IncrementUsage(ctx context.Context, periodId uuid.UUID, used, requested int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.periods {
		if p.Id == periodId {
			p.GenerationsUsed += used
			p.TotalRequested += requested
			return nil
		}
	}
	return fmt.Errorf("period not found")
}

func (r *fakeQuotaRepository) FindLatestPeriod(ctx context.Context, userId uuid.UUID) (*entity.QuotaPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.periods) - 1; i >= 0; i-- {
		if r.periods[i].UserId == userId {
			cp := *r.periods[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeQuotaRepository) FindPeriodByMonthYear(ctx context.Context, userId uuid.UUID, monthYear string) (*entity.QuotaPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.periods {
		if p.UserId == userId && p.MonthYear == monthYear {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeQuotaRepository) CreateHistoryEntry(ctx context.Context, entry *entity.QuotaHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.history = append(r.history, &cp)
	return nil
}

func (r *fakeQuotaRepository) FindHistory(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.QuotaHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.QuotaHistoryEntry
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].UserId == userId {
			cp := *r.history[i]
			out = append(out, &cp)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type fakePlanDraftRepository struct {
	mu     sync.Mutex
	drafts []*entity.PlanDraft
}

func (r *fakePlanDraftRepository) Create(ctx context.Context, draft *entity.PlanDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *draft
	r.drafts = append(r.drafts, &cp)
	return nil
}

func (r *fakePlanDraftRepository) FindByKey(ctx context.Context, userId uuid.UUID, draftKey string) (*entity.PlanDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.drafts {
		if d.UserId == userId && d.DraftKey == draftKey {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePlanDraftRepository) FindLatest(ctx context.Context, userId uuid.UUID) (*entity.PlanDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.drafts) - 1; i >= 0; i-- {
		if r.drafts[i].UserId == userId {
			cp := *r.drafts[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePlanDraftRepository) DeleteByKey(ctx context.Context, userId uuid.UUID, draftKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.drafts[:0]
	for _, d := range r.drafts {
		if !(d.UserId == userId && d.DraftKey == draftKey) {
			kept = append(kept, d)
		}
	}
	r.drafts = kept
	return nil
}

func (r *fakePlanDraftRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	kept := r.drafts[:0]
	for _, d := range r.drafts {
		if d.ExpiresAt.Before(now) {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	r.drafts = kept
	return removed, nil
}

type fakeGenerationJobRepository struct {
	mu   sync.Mutex
	jobs []*entity.PlanGenerationJob
}

func (r *fakeGenerationJobRepository) Create(ctx context.Context, job *entity.PlanGenerationJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *job
	r.jobs = append(r.jobs, &cp)
	return nil
}

func (r *fakeGenerationJobRepository) Update(ctx context.Context, job *entity.PlanGenerationJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, j := range r.jobs {
		if j.Id == job.Id {
			cp := *job
			r.jobs[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("job not found")
}

func (r *fakeGenerationJobRepository) FindOne(ctx context.Context, id uuid.UUID) (*entity.PlanGenerationJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if j.Id == id {
			cp := *j
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeGenerationJobRepository) FindOneByUser(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*entity.PlanGenerationJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if j.Id == id && j.UserId == userId {
			cp := *j
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeGenerationJobRepository) FindLatestByUser(ctx context.Context, userId uuid.UUID) (*entity.PlanGenerationJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.jobs) - 1; i >= 0; i-- {
		if r.jobs[i].UserId == userId {
			cp := *r.jobs[i]
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeUnitOfWork struct {
	quota  *fakeQuotaRepository
	drafts *fakePlanDraftRepository
	jobs   *fakeGenerationJobRepository
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) QuotaRepository() contract.QuotaRepository {
	return u.quota
}

func (u *fakeUnitOfWork) PlanDraftRepository() contract.PlanDraftRepository {
	return u.drafts
}

func (u *fakeUnitOfWork) GenerationJobRepository() contract.GenerationJobRepository {
	return u.jobs
}

// fakeFactory hands the same unit of work to every caller so state is
// shared across service calls the way a real database would be.
type fakeFactory struct {
	uow *fakeUnitOfWork
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		uow: &fakeUnitOfWork{
			quota:  &fakeQuotaRepository{},
			drafts: &fakePlanDraftRepository{},
			jobs:   &fakeGenerationJobRepository{},
		},
	}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeLocker struct {
	denyNext bool
}

func (l *fakeLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if l.denyNext {
		l.denyNext = false
		return false, nil
	}
	return true, nil
}

func (l *fakeLocker) Unlock(ctx context.Context, key string) error { return nil }

// recordingPublisher counts domain events without a broker.
type recordingPublisher struct {
	rolledOver int
	exceeded   int
	drafts     int
	completed  int
	failed     int
}

func (p *recordingPublisher) PublishQuotaRolledOver(ctx context.Context, userId uuid.UUID, fromMonthYear, toMonthYear string, periodsSkipped int) {
	p.rolledOver++
}

func (p *recordingPublisher) PublishQuotaExceeded(ctx context.Context, userId uuid.UUID, requested, remaining int) {
	p.exceeded++
}

func (p *recordingPublisher) PublishDraftCreated(ctx context.Context, userId uuid.UUID, draftKey, monthYear string, expiresAt time.Time) {
	p.drafts++
}

func (p *recordingPublisher) PublishGenerationCompleted(ctx context.Context, jobId, userId uuid.UUID, draftKey string) {
	p.completed++
}

func (p *recordingPublisher) PublishGenerationFailed(ctx context.Context, jobId, userId uuid.UUID, reason string) {
	p.failed++
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
