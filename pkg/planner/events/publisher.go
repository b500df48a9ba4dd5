package events

import (
	"context"
	"time"

	"github.com/Fordjour12/monthly-zen-sub002/internal/pkg/logger"
	pkgEvents "github.com/Fordjour12/monthly-zen-sub002/pkg/events"
	pktNats "github.com/Fordjour12/monthly-zen-sub002/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for the planning domain. Emission
// is best-effort: downstream consumers (coaching insights, analytics) must
// never block or fail a user request.
type Publisher interface {
	PublishQuotaRolledOver(ctx context.Context, userId uuid.UUID, fromMonthYear, toMonthYear string, periodsSkipped int)
	PublishQuotaExceeded(ctx context.Context, userId uuid.UUID, requested, remaining int)
	PublishDraftCreated(ctx context.Context, userId uuid.UUID, draftKey, monthYear string, expiresAt time.Time)
	PublishGenerationCompleted(ctx context.Context, jobId, userId uuid.UUID, draftKey string)
	PublishGenerationFailed(ctx context.Context, jobId, userId uuid.UUID, reason string)
}

// NatsPublisher implements Publisher using NATS.
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) emit(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("PLANNER", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishQuotaRolledOver emits QUOTA_ROLLED_OVER after a lazy period rollover.
func (p *NatsPublisher) PublishQuotaRolledOver(ctx context.Context, userId uuid.UUID, fromMonthYear, toMonthYear string, periodsSkipped int) {
	p.emit(ctx, "QUOTA_ROLLED_OVER", map[string]interface{}{
		"user_id":         userId,
		"from_month_year": fromMonthYear,
		"to_month_year":   toMonthYear,
		"periods_skipped": periodsSkipped,
	})
}

// PublishQuotaExceeded emits QUOTA_EXCEEDED when a token request is denied.
func (p *NatsPublisher) PublishQuotaExceeded(ctx context.Context, userId uuid.UUID, requested, remaining int) {
	p.emit(ctx, "QUOTA_EXCEEDED", map[string]interface{}{
		"user_id":   userId,
		"requested": requested,
		"remaining": remaining,
	})
}

// PublishDraftCreated emits PLAN_DRAFT_CREATED once a generated plan is stored.
func (p *NatsPublisher) PublishDraftCreated(ctx context.Context, userId uuid.UUID, draftKey, monthYear string, expiresAt time.Time) {
	p.emit(ctx, "PLAN_DRAFT_CREATED", map[string]interface{}{
		"user_id":    userId,
		"draft_key":  draftKey,
		"month_year": monthYear,
		"expires_at": expiresAt,
	})
}

// PublishGenerationCompleted emits GENERATION_COMPLETED for a finished job.
func (p *NatsPublisher) PublishGenerationCompleted(ctx context.Context, jobId, userId uuid.UUID, draftKey string) {
	p.emit(ctx, "GENERATION_COMPLETED", map[string]interface{}{
		"job_id":    jobId,
		"user_id":   userId,
		"draft_key": draftKey,
	})
}

// PublishGenerationFailed emits GENERATION_FAILED with the terminal error.
func (p *NatsPublisher) PublishGenerationFailed(ctx context.Context, jobId, userId uuid.UUID, reason string) {
	p.emit(ctx, "GENERATION_FAILED", map[string]interface{}{
		"job_id":  jobId,
		"user_id": userId,
		"reason":  reason,
	})
}
