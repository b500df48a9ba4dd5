// FILE: internal/service/draft_service.go
// Service for transient plan-draft snapshots
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/Fordjour12/monthly-zen-sub002/internal/dto"
	"github.com/Fordjour12/monthly-zen-sub002/internal/entity"
	"github.com/Fordjour12/monthly-zen-sub002/internal/pkg/logger"
	"github.com/Fordjour12/monthly-zen-sub002/internal/repository/unitofwork"
	plannerEvents "github.com/Fordjour12/monthly-zen-sub002/pkg/planner/events"

	"github.com/google/uuid"
)

type DraftService interface {
	CreateDraft(ctx context.Context, userId uuid.UUID, planData json.RawMessage, goalPreferenceId *uuid.UUID, monthYear string, ttlHours int) (*dto.DraftResponse, error)
	// GetDraft reports (nil, nil) for a missing key AND for a row whose
	// expiry has passed; callers cannot tell the two apart.
	GetDraft(ctx context.Context, userId uuid.UUID, draftKey string) (*dto.DraftResponse, error)
	GetLatestDraft(ctx context.Context, userId uuid.UUID) (*dto.DraftResponse, error)
	DeleteDraft(ctx context.Context, userId uuid.UUID, draftKey string) error
	// CleanupExpiredDrafts physically removes every expired row and
	// returns how many went away.
	CleanupExpiredDrafts(ctx context.Context) (int64, error)
}

type draftService struct {
	uowFactory unitofwork.RepositoryFactory
	events     plannerEvents.Publisher
	logger     logger.ILogger
}

func NewDraftService(
	uowFactory unitofwork.RepositoryFactory,
	events plannerEvents.Publisher,
	logger logger.ILogger,
) DraftService {
	return &draftService{
		uowFactory: uowFactory,
		events:     events,
		logger:     logger,
	}
}

const draftKeyRandChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// newDraftKey builds "draft_<last6 of userId>_<epoch millis>_<6 random
// base36 chars>". Collision-resistant for debugging convenience, not a
// secret; ownership checks always pair the key with userId.
func newDraftKey(userId uuid.UUID, now time.Time) string {
	idStr := userId.String()
	suffix := idStr[len(idStr)-6:]

	randPart := make([]byte, 6)
	for i := range randPart {
		randPart[i] = draftKeyRandChars[rand.Intn(len(draftKeyRandChars))]
	}

	return fmt.Sprintf("draft_%s_%d_%s", suffix, now.UnixMilli(), randPart)
}

func (s *draftService) CreateDraft(ctx context.Context, userId uuid.UUID, planData json.RawMessage, goalPreferenceId *uuid.UUID, monthYear string, ttlHours int) (*dto.DraftResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if ttlHours <= 0 {
		ttlHours = entity.DefaultDraftTTLHours
	}

	now := time.Now()
	draft := &entity.PlanDraft{
		Id:               uuid.New(),
		DraftKey:         newDraftKey(userId, now),
		UserId:           userId,
		PlanData:         planData,
		GoalPreferenceId: goalPreferenceId,
		MonthYear:        monthYear,
		CreatedAt:        now,
		ExpiresAt:        now.Add(time.Duration(ttlHours) * time.Hour),
	}

	if err := uow.PlanDraftRepository().Create(ctx, draft); err != nil {
		return nil, err
	}

	s.events.PublishDraftCreated(ctx, userId, draft.DraftKey, draft.MonthYear, draft.ExpiresAt)

	return mapDraftToResponse(draft), nil
}

func (s *draftService) GetDraft(ctx context.Context, userId uuid.UUID, draftKey string) (*dto.DraftResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	draft, err := uow.PlanDraftRepository().FindByKey(ctx, userId, draftKey)
	if err != nil {
		return nil, err
	}
	if draft == nil || draft.ExpiredAt(time.Now()) {
		return nil, nil
	}

	return mapDraftToResponse(draft), nil
}

func (s *draftService) GetLatestDraft(ctx context.Context, userId uuid.UUID) (*dto.DraftResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	draft, err := uow.PlanDraftRepository().FindLatest(ctx, userId)
	if err != nil {
		return nil, err
	}
	if draft == nil || draft.ExpiredAt(time.Now()) {
		return nil, nil
	}

	return mapDraftToResponse(draft), nil
}

func (s *draftService) DeleteDraft(ctx context.Context, userId uuid.UUID, draftKey string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.PlanDraftRepository().DeleteByKey(ctx, userId, draftKey)
}

func (s *draftService) CleanupExpiredDrafts(ctx context.Context) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	removed, err := uow.PlanDraftRepository().DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		s.logger.Info("PLANNER", "Swept expired plan drafts", map[string]interface{}{
			"removed": removed,
		})
	}

	return removed, nil
}

func mapDraftToResponse(draft *entity.PlanDraft) *dto.DraftResponse {
	return &dto.DraftResponse{
		Id:               draft.Id,
		DraftKey:         draft.DraftKey,
		MonthYear:        draft.MonthYear,
		PlanData:         draft.PlanData,
		GoalPreferenceId: draft.GoalPreferenceId,
		CreatedAt:        draft.CreatedAt,
		ExpiresAt:        draft.ExpiresAt,
	}
}
