// FILE: internal/service/generation_service.go
// Orchestrates the async plan-generation workflow: quota spend, job
// creation, and hand-off to the worker queue.
package service

import (
	"context"
	"encoding/json"

	"github.com/Fordjour12/monthly-zen-sub002/internal/dto"
	"github.com/Fordjour12/monthly-zen-sub002/internal/pkg/logger"
	"github.com/Fordjour12/monthly-zen-sub002/internal/repository/memory"

	"github.com/google/uuid"
)

type GenerationService interface {
	// StartGeneration spends one quota token, records a pending job, and
	// queues it for the worker. A user with an attempt already in flight
	// gets the existing job back instead of spending a second token.
	StartGeneration(ctx context.Context, userId uuid.UUID, req *dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error)
}

type generationService struct {
	quotaService     QuotaService
	jobService       GenerationJobService
	publisherService IPublisherService
	inflight         *memory.InflightRepository
	logger           logger.ILogger
}

func NewGenerationService(
	quotaService QuotaService,
	jobService GenerationJobService,
	publisherService IPublisherService,
	inflight *memory.InflightRepository,
	logger logger.ILogger,
) GenerationService {
	return &generationService{
		quotaService:     quotaService,
		jobService:       jobService,
		publisherService: publisherService,
		inflight:         inflight,
		logger:           logger,
	}
}

func (s *generationService) StartGeneration(ctx context.Context, userId uuid.UUID, req *dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error) {
	if jobId, found := s.inflight.Get(userId); found {
		existing, err := s.jobService.GetJobById(ctx, jobId)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &dto.GeneratePlanResponse{
				JobId:  existing.Id,
				Status: existing.Status,
			}, nil
		}
		// Stale mark from a dead worker; fall through and start fresh.
		s.inflight.Clear(userId)
	}

	// One generation costs one token. QuotaExceededError propagates to the
	// controller as a 429.
	if _, err := s.quotaService.RequestTokens(ctx, userId, 1); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	job, err := s.jobService.CreateJob(ctx, userId, payload)
	if err != nil {
		return nil, err
	}

	s.inflight.Mark(userId, job.Id)

	msgPayload := dto.GenerationJobMessage{
		JobId:  job.Id,
		UserId: userId,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}

	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		// The token is spent and the job row exists; the worker never saw
		// it, so surface the failure and free the guard for a retry.
		s.inflight.Clear(userId)
		return nil, err
	}

	s.logger.Info("PLANNER", "Queued plan generation", map[string]interface{}{
		"job_id":  job.Id,
		"user_id": userId,
	})

	return &dto.GeneratePlanResponse{
		JobId:  job.Id,
		Status: string(job.Status),
	}, nil
}
