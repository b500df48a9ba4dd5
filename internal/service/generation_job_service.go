// FILE: internal/service/generation_job_service.go
// Service for the plan-generation job record lifecycle
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Fordjour12/monthly-zen-sub002/internal/dto"
	"github.com/Fordjour12/monthly-zen-sub002/internal/entity"
	"github.com/Fordjour12/monthly-zen-sub002/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type GenerationJobService interface {
	CreateJob(ctx context.Context, userId uuid.UUID, requestPayload json.RawMessage) (*entity.PlanGenerationJob, error)
	// UpdateJob applies a partial patch and stamps updatedAt. A status
	// change outside pending -> running -> {completed | failed} is
	// rejected with InvalidTransitionError.
	UpdateJob(ctx context.Context, jobId uuid.UUID, patch *dto.UpdateJobRequest) (*entity.PlanGenerationJob, error)
	GetJobById(ctx context.Context, jobId uuid.UUID) (*dto.JobResponse, error)
	// GetJobForUser resolves a job only when it belongs to userId; a
	// job owned by someone else reads as not found.
	GetJobForUser(ctx context.Context, userId uuid.UUID, jobId uuid.UUID) (*dto.JobResponse, error)
	GetLatestJobByUser(ctx context.Context, userId uuid.UUID) (*dto.JobResponse, error)
}

type generationJobService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewGenerationJobService(uowFactory unitofwork.RepositoryFactory) GenerationJobService {
	return &generationJobService{
		uowFactory: uowFactory,
	}
}

func (s *generationJobService) CreateJob(ctx context.Context, userId uuid.UUID, requestPayload json.RawMessage) (*entity.PlanGenerationJob, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	job := &entity.PlanGenerationJob{
		Id:             uuid.New(),
		UserId:         userId,
		RequestPayload: requestPayload,
		Status:         entity.JobStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uow.GenerationJobRepository().Create(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

func (s *generationJobService) UpdateJob(ctx context.Context, jobId uuid.UUID, patch *dto.UpdateJobRequest) (*entity.PlanGenerationJob, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	job, err := uow.GenerationJobRepository().FindOne(ctx, jobId)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}

	if patch.Status != nil {
		next := entity.GenerationJobStatus(*patch.Status)
		if !job.Status.CanTransitionTo(next) {
			return nil, &dto.InvalidTransitionError{
				From: string(job.Status),
				To:   string(next),
			}
		}
		job.Status = next
	}
	if patch.ResponseText != nil {
		job.ResponseText = patch.ResponseText
	}
	if patch.PlanId != nil {
		job.PlanId = patch.PlanId
	}
	if patch.ConversationId != nil {
		job.ConversationId = patch.ConversationId
	}
	if patch.ErrorMessage != nil {
		job.ErrorMessage = patch.ErrorMessage
	}
	job.UpdatedAt = time.Now()

	if err := uow.GenerationJobRepository().Update(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

func (s *generationJobService) GetJobById(ctx context.Context, jobId uuid.UUID) (*dto.JobResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	job, err := uow.GenerationJobRepository().FindOne(ctx, jobId)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}

	return mapJobToResponse(job), nil
}

func (s *generationJobService) GetJobForUser(ctx context.Context, userId uuid.UUID, jobId uuid.UUID) (*dto.JobResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	job, err := uow.GenerationJobRepository().FindOneByUser(ctx, jobId, userId)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}

	return mapJobToResponse(job), nil
}

func (s *generationJobService) GetLatestJobByUser(ctx context.Context, userId uuid.UUID) (*dto.JobResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	job, err := uow.GenerationJobRepository().FindLatestByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}

	return mapJobToResponse(job), nil
}

func mapJobToResponse(job *entity.PlanGenerationJob) *dto.JobResponse {
	return &dto.JobResponse{
		Id:             job.Id,
		Status:         string(job.Status),
		ResponseText:   job.ResponseText,
		PlanId:         job.PlanId,
		ConversationId: job.ConversationId,
		ErrorMessage:   job.ErrorMessage,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}
}
