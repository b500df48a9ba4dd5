// FILE: internal/service/generation_job_service_test.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Fordjour12/monthly-zen-sub002/internal/dto"
	"github.com/Fordjour12/monthly-zen-sub002/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateJob_StartsPending(t *testing.T) {
	factory := newFakeFactory()
	svc := NewGenerationJobService(factory)
	userId := uuid.New()

	job, err := svc.CreateJob(context.Background(), userId, json.RawMessage(`{"month_year":"2025-09"}`))

	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusPending, job.Status)
	assert.Nil(t, job.ResponseText)
	assert.Nil(t, job.ErrorMessage)
	assert.False(t, job.Status.IsTerminal())
}

func TestJobStatusTransitions(t *testing.T) {
	tests := []struct {
		from    entity.GenerationJobStatus
		to      entity.GenerationJobStatus
		allowed bool
	}{
		{entity.JobStatusPending, entity.JobStatusRunning, true},
		{entity.JobStatusRunning, entity.JobStatusCompleted, true},
		{entity.JobStatusRunning, entity.JobStatusFailed, true},
		{entity.JobStatusPending, entity.JobStatusCompleted, false},
		{entity.JobStatusPending, entity.JobStatusFailed, false},
		{entity.JobStatusRunning, entity.JobStatusPending, false},
		{entity.JobStatusCompleted, entity.JobStatusPending, false},
		{entity.JobStatusCompleted, entity.JobStatusRunning, false},
		{entity.JobStatusCompleted, entity.JobStatusFailed, false},
		{entity.JobStatusFailed, entity.JobStatusRunning, false},
		{entity.JobStatusFailed, entity.JobStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestUpdateJob_RejectsSkippingRunning(t *testing.T) {
	factory := newFakeFactory()
	svc := NewGenerationJobService(factory)

	job, err := svc.CreateJob(context.Background(), uuid.New(), json.RawMessage(`{}`))
	require.NoError(t, err)

	_, err = svc.UpdateJob(context.Background(), job.Id, &dto.UpdateJobRequest{
		Status: strPtr(string(entity.JobStatusCompleted)),
	})

	var transitionErr *dto.InvalidTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, "pending", transitionErr.From)
	assert.Equal(t, "completed", transitionErr.To)

	// Rejected patch must not have touched the row.
	stored, err := svc.GetJobById(context.Background(), job.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.JobStatusPending), stored.Status)
}

func TestUpdateJob_RunningToFailedKeepsPlanNull(t *testing.T) {
	factory := newFakeFactory()
	svc := NewGenerationJobService(factory)

	job, err := svc.CreateJob(context.Background(), uuid.New(), json.RawMessage(`{}`))
	require.NoError(t, err)

	_, err = svc.UpdateJob(context.Background(), job.Id, &dto.UpdateJobRequest{
		Status: strPtr(string(entity.JobStatusRunning)),
	})
	require.NoError(t, err)

	failed, err := svc.UpdateJob(context.Background(), job.Id, &dto.UpdateJobRequest{
		Status:       strPtr(string(entity.JobStatusFailed)),
		ErrorMessage: strPtr("model timed out"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.JobStatusFailed, failed.Status)
	require.NotNil(t, failed.ErrorMessage)
	assert.Equal(t, "model timed out", *failed.ErrorMessage)
	assert.Nil(t, failed.PlanId)
	assert.Nil(t, failed.ConversationId)
	assert.True(t, failed.Status.IsTerminal())
	assert.True(t, failed.UpdatedAt.After(job.UpdatedAt) || failed.UpdatedAt.Equal(job.UpdatedAt))
}

func TestUpdateJob_PartialPatchLeavesOtherFields(t *testing.T) {
	factory := newFakeFactory()
	svc := NewGenerationJobService(factory)

	job, err := svc.CreateJob(context.Background(), uuid.New(), json.RawMessage(`{}`))
	require.NoError(t, err)

	_, err = svc.UpdateJob(context.Background(), job.Id, &dto.UpdateJobRequest{
		Status: strPtr(string(entity.JobStatusRunning)),
	})
	require.NoError(t, err)

	convId := uuid.New()
	updated, err := svc.UpdateJob(context.Background(), job.Id, &dto.UpdateJobRequest{
		ConversationId: &convId,
	})
	require.NoError(t, err)

	// Status untouched by a patch that does not mention it.
	assert.Equal(t, entity.JobStatusRunning, updated.Status)
	require.NotNil(t, updated.ConversationId)
	assert.Equal(t, convId, *updated.ConversationId)
}

func TestUpdateJob_MissingJob(t *testing.T) {
	factory := newFakeFactory()
	svc := NewGenerationJobService(factory)

	job, err := svc.UpdateJob(context.Background(), uuid.New(), &dto.UpdateJobRequest{
		Status: strPtr(string(entity.JobStatusRunning)),
	})

	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestGetJobForUser_WrongUserIsNotFound(t *testing.T) {
	factory := newFakeFactory()
	svc := NewGenerationJobService(factory)
	owner := uuid.New()

	job, err := svc.CreateJob(context.Background(), owner, json.RawMessage(`{"month_year":"2026-09"}`))
	require.NoError(t, err)

	stolen, err := svc.GetJobForUser(context.Background(), uuid.New(), job.Id)
	require.NoError(t, err)
	assert.Nil(t, stolen, "another user's job id must read as not found")

	own, err := svc.GetJobForUser(context.Background(), owner, job.Id)
	require.NoError(t, err)
	require.NotNil(t, own)
	assert.Equal(t, job.Id, own.Id)
}

func TestGetLatestJobByUser(t *testing.T) {
	factory := newFakeFactory()
	svc := NewGenerationJobService(factory)
	userId := uuid.New()

	_, err := svc.CreateJob(context.Background(), userId, json.RawMessage(`{"attempt":1}`))
	require.NoError(t, err)
	second, err := svc.CreateJob(context.Background(), userId, json.RawMessage(`{"attempt":2}`))
	require.NoError(t, err)

	latest, err := svc.GetLatestJobByUser(context.Background(), userId)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.Id, latest.Id)

	none, err := svc.GetLatestJobByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, none)
}
