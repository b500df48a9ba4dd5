// FILE: internal/entity/generation_job_entity.go
package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type GenerationJobStatus string

const (
	JobStatusPending   GenerationJobStatus = "pending"
	JobStatusRunning   GenerationJobStatus = "running"
	JobStatusCompleted GenerationJobStatus = "completed"
	JobStatusFailed    GenerationJobStatus = "failed"
)

// CanTransitionTo enforces the forward-only job lifecycle:
// pending -> running -> {completed | failed}. There is no cancellation
// state and no reverse edge.
func (s GenerationJobStatus) CanTransitionTo(next GenerationJobStatus) bool {
	switch s {
	case JobStatusPending:
		return next == JobStatusRunning
	case JobStatusRunning:
		return next == JobStatusCompleted || next == JobStatusFailed
	default:
		return false
	}
}

func (s GenerationJobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// PlanGenerationJob tracks one asynchronous plan-generation attempt.
// Rows are updated in place as the attempt advances and are never deleted
// by this service.
type PlanGenerationJob struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	RequestPayload json.RawMessage
	Status         GenerationJobStatus
	ResponseText   *string
	PlanId         *uuid.UUID
	ConversationId *uuid.UUID
	ErrorMessage   *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
