// FILE: internal/dto/planner_dto.go
// DTOs for plan drafts and generation jobs
package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GeneratePlanRequest is the body of POST /api/plans/generate.
type GeneratePlanRequest struct {
	MonthYear        string     `json:"month_year" validate:"required,len=7"`
	Goals            []string   `json:"goals" validate:"required,min=1,dive,required"`
	FocusAreas       []string   `json:"focus_areas,omitempty"`
	GoalPreferenceId *uuid.UUID `json:"goal_preference_id,omitempty"`
}

// GeneratePlanResponse acknowledges the queued generation attempt.
type GeneratePlanResponse struct {
	JobId  uuid.UUID `json:"job_id"`
	Status string    `json:"status"`
}

// DraftResponse is the user-visible draft snapshot.
type DraftResponse struct {
	Id               uuid.UUID       `json:"id"`
	DraftKey         string          `json:"draft_key"`
	MonthYear        string          `json:"month_year"`
	PlanData         json.RawMessage `json:"plan_data"`
	GoalPreferenceId *uuid.UUID      `json:"goal_preference_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	ExpiresAt        time.Time       `json:"expires_at"`
}

// JobResponse mirrors one generation attempt.
type JobResponse struct {
	Id             uuid.UUID  `json:"id"`
	Status         string     `json:"status"`
	ResponseText   *string    `json:"response_text,omitempty"`
	PlanId         *uuid.UUID `json:"plan_id,omitempty"`
	ConversationId *uuid.UUID `json:"conversation_id,omitempty"`
	ErrorMessage   *string    `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// UpdateJobRequest is the partial patch applied as a job advances.
// Nil fields are left untouched.
type UpdateJobRequest struct {
	Status         *string
	ResponseText   *string
	PlanId         *uuid.UUID
	ConversationId *uuid.UUID
	ErrorMessage   *string
}

// InvalidTransitionError rejects a job status change outside the
// forward-only lifecycle.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid job transition: %s -> %s", e.From, e.To)
}

// GenerationJobMessage is the watermill payload handed to the worker.
type GenerationJobMessage struct {
	JobId  uuid.UUID `json:"job_id"`
	UserId uuid.UUID `json:"user_id"`
}
