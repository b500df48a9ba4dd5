package mapper

import (
	"encoding/json"

	"github.com/Fordjour12/monthly-zen-sub002/internal/entity"
	"github.com/Fordjour12/monthly-zen-sub002/internal/model"

	"gorm.io/datatypes"
)

type PlannerMapper struct{}

func NewPlannerMapper() *PlannerMapper {
	return &PlannerMapper{}
}

func (m *PlannerMapper) DraftToEntity(d *model.PlanDraft) *entity.PlanDraft {
	if d == nil {
		return nil
	}
	return &entity.PlanDraft{
		Id:               d.Id,
		DraftKey:         d.DraftKey,
		UserId:           d.UserId,
		PlanData:         json.RawMessage(d.PlanData),
		GoalPreferenceId: d.GoalPreferenceId,
		MonthYear:        d.MonthYear,
		CreatedAt:        d.CreatedAt,
		ExpiresAt:        d.ExpiresAt,
	}
}

func (m *PlannerMapper) DraftToModel(d *entity.PlanDraft) *model.PlanDraft {
	if d == nil {
		return nil
	}
	return &model.PlanDraft{
		Id:               d.Id,
		DraftKey:         d.DraftKey,
		UserId:           d.UserId,
		PlanData:         datatypes.JSON(d.PlanData),
		GoalPreferenceId: d.GoalPreferenceId,
		MonthYear:        d.MonthYear,
		CreatedAt:        d.CreatedAt,
		ExpiresAt:        d.ExpiresAt,
	}
}

func (m *PlannerMapper) JobToEntity(j *model.PlanGenerationJob) *entity.PlanGenerationJob {
	if j == nil {
		return nil
	}
	return &entity.PlanGenerationJob{
		Id:             j.Id,
		UserId:         j.UserId,
		RequestPayload: json.RawMessage(j.RequestPayload),
		Status:         entity.GenerationJobStatus(j.Status),
		ResponseText:   j.ResponseText,
		PlanId:         j.PlanId,
		ConversationId: j.ConversationId,
		ErrorMessage:   j.ErrorMessage,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

func (m *PlannerMapper) JobToModel(j *entity.PlanGenerationJob) *model.PlanGenerationJob {
	if j == nil {
		return nil
	}
	return &model.PlanGenerationJob{
		Id:             j.Id,
		UserId:         j.UserId,
		RequestPayload: datatypes.JSON(j.RequestPayload),
		Status:         string(j.Status),
		ResponseText:   j.ResponseText,
		PlanId:         j.PlanId,
		ConversationId: j.ConversationId,
		ErrorMessage:   j.ErrorMessage,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}
