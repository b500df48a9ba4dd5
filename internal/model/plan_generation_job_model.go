package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PlanGenerationJob struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	RequestPayload datatypes.JSON `gorm:"type:jsonb;not null"`
	Status         string         `gorm:"type:varchar(20);not null;default:'pending';index"`
	ResponseText   *string        `gorm:"type:text"`
	PlanId         *uuid.UUID     `gorm:"type:uuid"`
	ConversationId *uuid.UUID     `gorm:"type:uuid"`
	ErrorMessage   *string        `gorm:"type:text"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (PlanGenerationJob) TableName() string {
	return "plan_generation_jobs"
}
