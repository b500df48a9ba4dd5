package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PlanDraft struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DraftKey         string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserId           uuid.UUID      `gorm:"type:uuid;not null;index"`
	PlanData         datatypes.JSON `gorm:"type:jsonb;not null"`
	GoalPreferenceId *uuid.UUID     `gorm:"type:uuid"`
	MonthYear        string         `gorm:"type:varchar(7);not null"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	ExpiresAt        time.Time      `gorm:"not null;index"`
}

func (PlanDraft) TableName() string {
	return "plan_drafts"
}
