package model

import (
	"time"

	"github.com/google/uuid"
)

// QuotaHistoryEntry is append-only: created once by the rollover routine,
// never mutated.
type QuotaHistoryEntry struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID  `gorm:"type:uuid;not null;index"`
	PeriodStart     time.Time  `gorm:"not null"`
	PeriodEnd       time.Time  `gorm:"not null"`
	MonthYear       string     `gorm:"type:varchar(7);not null"`
	TotalAllowed    int        `gorm:"not null"`
	GenerationsUsed int        `gorm:"not null;default:0"`
	TotalRequested  int        `gorm:"not null;default:0"`
	WasAutoReset    *time.Time `gorm:""`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
}

func (QuotaHistoryEntry) TableName() string {
	return "quota_history"
}
