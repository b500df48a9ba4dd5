package model

import (
	"time"

	"github.com/google/uuid"
)

// QuotaPeriod rows are never deleted; a rollover supersedes the old row with
// a newer one. The (user_id, month_year) unique index is the dedup guard
// against two concurrent rollovers creating the same period twice.
type QuotaPeriod struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_quota_periods_user_month"`
	MonthYear       string    `gorm:"type:varchar(7);not null;uniqueIndex:idx_quota_periods_user_month"`
	TotalAllowed    int       `gorm:"not null;default:50"`
	GenerationsUsed int       `gorm:"not null;default:0"`
	TotalRequested  int       `gorm:"not null;default:0"`
	ResetsOn        time.Time `gorm:"not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (QuotaPeriod) TableName() string {
	return "quota_periods"
}
