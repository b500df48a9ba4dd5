package specification

import (
	"time"

	"gorm.io/gorm"
)

// ByDraftKey filters plan drafts by their opaque key.
type ByDraftKey struct {
	DraftKey string
}

func (s ByDraftKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("draft_key = ?", s.DraftKey)
}

// ByMonthYear filters by the canonical "YYYY-MM" period identifier.
type ByMonthYear struct {
	MonthYear string
}

func (s ByMonthYear) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("month_year = ?", s.MonthYear)
}

// ExpiresBefore matches rows whose expiry has passed. Used by the draft
// sweep; read paths enforce expiry in code instead.
type ExpiresBefore struct {
	Now time.Time
}

func (s ExpiresBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at < ?", s.Now)
}

// ByStatus filters generation jobs by lifecycle state.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
