// FILE: internal/entity/quota_entity.go
package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type QuotaUsageStatus string

const (
	QuotaStatusActive   QuotaUsageStatus = "active"
	QuotaStatusLow      QuotaUsageStatus = "low"      // usage >= 80%
	QuotaStatusExceeded QuotaUsageStatus = "exceeded" // usage >= 100%
)

// DefaultMonthlyAllowance is the allowance every new period starts with.
const DefaultMonthlyAllowance = 50

// MonthYearLayout is the canonical first-of-month period identifier ("2025-09").
const MonthYearLayout = "2006-01"

// QuotaPeriod is one user's monthly generation-allowance window.
// The current period is the most recently created row for the user;
// there is no explicit "active" flag.
type QuotaPeriod struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	MonthYear       string
	TotalAllowed    int
	GenerationsUsed int
	TotalRequested  int
	ResetsOn        time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Remaining never goes negative even when usage overshot the allowance.
func (p *QuotaPeriod) Remaining() int {
	remaining := p.TotalAllowed - p.GenerationsUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (p *QuotaPeriod) UsagePercentage() int {
	if p.TotalAllowed <= 0 {
		return 100
	}
	return int(math.Round(float64(p.GenerationsUsed) / float64(p.TotalAllowed) * 100))
}

func (p *QuotaPeriod) Status() QuotaUsageStatus {
	pct := p.UsagePercentage()
	switch {
	case pct >= 100:
		return QuotaStatusExceeded
	case pct >= 80:
		return QuotaStatusLow
	default:
		return QuotaStatusActive
	}
}

// ExpiredAt reports whether the period has elapsed at the given instant.
// A period whose ResetsOn equals "now" is already expired.
func (p *QuotaPeriod) ExpiredAt(now time.Time) bool {
	return !p.ResetsOn.After(now)
}

// QuotaHistoryEntry is the immutable archive of a closed period.
// WasAutoReset carries the timestamp of the rollover that closed it,
// or nil when the period was closed manually.
type QuotaHistoryEntry struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	PeriodStart     time.Time
	PeriodEnd       time.Time
	MonthYear       string
	TotalAllowed    int
	GenerationsUsed int
	TotalRequested  int
	WasAutoReset    *time.Time
	CreatedAt       time.Time
}

// MonthYearOf formats the canonical period identifier for a boundary date.
func MonthYearOf(t time.Time) string {
	return t.Format(MonthYearLayout)
}
