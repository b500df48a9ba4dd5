// FILE: internal/entity/quota_entity_test.go
package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuotaPeriodDerivedFields(t *testing.T) {
	tests := []struct {
		name          string
		allowed       int
		used          int
		wantRemaining int
		wantPct       int
		wantStatus    QuotaUsageStatus
	}{
		{"untouched", 50, 0, 50, 0, QuotaStatusActive},
		{"mid usage", 50, 25, 25, 50, QuotaStatusActive},
		{"just under low", 50, 39, 11, 78, QuotaStatusActive},
		{"low at 80 percent", 50, 40, 10, 80, QuotaStatusLow},
		{"rounding hits low", 50, 41, 9, 82, QuotaStatusLow},
		{"exhausted", 50, 50, 0, 100, QuotaStatusExceeded},
		{"overshot", 50, 57, 0, 114, QuotaStatusExceeded},
		{"zero allowance", 0, 0, 0, 100, QuotaStatusExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &QuotaPeriod{TotalAllowed: tt.allowed, GenerationsUsed: tt.used}
			assert.Equal(t, tt.wantRemaining, p.Remaining())
			assert.Equal(t, tt.wantPct, p.UsagePercentage())
			assert.Equal(t, tt.wantStatus, p.Status())
		})
	}
}

func TestQuotaPeriodExpiry(t *testing.T) {
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, (&QuotaPeriod{ResetsOn: now}).ExpiredAt(now), "resets_on == now is expired")
	assert.True(t, (&QuotaPeriod{ResetsOn: now.Add(-time.Second)}).ExpiredAt(now))
	assert.False(t, (&QuotaPeriod{ResetsOn: now.Add(time.Second)}).ExpiredAt(now))
}

func TestMonthYearOf(t *testing.T) {
	assert.Equal(t, "2025-09", MonthYearOf(time.Date(2025, 9, 15, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01", MonthYearOf(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}
