// FILE: internal/dto/quota_dto.go
// DTOs for the monthly generation-quota endpoints
package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QuotaStatusResponse is returned by GET /api/quota/current (post-rollover).
type QuotaStatusResponse struct {
	PeriodId        uuid.UUID `json:"period_id"`
	MonthYear       string    `json:"month_year"`
	TotalAllowed    int       `json:"total_allowed"`
	GenerationsUsed int       `json:"generations_used"`
	Remaining       int       `json:"remaining"`
	UsagePercentage int       `json:"usage_percentage"`
	Status          string    `json:"status"` // active | low | exceeded
	ResetsOn        time.Time `json:"resets_on"`
}

// RequestTokensRequest is the body of POST /api/quota/request.
type RequestTokensRequest struct {
	Amount int `json:"amount" validate:"required,min=1"`
}

// TokenGrantResponse reports the outcome of a token request. Remaining and
// the derived fields reflect the period state after the grant (or after the
// denied request was counted).
type TokenGrantResponse struct {
	Granted         bool   `json:"granted"`
	Remaining       int    `json:"remaining"`
	UsagePercentage int    `json:"usage_percentage"`
	Status          string `json:"status"`
}

// QuotaHistoryResponse is one archived period in GET /api/quota/history.
type QuotaHistoryResponse struct {
	MonthYear       string     `json:"month_year"`
	PeriodStart     time.Time  `json:"period_start"`
	PeriodEnd       time.Time  `json:"period_end"`
	TotalAllowed    int        `json:"total_allowed"`
	GenerationsUsed int        `json:"generations_used"`
	TotalRequested  int        `json:"total_requested"`
	WasAutoReset    *time.Time `json:"was_auto_reset,omitempty"`
}

// QuotaExceededError is returned when a token request cannot be granted.
// It carries enough state for the client to render the quota banner.
type QuotaExceededError struct {
	Requested       int
	Remaining       int
	UsagePercentage int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("monthly generation quota exceeded: requested %d, remaining %d", e.Requested, e.Remaining)
}
