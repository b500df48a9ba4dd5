// FILE: internal/entity/plan_draft_entity.go
package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DefaultDraftTTLHours is how long a draft stays live unless the caller
// asks for a different window.
const DefaultDraftTTLHours = 24

// PlanDraft is a transient snapshot of an AI-produced plan awaiting user
// confirmation. Expiry is a read-time predicate: a row past ExpiresAt is
// invisible to reads even while it physically exists.
type PlanDraft struct {
	Id               uuid.UUID
	DraftKey         string
	UserId           uuid.UUID
	PlanData         json.RawMessage
	GoalPreferenceId *uuid.UUID
	MonthYear        string
	CreatedAt        time.Time
	ExpiresAt        time.Time
}

// ExpiredAt treats exact equality as expired: a draft whose ExpiresAt is
// "now" is already gone.
func (d *PlanDraft) ExpiredAt(now time.Time) bool {
	return !now.Before(d.ExpiresAt)
}
