// FILE: internal/service/draft_service_test.go
package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Fordjour12/monthly-zen-sub002/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftServiceForTest() (DraftService, *fakeFactory, *recordingPublisher) {
	factory := newFakeFactory()
	events := &recordingPublisher{}
	svc := NewDraftService(factory, events, nopLogger{})
	return svc, factory, events
}

func seedDraft(factory *fakeFactory, userId uuid.UUID, key string, expiresAt time.Time) *entity.PlanDraft {
	draft := &entity.PlanDraft{
		Id:        uuid.New(),
		DraftKey:  key,
		UserId:    userId,
		PlanData:  json.RawMessage(`{"plan_text":"hello"}`),
		MonthYear: "2025-09",
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	factory.uow.drafts.drafts = append(factory.uow.drafts.drafts, draft)
	return draft
}

var draftKeyPattern = regexp.MustCompile(`^draft_[0-9a-f]{6}_\d+_[0-9a-z]{6}$`)

func TestNewDraftKeyFormat(t *testing.T) {
	userId := uuid.New()
	now := time.Now()

	key := newDraftKey(userId, now)

	assert.Regexp(t, draftKeyPattern, key)

	// The embedded suffix is the last 6 chars of the user id, not the
	// whole id.
	idStr := userId.String()
	assert.True(t, strings.HasPrefix(key, "draft_"+idStr[len(idStr)-6:]+"_"))
	assert.NotContains(t, key, idStr[:8])
}

func TestNewDraftKeyUniqueEnough(t *testing.T) {
	userId := uuid.New()
	now := time.Now()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := newDraftKey(userId, now)
		assert.False(t, seen[key], "key collision: %s", key)
		seen[key] = true
	}
}

func TestCreateDraft_DefaultTTL(t *testing.T) {
	svc, factory, events := newDraftServiceForTest()
	userId := uuid.New()

	before := time.Now()
	res, err := svc.CreateDraft(context.Background(), userId, json.RawMessage(`{"goals":[]}`), nil, "2025-09", 0)
	after := time.Now()

	require.NoError(t, err)
	assert.Regexp(t, draftKeyPattern, res.DraftKey)

	wantMin := before.Add(entity.DefaultDraftTTLHours * time.Hour)
	wantMax := after.Add(entity.DefaultDraftTTLHours * time.Hour)
	assert.False(t, res.ExpiresAt.Before(wantMin))
	assert.False(t, res.ExpiresAt.After(wantMax))

	assert.Equal(t, 1, events.drafts)
	require.Len(t, factory.uow.drafts.drafts, 1)
}

func TestGetDraft_ExpiryBoundary(t *testing.T) {
	svc, factory, _ := newDraftServiceForTest()
	userId := uuid.New()

	// Far enough either side of "now" that test scheduling jitter cannot
	// flip the outcome.
	seedDraft(factory, userId, "draft_aaaaaa_1_000001", time.Now().Add(-1*time.Millisecond))
	seedDraft(factory, userId, "draft_aaaaaa_2_000002", time.Now().Add(1*time.Hour))

	expired, err := svc.GetDraft(context.Background(), userId, "draft_aaaaaa_1_000001")
	require.NoError(t, err)
	assert.Nil(t, expired, "expired draft must read as not-found")

	live, err := svc.GetDraft(context.Background(), userId, "draft_aaaaaa_2_000002")
	require.NoError(t, err)
	require.NotNil(t, live)
	assert.Equal(t, "draft_aaaaaa_2_000002", live.DraftKey)
}

func TestDraftExpiryTieBreak(t *testing.T) {
	// Exact equality counts as expired.
	now := time.Now()
	draft := &entity.PlanDraft{ExpiresAt: now}

	assert.True(t, draft.ExpiredAt(now))
	assert.True(t, draft.ExpiredAt(now.Add(time.Nanosecond)))
	assert.False(t, draft.ExpiredAt(now.Add(-time.Nanosecond)))
}

func TestGetDraft_WrongUserIsNotFound(t *testing.T) {
	svc, factory, _ := newDraftServiceForTest()
	owner := uuid.New()
	seedDraft(factory, owner, "draft_aaaaaa_1_000001", time.Now().Add(1*time.Hour))

	res, err := svc.GetDraft(context.Background(), uuid.New(), "draft_aaaaaa_1_000001")

	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestGetLatestDraft(t *testing.T) {
	svc, factory, _ := newDraftServiceForTest()
	userId := uuid.New()

	seedDraft(factory, userId, "draft_aaaaaa_1_000001", time.Now().Add(1*time.Hour))
	seedDraft(factory, userId, "draft_aaaaaa_2_000002", time.Now().Add(2*time.Hour))

	res, err := svc.GetLatestDraft(context.Background(), userId)

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "draft_aaaaaa_2_000002", res.DraftKey)
}

func TestGetLatestDraft_ExpiredLatestHidesOlderLive(t *testing.T) {
	svc, factory, _ := newDraftServiceForTest()
	userId := uuid.New()

	// Latest-by-creation wins even when it is expired; the read does not
	// fall back to an older live draft.
	seedDraft(factory, userId, "draft_aaaaaa_1_000001", time.Now().Add(1*time.Hour))
	seedDraft(factory, userId, "draft_aaaaaa_2_000002", time.Now().Add(-1*time.Hour))

	res, err := svc.GetLatestDraft(context.Background(), userId)

	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestDeleteDraft_Idempotent(t *testing.T) {
	svc, factory, _ := newDraftServiceForTest()
	userId := uuid.New()
	seedDraft(factory, userId, "draft_aaaaaa_1_000001", time.Now().Add(1*time.Hour))

	require.NoError(t, svc.DeleteDraft(context.Background(), userId, "draft_aaaaaa_1_000001"))
	assert.Empty(t, factory.uow.drafts.drafts)

	// Deleting again, or deleting a key that never existed, is fine.
	require.NoError(t, svc.DeleteDraft(context.Background(), userId, "draft_aaaaaa_1_000001"))
	require.NoError(t, svc.DeleteDraft(context.Background(), userId, "draft_zzzzzz_9_999999"))
}

func TestCleanupExpiredDrafts(t *testing.T) {
	svc, factory, _ := newDraftServiceForTest()

	// Mixed owners: the sweep is global.
	seedDraft(factory, uuid.New(), "draft_aaaaaa_1_000001", time.Now().Add(-2*time.Hour))
	seedDraft(factory, uuid.New(), "draft_bbbbbb_2_000002", time.Now().Add(-1*time.Minute))
	survivor := seedDraft(factory, uuid.New(), "draft_cccccc_3_000003", time.Now().Add(1*time.Hour))

	removed, err := svc.CleanupExpiredDrafts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	require.Len(t, factory.uow.drafts.drafts, 1)
	assert.Equal(t, survivor.DraftKey, factory.uow.drafts.drafts[0].DraftKey)

	// Second sweep finds nothing.
	removed, err = svc.CleanupExpiredDrafts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}
