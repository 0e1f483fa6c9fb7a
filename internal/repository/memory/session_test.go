package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finadvisor/internal/domain/session"
	"finadvisor/pkg/errors"
)

func newSession(appName, userID, sessionID string) *session.Session {
	now := time.Now()
	return &session.Session{
		ID:        uuid.New(),
		AppName:   appName,
		UserID:    userID,
		SessionID: sessionID,
		State:     map[string]interface{}{},
		UpdatedAt: now,
		CreatedAt: now,
	}
}

func TestSessionRepository_CreateAndGet(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	sess := newSession("finadvisor", "user-1", "sess-1")
	sess.State["ticker"] = "AAPL"

	require.NoError(t, repo.Create(ctx, sess))

	got, err := repo.Get(ctx, "finadvisor", "user-1", "sess-1", nil)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, "AAPL", got.State["ticker"])
	assert.Empty(t, got.Events)
}

func TestSessionRepository_CreateDuplicate(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSession("finadvisor", "user-1", "sess-1")))

	err := repo.Create(ctx, newSession("finadvisor", "user-1", "sess-1"))
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))
}

func TestSessionRepository_GetNotFound(t *testing.T) {
	repo := NewSessionRepository()

	_, err := repo.Get(context.Background(), "finadvisor", "user-1", "missing", nil)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestSessionRepository_GetIsolatesState(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	sess := newSession("finadvisor", "user-1", "sess-1")
	require.NoError(t, repo.Create(ctx, sess))

	first, err := repo.Get(ctx, "finadvisor", "user-1", "sess-1", nil)
	require.NoError(t, err)
	first.State["mutated"] = true

	second, err := repo.Get(ctx, "finadvisor", "user-1", "sess-1", nil)
	require.NoError(t, err)
	assert.NotContains(t, second.State, "mutated")
}

func TestSessionRepository_ListOrdersByUpdatedAt(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	older := newSession("finadvisor", "user-1", "sess-old")
	older.UpdatedAt = time.Now().Add(-time.Hour)
	newer := newSession("finadvisor", "user-1", "sess-new")
	other := newSession("finadvisor", "user-2", "sess-other")

	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, other))

	sessions, err := repo.List(ctx, "finadvisor", "user-1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "sess-new", sessions[0].SessionID)
	assert.Equal(t, "sess-old", sessions[1].SessionID)

	all, err := repo.List(ctx, "finadvisor", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSessionRepository_Delete(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	sess := newSession("finadvisor", "user-1", "sess-1")
	require.NoError(t, repo.Create(ctx, sess))
	require.NoError(t, repo.AppendEvent(ctx, sess.ID, &session.Event{Author: "user", Timestamp: time.Now()}))

	require.NoError(t, repo.Delete(ctx, "finadvisor", "user-1", "sess-1"))

	_, err := repo.Get(ctx, "finadvisor", "user-1", "sess-1", nil)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	events, err := repo.GetEvents(ctx, sess.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, events)

	err = repo.Delete(ctx, "finadvisor", "user-1", "sess-1")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestSessionRepository_UpdateState(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	sess := newSession("finadvisor", "user-1", "sess-1")
	require.NoError(t, repo.Create(ctx, sess))

	require.NoError(t, repo.UpdateState(ctx, "finadvisor", "user-1", "sess-1", map[string]interface{}{
		"data_analyst_result": "done",
	}))

	got, err := repo.Get(ctx, "finadvisor", "user-1", "sess-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "done", got.State["data_analyst_result"])
}

func TestSessionRepository_EventsLimitAndAfter(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	sessionUUID := uuid.New()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		event := &session.Event{
			Author:    "model",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.AppendEvent(ctx, sessionUUID, event))
		assert.NotEqual(t, uuid.Nil, event.ID)
		assert.Equal(t, sessionUUID, event.SessionID)
	}

	events, err := repo.GetEvents(ctx, sessionUUID, &session.GetEventsOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, base.Add(3*time.Minute).Unix(), events[0].Timestamp.Unix())
	assert.Equal(t, base.Add(4*time.Minute).Unix(), events[1].Timestamp.Unix())

	events, err = repo.GetEvents(ctx, sessionUUID, &session.GetEventsOptions{After: base.Add(3 * time.Minute)})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestSessionRepository_AppAndUserState(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	_, err := repo.GetAppState(ctx, "finadvisor")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	require.NoError(t, repo.SetAppState(ctx, "finadvisor", map[string]interface{}{"version": "1.0"}))
	appState, err := repo.GetAppState(ctx, "finadvisor")
	require.NoError(t, err)
	assert.Equal(t, "1.0", appState.State["version"])

	_, err = repo.GetUserState(ctx, "finadvisor", "user-1")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	require.NoError(t, repo.SetUserState(ctx, "finadvisor", "user-1", map[string]interface{}{"locale": "ko"}))
	userState, err := repo.GetUserState(ctx, "finadvisor", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "ko", userState.State["locale"])
}
