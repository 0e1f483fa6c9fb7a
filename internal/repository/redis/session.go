package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"finadvisor/internal/domain/session"
	"finadvisor/internal/metrics"
	"finadvisor/pkg/errors"
)

// Compile-time check
var _ session.Repository = (*SessionRepository)(nil)

const scanBatchSize = 100

// SessionRepository implements session.Repository using Redis. Sessions and
// their event lists expire together after the configured TTL; app and user
// state are durable.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a Redis session repository. A zero ttl keeps
// sessions forever.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

// storedSession is the persisted shape of a session; events live in their
// own list key so appends stay O(1).
type storedSession struct {
	ID        uuid.UUID              `json:"id"`
	AppName   string                 `json:"app_name"`
	UserID    string                 `json:"user_id"`
	SessionID string                 `json:"session_id"`
	State     map[string]interface{} `json:"state"`
	UpdatedAt time.Time              `json:"updated_at"`
	CreatedAt time.Time              `json:"created_at"`
}

func sessionKey(appName, userID, sessionID string) string {
	return fmt.Sprintf("advisor:session:%s:%s:%s", appName, userID, sessionID)
}

func eventsKey(sessionUUID uuid.UUID) string {
	return fmt.Sprintf("advisor:events:%s", sessionUUID)
}

func appStateKey(appName string) string {
	return fmt.Sprintf("advisor:state:app:%s", appName)
}

func userStateKey(appName, userID string) string {
	return fmt.Sprintf("advisor:state:user:%s:%s", appName, userID)
}

// Create stores a new session.
func (r *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	start := time.Now()
	err := r.writeSession(ctx, sess)
	metrics.RecordDBQuery("redis", "create_session", time.Since(start), err)
	return err
}

// Get retrieves a session with optional event filtering.
func (r *SessionRepository) Get(ctx context.Context, appName, userID, sessionID string, opts *session.GetOptions) (*session.Session, error) {
	if opts == nil {
		opts = &session.GetOptions{}
	}

	start := time.Now()
	sess, err := r.readSession(ctx, appName, userID, sessionID)
	metrics.RecordDBQuery("redis", "get_session", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	events, err := r.GetEvents(ctx, sess.ID, &session.GetEventsOptions{
		Limit: opts.NumRecentEvents,
		After: opts.After,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get events")
	}

	sess.Events = make([]session.Event, len(events))
	for i, e := range events {
		sess.Events[i] = *e
	}

	return sess, nil
}

// List lists all sessions for an app, optionally narrowed to one user.
// Results come back most recently updated first.
func (r *SessionRepository) List(ctx context.Context, appName, userID string) ([]*session.Session, error) {
	pattern := fmt.Sprintf("advisor:session:%s:*", appName)
	if userID != "" {
		pattern = fmt.Sprintf("advisor:session:%s:%s:*", appName, userID)
	}

	start := time.Now()

	var sessions []*session.Session
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			metrics.RecordDBQuery("redis", "list_sessions", time.Since(start), err)
			return nil, errors.Wrapf(err, "failed to scan sessions for app=%s", appName)
		}

		for _, key := range keys {
			data, err := r.client.Get(ctx, key).Result()
			if err == redis.Nil {
				continue // expired between scan and get
			}
			if err != nil {
				metrics.RecordDBQuery("redis", "list_sessions", time.Since(start), err)
				return nil, errors.Wrapf(err, "failed to read session key %s", key)
			}

			sess, err := decodeSession([]byte(data))
			if err != nil {
				return nil, err
			}
			sessions = append(sessions, sess)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	metrics.RecordDBQuery("redis", "list_sessions", time.Since(start), nil)

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})

	return sessions, nil
}

// Delete removes a session and its events.
func (r *SessionRepository) Delete(ctx context.Context, appName, userID, sessionID string) error {
	start := time.Now()

	sess, err := r.readSession(ctx, appName, userID, sessionID)
	if err != nil {
		metrics.RecordDBQuery("redis", "delete_session", time.Since(start), err)
		return err
	}

	err = r.client.Del(ctx, sessionKey(appName, userID, sessionID), eventsKey(sess.ID)).Err()
	metrics.RecordDBQuery("redis", "delete_session", time.Since(start), err)
	if err != nil {
		return errors.Wrapf(err, "failed to delete session %s", sessionID)
	}

	return nil
}

// UpdateState replaces session state and refreshes the TTL.
func (r *SessionRepository) UpdateState(ctx context.Context, appName, userID, sessionID string, state map[string]interface{}) error {
	start := time.Now()

	sess, err := r.readSession(ctx, appName, userID, sessionID)
	if err != nil {
		metrics.RecordDBQuery("redis", "update_session_state", time.Since(start), err)
		return err
	}

	sess.State = state
	sess.UpdatedAt = time.Now()

	err = r.writeSession(ctx, sess)
	metrics.RecordDBQuery("redis", "update_session_state", time.Since(start), err)
	return err
}

// AppendEvent pushes an event onto the session's event list.
func (r *SessionRepository) AppendEvent(ctx context.Context, sessionUUID uuid.UUID, event *session.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.SessionID = sessionUUID

	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event")
	}

	key := eventsKey(sessionUUID)

	start := time.Now()
	err = r.client.RPush(ctx, key, data).Err()
	metrics.RecordDBQuery("redis", "append_event", time.Since(start), err)
	if err != nil {
		return errors.Wrapf(err, "failed to append event to session %s", sessionUUID)
	}

	if r.ttl > 0 {
		if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
			return errors.Wrapf(err, "failed to refresh events ttl for session %s", sessionUUID)
		}
	}

	return nil
}

// GetEvents retrieves events for a session in chronological order. Limit
// keeps the most recent entries.
func (r *SessionRepository) GetEvents(ctx context.Context, sessionUUID uuid.UUID, opts *session.GetEventsOptions) ([]*session.Event, error) {
	if opts == nil {
		opts = &session.GetEventsOptions{}
	}

	start := time.Now()
	raw, err := r.client.LRange(ctx, eventsKey(sessionUUID), 0, -1).Result()
	metrics.RecordDBQuery("redis", "get_events", time.Since(start), err)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read events for session %s", sessionUUID)
	}

	events := make([]*session.Event, 0, len(raw))
	for _, item := range raw {
		var event session.Event
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal event")
		}

		if !opts.After.IsZero() && event.Timestamp.Before(opts.After) {
			continue
		}

		events = append(events, &event)
	}

	if opts.Limit > 0 && len(events) > opts.Limit {
		events = events[len(events)-opts.Limit:]
	}

	return events, nil
}

// GetAppState retrieves application-level state.
func (r *SessionRepository) GetAppState(ctx context.Context, appName string) (*session.AppState, error) {
	data, err := r.client.Get(ctx, appStateKey(appName)).Result()
	if err == redis.Nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "app state not found for %s", appName)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get app state for %s", appName)
	}

	state := map[string]interface{}{}
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal app state")
	}

	return &session.AppState{AppName: appName, State: state}, nil
}

// SetAppState stores application-level state.
func (r *SessionRepository) SetAppState(ctx context.Context, appName string, state map[string]interface{}) error {
	data, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "failed to marshal app state")
	}

	if err := r.client.Set(ctx, appStateKey(appName), data, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to set app state for %s", appName)
	}

	return nil
}

// GetUserState retrieves user-level state.
func (r *SessionRepository) GetUserState(ctx context.Context, appName, userID string) (*session.UserState, error) {
	data, err := r.client.Get(ctx, userStateKey(appName, userID)).Result()
	if err == redis.Nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "user state not found for %s/%s", appName, userID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get user state for %s/%s", appName, userID)
	}

	state := map[string]interface{}{}
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal user state")
	}

	return &session.UserState{AppName: appName, UserID: userID, State: state}, nil
}

// SetUserState stores user-level state.
func (r *SessionRepository) SetUserState(ctx context.Context, appName, userID string, state map[string]interface{}) error {
	data, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "failed to marshal user state")
	}

	if err := r.client.Set(ctx, userStateKey(appName, userID), data, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to set user state for %s/%s", appName, userID)
	}

	return nil
}

func (r *SessionRepository) writeSession(ctx context.Context, sess *session.Session) error {
	stored := storedSession{
		ID:        sess.ID,
		AppName:   sess.AppName,
		UserID:    sess.UserID,
		SessionID: sess.SessionID,
		State:     sess.State,
		UpdatedAt: sess.UpdatedAt,
		CreatedAt: sess.CreatedAt,
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}

	key := sessionKey(sess.AppName, sess.UserID, sess.SessionID)
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to write session %s", sess.SessionID)
	}

	return nil
}

func (r *SessionRepository) readSession(ctx context.Context, appName, userID, sessionID string) (*session.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(appName, userID, sessionID)).Result()
	if err == redis.Nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "session not found: %s", sessionID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read session %s", sessionID)
	}

	return decodeSession([]byte(data))
}

func decodeSession(data []byte) (*session.Session, error) {
	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session")
	}

	return &session.Session{
		ID:        stored.ID,
		AppName:   stored.AppName,
		UserID:    stored.UserID,
		SessionID: stored.SessionID,
		State:     stored.State,
		Events:    []session.Event{},
		UpdatedAt: stored.UpdatedAt,
		CreatedAt: stored.CreatedAt,
	}, nil
}
