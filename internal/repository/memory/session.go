package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"finadvisor/internal/domain/session"
	"finadvisor/pkg/errors"
)

// Compile-time check
var _ session.Repository = (*SessionRepository)(nil)

// SessionRepository is an in-memory session store. It backs the CLI when no
// Redis instance is configured; everything is lost on process exit.
type SessionRepository struct {
	mu         sync.RWMutex
	sessions   map[string]*session.Session
	events     map[uuid.UUID][]*session.Event
	appStates  map[string]map[string]interface{}
	userStates map[string]map[string]interface{}
}

// NewSessionRepository creates an empty in-memory session repository.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions:   make(map[string]*session.Session),
		events:     make(map[uuid.UUID][]*session.Event),
		appStates:  make(map[string]map[string]interface{}),
		userStates: make(map[string]map[string]interface{}),
	}
}

func sessionKey(appName, userID, sessionID string) string {
	return fmt.Sprintf("%s|%s|%s", appName, userID, sessionID)
}

func userKey(appName, userID string) string {
	return fmt.Sprintf("%s|%s", appName, userID)
}

func cloneState(state map[string]interface{}) map[string]interface{} {
	cloned := make(map[string]interface{}, len(state))
	for k, v := range state {
		cloned[k] = v
	}
	return cloned
}

// Create stores a new session.
func (r *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKey(sess.AppName, sess.UserID, sess.SessionID)
	if _, exists := r.sessions[key]; exists {
		return errors.Wrapf(errors.ErrAlreadyExists, "session already exists: %s", sess.SessionID)
	}

	stored := *sess
	stored.State = cloneState(sess.State)
	stored.Events = nil
	r.sessions[key] = &stored

	return nil
}

// Get retrieves a session with optional event filtering.
func (r *SessionRepository) Get(ctx context.Context, appName, userID, sessionID string, opts *session.GetOptions) (*session.Session, error) {
	if opts == nil {
		opts = &session.GetOptions{}
	}

	r.mu.RLock()
	stored, exists := r.sessions[sessionKey(appName, userID, sessionID)]
	if !exists {
		r.mu.RUnlock()
		return nil, errors.Wrapf(errors.ErrNotFound, "session not found: %s", sessionID)
	}

	result := *stored
	result.State = cloneState(stored.State)
	sessionUUID := stored.ID
	r.mu.RUnlock()

	events, err := r.GetEvents(ctx, sessionUUID, &session.GetEventsOptions{
		Limit: opts.NumRecentEvents,
		After: opts.After,
	})
	if err != nil {
		return nil, err
	}

	result.Events = make([]session.Event, len(events))
	for i, e := range events {
		result.Events[i] = *e
	}

	return &result, nil
}

// List lists sessions for an app, optionally narrowed to one user. Results
// come back most recently updated first.
func (r *SessionRepository) List(ctx context.Context, appName, userID string) ([]*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []*session.Session
	for _, stored := range r.sessions {
		if stored.AppName != appName {
			continue
		}
		if userID != "" && stored.UserID != userID {
			continue
		}

		result := *stored
		result.State = cloneState(stored.State)
		result.Events = []session.Event{}
		sessions = append(sessions, &result)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})

	return sessions, nil
}

// Delete removes a session and its events.
func (r *SessionRepository) Delete(ctx context.Context, appName, userID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKey(appName, userID, sessionID)
	stored, exists := r.sessions[key]
	if !exists {
		return errors.Wrapf(errors.ErrNotFound, "session not found: %s", sessionID)
	}

	delete(r.events, stored.ID)
	delete(r.sessions, key)

	return nil
}

// UpdateState replaces session state.
func (r *SessionRepository) UpdateState(ctx context.Context, appName, userID, sessionID string, state map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.sessions[sessionKey(appName, userID, sessionID)]
	if !exists {
		return errors.Wrapf(errors.ErrNotFound, "session not found: %s", sessionID)
	}

	stored.State = cloneState(state)
	stored.UpdatedAt = time.Now()

	return nil
}

// AppendEvent appends an event to the session's event log.
func (r *SessionRepository) AppendEvent(ctx context.Context, sessionUUID uuid.UUID, event *session.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.SessionID = sessionUUID

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *event
	r.events[sessionUUID] = append(r.events[sessionUUID], &stored)

	return nil
}

// GetEvents retrieves events in chronological order. Limit keeps the most
// recent entries.
func (r *SessionRepository) GetEvents(ctx context.Context, sessionUUID uuid.UUID, opts *session.GetEventsOptions) ([]*session.Event, error) {
	if opts == nil {
		opts = &session.GetEventsOptions{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.events[sessionUUID]
	events := make([]*session.Event, 0, len(all))
	for _, stored := range all {
		if !opts.After.IsZero() && stored.Timestamp.Before(opts.After) {
			continue
		}
		event := *stored
		events = append(events, &event)
	}

	if opts.Limit > 0 && len(events) > opts.Limit {
		events = events[len(events)-opts.Limit:]
	}

	return events, nil
}

// GetAppState retrieves application-level state.
func (r *SessionRepository) GetAppState(ctx context.Context, appName string) (*session.AppState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, exists := r.appStates[appName]
	if !exists {
		return nil, errors.Wrapf(errors.ErrNotFound, "app state not found for %s", appName)
	}

	return &session.AppState{AppName: appName, State: cloneState(state)}, nil
}

// SetAppState stores application-level state.
func (r *SessionRepository) SetAppState(ctx context.Context, appName string, state map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.appStates[appName] = cloneState(state)
	return nil
}

// GetUserState retrieves user-level state.
func (r *SessionRepository) GetUserState(ctx context.Context, appName, userID string) (*session.UserState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, exists := r.userStates[userKey(appName, userID)]
	if !exists {
		return nil, errors.Wrapf(errors.ErrNotFound, "user state not found for %s/%s", appName, userID)
	}

	return &session.UserState{AppName: appName, UserID: userID, State: cloneState(state)}, nil
}

// SetUserState stores user-level state.
func (r *SessionRepository) SetUserState(ctx context.Context, appName, userID string, state map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.userStates[userKey(appName, userID)] = cloneState(state)
	return nil
}
