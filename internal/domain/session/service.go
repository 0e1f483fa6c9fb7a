package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"finadvisor/pkg/errors"
	"finadvisor/pkg/logger"
)

// Service provides business logic for session management.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService creates a new session service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		log:  logger.Get().With("component", "session_service"),
	}
}

// CreateSession creates a new session with initial state. App- and
// user-prefixed keys in the initial state are routed to their tiers.
func (s *Service) CreateSession(ctx context.Context, appName, userID, sessionID string, initialState map[string]interface{}) (*Session, error) {
	if appName == "" || userID == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "app_name and user_id are required")
	}

	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	appDelta, userDelta, sessionState := splitStateTiers(initialState)

	if len(appDelta) > 0 {
		if err := s.updateAppState(ctx, appName, appDelta); err != nil {
			return nil, errors.Wrap(err, "failed to update app state")
		}
	}

	if len(userDelta) > 0 {
		if err := s.updateUserState(ctx, appName, userID, userDelta); err != nil {
			return nil, errors.Wrap(err, "failed to update user state")
		}
	}

	session := &Session{
		ID:        uuid.New(),
		AppName:   appName,
		UserID:    userID,
		SessionID: sessionID,
		State:     sessionState,
		Events:    []Event{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	s.log.Infof("Created session: app=%s user=%s session=%s", appName, userID, sessionID)
	return session, nil
}

// GetSession retrieves a session with its events and the app/user state
// merged in under prefixed keys.
func (s *Service) GetSession(ctx context.Context, appName, userID, sessionID string, opts *GetOptions) (*Session, error) {
	if appName == "" || userID == "" || sessionID == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "app_name, user_id, and session_id are required")
	}

	session, err := s.repo.Get(ctx, appName, userID, sessionID, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get session")
	}

	if err := s.mergeStates(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to merge states")
	}

	return session, nil
}

// ListSessions lists all sessions for a user.
func (s *Service) ListSessions(ctx context.Context, appName, userID string) ([]*Session, error) {
	if appName == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "app_name is required")
	}

	sessions, err := s.repo.List(ctx, appName, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sessions")
	}

	for _, session := range sessions {
		if err := s.mergeStates(ctx, session); err != nil {
			s.log.Warnf("Failed to merge states for session %s: %v", session.SessionID, err)
		}
	}

	return sessions, nil
}

// DeleteSession deletes a session.
func (s *Service) DeleteSession(ctx context.Context, appName, userID, sessionID string) error {
	if appName == "" || userID == "" || sessionID == "" {
		return errors.Wrap(errors.ErrInvalidInput, "app_name, user_id, and session_id are required")
	}

	if err := s.repo.Delete(ctx, appName, userID, sessionID); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	s.log.Infof("Deleted session: app=%s user=%s session=%s", appName, userID, sessionID)
	return nil
}

// AppendEvent appends an event to a session, routing its state delta to the
// right tiers first. Partial streaming events are not persisted.
func (s *Service) AppendEvent(ctx context.Context, session *Session, event *Event) error {
	if session == nil || event == nil {
		return errors.Wrap(errors.ErrInvalidInput, "session and event are required")
	}

	if event.Partial {
		return nil
	}

	if len(event.Actions.StateDelta) > 0 {
		appDelta, userDelta, sessionDelta := splitStateTiers(event.Actions.StateDelta)

		if len(appDelta) > 0 {
			if err := s.updateAppState(ctx, session.AppName, appDelta); err != nil {
				return errors.Wrap(err, "failed to update app state")
			}
		}

		if len(userDelta) > 0 {
			if err := s.updateUserState(ctx, session.AppName, session.UserID, userDelta); err != nil {
				return errors.Wrap(err, "failed to update user state")
			}
		}

		if len(sessionDelta) > 0 {
			for k, v := range sessionDelta {
				session.State[k] = v
			}
			// The in-memory state carries merged app/user values under
			// prefixed keys; only session-scope keys are persisted here.
			_, _, sessionState := splitStateTiers(session.State)
			if err := s.repo.UpdateState(ctx, session.AppName, session.UserID, session.SessionID, sessionState); err != nil {
				return errors.Wrap(err, "failed to update session state")
			}
		}
	}

	if err := s.repo.AppendEvent(ctx, session.ID, event); err != nil {
		return errors.Wrap(err, "failed to append event")
	}

	session.Events = append(session.Events, *event)
	session.UpdatedAt = time.Now()

	return nil
}

// splitStateTiers splits a state map into app/user/session level deltas.
// Temp-prefixed keys are dropped.
func splitStateTiers(state map[string]interface{}) (app, user, session map[string]interface{}) {
	app = make(map[string]interface{})
	user = make(map[string]interface{})
	session = make(map[string]interface{})

	for key, value := range state {
		switch {
		case strings.HasPrefix(key, KeyPrefixApp) && len(key) > len(KeyPrefixApp):
			app[strings.TrimPrefix(key, KeyPrefixApp)] = value
		case strings.HasPrefix(key, KeyPrefixUser) && len(key) > len(KeyPrefixUser):
			user[strings.TrimPrefix(key, KeyPrefixUser)] = value
		case strings.HasPrefix(key, KeyPrefixTemp) && len(key) > len(KeyPrefixTemp):
			// Temporary state is never persisted.
			continue
		default:
			session[key] = value
		}
	}

	return app, user, session
}

// mergeStates merges app and user state into session state under their
// prefixed keys.
func (s *Service) mergeStates(ctx context.Context, session *Session) error {
	appState, err := s.repo.GetAppState(ctx, session.AppName)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return errors.Wrap(err, "failed to get app state")
	}

	userState, err := s.repo.GetUserState(ctx, session.AppName, session.UserID)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return errors.Wrap(err, "failed to get user state")
	}

	merged := make(map[string]interface{})
	for k, v := range session.State {
		merged[k] = v
	}

	if appState != nil {
		for k, v := range appState.State {
			merged[KeyPrefixApp+k] = v
		}
	}

	if userState != nil {
		for k, v := range userState.State {
			merged[KeyPrefixUser+k] = v
		}
	}

	session.State = merged
	return nil
}

func (s *Service) updateAppState(ctx context.Context, appName string, delta map[string]interface{}) error {
	appState, err := s.repo.GetAppState(ctx, appName)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return err
	}

	if appState == nil {
		appState = &AppState{
			AppName: appName,
			State:   make(map[string]interface{}),
		}
	}

	for k, v := range delta {
		appState.State[k] = v
	}

	return s.repo.SetAppState(ctx, appName, appState.State)
}

func (s *Service) updateUserState(ctx context.Context, appName, userID string, delta map[string]interface{}) error {
	userState, err := s.repo.GetUserState(ctx, appName, userID)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return err
	}

	if userState == nil {
		userState = &UserState{
			AppName: appName,
			UserID:  userID,
			State:   make(map[string]interface{}),
		}
	}

	for k, v := range delta {
		userState.State[k] = v
	}

	return s.repo.SetUserState(ctx, appName, userID, userState.State)
}
