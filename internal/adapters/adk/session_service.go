package adk

import (
	"context"
	"encoding/json"
	"iter"
	"time"

	"google.golang.org/adk/session"
	"google.golang.org/genai"

	domainsession "finadvisor/internal/domain/session"
	"finadvisor/pkg/errors"
	"finadvisor/pkg/logger"
)

// SessionService exposes the domain session service through ADK's
// session.Service interface so the runner can persist advisory turns.
type SessionService struct {
	domain *domainsession.Service
	log    *logger.Logger
}

// NewSessionService creates the ADK session adapter.
func NewSessionService(domain *domainsession.Service) session.Service {
	return &SessionService{
		domain: domain,
		log:    logger.Get().With("component", "adk_session_adapter"),
	}
}

// Create creates a new session.
func (s *SessionService) Create(ctx context.Context, req *session.CreateRequest) (*session.CreateResponse, error) {
	if req == nil || req.AppName == "" || req.UserID == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "app_name and user_id are required")
	}

	domainSess, err := s.domain.CreateSession(ctx, req.AppName, req.UserID, req.SessionID, req.State)
	if err != nil {
		return nil, err
	}

	return &session.CreateResponse{Session: wrapSession(domainSess)}, nil
}

// Get retrieves a session.
func (s *SessionService) Get(ctx context.Context, req *session.GetRequest) (*session.GetResponse, error) {
	if req == nil || req.AppName == "" || req.UserID == "" || req.SessionID == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "app_name, user_id, and session_id are required")
	}

	domainSess, err := s.domain.GetSession(ctx, req.AppName, req.UserID, req.SessionID, &domainsession.GetOptions{
		NumRecentEvents: req.NumRecentEvents,
		After:           req.After,
	})
	if err != nil {
		return nil, err
	}

	return &session.GetResponse{Session: wrapSession(domainSess)}, nil
}

// List lists sessions for an app, optionally narrowed to one user.
func (s *SessionService) List(ctx context.Context, req *session.ListRequest) (*session.ListResponse, error) {
	if req == nil || req.AppName == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "app_name is required")
	}

	domainSessions, err := s.domain.ListSessions(ctx, req.AppName, req.UserID)
	if err != nil {
		return nil, err
	}

	sessions := make([]session.Session, len(domainSessions))
	for i, domainSess := range domainSessions {
		sessions[i] = wrapSession(domainSess)
	}

	return &session.ListResponse{Sessions: sessions}, nil
}

// Delete deletes a session.
func (s *SessionService) Delete(ctx context.Context, req *session.DeleteRequest) error {
	if req == nil || req.AppName == "" || req.UserID == "" || req.SessionID == "" {
		return errors.Wrap(errors.ErrInvalidInput, "app_name, user_id, and session_id are required")
	}

	return s.domain.DeleteSession(ctx, req.AppName, req.UserID, req.SessionID)
}

// AppendEvent appends an event to a session. Sessions handed out by this
// adapter carry their domain counterpart, so the append hits the store
// directly; foreign sessions are re-fetched first.
func (s *SessionService) AppendEvent(ctx context.Context, sess session.Session, event *session.Event) error {
	if sess == nil || event == nil {
		return errors.Wrap(errors.ErrInvalidInput, "session and event are required")
	}

	domainSess, err := s.resolveSession(ctx, sess)
	if err != nil {
		return errors.Wrap(err, "failed to resolve session")
	}

	domainEvent, err := toDomainEvent(event)
	if err != nil {
		return errors.Wrap(err, "failed to convert event")
	}

	return s.domain.AppendEvent(ctx, domainSess, domainEvent)
}

func (s *SessionService) resolveSession(ctx context.Context, sess session.Session) (*domainsession.Session, error) {
	if wrapped, ok := sess.(*adkSession); ok && wrapped.domain != nil {
		return wrapped.domain, nil
	}

	s.log.Warnf("Appending to a session not issued by this adapter: %s", sess.ID())
	return s.domain.GetSession(ctx, sess.AppName(), sess.UserID(), sess.ID(), nil)
}

// toDomainEvent converts an ADK event for storage. Content is flattened to a
// JSON map so the store does not depend on genai types.
func toDomainEvent(adkEvent *session.Event) (*domainsession.Event, error) {
	if adkEvent == nil {
		return nil, errors.ErrInvalidInput
	}

	contentMap := make(map[string]interface{})
	if adkEvent.LLMResponse.Content != nil {
		contentBytes, err := json.Marshal(adkEvent.LLMResponse.Content)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal content")
		}
		if err := json.Unmarshal(contentBytes, &contentMap); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal content")
		}
	}

	var usage *domainsession.UsageMetadata
	if adkEvent.UsageMetadata != nil {
		usage = &domainsession.UsageMetadata{
			PromptTokenCount:     adkEvent.UsageMetadata.PromptTokenCount,
			CandidatesTokenCount: adkEvent.UsageMetadata.CandidatesTokenCount,
			TotalTokenCount:      adkEvent.UsageMetadata.TotalTokenCount,
		}
	}

	return &domainsession.Event{
		EventID:      adkEvent.ID,
		Author:       adkEvent.Author,
		Content:      contentMap,
		Timestamp:    adkEvent.Timestamp,
		Branch:       adkEvent.Branch,
		Partial:      adkEvent.LLMResponse.Partial,
		TurnComplete: adkEvent.TurnComplete,
		Actions: domainsession.EventActions{
			TransferToAgent:   adkEvent.Actions.TransferToAgent,
			Escalate:          adkEvent.Actions.Escalate,
			SkipSummarization: adkEvent.Actions.SkipSummarization,
			StateDelta:        adkEvent.Actions.StateDelta,
		},
		UsageMetadata: usage,
	}, nil
}

// toADKEvent converts a stored event back to the runner's shape.
func toADKEvent(domainEvent *domainsession.Event) *session.Event {
	var content *genai.Content
	if len(domainEvent.Content) > 0 {
		contentBytes, _ := json.Marshal(domainEvent.Content)
		content = &genai.Content{}
		_ = json.Unmarshal(contentBytes, content)
	}

	var usage *genai.GenerateContentResponseUsageMetadata
	if domainEvent.UsageMetadata != nil {
		usage = &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     domainEvent.UsageMetadata.PromptTokenCount,
			CandidatesTokenCount: domainEvent.UsageMetadata.CandidatesTokenCount,
			TotalTokenCount:      domainEvent.UsageMetadata.TotalTokenCount,
		}
	}

	event := &session.Event{
		ID:        domainEvent.EventID,
		Author:    domainEvent.Author,
		Timestamp: domainEvent.Timestamp,
		Branch:    domainEvent.Branch,
		Actions: session.EventActions{
			TransferToAgent:   domainEvent.Actions.TransferToAgent,
			Escalate:          domainEvent.Actions.Escalate,
			SkipSummarization: domainEvent.Actions.SkipSummarization,
			StateDelta:        domainEvent.Actions.StateDelta,
		},
	}
	event.LLMResponse.Content = content
	event.LLMResponse.Partial = domainEvent.Partial
	event.LLMResponse.UsageMetadata = usage
	event.TurnComplete = domainEvent.TurnComplete

	return event
}

// adkSession adapts a domain session to session.Session. It keeps the domain
// pointer so state writes and appended events stay on the instance the
// service tracks.
type adkSession struct {
	domain *domainsession.Session
}

func wrapSession(domainSess *domainsession.Session) session.Session {
	return &adkSession{domain: domainSess}
}

func (s *adkSession) AppName() string {
	return s.domain.AppName
}

func (s *adkSession) UserID() string {
	return s.domain.UserID
}

func (s *adkSession) ID() string {
	return s.domain.SessionID
}

func (s *adkSession) State() session.State {
	return &adkState{state: s.domain.State}
}

func (s *adkSession) Events() session.Events {
	events := make([]*session.Event, len(s.domain.Events))
	for i := range s.domain.Events {
		events[i] = toADKEvent(&s.domain.Events[i])
	}
	return &adkEvents{events: events}
}

func (s *adkSession) LastUpdateTime() time.Time {
	return s.domain.UpdatedAt
}

// adkState implements session.State over the session's state map.
type adkState struct {
	state map[string]interface{}
}

func (s *adkState) Get(key string) (interface{}, error) {
	if val, ok := s.state[key]; ok {
		return val, nil
	}
	return nil, session.ErrStateKeyNotExist
}

func (s *adkState) Set(key string, val interface{}) error {
	s.state[key] = val
	return nil
}

func (s *adkState) All() iter.Seq2[string, interface{}] {
	return func(yield func(string, interface{}) bool) {
		for key, val := range s.state {
			if !yield(key, val) {
				return
			}
		}
	}
}

// adkEvents implements session.Events.
type adkEvents struct {
	events []*session.Event
}

func (e *adkEvents) Len() int {
	return len(e.events)
}

func (e *adkEvents) At(i int) *session.Event {
	if i < 0 || i >= len(e.events) {
		return nil
	}
	return e.events[i]
}

func (e *adkEvents) All() iter.Seq[*session.Event] {
	return func(yield func(*session.Event) bool) {
		for _, event := range e.events {
			if !yield(event) {
				return
			}
		}
	}
}
