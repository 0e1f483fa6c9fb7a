package adk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	domainsession "finadvisor/internal/domain/session"
	"finadvisor/internal/repository/memory"
	"finadvisor/pkg/errors"
)

func newTestService() session.Service {
	return NewSessionService(domainsession.NewService(memory.NewSessionRepository()))
}

func TestSessionService_CreateAndGet(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, &session.CreateRequest{
		AppName:   "finadvisor",
		UserID:    "user-1",
		SessionID: "sess-1",
		State: map[string]interface{}{
			"ticker":        "AAPL",
			"_app_version":  "1.0",
			"_user_locale":  "ko",
			"_temp_scratch": "gone",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Session)

	assert.Equal(t, "finadvisor", resp.Session.AppName())
	assert.Equal(t, "user-1", resp.Session.UserID())
	assert.Equal(t, "sess-1", resp.Session.ID())

	got, err := svc.Get(ctx, &session.GetRequest{
		AppName:   "finadvisor",
		UserID:    "user-1",
		SessionID: "sess-1",
	})
	require.NoError(t, err)

	state := got.Session.State()
	ticker, err := state.Get("ticker")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", ticker)

	version, err := state.Get("_app_version")
	require.NoError(t, err)
	assert.Equal(t, "1.0", version)

	locale, err := state.Get("_user_locale")
	require.NoError(t, err)
	assert.Equal(t, "ko", locale)

	_, err = state.Get("_temp_scratch")
	assert.ErrorIs(t, err, session.ErrStateKeyNotExist)
}

func TestSessionService_CreateGeneratesSessionID(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Create(context.Background(), &session.CreateRequest{
		AppName: "finadvisor",
		UserID:  "user-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Session.ID())
}

func TestSessionService_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = svc.Create(ctx, &session.CreateRequest{AppName: "finadvisor"})
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = svc.Get(ctx, &session.GetRequest{AppName: "finadvisor", UserID: "user-1"})
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = svc.List(ctx, &session.ListRequest{})
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	err = svc.Delete(ctx, &session.DeleteRequest{AppName: "finadvisor"})
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	err = svc.AppendEvent(ctx, nil, nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestSessionService_AppendEventPersists(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	createResp, err := svc.Create(ctx, &session.CreateRequest{
		AppName: "finadvisor",
		UserID:  "user-1",
	})
	require.NoError(t, err)

	event := &session.Event{
		ID:        "event-1",
		Author:    "data_analyst",
		Timestamp: time.Now(),
		Actions: session.EventActions{
			StateDelta: map[string]interface{}{
				"data_analyst_result": "analysis complete",
			},
		},
	}
	event.TurnComplete = true

	require.NoError(t, svc.AppendEvent(ctx, createResp.Session, event))

	got, err := svc.Get(ctx, &session.GetRequest{
		AppName:   "finadvisor",
		UserID:    "user-1",
		SessionID: createResp.Session.ID(),
	})
	require.NoError(t, err)

	require.Equal(t, 1, got.Session.Events().Len())
	stored := got.Session.Events().At(0)
	assert.Equal(t, "event-1", stored.ID)
	assert.Equal(t, "data_analyst", stored.Author)
	assert.True(t, stored.TurnComplete)

	result, err := got.Session.State().Get("data_analyst_result")
	require.NoError(t, err)
	assert.Equal(t, "analysis complete", result)
}

func TestSessionService_AppendEventSkipsPartial(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	createResp, err := svc.Create(ctx, &session.CreateRequest{
		AppName: "finadvisor",
		UserID:  "user-1",
	})
	require.NoError(t, err)

	event := &session.Event{ID: "partial-1", Author: "model", Timestamp: time.Now()}
	event.LLMResponse.Partial = true

	require.NoError(t, svc.AppendEvent(ctx, createResp.Session, event))

	got, err := svc.Get(ctx, &session.GetRequest{
		AppName:   "finadvisor",
		UserID:    "user-1",
		SessionID: createResp.Session.ID(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Session.Events().Len())
}

func TestSessionService_ListAndDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, id := range []string{"sess-1", "sess-2"} {
		_, err := svc.Create(ctx, &session.CreateRequest{
			AppName:   "finadvisor",
			UserID:    "user-1",
			SessionID: id,
		})
		require.NoError(t, err)
	}

	listResp, err := svc.List(ctx, &session.ListRequest{AppName: "finadvisor", UserID: "user-1"})
	require.NoError(t, err)
	assert.Len(t, listResp.Sessions, 2)

	require.NoError(t, svc.Delete(ctx, &session.DeleteRequest{
		AppName:   "finadvisor",
		UserID:    "user-1",
		SessionID: "sess-1",
	}))

	_, err = svc.Get(ctx, &session.GetRequest{
		AppName:   "finadvisor",
		UserID:    "user-1",
		SessionID: "sess-1",
	})
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestEventConversionRoundTrip(t *testing.T) {
	original := &session.Event{
		ID:        "event-42",
		Author:    "news_analyst",
		Timestamp: time.Now().Truncate(time.Second),
		Branch:    "main",
		Actions: session.EventActions{
			TransferToAgent: "financial_advisor",
			StateDelta:      map[string]interface{}{"news_analyst_result": "headline digest"},
		},
	}
	original.LLMResponse.Content = &genai.Content{
		Role:  "model",
		Parts: []*genai.Part{{Text: "analysis text"}},
	}
	original.LLMResponse.UsageMetadata = &genai.GenerateContentResponseUsageMetadata{
		PromptTokenCount:     120,
		CandidatesTokenCount: 45,
		TotalTokenCount:      165,
	}
	original.TurnComplete = true

	domainEvent, err := toDomainEvent(original)
	require.NoError(t, err)
	assert.Equal(t, "event-42", domainEvent.EventID)
	assert.Equal(t, "news_analyst", domainEvent.Author)
	assert.True(t, domainEvent.TurnComplete)
	require.NotNil(t, domainEvent.UsageMetadata)
	assert.Equal(t, int32(120), domainEvent.UsageMetadata.PromptTokenCount)

	restored := toADKEvent(domainEvent)
	assert.Equal(t, original.ID, restored.ID)
	assert.Equal(t, original.Author, restored.Author)
	assert.Equal(t, "financial_advisor", restored.Actions.TransferToAgent)
	assert.True(t, restored.TurnComplete)
	require.NotNil(t, restored.LLMResponse.Content)
	require.Len(t, restored.LLMResponse.Content.Parts, 1)
	assert.Equal(t, "analysis text", restored.LLMResponse.Content.Parts[0].Text)
	require.NotNil(t, restored.LLMResponse.UsageMetadata)
	assert.Equal(t, int32(165), restored.LLMResponse.UsageMetadata.TotalTokenCount)
}
