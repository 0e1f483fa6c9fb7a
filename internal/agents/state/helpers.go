package state

import (
	"time"

	"google.golang.org/adk/session"
)

// ========================================
// Analyst outputs
// ========================================

// AnalystResult reads one analyst output. Missing or non-string values
// come back as the empty string so report assembly never fails on a
// partially completed run.
func AnalystResult(state session.ReadonlyState, key string) string {
	val, err := state.Get(key)
	if err != nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

// SetReport stores the composed advisory report markdown.
func SetReport(state session.State, doc string) error {
	return state.Set(KeyReport, doc)
}

// Report returns the composed advisory report, if one has been produced.
func Report(state session.ReadonlyState) (string, bool) {
	val, err := state.Get(KeyReport)
	if err != nil {
		return "", false
	}
	doc, ok := val.(string)
	return doc, ok && doc != ""
}

// SetReportFilename stores the artifact name the report was saved under.
func SetReportFilename(state session.State, name string) error {
	return state.Set(KeyReportFilename, name)
}

// ReportFilename returns the saved report's artifact name, if any.
func ReportFilename(state session.ReadonlyState) (string, bool) {
	val, err := state.Get(KeyReportFilename)
	if err != nil {
		return "", false
	}
	name, ok := val.(string)
	return name, ok && name != ""
}

// ========================================
// Invocation bookkeeping (temp tier)
// ========================================

// SetInvocationStart marks when the current agent invocation began.
func SetInvocationStart(state session.State, t time.Time) error {
	return state.Set(keyTempInvocationStart, t)
}

// InvocationStart returns the invocation start time recorded by the
// before-agent callback.
func InvocationStart(state session.ReadonlyState) (time.Time, bool) {
	return tempTime(state, keyTempInvocationStart)
}

// SetToolStart marks when the current tool call began.
func SetToolStart(state session.State, t time.Time) error {
	return state.Set(keyTempToolStart, t)
}

// ToolStart returns the start time of the in-flight tool call.
func ToolStart(state session.ReadonlyState) (time.Time, bool) {
	return tempTime(state, keyTempToolStart)
}

// SetPromptTokens records the prompt token count of the last model call.
func SetPromptTokens(state session.State, tokens int) error {
	return state.Set(keyTempPromptTokens, tokens)
}

// SetCompletionTokens records the completion token count of the last
// model call.
func SetCompletionTokens(state session.State, tokens int) error {
	return state.Set(keyTempCompletionToken, tokens)
}

func tempTime(state session.ReadonlyState, key string) (time.Time, bool) {
	val, err := state.Get(key)
	if err != nil {
		return time.Time{}, false
	}
	t, ok := val.(time.Time)
	return t, ok
}

// ========================================
// User tier
// ========================================

// SetUserLastActivity stamps the user's most recent advisory activity.
func SetUserLastActivity(state session.State, t time.Time) error {
	return state.Set(keyUserLastActivity, t.UTC().Format(time.RFC3339))
}
