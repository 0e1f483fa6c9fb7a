// Package state enumerates the shared session state keys and typed helpers
// the agents and tools read and write. Keeping every key here prevents the
// silent drift that comes from scattering raw strings across packages.
package state

// State key prefixes. Prefixed keys are routed to the app or user tier by
// the session service; _temp_ keys live only for the current invocation and
// are never persisted.
const (
	KeyPrefixApp  = "_app_"
	KeyPrefixUser = "_user_"
	KeyPrefixTemp = "_temp_"
)

// Analyst output keys. Each analyst agent writes its final text under its
// own key via the agent's OutputKey; the report assembler reads all four.
const (
	KeySectorAnalystResult    = "sector_analyst_result"
	KeyDataAnalystResult      = "data_analyst_result"
	KeyFinancialAnalystResult = "financial_analyst_result"
	KeyNewsAnalystResult      = "news_analyst_result"
)

// KeyReport holds the fully composed advisory report markdown.
// KeyReportFilename holds the artifact name the report was saved under,
// so callers can locate the file after a run.
const (
	KeyReport         = "report"
	KeyReportFilename = "report_filename"
)

// Invocation-scoped bookkeeping keys used by the callbacks.
const (
	keyTempInvocationStart = KeyPrefixTemp + "invocation_start"
	keyTempToolStart       = KeyPrefixTemp + "tool_start_time"
	keyTempPromptTokens    = KeyPrefixTemp + "prompt_tokens"
	keyTempCompletionToken = KeyPrefixTemp + "completion_tokens"
	keyUserLastActivity    = KeyPrefixUser + "last_activity"
)

// AnalystResultKeys lists the analyst outputs in report section order.
func AnalystResultKeys() []string {
	return []string{
		KeySectorAnalystResult,
		KeyDataAnalystResult,
		KeyFinancialAnalystResult,
		KeyNewsAnalystResult,
	}
}
