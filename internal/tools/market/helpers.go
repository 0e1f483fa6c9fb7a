package market

// errorResult is the common failure shape: the agent reads the Korean error
// text, never a Go error.
func errorResult(ticker, message string) map[string]interface{} {
	return map[string]interface{}{
		"ticker":  ticker,
		"success": false,
		"error":   message,
	}
}

// orNA substitutes the advisory "not available" marker for blank fields.
func orNA(value string) string {
	if value == "" {
		return "NA"
	}
	return value
}

// floatOrNA unwraps an optional metric, substituting "NA" when absent.
func floatOrNA(value *float64) interface{} {
	if value == nil {
		return "NA"
	}
	return *value
}
