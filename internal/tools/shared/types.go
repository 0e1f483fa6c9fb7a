package shared

import "google.golang.org/adk/tool"

// ToolFunc is the function signature for tool execution. Middleware wraps
// functions of this shape before they become ADK tools.
type ToolFunc func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error)
