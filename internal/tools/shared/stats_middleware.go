package shared

import (
	"time"

	"google.golang.org/adk/tool"

	"finadvisor/internal/metrics"
	"finadvisor/pkg/logger"
)

// wrapWithStats records execution counts and latency for a tool.
func wrapWithStats(name string, log *logger.Logger, fn ToolFunc) ToolFunc {
	if log == nil {
		log = logger.Get()
	}

	return func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		start := time.Now()
		result, err := fn(ctx, args)
		latency := time.Since(start)

		metrics.RecordToolExecution(name, latency, err)

		if err != nil {
			log.Warnf("Tool %s failed after %s: %v", name, latency, err)
		} else {
			log.Debugf("Tool %s completed in %s", name, latency)
		}

		return result, err
	}
}
