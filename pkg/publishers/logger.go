package publishers

import "github.com/samvad-hq/todo-client/internal/logger"

// Logger is the structured logger sinks report delivery results through.
type Logger = logger.Logger

type noopLogger = logger.NopLogger

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}
