package log

import (
	"fmt"
	"log/slog"
	"os"
)

// defaultLevel is shared by SetupLogger and the slog-backed provider so that
// LoggerProvider.SetLevel takes effect without rebuilding the handler.
var defaultLevel = new(slog.LevelVar)

// SetupLogger installs the process-wide slog handler: JSON lines on stderr
// with source locations, stacktrace extraction for wrapped errors, and the
// given minimum level. Stdout stays free for report output.
func SetupLogger(loglevel string) {
	defaultLevel.Set(ToLogLevel(loglevel))
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     defaultLevel,
	}
	handler := slog.NewJSONHandler(os.Stderr, &ops)
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))
}

// ToLogLevel maps a level name to its slog level. Unknown names panic.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("crossval: unknown log level %q", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr wraps err for slog so ErrFmtHandler recognizes it.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
