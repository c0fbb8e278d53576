package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// ErrFmtHandler is a slog handler that lifts the stacktrace carried by a
// cockroachdb/errors error into its own attribute. Errors passed through
// ErrAttr keep their message under "error" and gain a "stacktrace" field,
// so a failed fold evaluation can be traced back to the backend call.
type ErrFmtHandler struct {
	handler slog.Handler
}

// WrapByErrFmtHandler wraps a slog handler with error formatting. The
// returned handler emits records unchanged unless they carry an ErrAttr.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{handler: handler}
}

func (eh *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return eh.handler.Enabled(ctx, l)
}

func (eh *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var logErr error
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == ErrAttrKey {
			if err, ok := attr.Value.Any().(error); ok {
				logErr = err
			}
			return false
		}
		return true
	})
	if logErr == nil {
		return eh.handler.Handle(ctx, r)
	}

	// Rebuild the record: the error attribute becomes its message text,
	// and the stack (when the error carries one) gets its own attribute.
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == ErrAttrKey {
			attr = slog.String(ErrAttrKey, logErr.Error())
		}
		out.AddAttrs(attr)
		return true
	})
	if st := extractStacktrace(logErr); st != "" {
		out.AddAttrs(slog.String(StacktraceAttrKey, st))
	}
	return eh.handler.Handle(ctx, out)
}

func (eh *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithAttrs(attrs)}
}

func (eh *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithGroup(g)}
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
