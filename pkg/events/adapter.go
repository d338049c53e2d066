package events

import (
	"maps"
	"slices"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
)

// watermillLogger routes Watermill's internal logging into the app logger.
// Trace-level records are logged at debug.
type watermillLogger struct{ log logger.Logger }

func (w *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	w.log.Error(msg, append(logArgs(fields), "error", err)...)
}

func (w *watermillLogger) Info(msg string, fields watermill.LogFields) {
	w.log.Info(msg, logArgs(fields)...)
}

func (w *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	w.log.Debug(msg, logArgs(fields)...)
}

func (w *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	w.log.Debug(msg, logArgs(fields)...)
}

func (w *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &watermillLogger{log: w.log.With(logArgs(fields)...)}
}

// logArgs flattens fields into slog key/value pairs in key order.
func logArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		args = append(args, k, fields[k])
	}
	return args
}
