package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// pgxLogger routes pgx tracelog output into zerolog under component=pgx.
type pgxLogger struct {
	log zerolog.Logger
}

func newPgxLogger(logger zerolog.Logger) *pgxLogger {
	return &pgxLogger{log: logger.With().Str("component", "pgx").Logger()}
}

func (l *pgxLogger) event(level tracelog.LogLevel) *zerolog.Event {
	switch level {
	case tracelog.LogLevelTrace:
		return l.log.Trace()
	case tracelog.LogLevelDebug:
		return l.log.Debug()
	case tracelog.LogLevelInfo:
		return l.log.Info()
	case tracelog.LogLevelWarn:
		return l.log.Warn()
	case tracelog.LogLevelError:
		return l.log.Error()
	default:
		return l.log.Info().Str("pgx_level", level.String())
	}
}

// Log implements tracelog.Logger. Statement text, duration and the error are
// lifted into typed fields; query arguments are only logged at trace level
// since they may carry account data.
func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	if level == tracelog.LogLevelNone {
		return
	}
	ev := l.event(level)
	if !ev.Enabled() {
		return
	}
	for k, v := range data {
		switch val := v.(type) {
		case string:
			ev = ev.Str(k, val)
		case time.Duration:
			ev = ev.Dur(k, val)
		case error:
			ev = ev.AnErr(k, val)
		default:
			if k == "args" && level != tracelog.LogLevelTrace {
				continue
			}
			ev = ev.Interface(k, val)
		}
	}
	ev.Msg(msg)
}
