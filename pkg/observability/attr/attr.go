// Package attr provides the slog attribute helpers used across the service layer
// so log keys stay consistent between modules.
package attr

import (
	"context"
	"log/slog"
)

type correlationKey struct{}

// CorrelationIDKey is the log key for request correlation ids.
const CorrelationIDKey = "correlation_id"

func String(key, value string) slog.Attr          { return slog.String(key, value) }
func Int(key string, value int) slog.Attr         { return slog.Int(key, value) }
func Bool(key string, value bool) slog.Attr       { return slog.Bool(key, value) }
func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }
func Any(key string, value any) slog.Attr         { return slog.Any(key, value) }

// Error formats err under the "error" key. A nil error is logged as an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// RoundID logs a round identifier.
func RoundID(key, roundID string) slog.Attr {
	return slog.String(key, roundID)
}

// PlayerID logs a player identifier under "player_id".
func PlayerID(playerID string) slog.Attr {
	return slog.String("player_id", playerID)
}

// Hole logs a hole number under "hole".
func Hole(number int) slog.Attr {
	return slog.Int("hole", number)
}

// WithCorrelationID stores a correlation id on the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// ExtractCorrelationID returns the context's correlation id as an attribute.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if ctx != nil {
		if id, ok := ctx.Value(correlationKey{}).(string); ok {
			return slog.String(CorrelationIDKey, id)
		}
	}
	return slog.String(CorrelationIDKey, "")
}
