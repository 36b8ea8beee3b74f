package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Fields flow through context enrichment, enabling zero-touch logging where business
// context (org_id, thread_id, etc.) is automatically included in all log statements.
type LogFields struct {
	OrgID     *int64  // Organization (tenant) ID
	UserID    *int64  // Acting user ID
	ThreadID  *int64  // Chat thread ID
	FileID    *int64  // Stored file ID
	MessageID *string // Redis stream message ID
	Component string  // Component name (OTel semantic convention style, e.g. "tutorstack.worker.purger")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
// Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.OrgID != nil {
		result.OrgID = next.OrgID
	}
	if next.UserID != nil {
		result.UserID = next.UserID
	}
	if next.ThreadID != nil {
		result.ThreadID = next.ThreadID
	}
	if next.FileID != nil {
		result.FileID = next.FileID
	}
	if next.MessageID != nil {
		result.MessageID = next.MessageID
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{OrgID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}
