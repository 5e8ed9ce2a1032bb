package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields are attached to every log line emitted with the enriched context.
type LogFields struct {
	WorkspaceID *int64  // Tenant the request or task is scoped to
	UserID      *int64  // Acting user
	LeadID      *int64  // Lead being validated, promoted or messaged
	CampaignID  *int64  // Campaign driving outreach generation
	MessageID   *string // Redis stream message ID
	TaskType    *string // Queue task type, e.g. "generate_messages"
	Component   string  // e.g. "funil.outreach.orchestrator"
}

// WithLogFields merges fields into ctx. Newer non-empty values win.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := mergeFields(GetLogFields(ctx), fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.WorkspaceID != nil {
		result.WorkspaceID = next.WorkspaceID
	}
	if next.UserID != nil {
		result.UserID = next.UserID
	}
	if next.LeadID != nil {
		result.LeadID = next.LeadID
	}
	if next.CampaignID != nil {
		result.CampaignID = next.CampaignID
	}
	if next.MessageID != nil {
		result.MessageID = next.MessageID
	}
	if next.TaskType != nil {
		result.TaskType = next.TaskType
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper for inline LogFields: logger.LogFields{LeadID: logger.Ptr(id)}
func Ptr[T any](v T) *T {
	return &v
}

// Truncate shortens s to maxLen bytes, appending "..." when cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
