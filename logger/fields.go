package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings.
const (
	// Identity and context
	FieldRunID     = "run_id"
	FieldRecordURI = "record_uri"
	FieldAncestor  = "ancestor_uri"
	FieldRepo      = "repo_id"

	// Components
	FieldComponent = "component"
	FieldSource    = "source"

	// Web archive
	FieldURL        = "url"
	FieldCollection = "collection_id"
	FieldMatch      = "match"
	FieldReplayURL  = "replay_url"
	FieldBegin      = "begin"
	FieldEnd        = "end"

	// Operations
	FieldOperation = "operation"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldQuery     = "query"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount = "count"
	FieldPage  = "page"

	// Status
	FieldStatus  = "status"
	FieldChanged = "changed"
	FieldBody    = "body"
)

type contextKey string

const (
	runIDKey     contextKey = "logger_run_id"
	recordURIKey contextKey = "logger_record_uri"
	componentKey contextKey = "logger_component"
)

// WithRunID adds a run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithRecordURI adds the archival object being processed to the context
func WithRecordURI(ctx context.Context, uri string) context.Context {
	return context.WithValue(ctx, recordURIKey, uri)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if uri, ok := ctx.Value(recordURIKey).(string); ok && uri != "" {
		fields = append(fields, FieldRecordURI, uri)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// FromContext returns base with the fields carried by ctx attached.
func FromContext(ctx context.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	if base == nil {
		base = Logger
	}
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	func NewOrchestrator(...) *Orchestrator {
//	    return &Orchestrator{
//	        logger: logger.ComponentLogger("reconcile"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
