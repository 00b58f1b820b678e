package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// ============================================
// Tracing Fields (Context level)
// Propagated through the call chain via WithFields(ctx, ...)
// ============================================

const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldSource is the ingest source identifier
	FieldSource = "source"

	// FieldEndpoint is the remote feed endpoint the pager reads from
	FieldEndpoint = "endpoint"
)

// ============================================
// Metric Fields (Entry level)
// ============================================

const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation or HTTP status
	FieldStatus = "status"

	// FieldOffset is the page cursor offset
	FieldOffset = "offset"

	// FieldLimit is the page cursor limit
	FieldLimit = "limit"
)
