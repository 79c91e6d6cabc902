package events

import "context"

// Context keys populated by the request trace middleware.
const (
	TraceIDContextKey       = "TraceID"
	CorrelationIDContextKey = "CorrelationID"
)

// HeadersFromContext builds event headers from the request trace stored in the
// context, generating fresh ids when the request carries none.
func HeadersFromContext(ctx context.Context) Headers {
	headers := Headers{
		TraceID:       GenerateTraceID(),
		CorrelationID: GenerateCorrelationID(),
	}

	if ctx == nil {
		return headers
	}

	if traceID, ok := ctx.Value(TraceIDContextKey).(string); ok && traceID != "" {
		headers.TraceID = traceID
	}
	if correlationID, ok := ctx.Value(CorrelationIDContextKey).(string); ok && correlationID != "" {
		headers.CorrelationID = correlationID
	}

	return headers
}
