package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/metadata"
)

// TraceIDHeader carries the request correlation ID over HTTP.
const TraceIDHeader = "X-Request-ID"

// traceIDMetadataKey carries the correlation ID over gRPC.
const traceIDMetadataKey = "x-request-id"

// maxTraceIDLen bounds caller-supplied IDs before they reach the logs.
const maxTraceIDLen = 128

// Log field names shared by both transports.
const (
	fieldTraceID    = "trace_id"
	fieldOperation  = "operation"
	fieldDurationMs = "duration_ms"
)

type traceIDKey struct{}

// ContextWithTraceID returns a copy of ctx carrying id.
func ContextWithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// TraceIDFromContext returns the trace ID stored in ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// sanitizeTraceID accepts a caller-supplied ID only when it is short and
// printable; otherwise a fresh UUID is generated.
func sanitizeTraceID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > maxTraceIDLen {
		return uuid.New().String()
	}
	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return uuid.New().String()
		}
	}
	return id
}

// grpcTraceID extracts the trace ID from incoming gRPC metadata, falling
// back to a new UUID.
func grpcTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(traceIDMetadataKey); len(values) > 0 {
			return sanitizeTraceID(values[0])
		}
	}
	return uuid.New().String()
}

// traceIDHandler assigns every request a trace ID, echoes it in the
// response and attaches it to the request logger.
func traceIDHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := sanitizeTraceID(r.Header.Get(TraceIDHeader))
		w.Header().Set(TraceIDHeader, id)

		ctx := ContextWithTraceID(r.Context(), id)
		zerolog.Ctx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str(fieldTraceID, id)
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
