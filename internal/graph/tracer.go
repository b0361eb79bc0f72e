package graph

import (
	"context"
	"log/slog"
	"time"

	"github.com/graph-gophers/graphql-go/errors"
	"github.com/graph-gophers/graphql-go/introspection"
	"github.com/graph-gophers/graphql-go/trace/tracer"
)

// slogTracer logs the start, end and failure of each operation and of every
// field served by a resolver method. Plain struct fields are not logged.
type slogTracer struct {
	logger *slog.Logger
}

func (t slogTracer) TraceQuery(ctx context.Context, _ string, operationName string, _ map[string]interface{}, _ map[string]*introspection.Type) (context.Context, tracer.QueryFinishFunc) {
	start := time.Now()
	t.logger.DebugContext(ctx, "graphql operation start", "operation", operationName)

	return ctx, func(errs []*errors.QueryError) {
		attrs := []any{"operation", operationName, "duration", time.Since(start)}
		if len(errs) > 0 {
			t.logger.WarnContext(ctx, "graphql operation failed", append(attrs, "errors", len(errs), "first_error", errs[0].Message)...)
			return
		}
		t.logger.DebugContext(ctx, "graphql operation end", attrs...)
	}
}

func (t slogTracer) TraceField(ctx context.Context, _ string, typeName, fieldName string, trivial bool, _ map[string]interface{}) (context.Context, tracer.FieldFinishFunc) {
	if trivial {
		return ctx, func(*errors.QueryError) {}
	}

	start := time.Now()
	t.logger.DebugContext(ctx, "resolver start", "type", typeName, "field", fieldName)

	return ctx, func(err *errors.QueryError) {
		attrs := []any{"type", typeName, "field", fieldName, "duration", time.Since(start)}
		if err != nil {
			code, _ := err.Extensions["code"].(string)
			t.logger.WarnContext(ctx, "resolver error", append(attrs, "code", code, "error", err.Message)...)
			return
		}
		t.logger.DebugContext(ctx, "resolver end", attrs...)
	}
}
