// Package reqctx carries request-scoped values through context.Context.
//
// HTTP middleware stores the request metadata, the anonymous visitor id and
// the active trace; services and the logger read them back without importing
// fiber.
//
// # Usage
//
//	ctx = reqctx.WithRequestMeta(ctx, &reqctx.RequestMeta{
//	    RequestID:   "abc-123",
//	    ClientIP:    "192.168.1.1",
//	    RequestedAt: time.Now(),
//	})
//	ctx = reqctx.WithVisitorID(ctx, vid)
//
//	rid := reqctx.RequestIDFromContext(ctx)
//	vid, ok := reqctx.VisitorIDFromContext(ctx)
//
// # Contracts
//
//   - RequestMeta is set by HTTP middleware for every request
//   - VisitorID is set on the lookup and reschedule screens
//   - TraceInfo is set only when tracing is enabled
package reqctx
