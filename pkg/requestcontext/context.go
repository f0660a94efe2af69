// Package requestcontext provides HTTP-independent accessors for request-scoped values.
//
// Middleware sets these values; services read them without importing net/http.
//
//	actor, ok := requestcontext.Actor(ctx)
//	now := requestcontext.Now(ctx)
//
// Tests inject values directly:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

type (
	actorKey       struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Role distinguishes the two kinds of callers the API serves.
type Role string

const (
	RolePrisoner Role = "prisoner"
	RoleLawyer   Role = "lawyer"
	RoleAdmin    Role = "admin"
)

// Caller is the authenticated principal, taken from a verified bearer token.
type Caller struct {
	Subject string
	Role    Role
}

// Actor returns the authenticated caller. ok is false when auth is disabled
// or the request carried no token.
func Actor(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(actorKey{}).(Caller)
	return c, ok
}

func WithActor(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, actorKey{}, c)
}

func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now returns the request-scoped time, falling back to time.Now for
// contexts that never passed through the HTTP middleware (CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
