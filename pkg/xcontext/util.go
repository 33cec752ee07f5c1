package xcontext

import (
	"context"
	"time"
)

type (
	userIDKey    struct{}
	responseKey  struct{}
	startTimeKey struct{}
)

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(startTimeKey{}).(time.Time); ok {
		return t
	}

	return time.Time{}
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// RequestUserID returns the authenticated user id of the current request, or
// an empty string for anonymous requests.
func RequestUserID(ctx context.Context) string {
	id := ctx.Value(userIDKey{})
	if id == nil {
		return ""
	}

	return id.(string)
}

type responseHolder struct {
	resp any
	err  error
}

// WithResponseHolder prepares a slot into which the router stores the handler
// outcome, readable by After middlewares.
func WithResponseHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, responseKey{}, &responseHolder{})
}

func SetResponse(ctx context.Context, resp any) {
	if h, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		h.resp = resp
	}
}

func GetResponse(ctx context.Context) any {
	if h, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		return h.resp
	}

	return nil
}

func SetError(ctx context.Context, err error) {
	if h, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		h.err = err
	}
}

func GetError(ctx context.Context) error {
	if h, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		return h.err
	}

	return nil
}
