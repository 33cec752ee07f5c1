package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dagym-lab/backend/pkg/errorx"
	"github.com/dagym-lab/backend/pkg/router"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

// WithAuth resolves the access token into a request user id. Requests without
// a valid token pass through anonymously.
func WithAuth() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := getAccessToken(ctx)
		if token == "" {
			return nil, nil
		}

		info, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			return nil, nil
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

// MustAuth rejects requests that did not resolve to an authenticated user.
func MustAuth() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return nil, nil
	}
}

func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)

	authorization := req.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found {
		if auth == "Bearer" {
			return token
		}
		return ""
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		if err != http.ErrNoCookie {
			xcontext.Logger(ctx).Debugf("Cannot read the token cookie: %v", err)
		}
		return ""
	}

	return cookie.Value
}
