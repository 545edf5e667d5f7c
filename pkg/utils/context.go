package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	RoleKey      contextKey = "role"
	TokenKey     contextKey = "token"
	RequestIDKey contextKey = "request_id"
	ClientIPKey  contextKey = "client_ip"
	UserAgentKey contextKey = "user_agent"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return uuid.Nil, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}

func SetUserContext(ctx context.Context, userID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID.String())
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

// RequestMeta carries per-request correlation data captured by the
// request-context middleware, consumed by the audit recorder.
type RequestMeta struct {
	RequestID string
	ClientIP  string
	UserAgent string
}

func SetRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	ctx = context.WithValue(ctx, RequestIDKey, meta.RequestID)
	ctx = context.WithValue(ctx, ClientIPKey, meta.ClientIP)
	ctx = context.WithValue(ctx, UserAgentKey, meta.UserAgent)
	return ctx
}

func GetRequestMeta(ctx context.Context) RequestMeta {
	meta := RequestMeta{}
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		meta.RequestID = v
	}
	if v, ok := ctx.Value(ClientIPKey).(string); ok {
		meta.ClientIP = v
	}
	if v, ok := ctx.Value(UserAgentKey).(string); ok {
		meta.UserAgent = v
	}
	return meta
}
