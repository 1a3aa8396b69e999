package bearer

import (
	"context"
	"net/http"
	"strings"
)

type contextKey struct{}

// ContextWithToken сохраняет bearer-токен пользователя в контексте запроса
func ContextWithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, token)
}

// TokenFromContext возвращает токен, сохранённый через ContextWithToken
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(contextKey{}).(string)
	return token, ok && token != ""
}

// FromHeader извлекает токен из заголовка Authorization ("Bearer <token>")
func FromHeader(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// SetAuthorization пробрасывает токен из контекста запроса в исходящий запрос
func SetAuthorization(req *http.Request) {
	if token, ok := TokenFromContext(req.Context()); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
