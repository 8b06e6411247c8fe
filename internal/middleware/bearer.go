// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/xgencloud/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userContextKey はリクエストコンテキストに認証済みユーザーを格納するためのキー。
var userContextKey = contextKey("user")

// TokenResolver はアクセストークンからユーザーを解決するインターフェース。
// auth.Serviceが実装する。
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*model.User, error)
}

// NewBearerMiddleware はAuthorizationヘッダーのBearerトークンを検証し、
// 認証済みユーザーをリクエストコンテキストに注入するミドルウェアを返す。
// ヘッダーがない、またはBearer形式でない場合は403を返す。
// トークンが不正、またはユーザーが存在しない場合は401とWWW-Authenticateヘッダーを返す。
func NewBearerMiddleware(resolver TokenResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Authorizationヘッダーからトークンを取得
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				WriteErrorResponse(w, http.StatusForbidden, model.NewNotAuthenticatedError())
				return
			}

			// 2. トークンを検証しユーザーを解決
			user, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				var apiErr *model.APIError
				if errors.As(err, &apiErr) && apiErr.Code == model.ErrCodeTokenInvalid {
					WriteUnauthorized(w, apiErr)
					return
				}
				slog.Error("failed to resolve token",
					slog.String("error", err.Error()),
				)
				WriteInternalServerError(w)
				return
			}

			// 3. 認証済みユーザーをコンテキストに注入
			setRequestUserID(r.Context(), user.ID)
			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// bearerToken は"Bearer <token>"形式のヘッダー値からトークンを取り出す。
// スキーム名の大文字小文字は区別しない。
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// UserFromContext はリクエストコンテキストから認証済みユーザーを取得する。
// Bearerミドルウェアを通過したリクエストでのみ値を持つ。
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// ContextWithUser はコンテキストに認証済みユーザーを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
