// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/hitoshi/xgencloud/internal/auth"
	"github.com/hitoshi/xgencloud/internal/middleware"
	"github.com/hitoshi/xgencloud/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Register(ctx context.Context, name, email, password string) (*auth.Result, error)
	Login(ctx context.Context, email, password string) (*auth.Result, error)
	Profile(ctx context.Context, userID string) (*model.User, error)
}

// AuthHandler はユーザー登録・ログイン・プロフィール取得のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// registerRequest はユーザー登録リクエストのボディ。
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate は登録リクエストの入力を検証する。
func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 320), is.Email),
		validation.Field(&r.Password, validation.Required, validation.By(passwordFitsBcrypt)),
	)
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate はログインリクエストの入力を検証する。
func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 320), is.Email),
		validation.Field(&r.Password, validation.Required, validation.By(passwordFitsBcrypt)),
	)
}

// passwordFitsBcrypt はパスワードがbcryptで扱えるバイト数以内であることを検証する。
func passwordFitsBcrypt(value interface{}) error {
	s, _ := value.(string)
	if len(s) > auth.MaxPasswordBytes {
		return fmt.Errorf("must be at most %d bytes", auth.MaxPasswordBytes)
	}
	return nil
}

// userResponse はユーザー情報のAPIレスポンス。パスワードハッシュは含めない。
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// tokenResponse は登録・ログイン成功時のAPIレスポンス。
type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

// Register はユーザー登録を処理する。
// POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		handleServiceError(w, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := toValidationError(req.Validate()); err != nil {
		handleServiceError(w, err)
		return
	}

	result, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTokenResponse(result))
}

// Login はログインを処理する。
// POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		handleServiceError(w, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := toValidationError(req.Validate()); err != nil {
		handleServiceError(w, err)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTokenResponse(result))
}

// Profile は認証済みユーザーのプロフィールを返す。
// GET /api/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewNotAuthenticatedError())
		return
	}

	user, err := h.service.Profile(r.Context(), current.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toTokenResponse(result *auth.Result) tokenResponse {
	return tokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		User:        toUserResponse(result.User),
	}
}
