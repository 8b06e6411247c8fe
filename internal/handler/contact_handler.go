package handler

import (
	"context"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/hitoshi/xgencloud/internal/model"
)

// contactSuccessMessage はお問い合わせ受付時にクライアントへ返すメッセージ。
const contactSuccessMessage = "Thank you! Your message has been submitted successfully."

// maxContactMessageLength はお問い合わせ本文の最大文字数。
const maxContactMessageLength = 5000

// ContactServiceInterface はお問い合わせハンドラーが必要とするサービスインターフェース。
type ContactServiceInterface interface {
	Submit(ctx context.Context, name, email, message string) (*model.ContactMessage, error)
}

// ContactHandler はお問い合わせフォームのHTTPハンドラー。
type ContactHandler struct {
	service ContactServiceInterface
}

// NewContactHandler はContactHandlerを生成する。
func NewContactHandler(service ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// contactRequest はお問い合わせリクエストのボディ。
type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate はお問い合わせリクエストの入力を検証する。
func (r contactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 320), is.Email),
		validation.Field(&r.Message, validation.Required, validation.Length(1, maxContactMessageLength)),
	)
}

// contactResponse はお問い合わせ受付のAPIレスポンス。
type contactResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// Submit はお問い合わせを受け付ける。
// POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		handleServiceError(w, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if err := toValidationError(req.Validate()); err != nil {
		handleServiceError(w, err)
		return
	}

	msg, err := h.service.Submit(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contactResponse{
		Message: contactSuccessMessage,
		ID:      msg.ID,
	})
}
