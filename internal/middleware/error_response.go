package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/xgencloud/internal/model"
)

// ErrorResponseBody はAPIエラーレスポンスの統一フォーマット。
// detailにはクライアント向けの短いメッセージを入れる。
type ErrorResponseBody struct {
	Code     string            `json:"code"`
	Detail   string            `json:"detail"`
	Category string            `json:"category"`
	Fields   map[string]string `json:"fields,omitempty"`
}

// WriteErrorResponse は統一エラーフォーマットでHTTPエラーレスポンスを書き込む。
// すべてのAPIエンドポイントで一貫したエラーレスポンスを提供する。
func WriteErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponseBody{
		Code:     apiErr.Code,
		Detail:   apiErr.Message,
		Category: apiErr.Category,
		Fields:   apiErr.Fields,
	})
}

// WriteUnauthorized はWWW-Authenticateヘッダー付きの401レスポンスを書き込む。
func WriteUnauthorized(w http.ResponseWriter, apiErr *model.APIError) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	WriteErrorResponse(w, http.StatusUnauthorized, apiErr)
}

// WriteInternalServerError は内部サーバーエラーの統一レスポンスを書き込む。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusInternalServerError, model.NewInternalError())
}
