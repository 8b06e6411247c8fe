package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// Messageはクライアントにそのまま返す短いメッセージ。
type APIError struct {
	Code     string            // エラーコード
	Message  string            // エラーメッセージ
	Category string            // カテゴリ: auth, validation, system
	Fields   map[string]string // フィールド単位の検証エラー（validationのみ）
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeEmailTaken         = "EMAIL_ALREADY_REGISTERED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeNotAuthenticated   = "NOT_AUTHENTICATED"
	ErrCodeTokenInvalid       = "TOKEN_INVALID"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// NewValidationError は入力検証エラーを生成する。
// fieldsにはフィールド名とエラー内容の対応を渡す。
func NewValidationError(fields map[string]string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  "Request validation failed",
		Category: "validation",
		Fields:   fields,
	}
}

// NewMalformedBodyError はリクエストボディを解析できなかった場合のエラーを生成する。
func NewMalformedBodyError() *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  "Request body must be a valid JSON object",
		Category: "validation",
	}
}

// NewEmailTakenError はメールアドレスが登録済みの場合のエラーを生成する。
func NewEmailTakenError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  "Email already registered",
		Category: "validation",
	}
}

// NewInvalidCredentialsError はログイン失敗エラーを生成する。
// メールアドレス未登録とパスワード不一致で同じ内容を返す。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "Incorrect email or password",
		Category: "auth",
	}
}

// NewNotAuthenticatedError はAuthorizationヘッダーがない場合のエラーを生成する。
func NewNotAuthenticatedError() *APIError {
	return &APIError{
		Code:     ErrCodeNotAuthenticated,
		Message:  "Not authenticated",
		Category: "auth",
	}
}

// NewTokenInvalidError はトークンを検証できなかった場合のエラーを生成する。
// 署名不一致・期限切れ・ユーザー不在を区別しない。
func NewTokenInvalidError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenInvalid,
		Message:  "Could not validate credentials",
		Category: "auth",
	}
}

// NewServiceUnavailableError はストアに接続できない場合のエラーを生成する。
func NewServiceUnavailableError() *APIError {
	return &APIError{
		Code:     ErrCodeServiceUnavailable,
		Message:  "Service unavailable",
		Category: "system",
	}
}

// NewNotFoundError は存在しないエンドポイントへのアクセスエラーを生成する。
func NewNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeNotFound,
		Message:  "Endpoint not found",
		Category: "system",
	}
}

// NewMethodNotAllowedError は許可されていないHTTPメソッドでのアクセスエラーを生成する。
func NewMethodNotAllowedError() *APIError {
	return &APIError{
		Code:     ErrCodeMethodNotAllowed,
		Message:  "Method not allowed",
		Category: "system",
	}
}

// NewInternalError は内部エラーを生成する。詳細はログのみに記録する。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "Internal server error",
		Category: "system",
	}
}
