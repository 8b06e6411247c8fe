// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService はお問い合わせフォームなど利用者が自由に入力するテキストから
// HTMLを取り除き、プレーンテキストとして保存できる形に整える。
// bluemondayのStrictPolicyを使用し、すべてのタグと属性を除去する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService は自由入力テキストのサニタイズ機能のインターフェースを定義する。
type ContentSanitizerService interface {
	// Sanitize はテキストからHTMLタグを除去し、前後の空白を取り除いたプレーンテキストを返す。
	// script, styleなどの要素は中身ごと除去される。
	// 文字実体参照はデコードされた状態で返す。
	// 同一入力に対して常に同一出力を返す。
	Sanitize(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーは生成後に変更しないため、複数goroutineから安全に利用できる。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
func NewContentSanitizer() *contentSanitizer {
	return &contentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize はテキストをサニタイズする。
func (s *contentSanitizer) Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	stripped := s.policy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(stripped))
}
