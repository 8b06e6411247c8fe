// Package model はドメインモデルを定義する。
package model

import "time"

// User はメールアドレスとパスワードで登録されたユーザーを表す。
// PasswordHashはレスポンスやログに出力しないこと。
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ContactMessage はお問い合わせフォームから送信されたメッセージを表す。
// 保存後はこのAPIからは参照しない。
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Message   string
	Status    ContactStatus
	CreatedAt time.Time
}

// ContactStatus はお問い合わせメッセージの対応状態。
type ContactStatus string

const (
	// ContactStatusNew は未対応のメッセージを示す。
	ContactStatusNew ContactStatus = "new"
)
