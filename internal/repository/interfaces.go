// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/xgencloud/internal/model"
)

// ErrEmailTaken は同じメールアドレスのユーザーが既に存在する場合に返される。
// 一意性はストア側の制約で保証し、アプリケーション側で事前確認はしない。
var ErrEmailTaken = errors.New("email already registered")

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成する。
	// メールアドレスが重複する場合はErrEmailTakenを返す。
	Create(ctx context.Context, user *model.User) error

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// ContactRepository はお問い合わせメッセージの永続化インターフェース。
type ContactRepository interface {
	// Create はメッセージを保存する。
	Create(ctx context.Context, msg *model.ContactMessage) error
}
