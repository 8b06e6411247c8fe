package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/xgencloud/internal/model"
)

// PostgresContactRepo はPostgreSQLを使用したお問い合わせリポジトリ。
type PostgresContactRepo struct {
	db *sql.DB
}

// NewPostgresContactRepo はPostgresContactRepoを生成する。
func NewPostgresContactRepo(db *sql.DB) *PostgresContactRepo {
	return &PostgresContactRepo{db: db}
}

// Create はメッセージを保存する。
func (r *PostgresContactRepo) Create(ctx context.Context, msg *model.ContactMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, message, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.ID, msg.Name, msg.Email, msg.Message, string(msg.Status), msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}
	return nil
}

var _ ContactRepository = (*PostgresContactRepo)(nil)
