// Package contact はお問い合わせフォームのドメインロジックを提供する。
package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/xgencloud/internal/model"
	"github.com/hitoshi/xgencloud/internal/repository"
	"github.com/hitoshi/xgencloud/internal/security"
)

// Recorder はお問い合わせの保存件数を記録するインターフェース。
// metrics.Collectorが実装する。
type Recorder interface {
	RecordContactMessage()
}

// Service はお問い合わせメッセージの受付を行うサービス層。
type Service struct {
	repo      repository.ContactRepository
	sanitizer security.ContentSanitizerService
	recorder  Recorder
	now       func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。recorderはnilでもよい。
func NewService(
	repo repository.ContactRepository,
	sanitizer security.ContentSanitizerService,
	recorder Recorder,
) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
		recorder:  recorder,
		now:       time.Now,
	}
}

// Submit はお問い合わせメッセージをサニタイズして保存する。
// 名前と本文はHTMLを除去したプレーンテキストとして保存し、
// 除去後に空になった場合は入力検証エラーを返す。状態は"new"で作成する。
func (s *Service) Submit(ctx context.Context, name, email, message string) (*model.ContactMessage, error) {
	msg := &model.ContactMessage{
		ID:        uuid.New().String(),
		Name:      s.sanitizer.Sanitize(name),
		Email:     strings.TrimSpace(email),
		Message:   s.sanitizer.Sanitize(message),
		Status:    model.ContactStatusNew,
		CreatedAt: s.now().UTC(),
	}

	fields := map[string]string{}
	if msg.Name == "" {
		fields["name"] = "cannot be blank"
	}
	if msg.Message == "" {
		fields["message"] = "cannot be blank"
	}
	if len(fields) > 0 {
		return nil, model.NewValidationError(fields)
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordContactMessage()
	}
	slog.Info("contact message received", slog.String("contact_id", msg.ID))
	return msg, nil
}
