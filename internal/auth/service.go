// Package auth はパスワードのハッシュ化、アクセストークンの発行・検証、
// ユーザー登録・ログインのビジネスロジックを提供する。
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/xgencloud/internal/model"
	"github.com/hitoshi/xgencloud/internal/repository"
)

// 認証イベント名。メトリクスのeventラベルに使う。
const (
	EventRegister = "register"
	EventLogin    = "login"
	EventToken    = "token"
)

// 認証イベントの結果。
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// EventRecorder は認証イベントを記録するインターフェース。
// metrics.Collectorが実装する。
type EventRecorder interface {
	RecordAuthEvent(event, outcome string)
}

// Result は登録・ログイン成功時に返されるトークンとユーザー。
type Result struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        *model.User
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	users    repository.UserRepository
	hasher   *PasswordHasher
	tokens   *TokenIssuer
	recorder EventRecorder
	now      func() time.Time
}

// NewService はServiceを生成する。recorderはnilでもよい。
func NewService(
	users repository.UserRepository,
	hasher *PasswordHasher,
	tokens *TokenIssuer,
	recorder EventRecorder,
) *Service {
	return &Service{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		recorder: recorder,
		now:      time.Now,
	}
}

// Register はユーザーを新規登録し、アクセストークンを発行する。
// メールアドレスの一意性はストアの一意制約で保証され、
// 同時に同じメールアドレスで登録された場合は一方のみが成功する。
func (s *Service) Register(ctx context.Context, name, email, password string) (*Result, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.record(EventRegister, OutcomeFailure)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	user := &model.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.record(EventRegister, OutcomeFailure)
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, model.NewEmailTakenError()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	result, err := s.issue(user)
	if err != nil {
		s.record(EventRegister, OutcomeFailure)
		return nil, err
	}

	s.record(EventRegister, OutcomeSuccess)
	slog.Info("user registered", slog.String("user_id", user.ID))
	return result, nil
}

// Login はメールアドレスとパスワードでユーザーを認証し、アクセストークンを発行する。
// 未登録のメールアドレスとパスワード不一致は同じエラーを返す。
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		s.record(EventLogin, OutcomeFailure)
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user == nil {
		s.hasher.VerifyDummy(password)
		s.record(EventLogin, OutcomeFailure)
		return nil, model.NewInvalidCredentialsError()
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.record(EventLogin, OutcomeFailure)
		return nil, model.NewInvalidCredentialsError()
	}

	result, err := s.issue(user)
	if err != nil {
		s.record(EventLogin, OutcomeFailure)
		return nil, err
	}

	s.record(EventLogin, OutcomeSuccess)
	return result, nil
}

// ResolveToken はアクセストークンを検証し、対応するユーザーを返す。
// トークンが不正な場合とユーザーが存在しない場合はどちらもTOKEN_INVALIDを返す。
func (s *Service) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	email, err := s.tokens.Verify(token)
	if err != nil {
		s.record(EventToken, OutcomeFailure)
		return nil, model.NewTokenInvalidError()
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		s.record(EventToken, OutcomeFailure)
		return nil, model.NewTokenInvalidError()
	}

	s.record(EventToken, OutcomeSuccess)
	return user, nil
}

// Profile はユーザーIDでユーザーを取得する。
// トークン検証後にユーザーが削除されていた場合はTOKEN_INVALIDを返す。
func (s *Service) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewTokenInvalidError()
	}
	return user, nil
}

func (s *Service) issue(user *model.User) (*Result, error) {
	token, expiresAt, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &Result{
		AccessToken: token,
		TokenType:   TokenType,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

func (s *Service) record(event, outcome string) {
	if s.recorder != nil {
		s.recorder.RecordAuthEvent(event, outcome)
	}
}
