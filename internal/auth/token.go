package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL はアクセストークンのデフォルト有効期間。
const DefaultTokenTTL = 30 * time.Minute

// TokenType はレスポンスに含めるトークン種別。
const TokenType = "bearer"

// secretKeySize は自動生成する署名鍵のバイト数。
const secretKeySize = 32

// ErrInvalidToken はトークンの署名・形式・有効期限のいずれかが不正な場合に返される。
// 呼び出し側には失敗理由を区別させない。
var ErrInvalidToken = errors.New("invalid token")

// TokenConfig はトークン発行の設定。
type TokenConfig struct {
	SecretKey []byte
	TTL       time.Duration
}

// TokenIssuer はHS256で署名したJWTアクセストークンを発行・検証する。
// トークンにはsubject（メールアドレス）と有効期限が含まれ、サーバー側には保存しない。
type TokenIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenIssuer はTokenIssuerを生成する。
// TTLが0以下の場合はDefaultTokenTTLを使用する。
func NewTokenIssuer(cfg TokenConfig) *TokenIssuer {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{
		key: cfg.SecretKey,
		ttl: ttl,
		now: time.Now,
	}
}

// WithClock は時刻の取得元を差し替えたTokenIssuerを返す。テスト用。
func (ti *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	cp := *ti
	cp.now = now
	return &cp
}

// TTL はデフォルトの有効期間を返す。
func (ti *TokenIssuer) TTL() time.Duration {
	return ti.ttl
}

// Issue はデフォルトの有効期間でトークンを発行する。
func (ti *TokenIssuer) Issue(subject string) (string, time.Time, error) {
	return ti.IssueWithTTL(subject, ti.ttl)
}

// IssueWithTTL は指定した有効期間でトークンを発行し、トークンと有効期限を返す。
// expクレームは秒単位のため、有効期限はnow+ttl以降で最も近い秒に切り上げる。
// 返す有効期限とトークンに埋め込む値は常に一致する。
func (ti *TokenIssuer) IssueWithTTL(subject string, ttl time.Duration) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, fmt.Errorf("token subject is required")
	}

	now := ti.now()
	expiresAt := ceilToSecond(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(ti.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

func ceilToSecond(t time.Time) time.Time {
	truncated := t.Truncate(time.Second)
	if truncated.Equal(t) {
		return t.Round(0)
	}
	return truncated.Add(time.Second)
}

// Verify はトークンを検証しsubjectを返す。
// 署名不一致、HS256以外のアルゴリズム（noneを含む）、形式不正、exp欠落、期限切れ、
// subject欠落の場合はErrInvalidTokenを返す。期限に猶予は設けない。
func (ti *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.now),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ti.key, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// GenerateSecretKey は署名用のランダムな鍵を生成する。
// SECRET_KEYが未設定の場合に起動時に1回だけ使用する。
// 生成した鍵はプロセスの終了とともに失われ、再起動前に発行したトークンは検証できなくなる。
func GenerateSecretKey() ([]byte, error) {
	key := make([]byte, secretKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate secret key: %w", err)
	}
	return key, nil
}
