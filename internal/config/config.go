package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// StoreKind はユーザー・お問い合わせの保存先の種類。
type StoreKind string

const (
	// StorePostgres はPostgreSQLに保存する。本番用。
	StorePostgres StoreKind = "postgres"
	// StoreMemory はプロセス内メモリに保存する。ローカル開発用で、再起動すると消える。
	StoreMemory StoreKind = "memory"
)

// maxAccessTokenMinutes はACCESS_TOKEN_EXPIRE_MINUTESの上限（365日）。
// time.Durationへの変換で桁あふれしない範囲に収める。
const maxAccessTokenMinutes = 365 * 24 * 60

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Store
	Store       StoreKind
	DatabaseURL string

	// Token
	SecretKey      string
	AccessTokenTTL time.Duration

	// Password
	BcryptCost int

	// Server
	ServerPort      string
	ShutdownTimeout time.Duration

	// CORS
	CORSAllowedOrigin string

	// Logging
	LogLevel string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合や値が不正な場合はエラーを返す。
// SECRET_KEYは未設定でもエラーにしない（起動時に鍵を生成する）。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Store = StoreKind(strings.ToLower(getEnvString("STORE", string(StorePostgres))))
	switch cfg.Store {
	case StorePostgres, StoreMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE %q: must be %q or %q", cfg.Store, StorePostgres, StoreMemory)
	}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" && cfg.Store == StorePostgres {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.SecretKey = os.Getenv("SECRET_KEY")

	minutes := getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	if minutes <= 0 {
		minutes = 30
	}
	if minutes > maxAccessTokenMinutes {
		minutes = maxAccessTokenMinutes
	}
	cfg.AccessTokenTTL = time.Duration(minutes) * time.Minute

	cfg.BcryptCost = clamp(getEnvInt("BCRYPT_COST", bcrypt.DefaultCost), bcrypt.MinCost, bcrypt.MaxCost)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8001")
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "*")
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")

	return cfg, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
