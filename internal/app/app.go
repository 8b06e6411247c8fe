package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/xgencloud/internal/auth"
	"github.com/hitoshi/xgencloud/internal/config"
	"github.com/hitoshi/xgencloud/internal/contact"
	"github.com/hitoshi/xgencloud/internal/database"
	"github.com/hitoshi/xgencloud/internal/handler"
	"github.com/hitoshi/xgencloud/internal/logger"
	"github.com/hitoshi/xgencloud/internal/metrics"
	"github.com/hitoshi/xgencloud/internal/repository"
	"github.com/hitoshi/xgencloud/internal/security"
)

const defaultHealthcheckPort = "8001"

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w, slog.LevelInfo)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 3. 設定されたレベルでロガーを再構成する
	logger.SetupDefault(w, logger.ParseLevel(cfg.LogLevel))

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = defaultHealthcheckPort
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("store", string(cfg.Store)),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// server はワイヤリング済みのHTTPハンドラーと、終了時に閉じるリソースをまとめる。
type server struct {
	handler http.Handler
	closeFn func() error
}

// Close は保持しているストア接続を閉じる。
func (s *server) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// buildServer は設定に従って全依存関係をワイヤリングする。
// STORE=postgresの場合はDB接続を開き、疎通確認まで行う。
func buildServer(ctx context.Context, cfg *config.Config, log *slog.Logger) (*server, error) {
	srv := &server{}

	// 1. ストアの初期化
	var (
		userRepo    repository.UserRepository
		contactRepo repository.ContactRepository
		checker     handler.HealthChecker
	)
	switch cfg.Store {
	case config.StoreMemory:
		userRepo = repository.NewMemoryUserRepo()
		contactRepo = repository.NewMemoryContactRepo()
		checker = repository.MemoryPinger{}
		log.Warn("using in-memory store; data is lost on restart")
	default:
		db, err := openDatabase(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		srv.closeFn = db.Close
		userRepo = repository.NewPostgresUserRepo(db)
		contactRepo = repository.NewPostgresContactRepo(db)
		checker = db
		log.Info("database connection established")
	}

	// 2. 署名鍵の決定
	key := []byte(cfg.SecretKey)
	if len(key) == 0 {
		generated, err := auth.GenerateSecretKey()
		if err != nil {
			_ = srv.Close()
			return nil, fmt.Errorf("failed to generate secret key: %w", err)
		}
		key = generated
		log.Warn("SECRET_KEY is not set; generated a random signing key, tokens will not survive a restart")
	}

	// 3. メトリクス
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 4. ドメインサービスの初期化
	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		_ = srv.Close()
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}
	tokens := auth.NewTokenIssuer(auth.TokenConfig{
		SecretKey: key,
		TTL:       cfg.AccessTokenTTL,
	})
	authService := auth.NewService(userRepo, hasher, tokens, collector)

	sanitizer := security.NewContentSanitizer()
	contactService := contact.NewService(contactRepo, sanitizer, collector)

	// 5. ルーターの構築
	srv.handler = handler.NewRouter(&handler.RouterDeps{
		TokenResolver:     authService,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		Logger:            log,

		Metrics:        collector,
		MetricsHandler: metrics.Handler(registry),

		AuthService:    authService,
		ContactService: contactService,
		HealthChecker:  checker,
	})

	return srv, nil
}

func openDatabase(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := database.Open(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// runServe はAPIサーバーモードで起動する。
// 全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	srv, err := buildServer(context.Background(), cfg, slog.Default())
	if err != nil {
		return err
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      srv.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("API server starting",
			slog.String("addr", httpServer.Addr),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server listen error: %w", err)
	case <-stop:
	}
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	if cfg.Store == config.StoreMemory {
		slog.Info("in-memory store selected; no migrations to run")
		return nil
	}

	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /api/health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	target := fmt.Sprintf("http://localhost:%s/api/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(target)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}
	u.RawQuery = ""
	return u.Redacted()
}
