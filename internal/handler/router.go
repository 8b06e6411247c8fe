package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/xgencloud/internal/middleware"
	"github.com/hitoshi/xgencloud/internal/model"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenResolver     middleware.TokenResolver
	CORSAllowedOrigin string
	Logger            *slog.Logger

	// メトリクス（nilの場合は記録しない）
	Metrics        middleware.HTTPMetricsRecorder
	MetricsHandler http.Handler

	// 認証
	AuthService AuthServiceInterface

	// お問い合わせ
	ContactService ContactServiceInterface

	// ヘルスチェック
	HealthChecker HealthChecker
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → Metrics → SecurityHeaders → CORS
//
// 認証が必要なルート（/api/profile）にのみBearerミドルウェアを適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	// サブルーターに引き継ぐため、ルート定義より前に設定する
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewNotFoundError())
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeAPIErrorResponse(w, http.StatusMethodNotAllowed, model.NewMethodNotAllowedError())
	})

	authHandler := NewAuthHandler(deps.AuthService)
	contactHandler := NewContactHandler(deps.ContactService)
	catalogHandler := NewCatalogHandler()
	healthHandler := NewHealthHandler(deps.HealthChecker)

	r.Get("/", healthHandler.Root)

	r.Route("/api", func(r chi.Router) {
		// --- 認証不要のルート ---
		r.Get("/", healthHandler.Root)
		r.Get("/health", healthHandler.Health)

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Post("/contact", contactHandler.Submit)

		r.Get("/services", catalogHandler.ListServices)
		r.Get("/partners", catalogHandler.ListPartners)

		// --- 認証が必要なルート ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewBearerMiddleware(deps.TokenResolver))

			r.Get("/profile", authHandler.Profile)
		})
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	return r
}
