package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/xgencloud/internal/model"
)

// APIVersion はルートエンドポイントで返すAPIバージョン。
const APIVersion = "1.0.0"

// healthCheckTimeout はストアへの疎通確認のタイムアウト。
const healthCheckTimeout = 2 * time.Second

// HealthChecker はストアの疎通確認を行うインターフェース。
// *sql.DBおよびrepository.MemoryPingerが実装する。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// HealthHandler はAPIの稼働状況を返すHTTPハンドラー。
type HealthHandler struct {
	checker HealthChecker
	now     func() time.Time
}

// NewHealthHandler はHealthHandlerを生成する。
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{
		checker: checker,
		now:     time.Now,
	}
}

type rootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// Root はAPIが起動していることを示すメッセージを返す。
// GET /api/
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Message: "Xgen Cloud API is running!",
		Version: APIVersion,
	})
}

// Health はストアへの疎通を確認し、稼働状況を返す。
// ストアに接続できない場合は503を返す。
// GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.checker.PingContext(ctx); err != nil {
		slog.Error("health check failed", slog.String("error", err.Error()))
		writeAPIErrorResponse(w, http.StatusServiceUnavailable, model.NewServiceUnavailableError())
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: h.now().UTC(),
	})
}
