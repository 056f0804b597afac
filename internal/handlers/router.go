package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/tadoku-reader/storygen/internal/config"
	"github.com/tadoku-reader/storygen/internal/middleware"
)

// crudTimeout は生成以外のルートに適用するタイムアウトです
const crudTimeout = 60 * time.Second

// NewRouter はミドルウェアとルートを設定したルーターを返します。
// 生成ルートはテキスト生成側で独自のタイムアウトを持つため、crudTimeout の外に置く。
func NewRouter(cfg *config.Config, logger *slog.Logger, db *gorm.DB, storyHandler *StoryHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
		Debug:            false,
	})
	r.Use(corsHandler.Handler)
	r.Use(chimiddleware.Recoverer)

	var authMiddleware func(http.Handler) http.Handler
	if cfg.Auth.Enabled {
		logger.Info("Applying JWT authentication middleware")
		authMiddleware = middleware.JWTAuthMiddleware(cfg)
	} else {
		logger.Warn("Authentication is disabled; using X-User-ID header (development only)")
		authMiddleware = middleware.DevUserContextMiddleware
	}

	storyRoutes := func(r chi.Router) {
		r.With(authMiddleware).Post("/generate", storyHandler.GenerateStory)
		r.With(chimiddleware.Timeout(crudTimeout)).Get("/{story_id}", storyHandler.GetStory)
	}
	r.Route("/api/v1/stories", storyRoutes)
	// 既存クライアントが使う旧パス
	r.Route("/api/stories", storyRoutes)

	r.With(chimiddleware.Timeout(crudTimeout)).Get("/health", func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.GetLogger(r.Context())
		sqlDB, err := db.DB()
		if err != nil {
			logger.Error("Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := sqlDB.PingContext(r.Context()); err != nil {
			logger.Error("Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
