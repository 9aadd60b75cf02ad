// Package server wires the fitsync record store: storage, handlers and
// middleware behind one http.Server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/fitsync/internal/config"
	"github.com/iudanet/fitsync/internal/server/handlers"
	"github.com/iudanet/fitsync/internal/server/jwt"
	"github.com/iudanet/fitsync/internal/server/middleware"
	"github.com/iudanet/fitsync/internal/server/storage"
	"github.com/iudanet/fitsync/internal/server/storage/sqlstore"
)

const healthPath = "/api/v1/health"

// Storage все, что нужно серверу от хранилища
type Storage interface {
	storage.UserStorage
	storage.UserDataStorage
	storage.Pinger
}

// Server HTTP сервер записей пользователей
type Server struct {
	cfg     *config.ServerConfig
	logger  *slog.Logger
	store   *sqlstore.Storage
	limiter *middleware.RateLimiter
	handler http.Handler
}

// New открывает базу, применяет миграции и собирает маршруты
func New(ctx context.Context, cfg *config.ServerConfig, logger *slog.Logger) (*Server, error) {
	store, err := sqlstore.New(ctx, cfg.DB.Driver, cfg.DB.DSN, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	s := &Server{cfg: cfg, logger: logger, store: store}
	if cfg.RateLimit.Requests > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
	}
	s.handler = NewRouter(store, jwt.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), s.limiter, logger)
	return s, nil
}

// NewRouter регистрирует маршруты API. limiter может быть nil.
func NewRouter(st Storage, tokens *jwt.Service, limiter *middleware.RateLimiter, logger *slog.Logger) http.Handler {
	authHandler := handlers.NewAuthHandler(logger, st, tokens)
	dataHandler := handlers.NewUserDataHandler(logger, st)
	healthHandler := handlers.NewHealthHandler(logger, st)
	requireAuth := middleware.AuthMiddleware(logger, tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+healthPath, healthHandler.Health)
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.Handle("GET /api/v1/users/{userID}/data", requireAuth(http.HandlerFunc(dataHandler.Get)))
	mux.Handle("PUT /api/v1/users/{userID}/data", requireAuth(http.HandlerFunc(dataHandler.Put)))
	mux.Handle("POST /api/v1/users/{userID}/data", requireAuth(http.HandlerFunc(dataHandler.Create)))

	// порядок: recovery снаружи, затем логирование и лимит
	var h http.Handler = mux
	if limiter != nil {
		h = limiter.Middleware()(h)
	}
	h = middleware.LoggingMiddleware(logger, healthPath)(h)
	return middleware.RecoveryMiddleware(logger)(h)
}

// Handler корневой handler, для тестов
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run слушает cfg.Listen до отмены ctx, затем корректно останавливается
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает ln до отмены ctx
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Server started", slog.String("addr", ln.Addr().String()), slog.String("db_driver", s.cfg.DB.Driver))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close освобождает базу и rate limiter
func (s *Server) Close() error {
	if s.limiter != nil {
		s.limiter.Stop()
	}
	return s.store.Close()
}
