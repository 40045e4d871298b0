package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/fintrack/internal/api/apiconnect"
	"github.com/mmynk/fintrack/internal/auth"
	"github.com/mmynk/fintrack/internal/config"
	"github.com/mmynk/fintrack/internal/events"
	"github.com/mmynk/fintrack/internal/metrics"
	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/internal/rest"
	"github.com/mmynk/fintrack/internal/service"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/internal/storage/postgres"
	"github.com/mmynk/fintrack/internal/storage/rediscache"
	"github.com/mmynk/fintrack/internal/storage/sqlite"
	"github.com/mmynk/fintrack/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

// backend is a document store that also keeps user accounts.
type backend interface {
	storage.DocumentStore
	auth.UserStorage
}

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer db.Close()

	var store storage.DocumentStore = db
	if cfg.RedisURL != "" {
		client, err := rediscache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			slog.Warn("Failed to initialize Redis, continuing without cache", "error", err)
		} else {
			defer client.Close()
			store = rediscache.New(db, client, cfg.CacheTTL)
			slog.Info("Redis cache enabled", "ttl", cfg.CacheTTL)
		}
	}

	var publisher events.Publisher
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Warn("Failed to initialize AMQP, events will not be published", "error", err)
		} else {
			defer client.Close()
			publisher = client
			slog.Info("Event publishing enabled", "exchange", cfg.AMQPExchange)
		}
	}

	m := metrics.New()
	opts := service.Options{
		Events:            events.NewEmitter(publisher),
		Metrics:           m,
		StrictPercentages: cfg.StrictPercentages,
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.New().String()
		slog.Warn("JWT_SECRET not set, sessions will not survive a restart")
	}
	jwtManager := auth.NewJWTManager(secret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(db)

	authInterceptor := middleware.OptionalAuth(jwtManager)
	if cfg.AuthRequired {
		authInterceptor = middleware.RequireAuth(jwtManager, apiconnect.PublicProcedures...)
	}
	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.LoggingInterceptor(),
		authInterceptor,
	)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(apiconnect.NewLedgerServiceHandler(service.NewLedgerService(store, opts), interceptors))
	mux.Handle(apiconnect.NewGroupServiceHandler(service.NewGroupService(store, opts), interceptors))
	mux.Handle(apiconnect.NewGoalServiceHandler(service.NewGoalService(store, opts), interceptors))
	mux.Handle(apiconnect.NewAuthServiceHandler(service.NewAuthService(authenticator, db, jwtManager, slog.Default()), interceptors))

	var reportAuth []gin.HandlerFunc
	if cfg.AuthRequired {
		reportAuth = append(reportAuth, middleware.GinRequireAuth(jwtManager))
	}
	router := rest.NewRouter(store, nil, reportAuth...)
	mux.Handle("/api/", router)
	mux.Handle("/healthz", router)
	mux.Handle("/metrics", m.Handler())

	if cfg.StaticPath != "" {
		staticDir, err := filepath.Abs(cfg.StaticPath)
		if err != nil {
			return fmt.Errorf("failed to resolve static path: %w", err)
		}
		slog.Info("Serving static files", "path", staticDir)
		mux.Handle("/", staticHandler(staticDir))
	}

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr), "backend", cfg.DataBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openBackend(ctx context.Context, cfg *config.Config) (backend, error) {
	switch cfg.DataBackend {
	case config.BackendPostgres:
		store, err := postgres.New(ctx, cfg.DatabaseURL, postgres.DefaultConnectOptions)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "backend", "postgres")
		return store, nil
	default:
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "backend", "sqlite", "database", cfg.SQLiteDBPath)
		return store, nil
	}
}

// staticHandler serves the frontend, falling back to index.html for unknown paths.
func staticHandler(staticDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Connect procedures that are not registered must not fall through to the frontend
		if strings.HasPrefix(r.URL.Path, "/fintrack.v1.") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access to the Connect services.
// The REST routes carry their own CORS handling.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
