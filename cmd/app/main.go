package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"library-service/internal/config"
	biometricGet "library-service/internal/http-server/handlers/auth/biometric/get"
	biometricRegister "library-service/internal/http-server/handlers/auth/biometric/register"
	authLogin "library-service/internal/http-server/handlers/auth/login"
	batchCreate "library-service/internal/http-server/handlers/batches/create"
	batchDelete "library-service/internal/http-server/handlers/batches/delete"
	batchList "library-service/internal/http-server/handlers/batches/list"
	batchUpdate "library-service/internal/http-server/handlers/batches/update"
	dashboardGet "library-service/internal/http-server/handlers/dashboard/get"
	paymentList "library-service/internal/http-server/handlers/payments/list"
	paymentUpdate "library-service/internal/http-server/handlers/payments/update"
	studentCreate "library-service/internal/http-server/handlers/students/create"
	studentDelete "library-service/internal/http-server/handlers/students/delete"
	studentList "library-service/internal/http-server/handlers/students/list"
	studentUpdate "library-service/internal/http-server/handlers/students/update"
	"library-service/internal/lock"
	svc "library-service/internal/service"
	"library-service/internal/storage/postgres"
	"library-service/pkg/handlers/slogpretty"
	"library-service/pkg/middleware/mwlogger"
	"library-service/pkg/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting API", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		log.Error("Failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	locker, err := lock.NewRedisLock(cfg.RedisAddr)
	if err != nil {
		log.Error("Failed to init redis lock", sl.Err(err))
		os.Exit(1)
	}

	service := svc.NewService(storage, locker, cfg.AdminPassword)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	// Auth
	router.Post("/auth/login", authLogin.New(log, service))
	router.Get("/auth/biometric", biometricGet.New(log, service))
	router.Post("/auth/biometric", biometricRegister.New(log, service))

	// Batches
	router.Get("/batches", batchList.New(log, service))
	router.Post("/batches", batchCreate.New(log, service))
	router.Put("/batches/{id}", batchUpdate.New(log, service))
	router.Delete("/batches/{id}", batchDelete.New(log, service))

	// Students
	router.Get("/students", studentList.New(log, service))
	router.Post("/students", studentCreate.New(log, service))
	router.Put("/students/{id}", studentUpdate.New(log, service))
	router.Delete("/students/{id}", studentDelete.New(log, service))

	// Payments
	router.Get("/payments", paymentList.New(log, service))
	router.Put("/payments/{id}", paymentUpdate.New(log, service))

	// Dashboard
	router.Get("/dashboard", dashboardGet.New(log, service))

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if storage != nil {
		if err := storage.Close(); err != nil {
			log.Error("Failed to close storage", sl.Err(err))
		} else {
			log.Info("Storage closed")
		}
	}

	if locker != nil {
		if err := locker.Close(); err != nil {
			log.Error("Failed to close locker", sl.Err(err))
		} else {
			log.Info("Locker closed")
		}
	}

	log.Info("Shutdown finished, server stopped")

}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
