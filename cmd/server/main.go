package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"idea-portal/internal/config"
	"idea-portal/internal/database"
	"idea-portal/internal/handlers"
	"idea-portal/internal/logger"
	"idea-portal/internal/metrics"
	customMiddleware "idea-portal/internal/middleware"
	"idea-portal/internal/notify"
	"idea-portal/internal/repository"
	"idea-portal/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	// Load .env (ignore error in production, env vars are set directly)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logr, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logr.Sync()

	fs := afero.NewOsFs()

	// Storage
	var ideaStore storage.IdeaStore
	switch cfg.StorageDriver {
	case config.DriverMongo:
		if err := database.Connect(cfg.Mongo.URI, cfg.Mongo.DBName, logr); err != nil {
			logr.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		ideaStore = storage.NewMongoStore(database.GetCollection(cfg.Mongo.Collection))
	default:
		ideaStore = storage.NewFileStore(fs, cfg.IdeasFile)
	}
	logr.Info("storage ready", zap.String("driver", cfg.StorageDriver))

	// Repositories
	employeeRepo := repository.NewEmployeeRepo(storage.NewEmployeeFile(fs, cfg.EmployeesFile, logr))
	ideaRepo := repository.NewIdeaRepo(ideaStore, employeeRepo)

	var notifier notify.Notifier = notify.NewLogNotifier(logr)
	if cfg.EmailEnabled() {
		notifier = notify.NewEmailNotifier(cfg.Notify.ResendAPIKey, cfg.Notify.FromEmail, cfg.Notify.To)
		logr.Info("email announcements enabled", zap.Strings("to", cfg.Notify.To))
	}

	m := metrics.New()

	// Handlers
	ideaHandler := handlers.NewIdeaHandler(ideaRepo, notifier, m, logr)
	employeeHandler := handlers.NewEmployeeHandler(employeeRepo, logr)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.RequestLogger(logr))
	r.Use(customMiddleware.Metrics(m))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"idea-portal"}`))
	})
	r.Handle("/metrics", m.Handler())

	r.Route("/ideas", ideaHandler.Routes)
	r.Get("/employees", employeeHandler.ListEmployees)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("idea portal starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logr.Info("shutting down")
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := database.Disconnect(ctx); err != nil {
		logr.Error("failed to disconnect from MongoDB", zap.Error(err))
	}
}
