package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/reelcheck/reelcheck/internal/application/analysis"
	appliterature "github.com/reelcheck/reelcheck/internal/application/literature"
	apptranscribe "github.com/reelcheck/reelcheck/internal/application/transcribe"
	"github.com/reelcheck/reelcheck/internal/config"
	domanalysis "github.com/reelcheck/reelcheck/internal/domain/analysis"
	"github.com/reelcheck/reelcheck/internal/infra/ai/groq"
	mysqlp "github.com/reelcheck/reelcheck/internal/infra/db/mysql"
	postgresp "github.com/reelcheck/reelcheck/internal/infra/db/postgres"
	"github.com/reelcheck/reelcheck/internal/infra/httpserver"
	"github.com/reelcheck/reelcheck/internal/infra/literature/pubmed"
	"github.com/reelcheck/reelcheck/internal/infra/literature/semanticscholar"
	"github.com/reelcheck/reelcheck/internal/infra/resolver"
	minioStore "github.com/reelcheck/reelcheck/internal/infra/storage"
	"github.com/reelcheck/reelcheck/internal/infra/transcribe/ffmpeg"
	"github.com/reelcheck/reelcheck/internal/infra/transcribe/speech"
	"github.com/reelcheck/reelcheck/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database (mysql default, postgres optional);
	// semua repo harus dari driver yang sama, placeholder SQL-nya beda
	var db *sql.DB
	var repo domanalysis.Repository
	var turns domanalysis.TurnRepository
	var failures domanalysis.FailureRepository
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresp.NewAnalysisRepository(db)
		turns = postgresp.NewTurnRepository(db)
		failures = postgresp.NewFailureRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqlp.NewAnalysisRepository(db)
		turns = mysqlp.NewTurnRepository(db)
		failures = mysqlp.NewFailureRepository(db)
	}
	defer db.Close()

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	// init transcriber
	transcriber := apptranscribe.NewService(
		ffmpeg.NewSplitter(),
		speech.New(cfg.Speech.Endpoint, cfg.Speech.APIKey),
	)
	transcriber.Progress = func(done, total int) {
		log.Printf("transcribing... %d%%", done*100/total)
	}

	// init literature aggregator
	aggregator := &appliterature.Aggregator{
		Primary:   pubmed.New(cfg.Literature.PubMedBaseURL),
		Secondary: semanticscholar.New(cfg.Literature.SemanticScholarBaseURL),
		Dedupe:    cfg.Literature.Dedupe,
	}

	// init service
	svc := &appanalysis.Service{
		Resolver:    resolver.New(cfg.Resolver.Endpoint, cfg.Resolver.APIKey, cfg.Resolver.APIHost),
		Transcriber: transcriber,
		Literature:  aggregator,
		AI:          groq.NewFactory(cfg.Groq.BaseURL, cfg.Groq.Model, cfg.Groq.APIKeys),
		Repo:        repo,
		Turns:       turns,
		Failures:    failures,
		Artifacts:   store,
		Clock:       appanalysis.SystemClock{},
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	// auth dulu supaya session dari API key kebaca oleh logging + rate limiter
	if len(cfg.Server.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Server.APIKeys))
		mux.Use(middleware.RequireValidSession)
	} else {
		log.Println("warning: no API keys configured, auth disabled")
	}
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(30, 1))
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Get("/healthz", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}))
	mux.Mount("/", httpserver.NewRouter(svc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
