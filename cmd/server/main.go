package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bugdesk.app/api-server/core/config"
	"bugdesk.app/api-server/core/db"
	"bugdesk.app/api-server/db/migrations"
	"bugdesk.app/api-server/core/telemetry"
	"bugdesk.app/api-server/internal/http/handler"
	httprouter "bugdesk.app/api-server/internal/http/router"
	"bugdesk.app/api-server/internal/indexing"
	"bugdesk.app/api-server/internal/service"
	"bugdesk.app/api-server/internal/store"
	"bugdesk.app/api-server/internal/workflow"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		slog.InfoContext(ctx, "no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.OTLPEndpoint)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize telemetry", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "bugdesk starting", "env", cfg.Environment)

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	slog.InfoContext(ctx, "database connected")

	if err := runMigrations(ctx, cfg.DatabaseURL); err != nil {
		slog.ErrorContext(ctx, "failed to run migrations", "error", err)
		os.Exit(1)
	}

	stores := store.New(pool)
	indexer := indexing.NewTrigger(stores.Embeddings())

	policy := workflow.NewRolePolicy()
	engine := workflow.NewEngine()

	userService := service.NewUserService(stores.Users(), policy)
	projectService := service.NewProjectService(stores.Projects(), stores.Users(), policy)
	issueService := service.NewIssueService(stores, stores, projectService, engine, policy, indexer)
	commentService := service.NewCommentService(stores.Comments(), stores.Issues(), stores.Users(), policy)
	reportService := service.NewReportService(stores.Reports())
	searchService := service.NewSearchService(stores.Issues(), cfg.AnthropicAPIKey)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, routerDeps{
		users:    userService,
		projects: projectService,
		issues:   issueService,
		comments: commentService,
		reports:  reportService,
		search:   searchService,
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	indexer.Close()

	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "telemetry shutdown error", "error", err)
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func runMigrations(ctx context.Context, databaseURL string) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("opening migration connection: %w", err)
	}
	defer migrationDB.Close()
	return migrations.Up(ctx, migrationDB)
}

type routerDeps struct {
	users    service.UserService
	projects service.ProjectService
	issues   service.IssueService
	comments service.CommentService
	reports  service.ReportService
	search   service.SearchService
}

func setupRouter(cfg config.Config, deps routerDeps) *gin.Engine {
	router := gin.New()
	if cfg.OTLPEndpoint != "" {
		router.Use(otelgin.Middleware("bugdesk-api"))
	}
	router.Use(gin.Recovery())

	tokens := handler.NewTokenProvider(cfg.JWTSecret, cfg.IsProduction())

	userHandler := handler.NewUserHandler(deps.users, tokens)
	projectHandler := handler.NewProjectHandler(deps.projects)
	issueHandler := handler.NewIssueHandler(deps.issues, deps.search)
	commentHandler := handler.NewCommentHandler(deps.comments)
	reportHandler := handler.NewReportHandler(deps.reports)

	api := router.Group("/api")
	api.Use(tokens.Authenticate)

	httprouter.UserRouter(api.Group("/users"), userHandler)
	httprouter.ProjectRouter(api.Group("/projects"), projectHandler)
	httprouter.IssueRouter(api.Group("/projects/:projectId/issues"), issueHandler)
	httprouter.ReportRouter(api.Group("/projects/:projectId/reports"), reportHandler)
	httprouter.IssueCommentRouter(api.Group("/issues/:issueId/comments"), commentHandler)
	httprouter.CommentRouter(api.Group("/comments"), commentHandler)

	return router
}
