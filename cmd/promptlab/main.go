package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/user/promptlab-go/internal/api"
	"github.com/user/promptlab-go/internal/config"
	"github.com/user/promptlab-go/internal/database"
	"github.com/user/promptlab-go/internal/models"
	"github.com/user/promptlab-go/internal/pkg/paths"
	"github.com/user/promptlab-go/internal/repository"
	"github.com/user/promptlab-go/internal/service"
	"github.com/user/promptlab-go/internal/version"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v":
			fmt.Println(version.Info())
			os.Exit(0)
		case "--init":
			if err := runInit(); err != nil {
				log.Fatalf("init: %v", err)
			}
			os.Exit(0)
		case "--help", "-h":
			printUsage()
			os.Exit(0)
		}
	}
	if err := run(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func printUsage() {
	fmt.Printf("PromptLab - %s\n\n", version.Short())
	fmt.Println("Usage: promptlab [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --init         Generate .env.example configuration template")
	fmt.Println("  --version, -v  Show version information")
	fmt.Println("  --help, -h     Show this help message")
	fmt.Println()
	fmt.Println("Without options, starts the prompt optimization server.")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  Use environment variables or .env file (see .env.example)")
	fmt.Println("  Run 'promptlab --init' to generate configuration template")
}

func run() error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize logger.
	logger, err := newLogger(cfg.Server.LogLevel, paths.GetLogsDir(), cfg.LogRotation)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting promptlab",
		zap.String("version", version.Short()),
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Bool("generative", cfg.GenerativeConfigured()),
	)

	// Initialize database.
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	// Run migrations.
	if err := database.RunMigrations(db, logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Initialize repositories.
	exampleRepo := repository.NewExampleRepository(db, logger)
	logRepo := repository.NewOptimizeLogRepository(db, logger)

	// Initialize the example store and its search indexes. A catalog that
	// cannot be loaded is fatal: the pipeline refuses to serve rather
	// than return undefined results.
	embedder := service.NewEmbeddingClient(cfg.Embedding, logger)
	store := service.NewStore(embedder, cfg.Retrieval.MaxVocabulary, logger)

	catalog, err := resolveCatalog(cfg, exampleRepo, logger)
	if err != nil {
		return fmt.Errorf("resolve catalog: %w", err)
	}
	if err := store.Load(context.Background(), catalog); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	// Initialize pipeline services.
	analyzer := service.NewAnalyzer(nil)
	searcher := service.NewSearcher(store, embedder, logger)
	strategies := []service.RewriteStrategy{
		service.NewGenerativeRewriter(cfg.Generation, logger),
		service.NewFallbackRewriter(),
	}
	pipeline := service.NewPipeline(analyzer, searcher, strategies, logRepo, cfg.Retrieval.TopN, logger)

	// Create HTTP server.
	server := api.NewServer(api.ServerDeps{
		Pipeline:             pipeline,
		Store:                store,
		ExampleRepo:          exampleRepo,
		LogRepo:              logRepo,
		GenerativeConfigured: cfg.GenerativeConfigured(),
		RateLimit:            cfg.RateLimit,
		Logger:               logger,
	})

	// Start server in goroutine.
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("addr", addr))

	// Wait for shutdown signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// resolveCatalog picks the catalog source: configured YAML file first,
// then database rows, then the builtin seed.
func resolveCatalog(cfg *config.Config, exampleRepo repository.ExampleRepository, logger *zap.Logger) ([]models.ExamplePrompt, error) {
	if cfg.Catalog.FilePath != "" {
		catalog, err := service.LoadCatalogFile(cfg.Catalog.FilePath)
		if err != nil {
			return nil, err
		}
		logger.Info("catalog loaded from file",
			zap.String("path", cfg.Catalog.FilePath),
			zap.Int("examples", len(catalog)))
		return catalog, nil
	}

	catalog, err := exampleRepo.ListEnabled(context.Background())
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		logger.Warn("database catalog is empty, using builtin seed")
		return service.SeedCatalog(), nil
	}
	return catalog, nil
}

func newLogger(level string, logDir string, rotation config.LogRotationConfig) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug", "DEBUG":
		zapLevel = zap.DebugLevel
	case "warn", "WARN":
		zapLevel = zap.WarnLevel
	case "error", "ERROR":
		zapLevel = zap.ErrorLevel
	default:
		zapLevel = zap.InfoLevel
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", logDir, err)
	}

	lj := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "promptlab.log"),
		MaxSize:    rotation.MaxSizeMB,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAgeDays,
		Compress:   rotation.Compress,
	}

	// File core: JSON encoder for structured log parsing
	fileEncoderCfg := zap.NewProductionEncoderConfig()
	fileEncoderCfg.TimeKey = "ts"
	fileEncoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(fileEncoderCfg),
		zapcore.AddSync(lj),
		zapLevel,
	)

	// Console core: human-readable output to stdout/stderr
	consoleEncoderCfg := zap.NewDevelopmentEncoderConfig()
	consoleEncoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleEncoder := zapcore.NewConsoleEncoder(consoleEncoderCfg)

	// stdout for DEBUG/INFO, stderr for WARN/ERROR+
	stdoutCore := zapcore.NewCore(
		consoleEncoder,
		zapcore.Lock(os.Stdout),
		zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapLevel && l < zapcore.WarnLevel
		}),
	)
	stderrCore := zapcore.NewCore(
		consoleEncoder,
		zapcore.Lock(os.Stderr),
		zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapLevel && l >= zapcore.WarnLevel
		}),
	)

	core := zapcore.NewTee(fileCore, stdoutCore, stderrCore)

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	), nil
}
