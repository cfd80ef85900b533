package main

import (
	"context"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"tradevision/internal/cache"
	"tradevision/internal/config"
	"tradevision/internal/handler"
	"tradevision/internal/job"
	"tradevision/internal/provider"
	"tradevision/internal/service"
	"tradevision/internal/synth"
	"tradevision/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "tradevision/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	newYouTubeProviderFunc = func(tracer trace.Tracer, apiKey string) service.MetadataProvider {
		return provider.NewYouTubeProvider(tracer, apiKey)
	}
	newGeminiClientFunc = func(tracer trace.Tracer, apiKey, model string) service.TextCompleter {
		return provider.NewGeminiClient(tracer, apiKey, model)
	}
	newOpenAIClientFunc = func(tracer trace.Tracer, apiKey, model string) service.TextCompleter {
		return provider.NewOpenAIClient(tracer, apiKey, model)
	}
	newAnalysisServiceFunc = service.New
	newSweeperFunc         = job.NewUploadSweeper
	startSweeperFunc       = func(s *job.UploadSweeper, ctx context.Context) { go s.Start(ctx) }
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           TradeVision AI API
// @version         3.0.0
// @description     Trading video analysis backend.

// @host      localhost:3001
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Redis (optional metadata cache)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initRedisFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("failed to create upload dir: %v", err)
	}

	// Create providers and services
	youtube := newYouTubeProviderFunc(tracer, cfg.YouTubeKey)
	completer := selectCompleter(cfg, tracer)
	metaCache := cache.NewMetadataCache(cache.Client, time.Duration(cfg.MetadataCacheTTLSecs)*time.Second)
	analysis := newAnalysisServiceFunc(
		tracer,
		youtube,
		completer,
		metaCache,
		synth.NewGenerator(nil),
		time.Duration(cfg.MetadataTimeoutSecs)*time.Second,
		time.Duration(cfg.AITimeoutSecs)*time.Second,
	)

	// Start the upload sweeper (stopped by ctx cancel)
	sweeper := newSweeperFunc(tracer, cfg.UploadDir, time.Duration(cfg.UploadMaxAgeSecs)*time.Second)
	startSweeperFunc(sweeper, ctx)

	// Create handlers and routes
	h := newHandlerFunc(tracer, analysis, cfg.UploadDir)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("tradevision"))
	r.Use(cors.Default())

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()
	log.Printf("TradeVision AI backend listening on :%s", cfg.Port)

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

// selectCompleter picks the AI backend from config. Nil means no provider
// is configured and the service runs fallback-only.
func selectCompleter(cfg *config.Config, tracer trace.Tracer) service.TextCompleter {
	if cfg.AIProvider == "openai" && cfg.OpenAIKey != "" {
		return newOpenAIClientFunc(tracer, cfg.OpenAIKey, cfg.OpenAIModel)
	}
	if cfg.GeminiKey != "" {
		return newGeminiClientFunc(tracer, cfg.GeminiKey, cfg.GeminiModel)
	}
	return nil
}
