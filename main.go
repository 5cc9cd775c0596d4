package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"kalimat/internal/catalog"
	"kalimat/internal/session"
	"kalimat/internal/telemetry"
)

func main() {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		setupLogger("info", false)
		logFatal("Failed to load config: %v", err)
	}
	setupLogger(cfg.LogLevel, cfg.isProduction())
	logInfo("Starting Kalimat in %s mode", map[bool]string{true: "production", false: "development"}[cfg.isProduction()])

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{Endpoint: cfg.OTLPEndpoint, Environment: cfg.Env})
	if err != nil {
		logFatal("Failed to set up tracing: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logWarn("Tracer shutdown: %v", err)
		}
	}()

	app, err := newApp(cfg)
	if err != nil {
		logFatal("Failed to load catalog: %v", err)
	}
	logInfo("Loaded %d catalog items in %d categories", app.Catalog.Len(), len(app.Catalog.Categories()))

	go app.Sessions.Run(ctx, cfg.SweepInterval, cfg.SessionTimeout)

	if app.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	app.startServer(ctx, app.newRouter())
}

// newApp loads the catalog and builds the session store.
func newApp(cfg Config) (*App, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if cfg.CatalogPath != "" {
		logInfo("Loading catalog from %s", cfg.CatalogPath)
		cat, err = catalog.LoadDir(cfg.CatalogPath)
	} else {
		cat, err = catalog.Load()
	}
	if err != nil {
		return nil, err
	}

	rules := cfg.rules()
	if !cat.Has(rules.DefaultCategory) {
		return nil, errors.New("default category " + rules.DefaultCategory + " is not in the catalog")
	}

	return &App{
		Config:       cfg,
		IsProduction: cfg.isProduction(),
		StartTime:    time.Now(),
		Catalog:      cat,
		Rules:        rules,
		Sessions: session.NewStore(session.Config{
			Rules:   rules,
			Content: cat,
			Seed:    cfg.Game.Seed,
			Tracer:  telemetry.Tracer("session"),
		}),
		LimiterMap:     make(map[string]*rate.Limiter),
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		CookieMaxAge:   cfg.CookieMaxAge,
	}, nil
}

// newRouter wires middleware and routes.
func (app *App) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), tracingMiddleware(), requestLogger())
	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression, ginGzip.WithExcludedPaths([]string{RouteHealthz})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.GET(RouteHome, app.homeHandler)
	router.GET(RouteHealthz, app.healthzHandler)
	router.GET(RouteCatalog, app.catalogHandler)

	g := router.Group(RouteGame, noStoreMiddleware())
	g.GET(RouteState, app.stateHandler)

	limited := g.Group("", app.rateLimitMiddleware())
	limited.POST(RouteCategory, app.selectCategoryHandler)
	limited.POST(RouteStart, app.startHandler)
	limited.POST(RouteCorrect, app.correctHandler)
	limited.POST(RouteWrong, app.wrongHandler)
	limited.POST(RouteDrop, app.dropHandler)
	limited.POST(RouteAnswer, app.answerHandler)
	limited.POST(RouteContinue, app.continueHandler)
	limited.POST(RoutePowerUp, app.powerUpHandler)
	limited.POST(RouteReset, app.resetHandler)
	// Auto-hide traffic from the client is not rate limited.
	g.POST(RouteHideFeedback, app.hideFeedbackHandler)

	return router
}

// startServer serves until ctx is cancelled, then shuts down gracefully.
func (app *App) startServer(ctx context.Context, router *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + app.Config.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		logInfo("Shutdown signal received, shutting down server gracefully...")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", app.Config.Port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
