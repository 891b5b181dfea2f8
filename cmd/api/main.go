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

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/streetwise-app/backend/internal/analysis/entities"
	"github.com/streetwise-app/backend/internal/config"
	"github.com/streetwise-app/backend/internal/handler"
	"github.com/streetwise-app/backend/internal/model/persona"
	"github.com/streetwise-app/backend/internal/service/guide"
	"github.com/streetwise-app/backend/internal/service/recommend"
	"github.com/streetwise-app/backend/internal/service/rewrite"
	weatherService "github.com/streetwise-app/backend/internal/service/weather"
	"github.com/streetwise-app/backend/internal/storage"
	"github.com/streetwise-app/backend/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	personaStore := persona.NewMemoryStore(persona.Seed())

	var emitter telemetry.Emitter = telemetry.Noop{}
	if cfg.Telemetry.Enabled {
		emitter = telemetry.NewLogEmitter(logrus.StandardLogger())
	}

	if !cfg.Recommend.Enabled() {
		log.Println("warning: YELP_API_KEY not configured, chat turns will fail until it is set")
	}
	recommendCfg := recommend.Config{
		APIKey:        cfg.Recommend.APIKey,
		BaseURL:       cfg.Recommend.BaseURL,
		SearchBaseURL: cfg.Recommend.SearchBaseURL,
		Retries:       cfg.Recommend.Retries,
		Backoff:       cfg.Recommend.Backoff,
	}

	rewriter := buildRewriter(ctx, personaStore, cfg.Rewrite, emitter)

	var weatherSvc guide.WeatherFetcher
	if cfg.Weather.Enabled() {
		weatherSvc = weatherService.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL)
		log.Println("weather service initialized")
	} else {
		log.Println("weather credential not configured, skipping weather context")
	}

	var tokens storage.TokenStore
	if fileStore, err := storage.NewFileTokenStore(cfg.Storage.TokenDir); err != nil {
		log.Printf("warning: session token store unavailable (%v), falling back to memory", err)
	} else {
		tokens = fileStore
	}

	guideSvc := guide.NewService(
		personaStore,
		recommendCfg,
		weatherSvc,
		rewriter,
		tokens,
		entities.NewSlotCache(),
		emitter,
	)

	router := handler.NewRouter(personaStore, guideSvc)

	startServer(ctx, cfg.Server, router)
}

// buildRewriter assembles the provider chain in configured priority order.
// Providers without credentials are skipped at startup.
func buildRewriter(ctx context.Context, personas persona.Store, cfg config.RewriteConfig, emitter telemetry.Emitter) *rewrite.Rewriter {
	var providers []rewrite.Provider
	for _, name := range cfg.Providers {
		switch name {
		case "ark":
			if !cfg.Ark.Enabled() {
				log.Println("ark credentials not configured, skipping ark rewrite provider")
				continue
			}
			chatModel, err := cfg.Ark.NewChatModel(ctx)
			if err != nil {
				log.Printf("warning: failed to initialize ark chat model: %v", err)
				continue
			}
			provider, err := rewrite.NewArkProvider(ctx, chatModel)
			if err != nil {
				log.Printf("warning: failed to initialize ark rewrite provider: %v", err)
				continue
			}
			providers = append(providers, provider)
			log.Println("ark rewrite provider initialized")
		case "openai":
			if !cfg.OpenAI.Enabled() {
				log.Println("openai credentials not configured, skipping openai rewrite provider")
				continue
			}
			providers = append(providers, rewrite.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL))
			log.Println("openai rewrite provider initialized")
		}
	}
	if len(providers) == 0 {
		log.Println("no rewrite providers configured, replies will use persona fallback styling")
	}

	return rewrite.New(personas, providers, cfg.Timeout, emitter)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Streetwise backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
