// Command coursecms serves the course catalog API.
//
// Configuration is read from the environment (see package config). With
// -issue-token the command prints a signed admin token and exits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonwraymond/coursecms/api"
	"github.com/jonwraymond/coursecms/auth"
	"github.com/jonwraymond/coursecms/cache"
	"github.com/jonwraymond/coursecms/catalog"
	"github.com/jonwraymond/coursecms/config"
	"github.com/jonwraymond/coursecms/health"
	"github.com/jonwraymond/coursecms/observe"
	"github.com/jonwraymond/coursecms/secret"
	"github.com/jonwraymond/coursecms/store"
)

func main() {
	issue := flag.Bool("issue-token", false, "print a signed admin token and exit")
	subject := flag.String("subject", "", "token subject for -issue-token")
	roles := flag.String("roles", auth.RoleEditor, "comma-separated roles for -issue-token")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime for -issue-token")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, secret.DefaultResolver())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *issue {
		err = issueToken(cfg, *subject, strings.Split(*roles, ","), *ttl)
	} else {
		err = run(ctx, cfg)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func issueToken(cfg *config.Config, subject string, roles []string, ttl time.Duration) error {
	if subject == "" {
		return errors.New("-subject is required")
	}
	jwtAuth, err := auth.NewJWTAuthenticator(jwtConfig(cfg))
	if err != nil {
		return err
	}
	token, err := jwtAuth.IssueToken(subject, roles, ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	obs, err := observe.NewObserver(ctx, cfg.Observe)
	if err != nil {
		return fmt.Errorf("observer: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		_ = obs.Shutdown(shutdownCtx)
	}()
	logger := obs.Logger()

	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		return err
	}

	db, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer db.Close()

	mem := cache.NewMemoryStore(cache.DefaultPolicy())
	sweeper := cache.NewSweeper(mem, cfg.CacheCleanupInterval, sweepLogger{logger})
	if err := sweeper.Start(ctx); err != nil {
		return err
	}
	defer sweeper.Stop()

	rt := cache.NewReadThrough(mem, mw.Metrics())
	cat := catalog.New(db, rt, mw)

	authn, err := authenticator(cfg)
	if err != nil {
		return err
	}

	agg := health.NewAggregator(health.AggregatorConfig{})
	agg.Register(health.NewDatabaseChecker(db, 0))
	agg.Register(health.NewCacheChecker(mem, cfg.CacheMaxEntries))

	deps := api.Deps{
		Catalog:     cat,
		Cache:       rt.Store(),
		Health:      agg,
		Authn:       authn,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	}
	if cfg.Observe.Metrics.Enabled && cfg.Observe.Metrics.Exporter == "prometheus" {
		deps.Metrics = promhttp.Handler()
	}

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      api.NewServer(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "starting server",
			observe.Field{Key: "addr", Value: cfg.ListenAddr},
			observe.Field{Key: "environment", Value: cfg.Environment},
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func jwtConfig(cfg *config.Config) auth.JWTConfig {
	return auth.JWTConfig{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		Leeway:   30 * time.Second,
	}
}

// authenticator accepts JWTs when a secret is set and API keys when any
// are configured.
func authenticator(cfg *config.Config) (auth.Authenticator, error) {
	var chain []auth.Authenticator
	if cfg.JWTSecret != "" {
		jwtAuth, err := auth.NewJWTAuthenticator(jwtConfig(cfg))
		if err != nil {
			return nil, err
		}
		chain = append(chain, jwtAuth)
	}
	if cfg.APIKeys != "" {
		keys, err := auth.ParseAPIKeys(cfg.APIKeys)
		if err != nil {
			return nil, err
		}
		chain = append(chain, auth.NewAPIKeyAuthenticator(keys))
	}
	return auth.NewCompositeAuthenticator(chain...), nil
}

// sweepLogger reports cache sweeps through the service logger.
type sweepLogger struct {
	logger observe.Logger
}

func (l sweepLogger) Swept(ctx context.Context, removed, remaining int) {
	l.logger.Debug(ctx, "cache swept",
		observe.Field{Key: "removed", Value: removed},
		observe.Field{Key: "remaining", Value: remaining},
	)
}
