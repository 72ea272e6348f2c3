package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/theusc6/global-impact-platform/internal/audit"
	"github.com/theusc6/global-impact-platform/internal/auth"
	"github.com/theusc6/global-impact-platform/internal/auth/revocation"
	"github.com/theusc6/global-impact-platform/internal/donation"
	"github.com/theusc6/global-impact-platform/internal/graph"
	"github.com/theusc6/global-impact-platform/internal/platform/config"
	"github.com/theusc6/global-impact-platform/internal/platform/httpserver"
	"github.com/theusc6/global-impact-platform/internal/platform/logger"
	"github.com/theusc6/global-impact-platform/internal/platform/metrics"
	platformredis "github.com/theusc6/global-impact-platform/internal/platform/redis"
	"github.com/theusc6/global-impact-platform/internal/store"
	"github.com/theusc6/global-impact-platform/internal/store/postgres"
	httptransport "github.com/theusc6/global-impact-platform/internal/transport/http"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	verifier := auth.NewVerifier(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)

	// Token denylist is optional; without Redis every verified token is
	// accepted until it expires.
	var revocations auth.RevocationChecker
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		revocations = revocation.NewRedisStore(redisClient.Client)
		log.Info("token revocation denylist enabled")
	}

	// Persistence: postgres when configured, otherwise the in-memory store
	// seeded with development fixtures.
	var stores store.Stores
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		pg := postgres.New(pool)
		stores = store.Stores{Users: pg, Charities: pg, Campaigns: pg, Donations: pg}
		log.Info("using postgres storage")
	} else {
		mem := store.NewMemory()
		store.SeedDevData(mem)
		stores = mem.Bundle()
		log.Info("using in-memory storage with dev fixtures")
	}

	inbox := make(chan audit.Event, 256)
	auditor := audit.NewService(inbox, log)
	auditWorker := audit.NewWorker(audit.NewMemoryStore(), inbox, log)

	ledger := donation.NewService(stores, auditor, log)

	resolver := graph.NewResolver(&graph.Deps{
		Log:       log,
		Metrics:   m,
		Users:     stores.Users,
		Charities: stores.Charities,
		Campaigns: stores.Campaigns,
		Donations: stores.Donations,
		Ledger:    ledger,
	})
	schema := graph.MustSchema(resolver)

	builder := auth.NewContextBuilder(verifier, revocations, log, m)
	router := httptransport.NewRouter(schema, builder)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return auditWorker.Run(gctx)
	})

	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
