package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"celula/internal/adapters/http/api"
	"celula/internal/adapters/http/perf"
	"celula/internal/adapters/storage"
	accountStore "celula/internal/adapters/storage/account"
	memberStore "celula/internal/adapters/storage/member"
	reportStore "celula/internal/adapters/storage/report"
	roleStore "celula/internal/adapters/storage/role"
	"celula/internal/application/orchestrators"
	"celula/internal/platform/config"
	"celula/internal/platform/otel"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Setup(ctx, "celula-api", cfg.OTELEndpoint)
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// WAL, foreign keys and a busy timeout on every pooled connection
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialise database: %v", err)
	}

	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector, cfg.SlowQuery())

	stores := api.Stores{
		Accounts: accountStore.NewSQLiteStore(timedDB),
		Members:  memberStore.NewSQLiteStore(timedDB),
		Reports:  reportStore.NewSQLiteStore(timedDB),
		Roles:    roleStore.NewSQLiteStore(timedDB),
	}

	if err := orchestrators.ExecuteSeedRoles(ctx, orchestrators.SeedRolesDeps{RoleStore: stores.Roles}); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}
	created, err := orchestrators.ExecuteSeedAdmin(ctx, orchestrators.CreateAccountInput{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		CelulaID: cfg.CelulaID,
	}, orchestrators.CreateAccountDeps{AccountStore: stores.Accounts})
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if created && cfg.IsProduction() {
		slog.Warn("auth_event", "event", "admin_seeded", "email", cfg.AdminEmail, "hint", "change the password")
	}

	handler := api.NewHandler(ctx, stores, api.Options{
		Tokens:      api.NewTokens([]byte(cfg.JWTSecret), cfg.TokenTTL),
		Collector:   collector,
		SlowRequest: cfg.SlowRequest(),
		RateLimit:   20,
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown_failed", "error", err)
		}
	}()

	slog.Info("server_start", "service", "celula-api", "version", version, "addr", cfg.Addr, "env", cfg.Env)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
	slog.Info("server_stop", "service", "celula-api")
}
