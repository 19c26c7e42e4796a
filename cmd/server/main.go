package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"celula/internal/adapters/apiclient"
	"celula/internal/adapters/auth"
	emailPkg "celula/internal/adapters/email"
	web "celula/internal/adapters/http"
	"celula/internal/adapters/http/perf"
	"celula/internal/application/lookup"
	"celula/internal/platform/config"
	"celula/internal/platform/i18n"
	"celula/internal/platform/otel"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.LoadWeb()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Setup(ctx, "celula-web", cfg.OTELEndpoint)
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// One session serves every request; a configured token skips the login screen.
	session := auth.NewContext()
	if cfg.APIToken != "" {
		if err := session.Login(cfg.APIToken, ""); err != nil {
			log.Fatalf("CELULA_API_TOKEN: %v", err)
		}
	}

	collector := perf.NewCollector(perf.DefaultRingSize)
	client := apiclient.New(cfg.APIURL, session,
		apiclient.WithCollector(collector),
		apiclient.WithSlowThreshold(cfg.SlowQuery()),
	)

	lang, ok := i18n.Parse(cfg.Lang)
	if !ok {
		slog.Warn("config_fallback", "key", "CELULA_LANG", "value", cfg.Lang, "using", lang.String())
	}

	var mailer *emailPkg.ReportMailer
	if cfg.SupervisorEmail != "" {
		var sender emailPkg.Sender = emailPkg.NewNoopSender()
		if cfg.ResendKey != "" {
			sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.MailFrom)
		} else if cfg.IsProduction() {
			slog.Warn("mail_disabled", "reason", "CELULA_RESEND_KEY is not set")
		}
		mailer = &emailPkg.ReportMailer{Sender: sender, To: cfg.SupervisorEmail, Printer: i18n.Printer(lang)}
	}

	handler := web.NewMux(ctx, web.Deps{
		Client:    client,
		Session:   session,
		Lookups:   lookup.New(client, 0),
		Mailer:    mailer,
		Collector: collector,
	}, web.Options{
		CelulaID:    cfg.CelulaID,
		Lang:        lang,
		CSRFKey:     []byte(cfg.CSRFKey),
		Secure:      cfg.IsProduction(),
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

	slog.Info("server_start", "service", "celula-web", "version", version, "addr", cfg.Addr, "api", cfg.APIURL, "env", cfg.Env)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
	slog.Info("server_stop", "service", "celula-web")
}
