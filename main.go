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

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-api/config"
	"github.com/Zachkp/portfolio-api/internal/api"
	"github.com/Zachkp/portfolio-api/internal/contact"
	"github.com/Zachkp/portfolio-api/internal/logger"
	"github.com/Zachkp/portfolio-api/internal/metrics"
	"github.com/Zachkp/portfolio-api/internal/sheet"
	"github.com/Zachkp/portfolio-api/internal/visits"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logr := logger.Init("portfolio", cfg.App.Environment)
	defer logr.SafeSync()

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *visits.Store
	if cfg.Visits.Enabled() {
		store, err = visits.Open(ctx, cfg.Visits.DBPath)
		if err != nil {
			logr.Fatalw("failed to open visits database", "path", cfg.Visits.DBPath, "error", err)
		}
		defer store.Close()

		if n, err := store.Cleanup(ctx); err != nil {
			logr.Warnw("visit retention cleanup failed", "error", err)
		} else if n > 0 {
			logr.Infow("visit retention cleanup", "removed", n)
		}
		logr.Infow("visitor tracking enabled with hashed IP addresses", "path", cfg.Visits.DBPath)
	}

	fetcher := sheet.NewFetcher(cfg.Sheet.URL, sheet.WithTimeout(cfg.Sheet.Timeout))
	relay := contact.NewRelay(newSender(cfg.Mail), cfg.Mail.From, cfg.Mail.To, logr)
	m := metrics.New()

	router := api.NewRouter(api.RouterConfig{
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		Handler:     api.NewHandler(fetcher, relay, m, logr, cfg.Sheet.RequireID),
		Metrics:     m,
		Log:         logr,
		Visits:      store,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Infow("listening", "addr", srv.Addr, "mail_provider", cfg.Mail.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Errorw("graceful shutdown failed", "error", err)
	}
	logr.Infow("server stopped")
}

func newSender(c config.MailConfig) contact.Sender {
	if c.Provider == config.ProviderSMTP {
		return contact.NewSMTPSender(c.SMTPHost, c.SMTPPort, c.SMTPUser, c.SMTPPass)
	}
	return contact.NewSendGridSender(c.SendGridKey, c.SendGridHost)
}
