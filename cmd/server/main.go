package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/mail"
	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logCloser := logging.Setup(cfg.LogLevel, cfg.LogFile)
	defer logCloser.Close()

	store, err := repository.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer store.Close()
	slog.Info("database connected", "backend", store.Backend)

	reg := metrics.NewRegistry()
	m := metrics.New(reg)

	// 送信経路は起動時に一度だけ決める
	source := mail.NewTransportSource(cfg.Mail, mail.NewEtherealClient(cfg.Mail.EtherealAPIURL))
	if cfg.Mail.UsesProductionMail() {
		slog.Info("mail transport selected", "transport", "gmail", "from", cfg.Mail.OperatorEmail)
	} else {
		slog.Warn("GMAIL_APP_PASSWORD not set, using throwaway Ethereal accounts")
	}
	sender := mail.NewSMTPSender(cfg.Mail.FromName, cfg.Mail.OperatorEmail, source, cfg.Mail.SendTimeout)
	composer := mail.Composer{Operator: cfg.Mail.OperatorEmail, Signature: cfg.Mail.Signature}

	contactService := service.NewContactService(store.Contacts, sender, composer, m)
	contentService := service.NewContentService(store.Content)

	h := handler.New(store.DB, cfg.FrontendURL)
	contactHandler := handler.NewContactHandler(contactService)
	contentHandler := handler.NewContentHandler(contentService)

	contactLimiter := handler.NewRateLimiter(cfg.ContactRatePerMinute)
	defer contactLimiter.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("POST /api/contact", contactLimiter.Middleware(http.HandlerFunc(contactHandler.Submit)))

	// 一覧 API（フィルタ・ページングなし）
	mux.HandleFunc("GET /api/social-links", contentHandler.SocialLinks)
	mux.HandleFunc("GET /api/experiences", contentHandler.Experiences)
	mux.HandleFunc("GET /api/projects", contentHandler.Projects)
	mux.HandleFunc("GET /api/achievements", contentHandler.Achievements)

	mux.Handle("GET /metrics", metrics.Handler(reg))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.RequestLogger(m)(handler.SecurityHeaders(h.CORS(mux))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// contact の送信完了を待つため送信タイムアウト分を上乗せ
		WriteTimeout: cfg.Mail.SendTimeout + 10*time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
