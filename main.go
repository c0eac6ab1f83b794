package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lazada_callback/config"
	"lazada_callback/exchange"
	"lazada_callback/lazada"
	"lazada_callback/logger"
	"lazada_callback/mail"
	"lazada_callback/server"
	"lazada_callback/sms"
)

func main() {
	envErr := config.LoadEnvFile(config.DefaultEnvFile)

	logger.Init()
	log := logger.Logger
	if envErr != nil {
		log.Warn().Err(envErr).Msg("could not load settings.env, falling back to system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if !cfg.EmailsEnabled() {
		log.Warn().Msg("SMTP_HOST or EMAILS_FROM_EMAIL not set; callbacks will fail to send email")
	}

	deps := exchange.Deps{
		Tokens: lazada.NewClient(cfg.LazadaRootURL, cfg.LazadaAppKey, cfg.LazadaAppSecret,
			lazada.WithTimeout(cfg.LazadaTimeout)),
		Notifier:  mail.NewSender(cfg, mail.NewDialer(cfg), log),
		Recipient: cfg.EmailTo,
		Logger:    log,
	}
	if cfg.SMSEnabled() {
		deps.Alerter = sms.NewTwilioAlerter(cfg, log)
		log.Info().Msg("twilio operator alerts enabled")
	}

	handler := server.NewHandler(
		lazada.NewAuthorizer(cfg.LazadaAuthURL, cfg.LazadaAppKey, cfg.LazadaCallbackURI),
		exchange.NewService(deps),
		cfg.ProjectName,
		log,
	)

	router, err := server.NewRouter(server.Deps{
		Handler:        handler,
		Logger:         log,
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("project", cfg.ProjectName).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
