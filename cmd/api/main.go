package main

import (
	"database/sql"
	"log"
	"net/http"
	"strings"
	"time"

	"pet-adoption-api/internal/adapters/auth/sessions"
	pg "pet-adoption-api/internal/adapters/storage/postgres"
	"pet-adoption-api/internal/platform/config"
	"pet-adoption-api/internal/platform/logger"
	"pet-adoption-api/internal/ports/auth"
	"pet-adoption-api/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	appLog := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	// Verifier solo si el servicio de sesiones está configurado.
	// Si no, AuthContext queda en modo dev (X-Debug-User-ID).
	var verifier auth.AuthVerifier
	if strings.TrimSpace(cfg.SessionsBaseURL) != "" && strings.TrimSpace(cfg.SessionsAPIKey) != "" {
		client, err := sessions.NewClient(sessions.Config{
			BaseURL: cfg.SessionsBaseURL,
			APIKey:  cfg.SessionsAPIKey,
			Timeout: cfg.SessionsTimeout,
		})
		if err != nil {
			log.Fatalf("sessions client error: %v", err)
		}
		verifier = sessions.NewVerifier(client)
		appLog.Info("auth: sessions verifier enabled", nil)
	} else {
		appLog.Warn("auth: dev mode (X-Debug-User-ID)", nil)
	}

	var db *sql.DB
	if strings.TrimSpace(cfg.DBDSN) != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Fatalf("db error: %v", err)
		}
		defer db.Close()
		appLog.Info("storage: postgres", nil)
	} else {
		appLog.Warn("storage: in-memory (datos volátiles)", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Log:          appLog,
	})

	addr := ":" + cfg.Port

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	appLog.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
