package main

import (
	"database/sql"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"pet-adoption-api/internal/adapters/auth/jwtauth"
	"pet-adoption-api/internal/adapters/identity/httprole"
	pg "pet-adoption-api/internal/adapters/storage/postgres"
	"pet-adoption-api/internal/config"
	"pet-adoption-api/internal/obs"
	"pet-adoption-api/internal/platform/logger"
	"pet-adoption-api/internal/ports/auth"
	"pet-adoption-api/internal/ports/identity"
	"pet-adoption-api/internal/router"
)

func main() {
	_ = godotenv.Load() // optional .env for dev

	cfg := config.Load()
	log := logger.NewFromEnv()

	obs.Init()

	var verifier auth.AuthVerifier
	if len(cfg.JWTSecret) > 0 {
		verifier = jwtauth.NewVerifier(jwtauth.Config{
			Secret:   cfg.JWTSecret,
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
		})
	} else {
		log.Warn("AUTH_JWT_SECRET not set, running in dev auth mode", nil)
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres connection failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		db = opened
		defer db.Close()
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	var granter identity.RoleGranter
	if cfg.IdentityBaseURL != "" {
		client, err := httprole.NewClient(httprole.Config{
			BaseURL: cfg.IdentityBaseURL,
			APIKey:  cfg.IdentityAPIKey,
			Timeout: cfg.IdentityTimeout,
		})
		if err != nil {
			log.Error("identity client init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		granter = client
	}

	r := router.NewRouter(router.Options{
		AuthVerifier:   verifier,
		DB:             db,
		RoleGranter:    granter,
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
