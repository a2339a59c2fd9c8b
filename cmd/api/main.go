package main

import (
	"net/http"
	"time"

	"pet-grooming-scheduler/internal/platform/env"
	"pet-grooming-scheduler/internal/platform/logger"
	"pet-grooming-scheduler/internal/router"

	"github.com/joho/godotenv"
)

// @title Pet Grooming Scheduler API
// @version 1.0
// @description Agendamiento recurrente y cobro consolidado para estética de mascotas.
// @BasePath /
func main() {
	// .env es opcional; en producción las vars vienen del entorno.
	_ = godotenv.Load()

	log := logger.NewFromEnv()

	addr := ":" + env.GetString("PORT", "8080")

	r := router.NewRouter(router.Options{
		AuthVerifier: nil, // sin verifier para modo dev
		Logger:       log,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
	}
}
