// Package main is the entry point for the snipdrop server. It reads
// configuration from the environment, builds the logger, and hands
// everything to internal/server — no application logic lives here.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/nabil/snipdrop/internal/server"
)

func main() {
	// .env is a local-development convenience; absence is not an error.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.String("error", err.Error()))
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	dbPath := "data/snipdrop.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	uploadDir := "uploads"
	if envDir := os.Getenv("UPLOAD_DIR"); envDir != "" {
		uploadDir = envDir
	}

	bcryptCost := 0 // 0 lets the password service pick its default
	if costStr := os.Getenv("BCRYPT_COST"); costStr != "" {
		var err error
		bcryptCost, err = strconv.Atoi(costStr)
		if err != nil {
			logger.Error("invalid BCRYPT_COST value", slog.String("value", costStr))
			os.Exit(1)
		}
	}

	cfg := server.Config{
		Port:       port,
		DBPath:     dbPath,
		UploadDir:  uploadDir,
		BcryptCost: bcryptCost,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until shutdown (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func logLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
