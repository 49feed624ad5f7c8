package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"resourceplanner/internal/api"
	"resourceplanner/internal/middleware"
	"resourceplanner/internal/storage/sqlite"
	"resourceplanner/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/planner.db")
	port := getEnv("PORT", "8080")

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	server := api.NewServer(store)
	mux := server.Routes()
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.Logging(middleware.Metrics(middleware.CORS(mux)))

	// h2c allows HTTP/2 without TLS for clients that want it.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%s", port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
