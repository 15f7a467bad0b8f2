package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"globelabels/pkg/logging"
	"globelabels/pkg/metrics"
	"globelabels/pkg/version"
)

// NewServer creates and configures the HTTP server.
// It accepts the label handler, the stream hub and a shutdownFunc for graceful shutdown.
func NewServer(addr string, labels *LabelsHandler, stream *StreamHub, shutdown func()) *http.Server {
	mux := http.NewServeMux()

	// 1. Health and version
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /api/version", handleVersion)

	// 2. Logs and metrics
	mux.HandleFunc("GET /api/log/latest", handleLatestLog)
	mux.HandleFunc("GET /api/log/recent", handleRecentLog)
	mux.Handle("GET /metrics", metrics.Handler())

	// 3. Label engine
	mux.HandleFunc("GET /api/labels/state", labels.HandleState)
	mux.HandleFunc("GET /api/labels/visible", labels.HandleVisible)
	mux.HandleFunc("POST /api/labels/zoom", labels.HandleZoom)
	mux.HandleFunc("POST /api/labels/toggles", labels.HandleToggles)
	mux.HandleFunc("POST /api/labels/empires", labels.HandleEmpires)
	mux.HandleFunc("POST /api/labels/aspects", labels.HandleAspects)
	mux.HandleFunc("POST /api/labels/reload", labels.HandleReload)

	// 4. Renderer stream
	if stream != nil {
		mux.HandleFunc("GET /api/labels/stream", stream.HandleStream)
	}

	// 5. Shutdown
	if shutdown != nil {
		mux.HandleFunc("POST /api/shutdown", func(w http.ResponseWriter, r *http.Request) {
			slog.Info("Graceful shutdown initiated via API")
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write([]byte("Shutting down...")); err != nil {
				slog.Error("Failed to write shutdown response", "error", err)
			}
			// Let the response flush first.
			go func() {
				time.Sleep(100 * time.Millisecond)
				shutdown()
			}()
		})
	}

	return &http.Server{
		Addr:         addr,
		Handler:      loggingMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.RequestLogger.Info("Request Processed", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Failed to write health response", "error", err)
	}
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"version": version.Version})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}
