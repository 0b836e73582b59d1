package app

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// healthHandler reports liveness for orchestration probes.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// statusHandler reports what the process is solving, useful when polling a
// long run from the outside.
func (a *App) statusHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Status endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.Header().Set("Content-Type", "application/json")

	status := map[string]any{
		"analysis":  a.analysis.Name,
		"type":      a.analysis.Type.String(),
		"materials": len(a.analysis.Materials),
		"steps":     len(a.analysis.Steps),
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		a.logger.Error("Status encoding failed", "error", err)
	}
}

// startStatusServer runs the status HTTP server in the background for the
// duration of the process.
func (a *App) startStatusServer(port int) {
	a.logger.Debug("Configuring status server.")
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/status", a.statusHandler)

	addr := fmt.Sprintf(":%d", port)

	go func() {
		a.logger.Info("🩺 Status server starting", "address", fmt.Sprintf("http://localhost%s/status", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			a.logger.Error("Status server failed", "error", err)
		}
	}()
}
