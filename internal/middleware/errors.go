package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError uses the same envelope as the API handlers.
func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
