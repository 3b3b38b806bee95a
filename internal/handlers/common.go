package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// storeTimeout bounds every profile-store round trip issued by a handler.
const storeTimeout = 10 * time.Second

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
