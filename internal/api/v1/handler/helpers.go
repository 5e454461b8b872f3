package handler

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error          string   `json:"error"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
