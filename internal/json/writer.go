package json

import (
	"encoding/json"
	"net/http"

	"github.com/cmu-oauth/session-front/internal/log"
)

// Failure is the body of every unsuccessful API response
type Failure struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Success is the bare acknowledgement body
type Success struct {
	OK bool `json:"ok"`
}

// WriteResponse writes a JSON response with the given status code
func WriteResponse(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.LogError("Failed to encode JSON response: %v", err)
		return err
	}
	return nil
}

// Write writes a JSON response with 200 OK status
func Write(w http.ResponseWriter, data any) error {
	return WriteResponse(w, http.StatusOK, data)
}

// WriteOK writes {"ok":true}
func WriteOK(w http.ResponseWriter) {
	_ = Write(w, Success{OK: true})
}

// WriteFailure writes {"ok":false,"message":...} with the given status
func WriteFailure(w http.ResponseWriter, statusCode int, message string) {
	if err := WriteResponse(w, statusCode, Failure{OK: false, Message: message}); err != nil {
		http.Error(w, message, statusCode)
	}
}

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteFailure(w, http.StatusBadRequest, message)
}

func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteFailure(w, http.StatusUnauthorized, message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteFailure(w, http.StatusNotFound, message)
}

func WriteInternalServerError(w http.ResponseWriter, message string) {
	WriteFailure(w, http.StatusInternalServerError, message)
}
