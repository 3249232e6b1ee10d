// Package response writes the API's JSON and binary response shapes.
package response

import (
	"encoding/json"
	"io"
	"net/http"
)

// Message is the envelope used for status responses.
type Message struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WriteMessage writes a status envelope with the given code.
func WriteMessage(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Message{Code: code, Message: message})
}

// WriteData writes a JSON data payload with the given code.
func WriteData(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteRawJSON writes an already-encoded JSON document.
func WriteRawJSON(w http.ResponseWriter, code int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

// WritePNG streams a PNG image body.
func WritePNG(w http.ResponseWriter, reader io.Reader) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, reader)
}
