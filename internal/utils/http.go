package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON encodes data as the JSON body of a response with the given
// status code and returns the number of body bytes written.
//
// The body is marshalled before any header is sent. If marshalling fails the
// caller's status is never written; the response becomes 500 Internal Server
// Error and the marshal error is returned.
//
// Example usage:
//
//	WriteJSON(w, models.NoteCreatedResponse{NoteID: id}, http.StatusCreated)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error encoding response", http.StatusInternalServerError)
		return 0, fmt.Errorf("error encoding response: %w", err)
	}
	body = append(body, '\n')

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)

	return w.Write(body)
}
