package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrInvalidRequestBody is returned by DecodeJSON for malformed payloads.
var ErrInvalidRequestBody = errors.New("invalid request body")

// ErrorResponse is the JSON error envelope returned by all API endpoints.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes v as a JSON response with the given status code.
// Encoding failures after the header is written can only be logged upstream,
// so they are swallowed here.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Error writes a JSON error envelope with the given status code.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorResponse{Code: code, Message: message})
}

// DecodeJSON decodes the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrInvalidRequestBody, err)
	}
	return nil
}
