// Package httpx provides JSON response utilities shared by all HTTP handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Envelope is the response shape every endpoint returns.
type Envelope struct {
	Success    bool   `json:"success"`
	Data       any    `json:"data,omitempty"`
	Pagination any    `json:"pagination,omitempty"`
	Meta       any    `json:"meta,omitempty"`
	ID         *int64 `json:"id,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

// JSON sends an arbitrary payload with the given status code.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// OK sends a success envelope with data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// OKMeta sends a success envelope with data and a meta block.
func OKMeta(w http.ResponseWriter, data, meta any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Meta: meta})
}

// OKPage sends a success envelope with data and pagination info.
func OKPage(w http.ResponseWriter, data, pagination any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: pagination})
}

// Created acknowledges a write with the new row id.
func Created(w http.ResponseWriter, message string, id int64) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Message: message, ID: &id})
}

// Fail sends a failure envelope.
func Fail(w http.ResponseWriter, status int, errMsg string) {
	JSON(w, status, Envelope{Success: false, Error: errMsg})
}

// DecodeJSON decodes the request body into target. An empty body is not a
// decode error; missing fields are reported by the validation layer instead.
func DecodeJSON(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
