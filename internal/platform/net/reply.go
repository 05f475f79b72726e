package net

import (
	"net/http"

	perr "khmerfold/internal/platform/errors"
)

// Wire is the envelope every JSON response is wrapped in
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func envelope(status int, reqID string) Wire {
	return Wire{StatusCode: status, Status: http.StatusText(status), RequestID: reqID}
}

// OK builds a 200 envelope
func OK(data any, reqID string) (int, Wire) {
	w := envelope(http.StatusOK, reqID)
	w.Data = data
	return http.StatusOK, w
}

// Created builds a 201 envelope
func Created(data any, reqID string) (int, Wire) {
	w := envelope(http.StatusCreated, reqID)
	w.Data = data
	return http.StatusCreated, w
}

// NoContent builds a 204 envelope
func NoContent(reqID string) (int, Wire) {
	return http.StatusNoContent, envelope(http.StatusNoContent, reqID)
}

// Error builds an error envelope; nil errors fall back to OK
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return OK(nil, reqID)
	}
	status, pw := perr.HTTP(err)
	w := envelope(status, reqID)
	w.Code = pw.Code
	w.Error = pw.Message
	w.Field = pw.Field
	return status, w
}
