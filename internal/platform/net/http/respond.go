package http

import (
	"encoding/json"
	stdhttp "net/http"

	"khmerfold/internal/platform/logger"
	pnet "khmerfold/internal/platform/net"
)

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Named("http").Debug().Err(err).Msg("encode response")
	}
}

// RespondOK writes a 200 envelope
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	status, env := pnet.OK(data, pnet.RequestID(r.Context()))
	JSON(w, status, env)
}

// RespondError writes the envelope for err
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, env := pnet.Error(err, pnet.RequestID(r.Context()))
	if status >= stdhttp.StatusInternalServerError {
		logger.C(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	}
	JSON(w, status, env)
}

// Response is what return-style handlers hand back
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a return-style handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	reqID := pnet.RequestID(r.Context())
	switch status {
	case stdhttp.StatusNoContent:
		w.WriteHeader(status)
	case stdhttp.StatusCreated:
		_, env := pnet.Created(resp.Body, reqID)
		JSON(w, status, env)
	default:
		_, env := pnet.OK(resp.Body, reqID)
		env.StatusCode, env.Status = status, stdhttp.StatusText(status)
		JSON(w, status, env)
	}
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response whose status comes from err
func Error(err error) Response { return Response{Body: err} }
