package http

import (
	"net/http"

	"khmerfold/internal/platform/net/http/bind"
)

// JSONHandler decodes and validates T, then answers fn's result with 200.
// A Response returned by fn is written as is, so fn can pick its own status
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return withBody(fn, OK)
}

// CreatedHandler is JSONHandler answering 201
func CreatedHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return withBody(fn, Created)
}

// JSONHandlerNoBody calls fn without reading a body
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		return result(out, err, OK)
	})
}

func withBody[T any](fn func(*http.Request, T) (any, error), ok func(any) Response) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		return result(out, err, ok)
	})
}

func result(out any, err error, ok func(any) Response) Response {
	if err != nil {
		return Error(err)
	}
	if resp, isResp := out.(Response); isResp {
		return resp
	}
	return ok(out)
}
