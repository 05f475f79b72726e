package http

import "net/http"

// GetJSON mounts a body-less JSON handler for GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(h))
}

// DeleteJSON mounts a body-less JSON handler for DELETE
func DeleteJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, JSONHandlerNoBody(h))
}

// PostJSON mounts a bound JSON handler for POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(h))
}

// CreateJSON mounts a bound JSON handler for POST answering 201
func CreateJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, CreatedHandler(h))
}
