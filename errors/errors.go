// Package errors provides an API for errors across the application.
package errors

import (
	"fmt"
	"net/http"
)

// RequestError is an error that carries the HTTP status to answer with.
type RequestError struct {
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func BadRequest(format string, a ...interface{}) *RequestError {
	return &RequestError{StatusCode: http.StatusBadRequest, Err: fmt.Errorf(format, a...)}
}

func NotFound(err error) *RequestError {
	return &RequestError{StatusCode: http.StatusNotFound, Err: err}
}
