// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "kristech/internal/platform/net/http"
	"kristech/internal/platform/net/http/bind"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope
	// Response is the HTTP response type
	Response = phttp.Response
	// Handler is the platform handler type
	Handler = phttp.Handler
	// Router is a re-export of the platform router seam
	Router = phttp.Router
	// JSONOptions tunes body decoding for JSON handlers
	JSONOptions = bind.JSONOptions
)

// OK returns a 200 envelope
func OK(data any) Response { return phttp.OK(data) }

// Message returns a success envelope carrying a human message
func Message(status int, msg string, data any) Response { return phttp.Message(status, msg, data) }

// Raw writes body exactly as given
func Raw(status int, body any) Response { return phttp.Raw(status, body) }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// JSON decodes and validates T before calling fn
func JSON[T any](fn func(*http.Request, T) (any, error), opts ...JSONOptions) Handler {
	return phttp.JSONHandler(fn, opts...)
}

// Decode parses the request body into T with the given options
// handlers that own their error mapping use this instead of JSON
func Decode[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	return bind.ParseJSON[T](r, opts...)
}

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.JSONHandlerNoBody(fn)
}

// Handle adapts a Response-returning function
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}
