// Package http provides helpers for writing JSON responses with a consistent envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "kristech/internal/platform/net"
)

// Envelope is the standard response body for the API endpoints
type Envelope = pnet.Reply

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError maps a project error into an envelope and writes it
func RespondError(w stdhttp.ResponseWriter, err error) {
	status, body := pnet.Error(err)
	JSON(w, status, body)
}

//
// Return-style helpers for early returns in handlers
//

// Response is a functional response object for return-style handlers
// Body is written verbatim unless it is an error
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w)
	}
}

// WithHeader returns a copy of resp carrying an extra header
func (resp Response) WithHeader(key, value string) Response {
	h := stdhttp.Header{}
	for k, vv := range resp.Header {
		h[k] = append([]string(nil), vv...)
	}
	h.Add(key, value)
	resp.Header = h
	return resp
}

func (resp Response) write(w stdhttp.ResponseWriter) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}

	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, err)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}
	JSON(w, status, resp.Body)
}

// OK returns a 200 envelope carrying data
func OK(data any) Response {
	status, body := pnet.OK(data)
	return Response{Status: status, Body: body}
}

// Message returns a successful envelope with a human message and optional data
func Message(status int, msg string, data any) Response {
	status, body := pnet.Message(status, msg, data)
	return Response{Status: status, Body: body}
}

// Raw returns a response whose body is written exactly as given
func Raw(status int, body any) Response { return Response{Status: status, Body: body} }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }
