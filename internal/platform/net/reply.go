package net

import (
	"net/http"
	"sync/atomic"

	perr "kristech/internal/platform/errors"
)

// InternalMessage is the public message for 5xx replies without a coded message
const InternalMessage = "Internal server error"

var exposeDetail atomic.Bool

// ExposeErrorDetail toggles the error field on 5xx replies
// on outside production so developers see the root cause
func ExposeErrorDetail(on bool) { exposeDetail.Store(on) }

// ErrorDetailExposed reports the current toggle
func ErrorDetailExposed() bool { return exposeDetail.Load() }

// Reply is the JSON body shared by the API endpoints
type Reply struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Data    any              `json:"data,omitempty"`
	Errors  []perr.Violation `json:"errors,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// OK builds a 200 reply
func OK(data any) (int, Reply) {
	return http.StatusOK, Reply{Success: true, Data: data}
}

// Message builds a successful reply with a human message
func Message(status int, msg string, data any) (int, Reply) {
	return status, Reply{Success: true, Message: msg, Data: data}
}

// Error builds an error reply from any error
// coded errors keep their message; uncoded 5xx collapse to InternalMessage
func Error(err error) (int, Reply) {
	if err == nil {
		return OK(nil)
	}
	status := perr.HTTPStatus(err)
	out := Reply{Success: false}

	if e, ok := perr.As(err); ok {
		out.Message = e.Message()
		out.Errors = e.Violations()
	} else if status < http.StatusInternalServerError {
		out.Message = err.Error()
	}
	if out.Message == "" {
		out.Message = InternalMessage
	}
	if status >= http.StatusInternalServerError && exposeDetail.Load() {
		if root := perr.Root(err); root != nil {
			out.Error = root.Error()
		}
	}
	return status, out
}
