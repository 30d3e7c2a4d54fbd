package dto

import "net/http"

const (
	MessageSucceeded = "request succeeded"
	MessageFailed    = "request failed"
)

// Envelope is the body of every JSON response the service writes.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func OK[T any](data T) Envelope[T] {
	return Envelope[T]{
		Success: true,
		Data:    data,
		Message: MessageSucceeded,
		Code:    http.StatusOK,
	}
}

// Err builds a failure envelope; data is always null.
func Err(message string, code int) Envelope[any] {
	return Envelope[any]{
		Success: false,
		Message: message,
		Code:    code,
	}
}

// Failed is the generic failure used for unmatched routes and panics.
func Failed() Envelope[any] {
	return Err(MessageFailed, http.StatusInternalServerError)
}
