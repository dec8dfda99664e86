package errors

import (
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func NotFound(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusNotFound}
}

func BadRequest(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest}
}

// Conflict covers the deterministic policy rejections: closed board,
// forbidden redraw.
func Conflict(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusConflict}
}

// CooldownError is returned when a placement lands inside the actor's
// cooldown window. Handlers surface RetryAfterSeconds in a Retry-After
// header so clients can render "wait N seconds".
type CooldownError struct {
	RetryAfterSeconds int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("Cooldown active: retry after %d seconds", e.RetryAfterSeconds)
}
