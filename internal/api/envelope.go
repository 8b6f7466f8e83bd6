package api

import "time"

// Response is the envelope wrapping every API payload, success or failure.
type Response struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// OK wraps a payload in a success envelope.
func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data, Timestamp: time.Now()}
}

// Fail wraps an error message in a failure envelope.
func Fail(message string) Response {
	return Response{Success: false, Message: message, Data: nil, Timestamp: time.Now()}
}
