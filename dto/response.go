package dto

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int64 `json:"count,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// OKList wraps a list payload together with the total count.
func OKList(data any, count int64) Response {
	return Response{Success: true, Data: data, Count: &count}
}

// Error wraps a failure message.
func Error(message string) Response {
	return Response{Success: false, Message: message}
}
