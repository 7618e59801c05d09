package api

import "time"

// Response is the JSON envelope for non-redirect responses.
type Response struct {
	Data          any    `json:"data,omitempty"`
	Success       bool   `json:"success"`
	StatusMessage string `json:"status_message"`
	Timestamp     string `json:"timestamp"`
}

func ok(data any) Response {
	return Response{
		Data:          data,
		Success:       true,
		StatusMessage: "Success",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
}

func failure(message string) Response {
	return Response{
		Success:       false,
		StatusMessage: message,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
}
