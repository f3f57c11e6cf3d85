package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-2xx backend response carrying the error detail body.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// UserMessage maps known domain failures onto the strings shown to the user.
func (e *APIError) UserMessage() string {
	switch e.StatusCode {
	case http.StatusForbidden:
		return "This trade was not made by your wallet"
	case http.StatusNotFound:
		return "Trade not found yet, try again in a moment"
	case http.StatusConflict:
		return "This trade has already been posted"
	default:
		if e.Detail != "" {
			return e.Detail
		}
		return "Something went wrong, please try again"
	}
}

func newAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(body) > 0 {
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &detail) == nil && detail.Detail != "" {
			apiErr.Detail = detail.Detail
		}
	}
	return apiErr
}
