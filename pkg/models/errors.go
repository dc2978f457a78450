package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError is an error reported by reddit inside a 2xx response body, as
// `{"json": {"errors": [[CODE, message, field], ...]}}`. Only the first
// error of the envelope is surfaced.
type APIError struct {
	Code    string
	Message string
	Field   string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("reddit API error %s: %s (field %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("reddit API error %s: %s", e.Code, e.Message)
}

// conflictCodes are API errors meaning the requested state already holds,
// as opposed to the request having failed.
var conflictCodes = map[string]bool{
	"LIVEUPDATE_ALREADY_CONTRIBUTOR": true,
	"ALREADY_MODERATOR":              true,
	"CONFLICT":                       true,
}

// Conflict reports whether the error means "already done" rather than
// "request failed".
func (e *APIError) Conflict() bool {
	return conflictCodes[e.Code]
}

// IsConflict reports whether err (or anything it wraps) is a
// conflict-class APIError.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Conflict()
}

// RequestError is a transport-level failure: the server answered with a
// non-2xx status.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// errorEnvelope mirrors the reddit api_type=json response wrapper.
type errorEnvelope struct {
	JSON struct {
		Errors [][]json.RawMessage `json:"errors"`
	} `json:"json"`
}

// ExtractAPIError inspects a response body for the reddit error envelope.
// It returns nil when the body carries no errors (including when the body
// is not the envelope shape at all).
func ExtractAPIError(body []byte) *APIError {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	if len(envelope.JSON.Errors) == 0 {
		return nil
	}

	// each entry is [CODE, message, field], field sometimes null
	apiErr := &APIError{}
	parts := envelope.JSON.Errors[0]
	fields := []*string{&apiErr.Code, &apiErr.Message, &apiErr.Field}
	for i, target := range fields {
		if i < len(parts) {
			json.Unmarshal(parts[i], target)
		}
	}
	return apiErr
}
