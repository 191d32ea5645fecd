package eventsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes returned in the "error" field of failure responses.
const (
	ErrorCodeInvalidRequest      = "invalid_request"
	ErrorCodeInvalidCredentials  = "invalid_credentials"
	ErrorCodeAccountNotActivated = "account_not_activated"
	ErrorCodeActivationInvalid   = "activation_invalid"
	ErrorCodeUnauthorized        = "unauthorized"
	ErrorCodeForbidden           = "forbidden"
	ErrorCodeNotFound            = "not_found"
	ErrorCodeConflict            = "conflict"
	ErrorCodeServerError         = "server_error"
)

// APIError is the wire shape of every failure response. It implements the
// error interface for SDK callers and carries the HTTP status for the server
// side.
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable description of the error.
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WithDescription returns a copy of the error with a different description,
// keeping the code and status.
func (e *APIError) WithDescription(desc string) *APIError {
	return &APIError{StatusCode: e.StatusCode, Code: e.Code, Description: desc}
}

// WriteError writes the error to an HTTP response writer as JSON.
func (e *APIError) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// Predefined errors shared by server handlers and the SDK.
var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid username or password",
	}

	// ErrAccountNotActivated is distinct from invalid credentials: it is
	// only returned when the supplied credentials were correct.
	ErrAccountNotActivated = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccountNotActivated,
		Description: "account has not been activated, check your email for the activation link",
	}

	// ErrActivationInvalid deliberately does not say why the activation
	// failed.
	ErrActivationInvalid = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeActivationInvalid,
		Description: "activation link is invalid or has expired",
	}

	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "authentication required",
	}

	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "you do not have permission to perform this action",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "the requested resource does not exist",
	}

	ErrConflict = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "the resource already exists",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "an internal error occurred",
	}
)

// parseError decodes a failure response body into an APIError. If the body
// is not the expected shape the status code alone is preserved.
func parseError(statusCode int, body []byte) *APIError {
	var e APIError
	if err := json.Unmarshal(body, &e); err != nil || e.Code == "" {
		return &APIError{
			StatusCode:  statusCode,
			Code:        ErrorCodeServerError,
			Description: fmt.Sprintf("unexpected response (status %d)", statusCode),
		}
	}
	e.StatusCode = statusCode
	return &e
}
