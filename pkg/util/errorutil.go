package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes used across the portal.
const (
	CodeAuthFailed          = "AUTH_FAILED"
	CodeVerificationFailed  = "VERIFICATION_FAILED"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamRejected    = "UPSTREAM_REJECTED"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, err error) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// NewAuthError reports a login or signup rejection. The message is user-facing
// and should carry the upstream detail when one was provided.
func NewAuthError(message string) error {
	return NewDomainError(CodeAuthFailed, message, http.StatusUnauthorized, nil)
}

// NewVerificationError reports a rejected credential or a malformed identity
// payload. The portal reacts by dropping the stored credential.
func NewVerificationError(message string, err error) error {
	return NewDomainError(CodeVerificationFailed, message, http.StatusUnauthorized, err)
}

// NewNetworkError reports a transport-level failure reaching the upstream API.
func NewNetworkError(err error) error {
	return NewDomainError(CodeUpstreamUnavailable, "upstream unavailable", http.StatusBadGateway, err)
}

func NewValidationError(message string) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, nil)
}

func NewInternalError(err error) error {
	return NewDomainError(CodeInternalError, "internal server error", http.StatusInternalServerError, err)
}

// HasCode reports whether err is a DomainError carrying the given code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
