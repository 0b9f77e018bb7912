package errors

import (
	"fmt"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ConfigurationError is returned when the app secret is not configured
// or the OAuth callback carries no hmac parameter
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "HMAC missing or secret not set"
}

// SignatureError is returned when the computed HMAC does not match the received one
type SignatureError struct{}

func (e *SignatureError) Error() string {
	return "HMAC validation failed"
}

// OAuthExchangeError is returned when the token endpoint does not grant an access token
type OAuthExchangeError struct {
	StatusCode int
	Body       string
}

func (e *OAuthExchangeError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("error in OAuth process: %s", e.Body)
	}
	return fmt.Sprintf("error in OAuth process: status %d, body: %s", e.StatusCode, e.Body)
}
