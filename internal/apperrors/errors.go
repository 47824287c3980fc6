package apperrors

import "fmt"

// ErrConfiguration indicates a missing or unusable credential/setting.
// It is fatal: no search is attempted until the configuration is fixed.
type ErrConfiguration struct {
	Setting string
	Reason  string
}

// Error implements the error interface.
func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Setting, e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrConfiguration) Is(target error) bool {
	_, ok := target.(*ErrConfiguration)
	return ok
}

// NewConfigurationError creates a new ErrConfiguration.
func NewConfigurationError(setting, reason string) *ErrConfiguration {
	return &ErrConfiguration{Setting: setting, Reason: reason}
}

// ErrAuthentication indicates the catalog rejected the API key (HTTP 401/403).
// It aborts the whole search cascade.
type ErrAuthentication struct {
	StatusCode int
}

// Error implements the error interface.
func (e *ErrAuthentication) Error() string {
	return fmt.Sprintf("catalog rejected credentials (HTTP %d)", e.StatusCode)
}

// Is allows for error checking with errors.Is().
func (e *ErrAuthentication) Is(target error) bool {
	_, ok := target.(*ErrAuthentication)
	return ok
}

// ErrRateLimited indicates search-time throttling (HTTP 429 on search).
// It aborts the whole search cascade.
type ErrRateLimited struct{}

// Error implements the error interface.
func (e *ErrRateLimited) Error() string {
	return "catalog rate limit exceeded"
}

// Is allows for error checking with errors.Is().
func (e *ErrRateLimited) Is(target error) bool {
	_, ok := target.(*ErrRateLimited)
	return ok
}

// ErrQuotaExceeded indicates the daily download quota is exhausted
// (HTTP 429 on the download endpoint). It aborts that download only.
type ErrQuotaExceeded struct {
	SubtitleID string
}

// Error implements the error interface.
func (e *ErrQuotaExceeded) Error() string {
	if e.SubtitleID != "" {
		return fmt.Sprintf("daily download quota exceeded (subtitle %s)", e.SubtitleID)
	}
	return "daily download quota exceeded"
}

// Is allows for error checking with errors.Is().
func (e *ErrQuotaExceeded) Is(target error) bool {
	_, ok := target.(*ErrQuotaExceeded)
	return ok
}

// ErrServiceUnavailable covers timeouts, connection failures, and HTTP 503.
// Safe to retry later; aborts the current cascade.
type ErrServiceUnavailable struct {
	Cause error
}

// Error implements the error interface.
func (e *ErrServiceUnavailable) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog unavailable: %v", e.Cause)
	}
	return "catalog unavailable"
}

// Unwrap exposes the underlying transport error.
func (e *ErrServiceUnavailable) Unwrap() error {
	return e.Cause
}

// Is allows for error checking with errors.Is().
func (e *ErrServiceUnavailable) Is(target error) bool {
	_, ok := target.(*ErrServiceUnavailable)
	return ok
}

// ErrProviderContract indicates the catalog violated its response contract:
// malformed JSON, an unexpected status code, or an empty download body.
type ErrProviderContract struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *ErrProviderContract) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("unexpected catalog response (HTTP %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("unexpected catalog response: %s", e.Detail)
}

// Is allows for error checking with errors.Is().
func (e *ErrProviderContract) Is(target error) bool {
	_, ok := target.(*ErrProviderContract)
	return ok
}

// ErrExtraction indicates no usable subtitle could be extracted from the
// downloaded bytes. Fatal for that download action, not for the session.
type ErrExtraction struct {
	Size int
}

// Error implements the error interface.
func (e *ErrExtraction) Error() string {
	return fmt.Sprintf("no subtitle extractable from %d downloaded bytes", e.Size)
}

// Is allows for error checking with errors.Is().
func (e *ErrExtraction) Is(target error) bool {
	_, ok := target.(*ErrExtraction)
	return ok
}
