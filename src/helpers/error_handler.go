package helpers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"progress-report-bot/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type BotError struct {
	Message string
	Cause   error
}

func (e *BotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BotError) Unwrap() error {
	return e.Cause
}

// Distinct error kinds, matched with errors.As.
type ConfigurationError struct{ BotError }
type NetworkError struct{ BotError }
type PayloadError struct{ BotError }
type SchemaError struct{ BotError }
type GatewayError struct{ BotError }

// FetchError is a non-success HTTP status from the stats API.
type FetchError struct {
	BotError
	Status int
}

// -----------------------------------------------------------------------------

func NewConfigurationError(msg string, cause error) error {
	return &ConfigurationError{BotError{Message: msg, Cause: cause}}
}

func NewNetworkError(msg string, cause error) error {
	return &NetworkError{BotError{Message: msg, Cause: cause}}
}

func NewPayloadError(msg string, cause error) error {
	return &PayloadError{BotError{Message: msg, Cause: cause}}
}

func NewSchemaError(msg string) error {
	return &SchemaError{BotError{Message: msg}}
}

func NewGatewayError(msg string, cause error) error {
	return &GatewayError{BotError{Message: msg, Cause: cause}}
}

func NewFetchError(status int) error {
	return &FetchError{
		BotError: BotError{Message: fmt.Sprintf("bad status: %d", status)},
		Status:   status,
	}
}

// -----------------------------------------------------------------------------

// StatusOf returns the HTTP status carried by a FetchError anywhere in err's chain.
func StatusOf(err error) (int, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Status, true
	}
	return 0, false
}

// IsInvalidData reports whether err is a payload or schema problem, i.e. the
// API answered but gave us nothing usable.
func IsInvalidData(err error) bool {
	var pe *PayloadError
	var se *SchemaError
	return errors.As(err, &pe) || errors.As(err, &se)
}

// -----------------------------------------------------------------------------
// Retry Logic
// -----------------------------------------------------------------------------

// RetryWithBackoff attempts fn up to maxRetries times with exponential backoff.
// Only start-up calls against the chat platform go through here.
func RetryWithBackoff(ctx context.Context, log *logger.Logger, operation string, maxRetries int, baseDelay time.Duration, fn func() error) error {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if attempt == maxRetries-1 {
			break
		}

		delay := baseDelay * (1 << attempt)
		if log != nil {
			log.Warning("Attempt %d/%d failed for %s: %v. Retrying in %v", attempt+1, maxRetries, operation, err, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return &BotError{Message: fmt.Sprintf("%s failed after %d attempts", operation, maxRetries), Cause: lastErr}
}
