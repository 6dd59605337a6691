package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeMissingField represents a missing node/attribute/text in the document
	ErrorTypeMissingField ErrorType = "missing_field"
	// ErrorTypeParse represents value parsing errors
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeFetch represents page fetch errors
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeRender represents browser rendering errors
	ErrorTypeRender ErrorType = "render"
	// ErrorTypeStorage represents persistence errors
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypePublish represents publisher errors
	ErrorTypePublish ErrorType = "publish"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a scrape-specific error
type ScrapeError struct {
	Type    ErrorType
	Context string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Context, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Context)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if a fresh page render could resolve the error
func (e *ScrapeError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeFetch, ErrorTypeRender:
		return true
	default:
		return false
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, context string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Context: context,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewMissingField creates a new missing field error
func NewMissingField(context string) *ScrapeError {
	return New(ErrorTypeMissingField, context, nil)
}

// NewParse creates a new parse error
func NewParse(context string, err error) *ScrapeError {
	return New(ErrorTypeParse, context, err)
}

// NewFetch creates a new fetch error
func NewFetch(context string, err error) *ScrapeError {
	return New(ErrorTypeFetch, context, err)
}

// NewRender creates a new render error
func NewRender(context string, err error) *ScrapeError {
	return New(ErrorTypeRender, context, err)
}

// NewStorage creates a new storage error
func NewStorage(context string, err error) *ScrapeError {
	return New(ErrorTypeStorage, context, err)
}

// NewPublish creates a new publish error
func NewPublish(context string, err error) *ScrapeError {
	return New(ErrorTypePublish, context, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(context string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, context, err)
}

// IsType reports whether err (or any error it wraps) is a ScrapeError of the given type
func IsType(err error, errType ErrorType) bool {
	var se *ScrapeError
	return errors.As(err, &se) && se.Type == errType
}

// IsMissingField reports whether err is a missing field error
func IsMissingField(err error) bool {
	return IsType(err, ErrorTypeMissingField)
}
