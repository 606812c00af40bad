package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrSeriesNotFound = fmt.Errorf("%w: series", ErrNotFound)
	ErrResultNotFound = fmt.Errorf("%w: result", ErrNotFound)
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)

	// Input errors
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmptySampleSet     = fmt.Errorf("%w: sample set is empty", ErrInvalidInput)
	ErrInsufficientSample = fmt.Errorf("%w: at least two observations required for sample variance", ErrInvalidInput)
	ErrNonFiniteSample    = fmt.Errorf("%w: sample set contains NaN or Inf", ErrInvalidInput)
	ErrUnknownMode        = fmt.Errorf("%w: unknown variance mode", ErrInvalidInput)

	// Ingestion errors
	ErrIngestFailed     = errors.New("ingestion failed")
	ErrUnsupportedFile  = fmt.Errorf("%w: unsupported file type", ErrIngestFailed)
	ErrNoNumericSamples = fmt.Errorf("%w: column yielded no numeric samples", ErrIngestFailed)
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewInvalidInputError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}

func NewIngestError(path string, err error) error {
	return fmt.Errorf("%w for %s: %v", ErrIngestFailed, path, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsIngestError(err error) bool {
	return errors.Is(err, ErrIngestFailed)
}
