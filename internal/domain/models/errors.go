package models

import "errors"

var (
	// ErrNotFound means the symbol (or record) positively does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable means the upstream could not answer right now
	// (rate limit, timeout, transport failure, malformed payload).
	ErrUnavailable = errors.New("upstream unavailable")

	// ErrInsufficientHistory means a series is too short for any metric.
	ErrInsufficientHistory = errors.New("insufficient history")

	// ErrInvalidSymbol means a provider rejected a symbol on validation.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrAlreadyExists means a unique record is already present.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput means a request payload failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured means an optional external collaborator (OCR engine,
	// AI analyzer) has not been set up for this deployment.
	ErrNotConfigured = errors.New("not configured")
)
