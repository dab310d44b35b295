package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidLoad  = errors.New("invalid load entry")
	ErrInvalidRun   = errors.New("invalid report entry")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateLoad(e *LoadEntry) error {
	if e == nil {
		return fmt.Errorf("%w: load", ErrNilParameter)
	}
	if strings.TrimSpace(e.Path) == "" {
		return fmt.Errorf("%w: missing path", ErrInvalidLoad)
	}
	if e.Fingerprint == "" {
		return fmt.Errorf("%w: missing fingerprint", ErrInvalidLoad)
	}
	if e.Year <= 0 {
		return fmt.Errorf("%w: year %d", ErrInvalidLoad, e.Year)
	}
	if e.Rows < 0 || e.DroppedEmpty < 0 || e.DroppedHeader < 0 || e.DroppedNoMeasure < 0 {
		return fmt.Errorf("%w: negative count", ErrInvalidLoad)
	}
	return nil
}

func validateReport(e *ReportEntry) error {
	if e == nil {
		return fmt.Errorf("%w: report", ErrNilParameter)
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidRun)
	}
	if e.Orientation == "" {
		return fmt.Errorf("%w: missing orientation", ErrInvalidRun)
	}
	if e.Fingerprint == "" {
		return fmt.Errorf("%w: missing fingerprint", ErrInvalidRun)
	}
	return nil
}
