package domain

import (
	"fmt"
	"time"
)

// NoDataError means a provider returned nothing for the requested range.
type NoDataError struct {
	Source string
	Start  time.Time
	End    time.Time
}

func (e *NoDataError) Error() string {
	if e.Start.IsZero() && e.End.IsZero() {
		return fmt.Sprintf("no %s data found for given range", e.Source)
	}
	return fmt.Sprintf("no %s data found for %s to %s",
		e.Source, e.Start.Format(DateLayout), e.End.Format(DateLayout))
}

// UnsupportedModelError means the volatility model tag is unknown.
type UnsupportedModelError struct {
	Model string
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("unsupported volatility model: %q", e.Model)
}

// InvalidRangeError means the start date is after the end date.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("start date %s must not be after end date %s",
		e.Start.Format(DateLayout), e.End.Format(DateLayout))
}

// InvalidParameterError means a numeric parameter is out of range.
type InvalidParameterError struct {
	Name   string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Name, e.Reason)
}

// DateLayout is the calendar date format used across all surfaces.
const DateLayout = "2006-01-02"
