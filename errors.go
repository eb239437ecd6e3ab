package forecast

import (
	"errors"
	"fmt"
)

// Sentinel errors, use errors.Is to match the typed errors below.
var (
	ErrEditionNotFound = errors.New("edition not found")
	ErrUnknownMetric   = errors.New("unknown metric")
	ErrValueNotFound   = errors.New("value not found")
)

// EditionNotFoundError reports that no source holds data for an edition.
type EditionNotFoundError struct {
	Edition string
}

func (e *EditionNotFoundError) Error() string {
	return fmt.Sprintf("edition %q not found", e.Edition)
}

func (e *EditionNotFoundError) Is(target error) bool { return target == ErrEditionNotFound }

// UnknownMetricError reports a metric identifier outside the closed set of metrics.
type UnknownMetricError struct {
	Metric string
}

func (e *UnknownMetricError) Error() string {
	return fmt.Sprintf("unknown metric %q", e.Metric)
}

func (e *UnknownMetricError) Is(target error) bool { return target == ErrUnknownMetric }

// ValueNotFoundError reports that an edition has no value recorded for a metric and year.
type ValueNotFoundError struct {
	Edition string
	Metric  Metric
	Year    int
}

func (e *ValueNotFoundError) Error() string {
	return fmt.Sprintf("no %s value for %d in edition %q", e.Metric, e.Year, e.Edition)
}

func (e *ValueNotFoundError) Is(target error) bool { return target == ErrValueNotFound }
