// Package scalar holds the custom GraphQL scalars used by the events schema.
// Each one implements UnmarshalEGGQL (pointer receiver) so that eggql
// recognises it as a scalar, and usually MarshalEGGQL for output.
package scalar

// time.go implements a GraphQL date/time type called "Time"

import (
	"fmt"
	"time"
)

const timeFormat = time.RFC3339 // ISO-8601, as GraphQL clients expect of a Time scalar

// Time is a point in time encoded as an RFC3339 string
type Time time.Time

// NewTime converts from time.Time, dropping the monotonic clock reading
func NewTime(t time.Time) Time {
	return Time(t.Round(0).UTC())
}

// UnmarshalEGGQL is called when eggql needs to decode a string to a Time
func (pt *Time) UnmarshalEGGQL(in string) error {
	tmp, err := time.Parse(timeFormat, in)
	if err != nil {
		return fmt.Errorf("%w error in UnmarshalEGGQL for custom scalar Time", err)
	}
	*pt = Time(tmp.UTC())
	return nil
}

// MarshalEGGQL encodes a Time object to a string
func (t Time) MarshalEGGQL() (string, error) {
	return time.Time(t).UTC().Format(timeFormat), nil
}

// Std returns the value as a time.Time
func (t Time) Std() time.Time {
	return time.Time(t)
}
