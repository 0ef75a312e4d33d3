// Package sensor carries pedometer and activity readings from step sources
// to the game loop. Sources run on their own goroutines and publish typed
// events; consumers drain an Inbox on their own schedule.
package sensor

import (
	"errors"
	"time"
)

// ErrSensorUnavailable is returned by a source when the device cannot count
// steps or classify activity. Callers log it and carry on without the feature.
var ErrSensorUnavailable = errors.New("sensor: step counting is not available")

// Event is a reading published by a source.
type Event interface {
	sensorEvent()
}

// StepUpdate reports the cumulative step count since the start of the day.
type StepUpdate struct {
	RawSteps  int
	Timestamp time.Time
}

func (StepUpdate) sensorEvent() {}

// ActivityUpdate reports a change in the detected motion activity.
type ActivityUpdate struct {
	Kind      ActivityKind
	Timestamp time.Time
}

func (ActivityUpdate) sensorEvent() {}

// SensorError reports a transient read failure. Consumers keep the last
// known value.
type SensorError struct {
	Err error
}

func (SensorError) sensorEvent() {}

// ActivityKind classifies what the user is doing.
type ActivityKind int

const (
	ActivityUnknown ActivityKind = iota
	ActivityWalking
	ActivityRunning
	ActivityCycling
	ActivityAutomotive
	ActivityStationary
)

// String returns the activity name.
func (k ActivityKind) String() string {
	switch k {
	case ActivityWalking:
		return "walking"
	case ActivityRunning:
		return "running"
	case ActivityCycling:
		return "cycling"
	case ActivityAutomotive:
		return "automotive"
	case ActivityStationary:
		return "stationary"
	default:
		return "unknown"
	}
}

// Label returns the dashboard text for the activity.
func (k ActivityKind) Label() string {
	switch k {
	case ActivityWalking:
		return "Walking🚶"
	case ActivityRunning:
		return "Running🏃"
	case ActivityCycling:
		return "Cycling🚴"
	case ActivityAutomotive:
		return "Driving🚗"
	case ActivityStationary:
		return "Still🤫"
	default:
		return "Unknown🤔"
	}
}

// ParseActivity maps an activity name back to its kind.
func ParseActivity(s string) ActivityKind {
	for k := ActivityUnknown; k <= ActivityStationary; k++ {
		if k.String() == s {
			return k
		}
	}
	return ActivityUnknown
}
