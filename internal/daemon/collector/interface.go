// Package collector provides the metric readers behind each status line segment.
package collector

import (
	"context"
)

// Collector produces one status line segment.
type Collector interface {
	// Name returns the collector's name for logging.
	Name() string

	// Read returns the current reading. Any error is fatal to the publish loop.
	Read(ctx context.Context) (string, error)
}

// Set holds the four collectors the status line is built from.
type Set struct {
	Time      Collector
	Battery   Collector
	Audio     Collector
	Backlight Collector
}

// Ordered returns the collectors in gather order.
func (s Set) Ordered() []Collector {
	return []Collector{s.Time, s.Battery, s.Audio, s.Backlight}
}
