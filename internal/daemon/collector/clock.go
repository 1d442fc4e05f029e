package collector

import (
	"context"
	"time"
)

// ClockCollector formats the local wall-clock time.
type ClockCollector struct {
	layout string
	now    func() time.Time
}

// NewClockCollector creates a ClockCollector. A nil now uses time.Now.
func NewClockCollector(layout string, now func() time.Time) *ClockCollector {
	if now == nil {
		now = time.Now
	}
	return &ClockCollector{layout: layout, now: now}
}

// Name returns the collector's name.
func (c *ClockCollector) Name() string { return "time" }

// Read returns the current time in the configured layout.
func (c *ClockCollector) Read(ctx context.Context) (string, error) {
	return c.now().Local().Format(c.layout), nil
}
