// Package xroot publishes text as the name of an X display's root window.
package xroot

import (
	"sync"

	"github.com/grovetools/xstatus/errors"
)

// Display is an open X connection and its default root window.
// It is not safe for concurrent use; one goroutine owns it.
type Display struct {
	conn   connection
	closed sync.Once
}

// Open connects to the named display; empty uses $DISPLAY.
func Open(name string) (*Display, error) {
	conn, ok := openConnection(name)
	if !ok {
		return nil, errors.DisplayUnavailable(name)
	}
	return &Display{conn: conn}, nil
}

// Publish stores line as the root window name and flushes the request.
func (d *Display) Publish(line string) error {
	if d == nil || d.conn == nil {
		return errors.New(errors.ErrCodeInternal, "publish on closed display")
	}
	d.conn.storeName(line)
	return nil
}

// Close releases the display connection. Further calls are no-ops.
func (d *Display) Close() error {
	d.closed.Do(func() {
		if d.conn != nil {
			d.conn.close()
			d.conn = nil
		}
	})
	return nil
}

type connection interface {
	storeName(line string)
	close()
}
