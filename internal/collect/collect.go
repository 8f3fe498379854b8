// Package collect owns the digit buffer between keypad presses and the flush
// to the printer on enter.
package collect

import (
	"github.com/temoto/atomic_clock"
	"github.com/temoto/keyprint/internal/keymap"
	"github.com/temoto/keyprint/internal/types"
	"github.com/temoto/keyprint/log2"
)

// Sink takes one accumulated line per flush.
type Sink interface {
	PrintLine(text string) error
}

// FlushFunc observes every flush attempt, e.g. telemetry counters.
type FlushFunc func(line string, err error)

// Collector is a two-state machine: collecting digits, flushing on enter.
// All methods must be called from a single goroutine; the input dispatch
// serializes event delivery, so no locking here.
type Collector struct {
	log       *log2.Log
	keys      *keymap.Keymap
	sink      Sink
	onFlush   FlushFunc
	buf       []byte
	lastFlush atomic_clock.Clock
}

func NewCollector(log *log2.Log, keys *keymap.Keymap, sink Sink) *Collector {
	return &Collector{
		log:  log,
		keys: keys,
		sink: sink,
		buf:  make([]byte, 0, 32),
	}
}

func (c *Collector) SetFlushFunc(f FlushFunc) { c.onFlush = f }

// HandleEvent applies one raw input event. Only key presses act; releases,
// autorepeats and non-key event types pass through unchanged.
func (c *Collector) HandleEvent(e types.InputEvent) {
	if !e.IsKey() || !e.Press() {
		return
	}

	switch {
	case c.keys.IsEnter(e.Code):
		c.flush()

	default:
		if digit, ok := c.keys.Digit(e.Code); ok {
			c.buf = append(c.buf, digit)
			c.log.Debugf("collect digit=%c buffer=%s", digit, c.buf)
		} else {
			c.log.Debugf("collect ignore unmapped code=%d", e.Code)
		}
	}
}

// Buffer returns the digits collected since the last flush.
func (c *Collector) Buffer() string { return string(c.buf) }

func (c *Collector) flush() {
	line := string(c.buf)
	err := c.sink.PrintLine(line)
	// buffer resets whether the print worked or not,
	// a bad job must not come back on the next enter
	c.buf = c.buf[:0]

	if err != nil {
		c.log.Errorf("flush line=%q err=%v", line, err)
	} else if c.lastFlush.IsZero() {
		c.log.Infof("flush line=%q len=%d", line, len(line))
	} else {
		c.log.Infof("flush line=%q len=%d since_last=%s", line, len(line), atomic_clock.Since(&c.lastFlush))
	}
	c.lastFlush.SetNow()

	if c.onFlush != nil {
		c.onFlush(line, err)
	}
}
