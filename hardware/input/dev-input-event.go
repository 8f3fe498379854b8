package input

import (
	"io"
	"os"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/keyprint/internal/types"
	"github.com/temoto/keyprint/log2"
)

const DevInputEventTag = "dev-input-event"

const (
	delayEmpty = 50 * time.Millisecond  // device momentarily has no events
	delayError = 200 * time.Millisecond // transient read failure
)

type DevInputEventSource struct {
	f     io.ReadCloser
	log   *log2.Log
	sleep func(time.Duration)
}

// compile-time interface compliance test
var _ Source = new(DevInputEventSource)

func NewDevInputEventSource(log *log2.Log, device string) (*DevInputEventSource, error) {
	f, err := os.Open(device)
	if err != nil {
		return nil, errors.Annotatef(err, "keypad open device=%s", device)
	}
	return &DevInputEventSource{f: f, log: log, sleep: time.Sleep}, nil
}

func (ds *DevInputEventSource) String() string { return DevInputEventTag }

func (ds *DevInputEventSource) Close() error { return ds.f.Close() }

// Read blocks until one event record is decoded. No-data pauses, interrupted
// system calls and transient I/O errors are all retried inside; an error is
// returned only when the underlying file is closed.
func (ds *DevInputEventSource) Read() (types.InputEvent, error) {
	for {
		e, err := ReadEvent(ds.f)
		switch {
		case err == nil:
			e.Source = DevInputEventTag
			return e, nil
		case isClosed(err):
			return types.InputEvent{}, err
		case IsNoData(err):
			ds.sleep(delayEmpty)
		case IsInterrupted(err):
			// retry immediately
		default:
			ds.log.Errorf("%s read err=%v", DevInputEventTag, err)
			ds.sleep(delayError)
		}
	}
}
