// Linux input_event wire decode.
// The kernel emits fixed-size binary records; the record size depends on the
// kernel build: 24 bytes with 64-bit timestamps, 16 bytes with 32-bit ones.
// Both layouts share the same little-endian type/code/value tail.
package input

import (
	"encoding/binary"
	"io"
	"os"
	"syscall"

	"github.com/juju/errors"
	"github.com/temoto/keyprint/internal/types"
	"golang.org/x/sys/unix"
)

const (
	eventSize64 = 24 // two int64 timestamp words + u16 type + u16 code + i32 value
	eventSize32 = 16 // two int32 timestamp words + same tail
)

// ErrNoData means the device has no events at this moment. Not a failure,
// caller should pause briefly and retry.
var ErrNoData = errors.New("input: no data")

// ReadEvent reads exactly one input_event record from r and returns the raw
// type/code/value triple. Timestamps are discarded. When a read yields fewer
// than 24 bytes, the short result is completed to a 16-byte record if
// possible; otherwise it is a short-record error.
func ReadEvent(r io.Reader) (types.InputEvent, error) {
	var buf [eventSize64]byte
	n, err := r.Read(buf[:])
	if n == 0 {
		if err == nil || err == io.EOF {
			return types.InputEvent{}, ErrNoData
		}
		return types.InputEvent{}, err
	}
	switch {
	case n == eventSize64:
		return decode64(buf[:]), nil
	case n == eventSize32:
		return decode32(buf[:]), nil
	case n < eventSize32:
		if _, err = io.ReadFull(r, buf[n:eventSize32]); err != nil {
			return types.InputEvent{}, errors.Annotatef(err, "input short record n=%d", n)
		}
		return decode32(buf[:]), nil
	default:
		return types.InputEvent{}, errors.Errorf("input short record n=%d expected=%d or %d", n, eventSize64, eventSize32)
	}
}

func decode64(b []byte) types.InputEvent {
	return types.InputEvent{
		Type:  binary.LittleEndian.Uint16(b[16:18]),
		Code:  binary.LittleEndian.Uint16(b[18:20]),
		Value: int32(binary.LittleEndian.Uint32(b[20:24])),
	}
}

func decode32(b []byte) types.InputEvent {
	return types.InputEvent{
		Type:  binary.LittleEndian.Uint16(b[8:10]),
		Code:  binary.LittleEndian.Uint16(b[10:12]),
		Value: int32(binary.LittleEndian.Uint32(b[12:16])),
	}
}

// IsNoData reports a poll-style "nothing available right now" outcome:
// explicit ErrNoData, EOF with no bytes, or EAGAIN from a non-blocking fd.
func IsNoData(e error) bool {
	if e == ErrNoData || e == io.EOF {
		return true
	}
	errno := errnoOf(e)
	return errno == unix.EAGAIN || errno == unix.EWOULDBLOCK
}

// IsInterrupted reports an interrupted system call, retried with no delay.
func IsInterrupted(e error) bool { return errnoOf(e) == unix.EINTR }

func isClosed(e error) bool {
	if pe, ok := e.(*os.PathError); ok {
		e = pe.Err
	}
	return e == os.ErrClosed
}

func errnoOf(e error) syscall.Errno {
	for e != nil {
		switch t := e.(type) {
		case syscall.Errno:
			return t
		case *os.PathError:
			e = t.Err
		case *os.SyscallError:
			e = t.Err
		default:
			return 0
		}
	}
	return 0
}
