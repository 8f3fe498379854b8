package types

import (
	"fmt"

	"github.com/temoto/inputevent-go"
)

// Linux input event class for key/button state changes.
const EventTypeKey uint16 = 0x01

// InputEvent is one decoded kernel input record: raw type/code/value triple
// plus the name of the source it came from. Constructed per read, consumed
// immediately, never stored.
type InputEvent struct {
	Source string
	Type   uint16
	Code   uint16
	Value  int32
}

func (e *InputEvent) IsKey() bool { return e.Type == EventTypeKey }

// Press is true for key-down only; release and autorepeat don't count.
func (e *InputEvent) Press() bool {
	return e.Value == int32(inputevent.KeyStateDown)
}

func (e *InputEvent) String() string {
	return fmt.Sprintf("InputEvent(source=%s type=%d code=%d value=%d)", e.Source, e.Type, e.Code, e.Value)
}
