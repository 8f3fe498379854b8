package collect

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/keyprint/hardware/printer"
	"github.com/temoto/keyprint/internal/keymap"
	"github.com/temoto/keyprint/internal/types"
	"github.com/temoto/keyprint/log2"
)

func press(code uint16) types.InputEvent {
	return types.InputEvent{Source: "test", Type: types.EventTypeKey, Code: code, Value: 1}
}

func newTestCollector(t testing.TB) (*Collector, *printer.Mock) {
	mock := printer.NewMock()
	c := NewCollector(log2.NewTest(t, log2.LDebug), keymap.Default(), mock)
	return c, mock
}

func TestAccumulateWithoutEnter(t *testing.T) {
	t.Parallel()

	c, mock := newTestCollector(t)
	for _, code := range []uint16{79, 75, 73, 11} {
		c.HandleEvent(press(code))
	}
	assert.Equal(t, "1490", c.Buffer())
	assert.Empty(t, mock.Printed())
}

func TestFlushOnEnter(t *testing.T) {
	t.Parallel()

	// press "1", "4", enter
	c, mock := newTestCollector(t)
	c.HandleEvent(press(79))
	c.HandleEvent(press(75))
	c.HandleEvent(press(28))
	assert.Equal(t, []string{"14"}, mock.Printed())
	assert.Equal(t, "", c.Buffer())
}

func TestFlushZeroZero(t *testing.T) {
	t.Parallel()

	c, mock := newTestCollector(t)
	c.HandleEvent(press(82))
	c.HandleEvent(press(82))
	c.HandleEvent(press(96)) // numeric-pad enter
	assert.Equal(t, []string{"00"}, mock.Printed())
	assert.Equal(t, "", c.Buffer())
}

func TestFlushEmptyBuffer(t *testing.T) {
	t.Parallel()

	c, mock := newTestCollector(t)
	c.HandleEvent(press(28))
	assert.Equal(t, []string{""}, mock.Printed())
}

func TestReleaseAndRepeatIgnored(t *testing.T) {
	t.Parallel()

	c, mock := newTestCollector(t)
	for _, code := range []uint16{79, 28, 96} {
		c.HandleEvent(types.InputEvent{Type: types.EventTypeKey, Code: code, Value: 0})
		c.HandleEvent(types.InputEvent{Type: types.EventTypeKey, Code: code, Value: 2})
	}
	assert.Equal(t, "", c.Buffer())
	assert.Empty(t, mock.Printed())
}

func TestForeignEventTypeIgnored(t *testing.T) {
	t.Parallel()

	c, mock := newTestCollector(t)
	// EV_SYN and EV_MSC with digit/enter codes must be no-ops
	c.HandleEvent(types.InputEvent{Type: 0x00, Code: 79, Value: 1})
	c.HandleEvent(types.InputEvent{Type: 0x04, Code: 28, Value: 1})
	assert.Equal(t, "", c.Buffer())
	assert.Empty(t, mock.Printed())
}

func TestUnmappedCodeIgnored(t *testing.T) {
	t.Parallel()

	c, mock := newTestCollector(t)
	c.HandleEvent(press(79))
	c.HandleEvent(press(1))  // KEY_ESC
	c.HandleEvent(press(57)) // KEY_SPACE
	assert.Equal(t, "1", c.Buffer())
	assert.Empty(t, mock.Printed())
}

func TestFlushFailureResetsBuffer(t *testing.T) {
	t.Parallel()

	c, mock := newTestCollector(t)
	mock.SetErr(fmt.Errorf("broken pipe"))
	c.HandleEvent(press(76)) // "5"
	c.HandleEvent(press(28))
	assert.Equal(t, []string{"5"}, mock.Printed())
	assert.Equal(t, "", c.Buffer())

	// fresh buffer accumulates normally after the failure
	mock.SetErr(nil)
	c.HandleEvent(press(80))
	c.HandleEvent(press(81))
	assert.Equal(t, "23", c.Buffer())
	c.HandleEvent(press(28))
	assert.Equal(t, []string{"5", "23"}, mock.Printed())
}

func TestFlushFunc(t *testing.T) {
	t.Parallel()

	c, mock := newTestCollector(t)
	type flush struct {
		line string
		err  error
	}
	flushes := []flush{}
	c.SetFlushFunc(func(line string, err error) {
		flushes = append(flushes, flush{line, err})
	})

	c.HandleEvent(press(79))
	c.HandleEvent(press(28))
	boom := fmt.Errorf("boom")
	mock.SetErr(boom)
	c.HandleEvent(press(28))

	require.Len(t, flushes, 2)
	assert.Equal(t, flush{"1", nil}, flushes[0])
	assert.Equal(t, flush{"", boom}, flushes[1])
}
