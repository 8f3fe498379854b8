package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	t.Parallel()

	m := Default()
	expect := map[uint16]byte{
		82: '0', 11: '0',
		79: '1', 2: '1',
		80: '2', 3: '2',
		81: '3', 4: '3',
		75: '4', 5: '4',
		76: '5', 6: '5',
		77: '6', 7: '6',
		71: '7', 8: '7',
		72: '8', 9: '8',
		73: '9', 10: '9',
	}
	for code, digit := range expect {
		d, ok := m.Digit(code)
		require.True(t, ok, "code=%d", code)
		assert.Equal(t, digit, d, "code=%d", code)
	}
	assert.True(t, m.IsEnter(28))
	assert.True(t, m.IsEnter(96))

	_, ok := m.Digit(28)
	assert.False(t, ok)
	_, ok = m.Digit(1) // KEY_ESC
	assert.False(t, ok)
	assert.False(t, m.IsEnter(79))
}

func TestOverrideDigit(t *testing.T) {
	t.Parallel()

	m, err := New(Config{
		Digits: []DigitConfig{{Digit: "7", Codes: []int{200}}},
	})
	require.NoError(t, err)

	d, ok := m.Digit(200)
	require.True(t, ok)
	assert.Equal(t, byte('7'), d)
	// default codes for 7 are replaced
	_, ok = m.Digit(71)
	assert.False(t, ok)
	// other digits keep defaults
	d, ok = m.Digit(82)
	require.True(t, ok)
	assert.Equal(t, byte('0'), d)
}

func TestOverrideEnter(t *testing.T) {
	t.Parallel()

	m, err := New(Config{Enter: []int{57}})
	require.NoError(t, err)
	assert.True(t, m.IsEnter(57))
	assert.False(t, m.IsEnter(28))
}

func TestConfigErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		config Config
		expect string
	}{
		{"digit-not-digit", Config{Digits: []DigitConfig{{Digit: "x", Codes: []int{1}}}}, "must be single character"},
		{"digit-long", Config{Digits: []DigitConfig{{Digit: "10", Codes: []int{1}}}}, "must be single character"},
		{"code-range", Config{Digits: []DigitConfig{{Digit: "1", Codes: []int{70000}}}}, "out of uint16 range"},
		{"code-conflict", Config{Digits: []DigitConfig{{Digit: "1", Codes: []int{82}}}}, "maps to both"},
		{"enter-conflict", Config{Enter: []int{82}}, "already maps to digit"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			_, err := New(c.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.expect)
		})
	}
}
