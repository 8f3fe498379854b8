// Package keymap classifies keypad scan codes into digits and enter.
// Pure data-driven lookup, tables are fixed after construction.
package keymap

import (
	"github.com/juju/errors"
)

// Config overrides the built-in tables for non-standard keypads.
// Unnamed digits keep their defaults.
//
//	keymap {
//	  digit "7" { codes = [71, 8] }
//	  enter = [28, 96]
//	}
type Config struct {
	Digits []DigitConfig `hcl:"digit"`
	Enter  []int         `hcl:"enter"`
}

type DigitConfig struct {
	Digit string `hcl:"digit,key"`
	Codes []int  `hcl:"codes"`
}

type Keymap struct {
	digits map[uint16]byte
	enter  map[uint16]struct{}
}

// Standard evdev codes: numeric pad primary, keyboard top row alternate.
var defaultDigits = map[byte][]uint16{
	'0': {82, 11},
	'1': {79, 2},
	'2': {80, 3},
	'3': {81, 4},
	'4': {75, 5},
	'5': {76, 6},
	'6': {77, 7},
	'7': {71, 8},
	'8': {72, 9},
	'9': {73, 10},
}

// KEY_ENTER and KEY_KPENTER
var defaultEnter = []uint16{28, 96}

func Default() *Keymap {
	m, err := New(Config{})
	if err != nil {
		panic("code error keymap.Default: " + err.Error())
	}
	return m
}

func New(c Config) (*Keymap, error) {
	m := &Keymap{
		digits: make(map[uint16]byte, 2*len(defaultDigits)),
		enter:  make(map[uint16]struct{}, len(defaultEnter)),
	}

	override := make(map[byte][]uint16, len(c.Digits))
	for _, dc := range c.Digits {
		if len(dc.Digit) != 1 || dc.Digit[0] < '0' || dc.Digit[0] > '9' {
			return nil, errors.Errorf("keymap: digit='%s' must be single character 0..9", dc.Digit)
		}
		codes, err := toCodes(dc.Codes)
		if err != nil {
			return nil, errors.Annotatef(err, "keymap: digit='%s'", dc.Digit)
		}
		override[dc.Digit[0]] = codes
	}

	for digit, codes := range defaultDigits {
		if oc, ok := override[digit]; ok {
			codes = oc
		}
		for _, code := range codes {
			if prev, ok := m.digits[code]; ok {
				return nil, errors.Errorf("keymap: code=%d maps to both '%c' and '%c'", code, prev, digit)
			}
			m.digits[code] = digit
		}
	}

	enter := defaultEnter
	if len(c.Enter) != 0 {
		codes, err := toCodes(c.Enter)
		if err != nil {
			return nil, errors.Annotate(err, "keymap: enter")
		}
		enter = codes
	}
	for _, code := range enter {
		if digit, ok := m.digits[code]; ok {
			return nil, errors.Errorf("keymap: enter code=%d already maps to digit '%c'", code, digit)
		}
		m.enter[code] = struct{}{}
	}

	return m, nil
}

func (m *Keymap) Digit(code uint16) (byte, bool) {
	d, ok := m.digits[code]
	return d, ok
}

func (m *Keymap) IsEnter(code uint16) bool {
	_, ok := m.enter[code]
	return ok
}

func toCodes(xs []int) ([]uint16, error) {
	codes := make([]uint16, 0, len(xs))
	for _, x := range xs {
		if x < 0 || x > 0xffff {
			return nil, errors.Errorf("code=%d out of uint16 range", x)
		}
		codes = append(codes, uint16(x))
	}
	return codes, nil
}
