// Package chip describes which pin indices exist on a target microcontroller.
// It must not include wiring choices; those belong to board definitions.
package chip

import (
	"sort"

	"boardcode-go/types"
)

// Chip is a finite, immutable set of valid pin indices.
type Chip struct {
	Name string
	pins map[types.PinIndex]struct{}
}

// New builds a chip from explicit indices. Duplicates are ignored.
func New(name string, pins ...int) Chip {
	c := Chip{Name: name, pins: make(map[types.PinIndex]struct{}, len(pins))}
	for _, p := range pins {
		c.pins[types.PinIndex(p)] = struct{}{}
	}
	return c
}

// Range builds a chip whose pins are the union of inclusive [lo, hi] spans,
// given as pairs.
func Range(name string, spans ...[2]int) Chip {
	var pins []int
	for _, s := range spans {
		for n := s[0]; n <= s[1]; n++ {
			pins = append(pins, n)
		}
	}
	return New(name, pins...)
}

// Has reports whether the chip has pin n.
func (c Chip) Has(n types.PinIndex) bool {
	_, ok := c.pins[n]
	return ok
}

// Len is the number of valid pins.
func (c Chip) Len() int { return len(c.pins) }

// Pins returns the valid indices in ascending order.
func (c Chip) Pins() []types.PinIndex {
	out := make([]types.PinIndex, 0, len(c.pins))
	for p := range c.pins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Known chips.
var (
	// ESP32S2 exposes GPIO0..21 and GPIO26..46; 22..25 are not bonded out.
	ESP32S2 = Range("esp32s2", [2]int{0, 21}, [2]int{26, 46})

	// RP2040 user GPIOs GP0..GP29.
	RP2040 = Range("rp2040", [2]int{0, 29})
)

// ByName returns a known chip.
func ByName(name string) (Chip, bool) {
	switch name {
	case ESP32S2.Name:
		return ESP32S2, true
	case RP2040.Name:
		return RP2040, true
	default:
		return Chip{}, false
	}
}
