package board

import (
	"strconv"

	"boardcode-go/board/platform"
	"boardcode-go/types"

	"tinygo.org/x/drivers"
)

// Pin is the canonical handle for one chip pin within a registry. Symbols
// that alias a pin share the same *Pin.
type Pin struct {
	index  types.PinIndex
	handle platform.GPIOPin // nil when no pin factory was supplied
}

func (p *Pin) Index() types.PinIndex { return p.index }

// GPIO returns the driver handle, if the registry was built with one.
func (p *Pin) GPIO() (platform.GPIOPin, bool) { return p.handle, p.handle != nil }

func (p *Pin) String() string { return "GPIO" + strconv.Itoa(int(p.index)) }

// Bus is a composed peripheral interface. At most one *Bus exists per
// (kind, role->pin set) in a registry.
type Bus struct {
	spec   types.BusSpec
	pins   []*Pin // parallel to spec.Pins
	handle any
}

func (b *Bus) Kind() types.BusKind { return b.spec.Kind }

// Spec returns the bus members in canonical role order.
func (b *Bus) Spec() types.BusSpec {
	return types.BusSpec{Kind: b.spec.Kind, Pins: append([]types.RolePin(nil), b.spec.Pins...)}
}

// Pin returns the member wired to role.
func (b *Bus) Pin(role types.Role) (*Pin, bool) {
	for i, rp := range b.spec.Pins {
		if rp.Role == role {
			return b.pins[i], true
		}
	}
	return nil, false
}

// Pins returns the member pins in canonical role order.
func (b *Bus) Pins() []*Pin { return append([]*Pin(nil), b.pins...) }

// Handle is the opaque driver object, nil when no bus factory was supplied.
func (b *Bus) Handle() any { return b.handle }

func (b *Bus) I2C() (drivers.I2C, bool) {
	h, ok := b.handle.(drivers.I2C)
	return h, ok && b.spec.Kind == types.BusI2C
}

func (b *Bus) SPI() (drivers.SPI, bool) {
	h, ok := b.handle.(drivers.SPI)
	return h, ok && b.spec.Kind == types.BusSPI
}

func (b *Bus) UART() (platform.UARTPort, bool) {
	h, ok := b.handle.(platform.UARTPort)
	return h, ok && b.spec.Kind == types.BusUART
}

func (b *Bus) String() string {
	s := string(b.spec.Kind) + "("
	for i, rp := range b.spec.Pins {
		if i > 0 {
			s += ","
		}
		s += string(rp.Role) + "=" + b.pins[i].String()
	}
	return s + ")"
}

// Resource is the tagged variant a symbol resolves to: exactly one of Pin or
// Bus is set.
type Resource struct {
	pin *Pin
	bus *Bus
}

func pinResource(p *Pin) Resource { return Resource{pin: p} }
func busResource(b *Bus) Resource { return Resource{bus: b} }

func (r Resource) Kind() types.ResourceKind {
	switch {
	case r.pin != nil:
		return types.ResourcePin
	case r.bus != nil:
		return types.ResourceBus
	default:
		return types.ResourceNone
	}
}

func (r Resource) Pin() (*Pin, bool) { return r.pin, r.pin != nil }
func (r Resource) Bus() (*Bus, bool) { return r.bus, r.bus != nil }
func (r Resource) IsZero() bool      { return r.pin == nil && r.bus == nil }

// Same reports whether r and o refer to the identical underlying object.
func (r Resource) Same(o Resource) bool {
	return !r.IsZero() && r.pin == o.pin && r.bus == o.bus
}

func (r Resource) String() string {
	switch {
	case r.pin != nil:
		return r.pin.String()
	case r.bus != nil:
		return r.bus.String()
	default:
		return "<none>"
	}
}

// identity is a comparable key for alias grouping.
func (r Resource) identity() any {
	if r.pin != nil {
		return r.pin
	}
	return r.bus
}
