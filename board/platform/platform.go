// Package platform supplies the pin and bus driver collaborators the board
// registry composes. Concrete factories are selected by build tags:
// host fakes for standard Go builds, machine-backed handles under TinyGo.
package platform

import "boardcode-go/types"

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Toggle()
	Number() int
}

// PinFactory supplies GPIO handles by chip pin number.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// ---- Buses ----

// UARTPort is the subset of a serial port the board layer hands out.
type UARTPort interface {
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
	Buffered() int
}

// BusFactory opens a driver handle for a validated bus spec. The concrete
// type depends on spec.Kind: drivers.I2C, drivers.SPI or UARTPort.
type BusFactory interface {
	Open(spec types.BusSpec) (any, error)
}
