// board/platform/factories_rp2xxx.go
//go:build tinygo && (rp2040 || rp2350)

package platform

import (
	"errors"
	"machine"
	"strconv"

	"boardcode-go/types"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"
)

// -----------------------------------------------------------------------------
// Defaults used by the firmware on Raspberry Pi Pico / Pico 2 (RP2 family)
// -----------------------------------------------------------------------------

const (
	rp2I2CHz    = 400 * machine.KHz
	rp2SPIHz    = 4 * machine.MHz
	rp2UARTBaud = 115200
)

// DefaultPinFactory maps logical numbers directly to machine.Pin(n). This
// matches Pico/Pico 2 GP numbering.
func DefaultPinFactory() PinFactory { return rp2PinFactory{} }

// DefaultBusFactory configures i2c0/i2c1, spi0/spi1 and uart0/uart1 on the
// declared pins. The controller follows from the pins; each controller
// serves one bus.
func DefaultBusFactory() BusFactory { return &rp2BusFactory{claimed: claims{}} }

// ---- GPIO ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (GPIOPin, bool) {
	// User GPIOs GP0..GP29.
	if n < 0 || n > 29 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull Pull) error {
	var mode machine.PinMode
	switch pull {
	case PullUp:
		mode = machine.PinInputPullup
	case PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }

func (r *rp2Pin) Toggle() {
	if r.p.Get() {
		r.p.Low()
	} else {
		r.p.High()
	}
}

func (r *rp2Pin) Number() int { return r.n }

// ---- Buses ----

type rp2BusFactory struct {
	claimed claims
}

func (f *rp2BusFactory) Open(spec types.BusSpec) (any, error) {
	unit, err := rp2Unit(spec)
	if err != nil {
		return nil, err
	}
	id := string(spec.Kind) + strconv.Itoa(unit)
	switch spec.Kind {
	case types.BusI2C:
		return f.claimed.open(id, func() (any, error) { return rp2OpenI2C(spec, unit) })
	case types.BusSPI:
		return f.claimed.open(id, func() (any, error) { return rp2OpenSPI(spec, unit) })
	case types.BusUART:
		return f.claimed.open(id, func() (any, error) { return rp2OpenUART(spec, unit) })
	}
	return nil, errors.New("unsupported bus kind")
}

func rp2RolePin(spec types.BusSpec, role types.Role) machine.Pin {
	if n, ok := spec.Pin(role); ok {
		return machine.Pin(n)
	}
	return machine.NoPin
}

func rp2OpenI2C(spec types.BusSpec, unit int) (drivers.I2C, error) {
	hw := machine.I2C0
	if unit == 1 {
		hw = machine.I2C1
	}
	sda := rp2RolePin(spec, types.RoleSDA)
	scl := rp2RolePin(spec, types.RoleSCL)
	sda.Configure(machine.PinConfig{Mode: machine.PinI2C})
	scl.Configure(machine.PinConfig{Mode: machine.PinI2C})
	if err := hw.Configure(machine.I2CConfig{SDA: sda, SCL: scl, Frequency: rp2I2CHz}); err != nil {
		return nil, err
	}
	return hw, nil
}

func rp2OpenSPI(spec types.BusSpec, unit int) (drivers.SPI, error) {
	hw := machine.SPI0
	if unit == 1 {
		hw = machine.SPI1
	}
	err := hw.Configure(machine.SPIConfig{
		Frequency: rp2SPIHz,
		SCK:       rp2RolePin(spec, types.RoleSCK),
		SDO:       rp2RolePin(spec, types.RoleMOSI),
		SDI:       rp2RolePin(spec, types.RoleMISO),
	})
	if err != nil {
		return nil, err
	}
	return hw, nil
}

func rp2OpenUART(spec types.BusSpec, unit int) (UARTPort, error) {
	hw := uartx.UART0
	if unit == 1 {
		hw = uartx.UART1
	}
	err := hw.Configure(uartx.UARTConfig{
		BaudRate: rp2UARTBaud,
		TX:       rp2RolePin(spec, types.RoleTX),
		RX:       rp2RolePin(spec, types.RoleRX),
	})
	if err != nil {
		return nil, err
	}
	return &rp2SerialPort{u: hw}, nil
}

// rp2SerialPort adapts a uartx port to UARTPort.
type rp2SerialPort struct{ u *uartx.UART }

func (p *rp2SerialPort) Write(b []byte) (int, error) { return p.u.Write(b) }
func (p *rp2SerialPort) Read(b []byte) (int, error)  { return p.u.Read(b) }
func (p *rp2SerialPort) Buffered() int               { return p.u.Buffered() }
