// board/platform/factories_esp32s2.go
//go:build tinygo && esp32s2

package platform

import (
	"errors"
	"machine"
	"sync"

	"boardcode-go/types"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"
)

// -----------------------------------------------------------------------------
// Defaults used by the firmware on ESP32-S2 boards
// -----------------------------------------------------------------------------

const (
	i2cHz    = 400 * machine.KHz
	spiHz    = 4 * machine.MHz
	uartBaud = 115200
)

// DefaultPinFactory maps logical numbers directly to machine.Pin(n), which
// matches ESP32-S2 GPIO numbering.
func DefaultPinFactory() PinFactory { return esp32s2PinFactory{} }

// DefaultBusFactory configures one controller per bus kind on the declared
// pins. I2C buses share I2C0, re-muxed to the bus in use; a second SPI or
// UART bus is refused.
func DefaultBusFactory() BusFactory { return &esp32s2BusFactory{claimed: claims{}} }

// ---- GPIO ----

type esp32s2PinFactory struct{}

func (esp32s2PinFactory) ByNumber(n int) (GPIOPin, bool) {
	if n < 0 || n > 46 || (n >= 22 && n <= 25) {
		return nil, false
	}
	return &mcuPin{p: machine.Pin(n), n: n}, true
}

type mcuPin struct {
	p machine.Pin
	n int
}

func (r *mcuPin) ConfigureInput(pull Pull) error {
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

func (r *mcuPin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *mcuPin) Set(level bool) { r.p.Set(level) }
func (r *mcuPin) Get() bool      { return r.p.Get() }
func (r *mcuPin) Toggle()        { r.p.Set(!r.p.Get()) }
func (r *mcuPin) Number() int    { return r.n }

// ---- Buses ----

type esp32s2BusFactory struct {
	i2c     i2cMux
	claimed claims
}

func (f *esp32s2BusFactory) Open(spec types.BusSpec) (any, error) {
	switch spec.Kind {
	case types.BusI2C:
		return f.i2c.open(spec)
	case types.BusSPI:
		return f.claimed.open("spi", func() (any, error) { return openSPI(spec) })
	case types.BusUART:
		return f.claimed.open("uart", func() (any, error) { return openUART(spec) })
	}
	return nil, errors.New("unsupported bus kind")
}

func pinOr(spec types.BusSpec, role types.Role) machine.Pin {
	if n, ok := spec.Pin(role); ok {
		return machine.Pin(n)
	}
	return machine.NoPin
}

// i2cMux shares I2C0 between buses on different pin pairs. The
// controller is reconfigured when a transaction targets a bus other than
// the last one used.
type i2cMux struct {
	mu    sync.Mutex
	owner *muxedI2C
}

var _ drivers.I2C = (*muxedI2C)(nil)

type muxedI2C struct {
	mux *i2cMux
	cfg machine.I2CConfig
}

func (m *i2cMux) open(spec types.BusSpec) (drivers.I2C, error) {
	b := &muxedI2C{mux: m, cfg: machine.I2CConfig{
		Frequency: i2cHz,
		SDA:       pinOr(spec, types.RoleSDA),
		SCL:       pinOr(spec, types.RoleSCL),
	}}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owner == nil {
		if err := b.claim(); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// claim points I2C0 at b's pins. Caller holds mux.mu.
func (b *muxedI2C) claim() error {
	if err := machine.I2C0.Configure(b.cfg); err != nil {
		return err
	}
	b.mux.owner = b
	return nil
}

func (b *muxedI2C) Tx(addr uint16, w, r []byte) error {
	b.mux.mu.Lock()
	defer b.mux.mu.Unlock()
	if b.mux.owner != b {
		if err := b.claim(); err != nil {
			return err
		}
	}
	return machine.I2C0.Tx(addr, w, r)
}

func openSPI(spec types.BusSpec) (drivers.SPI, error) {
	b := machine.SPI0
	err := b.Configure(machine.SPIConfig{
		Frequency: spiHz,
		SCK:       pinOr(spec, types.RoleSCK),
		SDO:       pinOr(spec, types.RoleMOSI),
		SDI:       pinOr(spec, types.RoleMISO),
	})
	return b, err
}

// uartx.UARTConfig aliases machine.UARTConfig, so the default UART takes it
// directly.
func openUART(spec types.BusSpec) (UARTPort, error) {
	cfg := uartx.UARTConfig{BaudRate: uartBaud, TX: uartx.NoPin, RX: uartx.NoPin}
	if n, ok := spec.Pin(types.RoleTX); ok {
		cfg.TX = uartx.Pin(n)
	}
	if n, ok := spec.Pin(types.RoleRX); ok {
		cfg.RX = uartx.Pin(n)
	}
	u := machine.DefaultUART
	if err := u.Configure(cfg); err != nil {
		return nil, err
	}
	return u, nil
}
