// board/platform/factories_host.go
//go:build !tinygo

package platform

import (
	"bytes"
	"errors"
	"strconv"
	"sync"

	"boardcode-go/types"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// DefaultI2CSpeed is the speed a fresh HostI2C reports.
const DefaultI2CSpeed = 400 * physic.KiloHertz

var (
	_ drivers.I2C = (*HostI2C)(nil)
	_ i2c.Bus     = (*HostI2C)(nil)
	_ drivers.SPI = (*HostSPI)(nil)
	_ UARTPort    = (*HostUART)(nil)
)

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements GPIOPin for host-side tools and tests.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    Pull
}

func (p *FakePin) ConfigureInput(pull Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Toggle() {
	p.mu.Lock()
	p.level = !p.level
	p.mu.Unlock()
}

func (p *FakePin) Number() int { return p.number }

// IsOutput reports the last configured direction.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (GPIOPin, bool) {
	if n < 0 {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p, true
}

// Get exposes the underlying *FakePin for tests.
func (f *HostPinFactory) Get(n int) (*FakePin, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	return p, ok
}

// ----------------------------- Buses (host) ----------------------------------

// HostI2C implements tinygo drivers.I2C and periph's i2c.Bus, recording
// the last transaction.
type HostI2C struct {
	Spec types.BusSpec

	mu     sync.Mutex
	speed  physic.Frequency
	LastTx struct {
		Addr uint16
		W    []byte
		Rn   int
	}
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastTx.Addr = addr
	h.LastTx.W = append([]byte(nil), w...)
	h.LastTx.Rn = len(r)
	return nil
}

func (h *HostI2C) SetSpeed(f physic.Frequency) error {
	if f <= 0 {
		return errInvalidSpeed
	}
	h.mu.Lock()
	h.speed = f
	h.mu.Unlock()
	return nil
}

// Speed returns the configured bus speed.
func (h *HostI2C) Speed() physic.Frequency {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.speed
}

func (h *HostI2C) String() string {
	sda, _ := h.Spec.Pin(types.RoleSDA)
	scl, _ := h.Spec.Pin(types.RoleSCL)
	return "host-i2c(sda=" + strconv.Itoa(int(sda)) + ",scl=" + strconv.Itoa(int(scl)) + ")@" + h.Speed().String()
}

// HostSPI implements tinygo drivers.SPI as a loopback: reads echo writes.
type HostSPI struct {
	Spec types.BusSpec

	mu      sync.Mutex
	written []byte
}

func (s *HostSPI) Tx(w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written = append(s.written, w...)
	n := copy(r, w)
	for i := n; i < len(r); i++ {
		r[i] = 0xFF
	}
	return nil
}

func (s *HostSPI) Transfer(b byte) (byte, error) {
	s.mu.Lock()
	s.written = append(s.written, b)
	s.mu.Unlock()
	return b, nil
}

// Written returns a copy of everything sent on the bus.
func (s *HostSPI) Written() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.written...)
}

// HostUART is an in-memory serial port; bytes written are readable back.
type HostUART struct {
	Spec types.BusSpec

	mu  sync.Mutex
	buf bytes.Buffer
}

func (u *HostUART) Write(p []byte) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.buf.Write(p)
}

func (u *HostUART) Read(p []byte) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.buf.Len() == 0 {
		return 0, nil
	}
	return u.buf.Read(p)
}

func (u *HostUART) Buffered() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.buf.Len()
}

var (
	errUnsupportedBus = errors.New("unsupported bus kind")
	errInvalidSpeed   = errors.New("invalid bus speed")
)

// HostBusFactory opens a fresh fake per spec and counts opens.
type HostBusFactory struct {
	mu    sync.Mutex
	opens int
}

func (f *HostBusFactory) Open(spec types.BusSpec) (any, error) {
	f.mu.Lock()
	f.opens++
	f.mu.Unlock()
	switch spec.Kind {
	case types.BusI2C:
		return &HostI2C{Spec: spec, speed: DefaultI2CSpeed}, nil
	case types.BusSPI:
		return &HostSPI{Spec: spec}, nil
	case types.BusUART:
		return &HostUART{Spec: spec}, nil
	default:
		return nil, errUnsupportedBus
	}
}

// Opens reports how many handles the factory created.
func (f *HostBusFactory) Opens() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens
}

// DefaultPinFactory provides a host GPIO factory.
func DefaultPinFactory() PinFactory { return &HostPinFactory{pins: make(map[int]*FakePin)} }

// DefaultBusFactory provides inert host buses.
func DefaultBusFactory() BusFactory { return &HostBusFactory{} }
