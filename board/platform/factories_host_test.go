//go:build !tinygo

package platform

import (
	"testing"

	"boardcode-go/types"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

func TestHostPinFactoryStableHandles(t *testing.T) {
	f := DefaultPinFactory().(*HostPinFactory)
	a, ok := f.ByNumber(7)
	if !ok {
		t.Fatal("ByNumber(7) failed")
	}
	b, _ := f.ByNumber(7)
	if a != b {
		t.Fatal("expected the same handle for the same number")
	}
	if a.Number() != 7 {
		t.Fatalf("Number() = %d", a.Number())
	}
	if _, ok := f.ByNumber(-1); ok {
		t.Fatal("negative pin accepted")
	}

	_ = a.ConfigureOutput(true)
	a.Toggle()
	fp, _ := f.Get(7)
	if fp.Get() || !fp.IsOutput() {
		t.Fatalf("fake pin state: level=%v out=%v", fp.Get(), fp.IsOutput())
	}
}

func TestHostBusFactoryKinds(t *testing.T) {
	f := DefaultBusFactory().(*HostBusFactory)

	h, err := f.Open(types.BusSpec{Kind: types.BusI2C})
	if err != nil {
		t.Fatal(err)
	}
	i2c, ok := h.(drivers.I2C)
	if !ok {
		t.Fatalf("i2c handle %T is not drivers.I2C", h)
	}
	_ = i2c.Tx(0x38, []byte{0xAC, 0x33}, make([]byte, 6))
	hi := h.(*HostI2C)
	if hi.LastTx.Addr != 0x38 || hi.LastTx.Rn != 6 || len(hi.LastTx.W) != 2 {
		t.Fatalf("last tx not recorded: %+v", hi.LastTx)
	}

	h, err = f.Open(types.BusSpec{Kind: types.BusSPI})
	if err != nil {
		t.Fatal(err)
	}
	spi := h.(drivers.SPI)
	r := make([]byte, 3)
	_ = spi.Tx([]byte{1, 2}, r)
	if r[0] != 1 || r[1] != 2 || r[2] != 0xFF {
		t.Fatalf("spi loopback = %v", r)
	}

	h, err = f.Open(types.BusSpec{Kind: types.BusUART})
	if err != nil {
		t.Fatal(err)
	}
	u := h.(UARTPort)
	_, _ = u.Write([]byte("hi"))
	if u.Buffered() != 2 {
		t.Fatalf("Buffered() = %d", u.Buffered())
	}
	buf := make([]byte, 4)
	n, _ := u.Read(buf)
	if string(buf[:n]) != "hi" {
		t.Fatalf("Read = %q", buf[:n])
	}

	if _, err := f.Open(types.BusSpec{Kind: "can"}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if f.Opens() != 4 {
		t.Fatalf("Opens() = %d, want 4", f.Opens())
	}
}

func TestHostI2CAsPeriphBus(t *testing.T) {
	spec := types.BusSpec{Kind: types.BusI2C, Pins: []types.RolePin{
		{Role: types.RoleSDA, Pin: 7}, {Role: types.RoleSCL, Pin: 6},
	}}
	h, err := DefaultBusFactory().Open(spec)
	if err != nil {
		t.Fatal(err)
	}
	var b i2c.Bus = h.(*HostI2C)
	if got := b.String(); got != "host-i2c(sda=7,scl=6)@400kHz" {
		t.Fatalf("String() = %q", got)
	}
	if err := b.SetSpeed(100 * physic.KiloHertz); err != nil {
		t.Fatal(err)
	}
	if got := h.(*HostI2C).Speed(); got != 100*physic.KiloHertz {
		t.Fatalf("Speed() = %s", got)
	}
	if err := b.SetSpeed(0); err == nil {
		t.Fatal("zero speed accepted")
	}
}
