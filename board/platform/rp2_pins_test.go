package platform

import (
	"testing"

	"boardcode-go/board/boards"
	"boardcode-go/types"
)

func rp(role types.Role, pin types.PinIndex) types.RolePin {
	return types.RolePin{Role: role, Pin: pin}
}

func TestRP2UnitRouting(t *testing.T) {
	cases := []struct {
		name string
		spec types.BusSpec
		unit int
		ok   bool
	}{
		{"pico i2c0", types.BusSpec{Kind: types.BusI2C, Pins: []types.RolePin{rp(types.RoleSDA, 4), rp(types.RoleSCL, 5)}}, 0, true},
		{"pico i2c1", types.BusSpec{Kind: types.BusI2C, Pins: []types.RolePin{rp(types.RoleSDA, 6), rp(types.RoleSCL, 7)}}, 1, true},
		{"bb i2c1", types.BusSpec{Kind: types.BusI2C, Pins: []types.RolePin{rp(types.RoleSDA, 2), rp(types.RoleSCL, 3)}}, 1, true},
		{"i2c swapped", types.BusSpec{Kind: types.BusI2C, Pins: []types.RolePin{rp(types.RoleSDA, 5), rp(types.RoleSCL, 4)}}, 0, false},
		{"i2c mixed units", types.BusSpec{Kind: types.BusI2C, Pins: []types.RolePin{rp(types.RoleSDA, 4), rp(types.RoleSCL, 7)}}, 0, false},
		{"spi0", types.BusSpec{Kind: types.BusSPI, Pins: []types.RolePin{rp(types.RoleSCK, 18), rp(types.RoleMOSI, 19), rp(types.RoleMISO, 16)}}, 0, true},
		{"spi1", types.BusSpec{Kind: types.BusSPI, Pins: []types.RolePin{rp(types.RoleSCK, 10), rp(types.RoleMOSI, 11)}}, 1, true},
		{"uart0", types.BusSpec{Kind: types.BusUART, Pins: []types.RolePin{rp(types.RoleTX, 0), rp(types.RoleRX, 1)}}, 0, true},
		{"uart0 alt", types.BusSpec{Kind: types.BusUART, Pins: []types.RolePin{rp(types.RoleTX, 12), rp(types.RoleRX, 13)}}, 0, true},
		{"uart1", types.BusSpec{Kind: types.BusUART, Pins: []types.RolePin{rp(types.RoleTX, 4), rp(types.RoleRX, 5)}}, 1, true},
		{"uart1 alt", types.BusSpec{Kind: types.BusUART, Pins: []types.RolePin{rp(types.RoleTX, 20)}}, 1, true},
		{"uart tx on rx pin", types.BusSpec{Kind: types.BusUART, Pins: []types.RolePin{rp(types.RoleTX, 1)}}, 0, false},
		{"out of range", types.BusSpec{Kind: types.BusUART, Pins: []types.RolePin{rp(types.RoleTX, 32)}}, 0, false},
		{"empty", types.BusSpec{Kind: types.BusI2C}, 0, false},
	}
	for _, c := range cases {
		unit, err := rp2Unit(c.spec)
		if (err == nil) != c.ok {
			t.Fatalf("%s: err = %v, want ok=%v", c.name, err, c.ok)
		}
		if c.ok && unit != c.unit {
			t.Fatalf("%s: unit = %d, want %d", c.name, unit, c.unit)
		}
	}
}

// Every bus on the compiled-in RP2040 boards must route to a controller.
func TestRP2CatalogBusesRoute(t *testing.T) {
	for _, name := range []string{boards.PicoName, boards.PicoBBProto1Name} {
		e, ok := boards.Lookup(name)
		if !ok {
			t.Fatalf("%s not catalogued", name)
		}
		for _, r := range append(append([]types.Record(nil), e.Def.Common...), e.Def.Records...) {
			if !r.IsBus() {
				continue
			}
			spec := types.BusSpec{Kind: r.BusRole}
			for _, role := range types.Roles(r.BusRole) {
				if n, ok := r.Pins[role]; ok {
					spec.Pins = append(spec.Pins, rp(role, n))
				}
			}
			if _, err := rp2Unit(spec); err != nil {
				t.Fatalf("%s %s: %v", name, r.Symbol, err)
			}
		}
	}
}
