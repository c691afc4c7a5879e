package platform

import (
	"errors"

	"boardcode-go/types"
)

// RP2040/RP2350 peripheral routing. Each GPIO can carry one function per
// peripheral; the controller instance follows from the pin number.

var (
	errPinFunction = errors.New("pin has no such function")
	errMixedUnits  = errors.New("pins belong to different controllers")
)

// rp2Unit returns the controller index (0 or 1) that a validated spec
// must use on RP2 parts.
func rp2Unit(spec types.BusSpec) (int, error) {
	unit := -1
	for _, rp := range spec.Pins {
		u, ok := rp2PinUnit(spec.Kind, rp.Role, int(rp.Pin))
		if !ok {
			return 0, errPinFunction
		}
		if unit >= 0 && u != unit {
			return 0, errMixedUnits
		}
		unit = u
	}
	if unit < 0 {
		return 0, errPinFunction
	}
	return unit, nil
}

func rp2PinUnit(kind types.BusKind, role types.Role, n int) (int, bool) {
	if n < 0 || n > 29 {
		return 0, false
	}
	slot := n % 4
	switch kind {
	case types.BusI2C:
		// SDA on 0,4,8..; SCL one above. Units alternate every two pins.
		want := map[types.Role]int{types.RoleSDA: 0, types.RoleSCL: 1}
		if w, ok := want[role]; !ok || slot%2 != w {
			return 0, false
		}
		return (n / 2) % 2, true
	case types.BusSPI:
		want := map[types.Role]int{types.RoleMISO: 0, types.RoleSCK: 2, types.RoleMOSI: 3}
		if w, ok := want[role]; !ok || slot != w {
			return 0, false
		}
		return (n / 8) % 2, true
	case types.BusUART:
		want := map[types.Role]int{types.RoleTX: 0, types.RoleRX: 1}
		if w, ok := want[role]; !ok || slot != w {
			return 0, false
		}
		return ((n&^3 + 4) / 8) % 2, true
	}
	return 0, false
}
