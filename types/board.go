package types

import "strconv"

// Board definitions as authored (compiled-in or loaded from YAML/JSON).
// A Definition is the declarative input; board.Registry is its validated
// runtime form.

// PinIndex is a chip-level pin number (GPIO number on ESP32-S2 and RP2040).
type PinIndex int

// ResourceKind tags what a symbol resolves to.
type ResourceKind string

const (
	ResourceNone ResourceKind = ""
	ResourcePin  ResourceKind = "pin"
	ResourceBus  ResourceKind = "bus"
)

// BusKind names a peripheral role family.
type BusKind string

const (
	BusI2C  BusKind = "i2c"
	BusSPI  BusKind = "spi"
	BusUART BusKind = "uart"
)

// Role is a signal within a bus.
type Role string

const (
	RoleSDA  Role = "sda"
	RoleSCL  Role = "scl"
	RoleSCK  Role = "sck"
	RoleMOSI Role = "mosi"
	RoleMISO Role = "miso"
	RoleTX   Role = "tx"
	RoleRX   Role = "rx"
)

// Roles returns the canonical role order for a bus kind, or nil if the
// kind is unknown.
func Roles(k BusKind) []Role {
	switch k {
	case BusI2C:
		return []Role{RoleSDA, RoleSCL}
	case BusSPI:
		return []Role{RoleSCK, RoleMOSI, RoleMISO}
	case BusUART:
		return []Role{RoleTX, RoleRX}
	default:
		return nil
	}
}

// RequiredRoles lists roles that must be wired for the kind. SPI and UART
// additionally need at least one data direction (see DataRoles).
func RequiredRoles(k BusKind) []Role {
	switch k {
	case BusI2C:
		return []Role{RoleSDA, RoleSCL}
	case BusSPI:
		return []Role{RoleSCK}
	default:
		return nil
	}
}

// DataRoles lists the data-direction roles of which at least one is needed.
func DataRoles(k BusKind) []Role {
	switch k {
	case BusSPI:
		return []Role{RoleMOSI, RoleMISO}
	case BusUART:
		return []Role{RoleTX, RoleRX}
	default:
		return nil
	}
}

// Record is one binding in a board definition: either a pin record
// ({symbol, pin}) or a bus record ({symbol, bus_role, pins}).
type Record struct {
	Symbol  string            `json:"symbol" yaml:"symbol"`
	Pin     *PinIndex         `json:"pin,omitempty" yaml:"pin,omitempty"`
	BusRole BusKind           `json:"bus_role,omitempty" yaml:"bus_role,omitempty"`
	Pins    map[Role]PinIndex `json:"pins,omitempty" yaml:"pins,omitempty"`
}

// IsBus reports whether r describes a composite bus.
func (r Record) IsBus() bool { return r.BusRole != "" || len(r.Pins) > 0 }

// P builds a pin record.
func P(symbol string, pin int) Record {
	n := PinIndex(pin)
	return Record{Symbol: symbol, Pin: &n}
}

// I2C, SPI and UART build bus records with the usual role names.
func I2C(symbol string, sda, scl int) Record {
	return Record{Symbol: symbol, BusRole: BusI2C, Pins: map[Role]PinIndex{
		RoleSDA: PinIndex(sda), RoleSCL: PinIndex(scl),
	}}
}

func SPI(symbol string, sck, mosi, miso int) Record {
	return Record{Symbol: symbol, BusRole: BusSPI, Pins: map[Role]PinIndex{
		RoleSCK: PinIndex(sck), RoleMOSI: PinIndex(mosi), RoleMISO: PinIndex(miso),
	}}
}

func UART(symbol string, tx, rx int) Record {
	return Record{Symbol: symbol, BusRole: BusUART, Pins: map[Role]PinIndex{
		RoleTX: PinIndex(tx), RoleRX: PinIndex(rx),
	}}
}

// Definition is the full declarative board description.
type Definition struct {
	Board   string   `json:"board" yaml:"board"`
	Chip    string   `json:"chip" yaml:"chip"`
	Common  []Record `json:"common,omitempty" yaml:"common,omitempty"`
	Records []Record `json:"records" yaml:"records"`
}

// RolePin is one resolved (role, pin) member of a bus.
type RolePin struct {
	Role Role     `json:"role" yaml:"role"`
	Pin  PinIndex `json:"pin" yaml:"pin"`
}

// BusSpec is what bus driver factories receive: a kind plus its members in
// canonical role order.
type BusSpec struct {
	Kind BusKind
	Pins []RolePin
}

// Pin returns the pin wired to role, if any.
func (s BusSpec) Pin(role Role) (PinIndex, bool) {
	for _, rp := range s.Pins {
		if rp.Role == role {
			return rp.Pin, true
		}
	}
	return 0, false
}

// Key is a canonical identity for the (kind, role->pin) combination.
func (s BusSpec) Key() string {
	k := string(s.Kind)
	for _, rp := range s.Pins {
		k += "|" + string(rp.Role) + "=" + strconv.Itoa(int(rp.Pin))
	}
	return k
}
