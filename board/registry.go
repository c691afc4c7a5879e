// Package board holds the board registry: the immutable table binding
// symbolic names (silkscreen labels, bus roles) to chip pins and composed
// peripheral buses.
//
// A Registry is built once from a types.Definition, validated against a
// chip, and read concurrently without locks thereafter.
package board

import (
	"strconv"
	"strings"

	"boardcode-go/board/chip"
	"boardcode-go/board/platform"
	"boardcode-go/errcode"
	"boardcode-go/types"
)

// State is the registry lifecycle. Ready is terminal.
type State uint8

const (
	StateUninitialized State = iota
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "uninitialized"
}

// Drivers are the pin/bus constructors the registry composes. Either may be
// nil, in which case resources carry indices only.
type Drivers struct {
	Pins  platform.PinFactory
	Buses platform.BusFactory
}

// Registry is the compiled, validated form of a board definition. The zero
// value is Uninitialized and rejects every lookup.
type Registry struct {
	board    string
	chip     string
	ready    bool
	table    map[string]Resource
	order    []string
	aliases  map[any][]string
	warnings []Warning
}

// Build merges def.Common and def.Records, validates every binding against
// ch, composes buses through drv and returns a Ready registry. On any error
// it returns nil: no partially populated registry is ever observable.
func Build(def types.Definition, ch chip.Chip, drv Drivers) (*Registry, error) {
	entries := merge(def)

	if err := checkUnique(entries); err != nil {
		return nil, err
	}
	specs := make([]types.BusSpec, len(entries))
	for i, e := range entries {
		if e.rec.IsBus() {
			spec, err := composeBus(e.rec, ch)
			if err != nil {
				return nil, err
			}
			specs[i] = spec
			continue
		}
		if err := checkPin(e.rec, ch); err != nil {
			return nil, err
		}
	}

	// All input is valid; only driver constructors can fail from here on.
	b := &builder{ch: ch, drv: drv, pins: map[types.PinIndex]*Pin{}, buses: map[string]*Bus{}}
	r := &Registry{
		board:   def.Board,
		chip:    ch.Name,
		table:   make(map[string]Resource, len(entries)),
		order:   make([]string, 0, len(entries)),
		aliases: map[any][]string{},
	}
	for i, e := range entries {
		var res Resource
		if e.rec.IsBus() {
			bus, err := b.bus(e.rec.Symbol, specs[i])
			if err != nil {
				return nil, err
			}
			res = busResource(bus)
		} else {
			p, err := b.pin(e.rec.Symbol, *e.rec.Pin)
			if err != nil {
				return nil, err
			}
			res = pinResource(p)
		}
		r.table[e.rec.Symbol] = res
		r.order = append(r.order, e.rec.Symbol)
		id := res.identity()
		r.aliases[id] = append(r.aliases[id], e.rec.Symbol)
	}
	r.warnings = seriesWarnings(r)
	r.ready = true
	return r, nil
}

// ---- merge & validation ----

type entry struct {
	rec  types.Record
	decl int // position in the authored input (common first)
}

// merge returns entries in listing order: common pins, board pins, then
// buses (common before board), each in declaration order.
func merge(def types.Definition) []entry {
	all := make([]entry, 0, len(def.Common)+len(def.Records))
	for _, r := range def.Common {
		all = append(all, entry{rec: r, decl: len(all)})
	}
	for _, r := range def.Records {
		all = append(all, entry{rec: r, decl: len(all)})
	}
	out := make([]entry, 0, len(all))
	for _, e := range all {
		if !e.rec.IsBus() {
			out = append(out, e)
		}
	}
	for _, e := range all {
		if e.rec.IsBus() {
			out = append(out, e)
		}
	}
	return out
}

// checkUnique runs over the final merged table so a board symbol colliding
// with a common one is caught. Symbols become bus topic tokens, so '/', '+'
// and '#' are refused.
func checkUnique(entries []entry) error {
	seen := make(map[string]int, len(entries))
	for _, e := range entries {
		if e.rec.Symbol == "" {
			return &errcode.E{C: errcode.InvalidDefinition, Op: "build", Msg: "empty symbol at #" + strconv.Itoa(e.decl)}
		}
		if strings.ContainsAny(e.rec.Symbol, "+#/") {
			return &errcode.E{C: errcode.InvalidDefinition, Op: "build", Msg: strconv.Quote(e.rec.Symbol) + " contains a topic separator or wildcard"}
		}
		if first, dup := seen[e.rec.Symbol]; dup {
			a, b := first, e.decl
			if a > b {
				a, b = b, a
			}
			return &errcode.DuplicateSymbolError{Symbol: e.rec.Symbol, First: a, Second: b}
		}
		seen[e.rec.Symbol] = e.decl
	}
	return nil
}

func checkPin(rec types.Record, ch chip.Chip) error {
	if rec.Pin == nil {
		return &errcode.E{C: errcode.InvalidDefinition, Op: "build", Msg: strconv.Quote(rec.Symbol) + " has neither pin nor bus_role"}
	}
	if !ch.Has(*rec.Pin) {
		return &errcode.UnknownPinError{Symbol: rec.Symbol, Pin: int(*rec.Pin), Chip: ch.Name}
	}
	return nil
}

// composeBus validates a bus record and returns its members in canonical
// role order.
func composeBus(rec types.Record, ch chip.Chip) (types.BusSpec, error) {
	fail := func(role types.Role, pin types.PinIndex, reason string, cause error) (types.BusSpec, error) {
		return types.BusSpec{}, &errcode.BusCompositionError{
			Symbol: rec.Symbol, Role: string(role), Pin: int(pin), Reason: reason, Err: cause,
		}
	}
	if rec.Pin != nil {
		return fail("", *rec.Pin, "record has both pin and bus_role", nil)
	}
	roles := types.Roles(rec.BusRole)
	if roles == nil {
		return fail("", 0, "unknown bus kind "+strconv.Quote(string(rec.BusRole)), nil)
	}
	for role := range rec.Pins {
		if !hasRole(roles, role) {
			return fail(role, 0, "role not valid for "+string(rec.BusRole), nil)
		}
	}
	for _, role := range types.RequiredRoles(rec.BusRole) {
		if _, ok := rec.Pins[role]; !ok {
			return fail(role, 0, "missing required role", nil)
		}
	}
	if data := types.DataRoles(rec.BusRole); data != nil {
		wired := false
		for _, role := range data {
			if _, ok := rec.Pins[role]; ok {
				wired = true
			}
		}
		if !wired {
			return fail("", 0, "needs at least one data role", nil)
		}
	}

	spec := types.BusSpec{Kind: rec.BusRole}
	owner := map[types.PinIndex]types.Role{}
	for _, role := range roles {
		pin, ok := rec.Pins[role]
		if !ok {
			continue
		}
		if !ch.Has(pin) {
			return fail(role, pin, "", &errcode.UnknownPinError{Symbol: rec.Symbol, Pin: int(pin), Chip: ch.Name})
		}
		if prev, dup := owner[pin]; dup {
			return fail(role, pin, "pin "+strconv.Itoa(int(pin))+" also wired to "+string(prev), nil)
		}
		owner[pin] = role
		spec.Pins = append(spec.Pins, types.RolePin{Role: role, Pin: pin})
	}
	return spec, nil
}

func hasRole(roles []types.Role, r types.Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}

// ---- handle construction ----

type builder struct {
	ch    chip.Chip
	drv   Drivers
	pins  map[types.PinIndex]*Pin
	buses map[string]*Bus
}

// pin returns the canonical *Pin for n, creating it on first use.
func (b *builder) pin(symbol string, n types.PinIndex) (*Pin, error) {
	if p, ok := b.pins[n]; ok {
		return p, nil
	}
	p := &Pin{index: n}
	if b.drv.Pins != nil {
		h, ok := b.drv.Pins.ByNumber(int(n))
		if !ok {
			return nil, &errcode.UnknownPinError{Symbol: symbol, Pin: int(n), Chip: b.ch.Name}
		}
		p.handle = h
	}
	b.pins[n] = p
	return p, nil
}

// bus reuses an identical bus if one exists.
func (b *builder) bus(symbol string, spec types.BusSpec) (*Bus, error) {
	key := spec.Key()
	if bus, ok := b.buses[key]; ok {
		return bus, nil
	}
	bus := &Bus{spec: spec, pins: make([]*Pin, len(spec.Pins))}
	for i, rp := range spec.Pins {
		p, err := b.pin(symbol, rp.Pin)
		if err != nil {
			return nil, &errcode.BusCompositionError{Symbol: symbol, Role: string(rp.Role), Pin: int(rp.Pin), Err: err}
		}
		bus.pins[i] = p
	}
	if b.drv.Buses != nil {
		h, err := b.drv.Buses.Open(spec)
		if err != nil {
			return nil, &errcode.BusCompositionError{Symbol: symbol, Reason: "driver", Err: err}
		}
		bus.handle = h
	}
	b.buses[key] = bus
	return bus, nil
}

// ---- lookup ----

// State reports the lifecycle state. A nil registry is Uninitialized.
func (r *Registry) State() State {
	if r == nil || !r.ready {
		return StateUninitialized
	}
	return StateReady
}

// Board is the board name from the definition.
func (r *Registry) Board() string {
	if r == nil {
		return ""
	}
	return r.board
}

// Chip is the target chip name.
func (r *Registry) Chip() string {
	if r == nil {
		return ""
	}
	return r.chip
}

// Resolve returns the resource bound to symbol. Exact, case-sensitive match.
func (r *Registry) Resolve(symbol string) (Resource, error) {
	if r.State() != StateReady {
		return Resource{}, &errcode.NotReadyError{Op: "resolve"}
	}
	res, ok := r.table[symbol]
	if !ok {
		return Resource{}, &errcode.UnknownSymbolError{Symbol: symbol}
	}
	return res, nil
}

// Pin resolves symbol and requires it to be a pin.
func (r *Registry) Pin(symbol string) (*Pin, error) {
	res, err := r.Resolve(symbol)
	if err != nil {
		return nil, err
	}
	p, ok := res.Pin()
	if !ok {
		return nil, &errcode.E{C: errcode.WrongKind, Op: "pin", Msg: strconv.Quote(symbol) + " is a bus"}
	}
	return p, nil
}

// Bus resolves symbol and requires it to be a bus.
func (r *Registry) Bus(symbol string) (*Bus, error) {
	res, err := r.Resolve(symbol)
	if err != nil {
		return nil, err
	}
	b, ok := res.Bus()
	if !ok {
		return nil, &errcode.E{C: errcode.WrongKind, Op: "bus", Msg: strconv.Quote(symbol) + " is a pin"}
	}
	return b, nil
}

// Symbols returns the advertised symbols in declaration order: common pins,
// board pins, then buses. The slice is a fresh copy.
func (r *Registry) Symbols() ([]string, error) {
	if r.State() != StateReady {
		return nil, &errcode.NotReadyError{Op: "symbols"}
	}
	return append([]string(nil), r.order...), nil
}

// Aliases returns every symbol bound to the same resource as symbol,
// including symbol itself, in declaration order.
func (r *Registry) Aliases(symbol string) ([]string, error) {
	res, err := r.Resolve(symbol)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), r.aliases[res.identity()]...), nil
}

// Warnings returns data-validation findings. They never affect bindings.
func (r *Registry) Warnings() []Warning {
	if r == nil {
		return nil
	}
	return append([]Warning(nil), r.warnings...)
}
