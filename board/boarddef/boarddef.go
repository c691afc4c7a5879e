// Package boarddef reads and writes the declarative board definition
// format: an ordered list of {symbol, pin} and {symbol, bus_role, pins}
// records, as YAML (JSON is accepted as a YAML subset).
package boarddef

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"boardcode-go/board"
	"boardcode-go/board/chip"
	"boardcode-go/errcode"
	"boardcode-go/types"

	"gopkg.in/yaml.v3"
)

// Decode parses exactly one definition. Unknown fields and trailing
// documents are rejected, and every record must be exactly a pin record or
// a bus record.
func Decode(r io.Reader) (types.Definition, error) {
	var def types.Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return types.Definition{}, &errcode.E{C: errcode.InvalidDefinition, Op: "decode", Msg: "empty document"}
		}
		return types.Definition{}, errcode.Wrap(errcode.InvalidDefinition, "decode", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return types.Definition{}, &errcode.E{C: errcode.InvalidDefinition, Op: "decode", Msg: "multiple documents", Err: err}
	}
	if err := Validate(def); err != nil {
		return types.Definition{}, err
	}
	return def, nil
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(b []byte) (types.Definition, error) { return Decode(bytes.NewReader(b)) }

// Load reads a definition file.
func Load(path string) (types.Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Definition{}, fmt.Errorf("open board definition: %w", err)
	}
	defer f.Close()
	def, err := Decode(f)
	if err != nil {
		return types.Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Encode writes def as YAML.
func Encode(w io.Writer, def types.Definition) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return fmt.Errorf("encode board definition: %w", err)
	}
	return enc.Close()
}

// Validate checks record shape only. Pin existence and bus composition are
// checked by board.Build against the chip.
func Validate(def types.Definition) error {
	check := func(list string, recs []types.Record) error {
		for i, r := range recs {
			where := fmt.Sprintf("%s[%d] %q", list, i, r.Symbol)
			switch {
			case r.Symbol == "":
				return &errcode.E{C: errcode.InvalidDefinition, Op: "validate", Msg: where + ": missing symbol"}
			case r.Pin != nil && r.IsBus():
				return &errcode.E{C: errcode.InvalidDefinition, Op: "validate", Msg: where + ": pin and bus_role are exclusive"}
			case r.Pin == nil && !r.IsBus():
				return &errcode.E{C: errcode.InvalidDefinition, Op: "validate", Msg: where + ": needs pin or bus_role"}
			case r.IsBus() && r.BusRole == "":
				return &errcode.E{C: errcode.InvalidDefinition, Op: "validate", Msg: where + ": pins without bus_role"}
			case r.IsBus() && len(r.Pins) == 0:
				return &errcode.E{C: errcode.InvalidDefinition, Op: "validate", Msg: where + ": bus_role without pins"}
			}
		}
		return nil
	}
	if err := check("common", def.Common); err != nil {
		return err
	}
	return check("records", def.Records)
}

// ChipByName resolves the definition's chip field.
func ChipByName(name string) (chip.Chip, error) {
	c, ok := chip.ByName(name)
	if !ok {
		return chip.Chip{}, &errcode.E{C: errcode.InvalidDefinition, Op: "chip", Msg: "unknown chip " + fmt.Sprintf("%q", name)}
	}
	return c, nil
}

// Compile resolves the chip and builds the registry.
func Compile(def types.Definition, drv board.Drivers) (*board.Registry, error) {
	c, err := ChipByName(def.Chip)
	if err != nil {
		return nil, err
	}
	return board.Build(def, c, drv)
}
