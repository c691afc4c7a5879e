package boards

import (
	"strconv"

	"boardcode-go/board/chip"
	"boardcode-go/types"
)

// Raspberry Pi Pico and the bring-up carriers built on it. The Pico family
// shares the onboard LED; each carrier wires its own controllers.

const (
	PicoName         = "pico"
	PicoBBProto1Name = "pico_bb_proto_1"
)

// PicoCommon are defaults for every Pico-based board.
var PicoCommon = []types.Record{
	types.P("LED", 25),
}

// picoHeader returns GP0..GP28 bound as "GP<n>".
func picoHeader() []types.Record {
	out := make([]types.Record, 0, 29)
	for n := 0; n <= 28; n++ {
		out = append(out, types.P("GP"+strconv.Itoa(n), n))
	}
	return out
}

// PicoDefinition is the bare Pico with the SDK's default controller pins.
func PicoDefinition() types.Definition {
	recs := picoHeader()
	recs = append(recs,
		types.I2C("I2C0", 4, 5),
		types.I2C("I2C1", 6, 7),
		types.UART("UART0", 0, 1),
		types.SPI("SPI0", 18, 19, 16),
	)
	return types.Definition{Board: PicoName, Chip: chip.RP2040.Name, Common: PicoCommon, Records: recs}
}

// PicoBBProto1Definition is the breadboard prototype carrier: two sensor
// buses, a modem UART and named power-rail enables.
func PicoBBProto1Definition() types.Definition {
	recs := picoHeader()
	recs = append(recs,
		types.P("BUTTON_LED", 11),
		types.P("EG25_EN", 6),
		types.P("RM520N_EN", 7),
		types.P("AW7915_EN", 8),
		types.P("CM5_5V_EN", 9),
		types.P("FAN_5V_EN", 10),
		types.P("BOOST_LOAD_EN", 14),

		types.I2C("I2C0", 4, 5),
		types.I2C("I2C1", 2, 3),
		types.UART("UART0", 0, 1),
	)
	return types.Definition{Board: PicoBBProto1Name, Chip: chip.RP2040.Name, Common: PicoCommon, Records: recs}
}

func init() {
	Register(PicoName, Entry{Def: PicoDefinition(), Chip: chip.RP2040})
	Register(PicoBBProto1Name, Entry{Def: PicoBBProto1Definition(), Chip: chip.RP2040})
}
