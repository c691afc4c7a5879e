package boards

import (
	"boardcode-go/board/chip"
	"boardcode-go/types"
)

// Adafruit QT Py ESP32-S2.
//
// The A-series labels follow the silkscreen as shipped: A5 is wired to
// GPIO5 (shared with D5/TX/A6), not GPIO6. The registry reports this as a
// warning and keeps the binding.

const QTPyESP32S2Name = "adafruit_qtpy_esp32s2"

// QTPyCommon are the product-line defaults shared by QT Py ESP32-S2 variants.
var QTPyCommon = []types.Record{
	types.P("BUTTON", 0),
	types.P("NEOPIXEL_POWER", 38),
	types.P("NEOPIXEL", 39),
}

// QTPyESP32S2 are the board-specific bindings, in silkscreen order.
var QTPyESP32S2 = []types.Record{
	types.P("D0", 0),

	types.P("D18", 18),
	types.P("A0", 18),

	types.P("D17", 17),
	types.P("A1", 17),

	types.P("D9", 9),
	types.P("A2", 9),

	types.P("D8", 8),
	types.P("A3", 8),

	types.P("D7", 7),
	types.P("SDA", 7),
	types.P("A4", 7),

	types.P("D6", 6),
	types.P("SCL", 6),
	types.P("A5", 5),

	types.P("D5", 5),
	types.P("TX", 5),
	types.P("A6", 5),

	types.P("D16", 16),
	types.P("RX", 16),
	types.P("A7", 16),

	types.P("D35", 35),
	types.P("MOSI", 35),

	types.P("D34", 34),
	types.P("SCK", 34),

	types.P("D33", 33),
	types.P("MISO", 33),

	types.P("D40", 40),
	types.P("SCL1", 40),

	types.P("D41", 41),
	types.P("SDA1", 41),

	types.I2C("I2C", 7, 6),
	types.SPI("SPI", 34, 35, 33),
	types.UART("UART", 5, 16),
	types.I2C("STEMMA_I2C", 41, 40),
}

// QTPyESP32S2Definition assembles the full definition.
func QTPyESP32S2Definition() types.Definition {
	return types.Definition{
		Board:   QTPyESP32S2Name,
		Chip:    chip.ESP32S2.Name,
		Common:  QTPyCommon,
		Records: QTPyESP32S2,
	}
}

func init() {
	Register(QTPyESP32S2Name, Entry{Def: QTPyESP32S2Definition(), Chip: chip.ESP32S2})
}
