package config

// Runtime settings per board name. Pin and bus bindings live in the board
// definitions, not here.

const cfgQTPyESP32S2 = `{
  "heartbeat": {
    "interval": 5
  }
}`

const cfgPico = `{
  "heartbeat": {
    "interval": 2
  }
}`

var embeddedConfigs = map[string][]byte{
	"adafruit_qtpy_esp32s2": []byte(cfgQTPyESP32S2),
	"pico":                  []byte(cfgPico),
	"pico_bb_proto_1":       []byte(cfgPico),
}
