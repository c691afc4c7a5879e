//go:build board_qtpy_esp32s2

package boards

const selected = QTPyESP32S2Name
