//go:build !board_qtpy_esp32s2 && !pico

package boards

const selected = ""
