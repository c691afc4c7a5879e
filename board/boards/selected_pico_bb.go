//go:build pico && pico_bb_proto_1 && !board_qtpy_esp32s2

package boards

const selected = PicoBBProto1Name
