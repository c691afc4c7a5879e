// Package bringup builds and publishes the process-wide board registry for
// firmware images.
package bringup

import (
	"boardcode-go/board"
	"boardcode-go/board/boards"
	"boardcode-go/board/platform"
	"boardcode-go/errcode"
)

// Build constructs the named board against the platform's factories and
// installs it as the process registry.
func Build(name string) (*board.Registry, error) {
	e, ok := boards.Lookup(name)
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownBoard, Op: "bringup", Msg: name}
	}
	reg, err := board.Build(e.Def, e.Chip, board.Drivers{
		Pins:  platform.DefaultPinFactory(),
		Buses: platform.DefaultBusFactory(),
	})
	if err != nil {
		return nil, err
	}
	if err := board.Init(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// MustSelected builds the build-tag selected board and reports it on the
// console. A construction error halts: the image must not run against a
// wrong pin map. With no board selected it returns an uninitialised
// registry.
func MustSelected() *board.Registry {
	name := boards.Selected()
	if name == "" {
		println("Warn: no board selected; build with a board tag")
		return &board.Registry{}
	}
	reg, err := Build(name)
	if err != nil {
		panic(err.Error())
	}
	syms, _ := reg.Symbols()
	println("Info: board", reg.Board(), "ready:", len(syms), "symbols on", reg.Chip())
	for _, w := range reg.Warnings() {
		println("Warn:", w.Msg)
	}
	return reg
}
