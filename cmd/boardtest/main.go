// cmd/boardtest/main.go
package main

import (
	"context"
	"time"

	"boardcode-go/board"
	"boardcode-go/bus"
	"boardcode-go/internal/bringup"
	"boardcode-go/services/boardns"
)

// ---------- Configuration ----------

const (
	stateTimeout   = 5 * time.Second
	requestTimeout = 500 * time.Millisecond
	cycleDelay     = 5 * time.Second

	// Cycles: 0 = loop forever
	cyclesToRun = 0
)

// Symbols tried, in order, for the pass/fail indicator.
var indicatorSymbols = []string{"LED", "BUTTON_LED"}

// ---------- Helpers ----------

func indicator(reg *board.Registry) *board.Pin {
	for _, s := range indicatorSymbols {
		if p, err := reg.Pin(s); err == nil {
			if g, ok := p.GPIO(); ok {
				_ = g.ConfigureOutput(false)
				return p
			}
		}
	}
	return nil
}

func flashPassFail(p *board.Pin, pass bool) {
	if p == nil {
		return
	}
	g, _ := p.GPIO()
	if pass {
		// Double short
		for i := 0; i < 2; i++ {
			g.Set(true)
			time.Sleep(120 * time.Millisecond)
			g.Set(false)
			time.Sleep(200 * time.Millisecond)
		}
		return
	}
	// Single long
	g.Set(true)
	time.Sleep(400 * time.Millisecond)
	g.Set(false)
	time.Sleep(200 * time.Millisecond)
}

// ---------- Main ----------

func main() {
	time.Sleep(2 * time.Second)
	ctx := context.Background()

	reg := bringup.MustSelected()

	b := bus.NewBus(8)
	nsConn := b.NewConnection("boardns")
	ui := b.NewConnection("boardtest")

	if err := boardns.New(reg).Start(ctx, nsConn); err != nil {
		println("[boardtest] boardns:", err.Error())
	}
	if !waitReady(ctx, ui, stateTimeout) {
		println("[boardtest] board/state not ready within timeout; continuing")
	}
	led := indicator(reg)

	cycle := 0
	for {
		cycle++
		println("=== boardtest: cycle", cycle, "===")

		fails := checkNamespace(ctx, ui, reg, requestTimeout)
		pass := len(fails) == 0
		if pass {
			println("[PASS] every symbol resolved over the bus")
		} else {
			for _, f := range fails {
				println("[FAIL]", f)
			}
		}
		flashPassFail(led, pass)

		if cyclesToRun > 0 && cycle >= cyclesToRun {
			println("completed", cycle, "cycles; halting")
			return
		}
		time.Sleep(cycleDelay)
	}
}
