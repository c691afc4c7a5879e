package main

import (
	"context"
	"time"

	"boardcode-go/bus"
	"boardcode-go/internal/bringup"
	"boardcode-go/services/boardns"
	"boardcode-go/services/config"
	"boardcode-go/services/heartbeat"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	reg := bringup.MustSelected()

	ctx := config.WithBoard(context.Background(), reg.Board())
	b := bus.NewBus(8)

	if reg.Board() != "" {
		config.New().Start(ctx, b.NewConnection("config"))
	}
	if err := boardns.New(reg).Start(ctx, b.NewConnection("boardns")); err != nil {
		println("Warn: boardns:", err.Error())
	}
	_ = (&heartbeat.Service{}).Start(ctx, b.NewConnection("heartbeat"))

	select {}
}
