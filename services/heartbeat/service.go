// Package heartbeat prints a periodic liveness line naming the board the
// firmware brought up.
package heartbeat

import (
	"context"
	"strconv"
	"time"

	"boardcode-go/bus"
	"boardcode-go/services/boardns"
	"boardcode-go/services/config"
	"boardcode-go/types"
)

const DefaultInterval = time.Second

type Service struct {
	// Print receives each line. Nil means println.
	Print func(line string)

	interval time.Duration
	state    types.BoardState
}

// Line formats one heartbeat for the given time.
func (s *Service) Line(t time.Time) string {
	line := t.Format("15:04:05") + " Heartbeat"
	switch {
	case s.state.Ready:
		line += " " + s.state.Board + " (" + strconv.Itoa(s.state.Symbols) + " symbols)"
	case s.state.Error != "":
		line += " board " + s.state.Error
	}
	return line
}

// intervalFrom reads {"interval": seconds} from a config payload.
func intervalFrom(payload any) (time.Duration, bool) {
	m, ok := payload.(map[string]any)
	if !ok {
		return 0, false
	}
	iv, ok := m["interval"].(float64)
	if !ok || iv <= 0 {
		return 0, false
	}
	return time.Duration(iv * float64(time.Second)), true
}

func (s *Service) print(line string) {
	if s.Print != nil {
		s.Print(line)
		return
	}
	println("Info:", line)
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(config.Topic("heartbeat"))
	defer conn.Unsubscribe(cfgSub)
	stSub := conn.Subscribe(boardns.TopicState)
	defer conn.Unsubscribe(stSub)

	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	tick := time.NewTicker(s.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			s.print("heartbeat service stopping")
			return
		case t := <-tick.C:
			s.print(s.Line(t))
		case msg := <-stSub.Channel():
			if st, ok := msg.Payload.(types.BoardState); ok {
				s.state = st
			}
		case msg := <-cfgSub.Channel():
			if d, ok := intervalFrom(msg.Payload); ok && d != s.interval {
				s.interval = d
				tick.Reset(d)
				s.print("heartbeat interval set to " + d.String())
			}
		}
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
