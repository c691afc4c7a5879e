// Package boardns loads a board registry into the bus namespace: one
// retained document per symbol, a board state document, and a resolve
// request endpoint.
package boardns

import (
	"context"

	"boardcode-go/board"
	"boardcode-go/bus"
	"boardcode-go/errcode"
	"boardcode-go/types"
)

const serviceName = "boardns"

var (
	TopicState   = bus.T("board", "state")
	TopicSym     = bus.T("board", "sym")
	TopicResolve = bus.T("board", "resolve")
)

type Service struct {
	Name string
	reg  *board.Registry
}

func New(reg *board.Registry) *Service {
	return &Service{Name: serviceName, reg: reg}
}

// Info describes one symbol as published on the bus.
func Info(reg *board.Registry, symbol string) (types.SymbolInfo, error) {
	res, err := reg.Resolve(symbol)
	if err != nil {
		return types.SymbolInfo{}, err
	}
	aliases, _ := reg.Aliases(symbol)
	info := types.SymbolInfo{Symbol: symbol, Kind: res.Kind(), Aliases: aliases}
	if p, ok := res.Pin(); ok {
		n := p.Index()
		info.Pin = &n
	}
	if b, ok := res.Bus(); ok {
		spec := b.Spec()
		info.Bus = spec.Kind
		info.Members = spec.Pins
	}
	return info, nil
}

// Publish writes every symbol then the state document, all retained.
// Consumers that see board/state ready can rely on every board/sym/* being
// present.
func (s *Service) Publish(conn *bus.Connection) error {
	syms, err := s.reg.Symbols()
	if err != nil {
		conn.Publish(conn.NewMessage(TopicState, types.BoardState{Error: errcode.Of(err).Error()}, true))
		return err
	}
	for _, sym := range syms {
		info, err := Info(s.reg, sym)
		if err != nil {
			return err
		}
		conn.Publish(conn.NewMessage(TopicSym.Append(sym), info, true))
	}
	st := types.BoardState{
		Board:   s.reg.Board(),
		Chip:    s.reg.Chip(),
		Ready:   true,
		Symbols: len(syms),
	}
	for _, w := range s.reg.Warnings() {
		st.Warnings = append(st.Warnings, w.Msg)
	}
	conn.Publish(conn.NewMessage(TopicState, st, true))
	return nil
}

// serviceLoop answers board/resolve requests until ctx is cancelled.
func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection, sub *bus.Subscription) {
	defer conn.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			sym, _ := msg.Payload.(string)
			info, err := Info(s.reg, sym)
			if err != nil {
				conn.Reply(msg, types.ResolveReply{Error: err.Error()}, false)
				continue
			}
			conn.Reply(msg, types.ResolveReply{Info: &info}, false)
		}
	}
}

// Start publishes the namespace and serves resolve requests in a goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	if err := s.Publish(conn); err != nil {
		return err
	}
	sub := conn.Subscribe(TopicResolve)
	go s.serviceLoop(ctx, conn, sub)
	return nil
}
