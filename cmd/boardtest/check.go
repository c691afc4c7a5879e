package main

import (
	"context"
	"time"

	"boardcode-go/board"
	"boardcode-go/bus"
	"boardcode-go/services/boardns"
	"boardcode-go/types"
)

// waitReady waits for a ready board/state document.
func waitReady(ctx context.Context, c *bus.Connection, d time.Duration) bool {
	sub := c.Subscribe(boardns.TopicState)
	defer c.Unsubscribe(sub)

	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case m := <-sub.Channel():
			if st, ok := m.Payload.(types.BoardState); ok && st.Ready {
				return true
			}
		case <-timer.C:
			return false
		case <-ctx.Done():
			return false
		}
	}
}

// checkNamespace resolves every symbol through board/resolve and compares
// the reply with a direct lookup. It returns one line per mismatch.
func checkNamespace(ctx context.Context, c *bus.Connection, reg *board.Registry, timeout time.Duration) []string {
	syms, err := reg.Symbols()
	if err != nil {
		return []string{err.Error()}
	}
	var fails []string
	for _, s := range syms {
		want, err := reg.Resolve(s)
		if err != nil {
			fails = append(fails, s+": "+err.Error())
			continue
		}

		rctx, cancel := context.WithTimeout(ctx, timeout)
		reply, err := c.RequestWait(rctx, c.NewMessage(boardns.TopicResolve, s, false))
		cancel()
		if err != nil {
			fails = append(fails, s+": no reply: "+err.Error())
			continue
		}
		rr, ok := reply.Payload.(types.ResolveReply)
		switch {
		case !ok:
			fails = append(fails, s+": malformed reply")
		case rr.Info == nil:
			fails = append(fails, s+": "+rr.Error)
		case rr.Info.Kind != want.Kind():
			fails = append(fails, s+": kind "+string(rr.Info.Kind)+", want "+string(want.Kind()))
		case !samePin(rr.Info, want):
			fails = append(fails, s+": pin mismatch, want "+want.String())
		}
	}
	return fails
}

func samePin(info *types.SymbolInfo, want board.Resource) bool {
	p, ok := want.Pin()
	if !ok {
		return info.Pin == nil
	}
	return info.Pin != nil && *info.Pin == p.Index()
}
