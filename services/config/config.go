// Package config publishes a board's embedded runtime configuration as
// retained config/<key> messages.
package config

import (
	"context"
	"encoding/json"

	"boardcode-go/bus"
	"boardcode-go/errcode"
)

const (
	serviceName  = "config"
	configPrefix = "config"
)

type ctxKey struct{}

// WithBoard returns a context carrying the board name whose config is
// published.
func WithBoard(ctx context.Context, board string) context.Context {
	return context.WithValue(ctx, ctxKey{}, board)
}

// BoardFrom returns the board name stored by WithBoard.
func BoardFrom(ctx context.Context) string {
	s, _ := ctx.Value(ctxKey{}).(string)
	return s
}

// Topic returns the retained topic for one config key.
func Topic(key string) bus.Topic { return bus.T(configPrefix, key) }

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedConfigs[board]
	return b, ok
}

type Service struct {
	Name string
}

func New() *Service {
	return &Service{Name: serviceName}
}

// Publish reads the board's embedded JSON object and publishes each top
// level key as a retained message.
func (s *Service) Publish(ctx context.Context, conn *bus.Connection) error {
	board := BoardFrom(ctx)
	if board == "" {
		return &errcode.E{C: errcode.InvalidDefinition, Op: "config", Msg: "no board in context"}
	}
	raw, ok := EmbeddedConfigLookup(board)
	if !ok || len(raw) == 0 {
		return &errcode.E{C: errcode.UnknownBoard, Op: "config", Msg: "no embedded config for " + board}
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return errcode.Wrap(errcode.InvalidDefinition, "config", err)
	}
	for k, v := range m {
		conn.Publish(conn.NewMessage(Topic(k), v, true))
	}
	return nil
}

// Start launches the publisher in a goroutine. Failures are printed.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.Publish(ctx, conn); err != nil {
			println("Warn: config:", err.Error())
		}
	}()
}
