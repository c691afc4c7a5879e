package bus

import (
	"context"
	"slices"
	"sort"
	"testing"
	"time"
)

const (
	quiet = 50 * time.Millisecond
	wait  = 300 * time.Millisecond
)

// recv returns the next payload on s as a string, failing after wait.
func recv(t *testing.T, s *Subscription) string {
	t.Helper()
	select {
	case m := <-s.Channel():
		p, ok := m.Payload.(string)
		if !ok {
			t.Fatalf("%v: payload %T, want string", s.Topic(), m.Payload)
		}
		return p
	case <-time.After(wait):
		t.Fatalf("%v: nothing delivered", s.Topic())
		return ""
	}
}

func silent(t *testing.T, s *Subscription) {
	t.Helper()
	select {
	case m := <-s.Channel():
		t.Fatalf("%v: unexpected %v %#v", s.Topic(), m.Topic, m.Payload)
	case <-time.After(quiet):
	}
}

// collect reads exactly n string payloads and returns them sorted.
func collect(t *testing.T, s *Subscription, n int) []string {
	t.Helper()
	out := make([]string, 0, n)
	for len(out) < n {
		out = append(out, recv(t, s))
	}
	sort.Strings(out)
	return out
}

func TestPublishSubscribe(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	s := c.Subscribe(T("board", "sym", "SDA"))
	c.Publish(c.NewMessage(T("board", "sym", "SDA"), "GPIO7", false))
	if got := recv(t, s); got != "GPIO7" {
		t.Fatalf("got %q", got)
	}

	// Non-retained messages are not replayed.
	late := c.Subscribe(T("board", "sym", "SDA"))
	silent(t, late)
}

func TestRetainedReplay(t *testing.T) {
	b := NewBus(8)
	c := b.NewConnection("test")

	c.Publish(c.NewMessage(T("board", "sym", "SDA"), "GPIO7", true))
	c.Publish(c.NewMessage(T("board", "sym", "SCL"), "GPIO6", true))
	c.Publish(c.NewMessage(T("board", "state"), "ready", true))

	s := c.Subscribe(T("board", "sym", "SDA"))
	if got := recv(t, s); got != "GPIO7" {
		t.Fatalf("got %q", got)
	}

	// Latest retained value wins.
	c.Publish(c.NewMessage(T("board", "sym", "SDA"), "GPIO8", true))
	if got := recv(t, s); got != "GPIO8" {
		t.Fatalf("live update = %q", got)
	}
	again := c.Subscribe(T("board", "sym", "SDA"))
	if got := recv(t, again); got != "GPIO8" {
		t.Fatalf("replay after update = %q", got)
	}

	// A nil retained payload clears the topic.
	c.Publish(c.NewMessage(T("board", "sym", "SCL"), nil, true))
	all := c.Subscribe(T("board", "sym", "+"))
	if got := collect(t, all, 1); !slices.Equal(got, []string{"GPIO8"}) {
		t.Fatalf("after clear = %v", got)
	}
	silent(t, all)
}

func TestWildcardDelivery(t *testing.T) {
	topics := []Topic{
		T("board"),
		T("board", "state"),
		T("board", "sym", "SDA"),
		T("board", "sym", "I2C"),
		T("config", "heartbeat"),
	}
	cases := []struct {
		filter Topic
		want   []string
	}{
		{T("board", "sym", "+"), []string{"board/sym/I2C", "board/sym/SDA"}},
		{T("board", "+"), []string{"board/state"}},
		{T("board", "#"), []string{"board", "board/state", "board/sym/I2C", "board/sym/SDA"}},
		{T("+", "heartbeat"), []string{"config/heartbeat"}},
		{T("#"), []string{"board", "board/state", "board/sym/I2C", "board/sym/SDA", "config/heartbeat"}},
		{T("board", "+", "+"), []string{"board/sym/I2C", "board/sym/SDA"}},
		{T("board", "sym", "SCL"), nil},
	}
	for _, tc := range cases {
		b := NewBus(16)
		c := b.NewConnection("test")
		s := c.Subscribe(tc.filter)
		for _, tp := range topics {
			c.Publish(c.NewMessage(tp, join(tp), false))
		}
		if got := collect(t, s, len(tc.want)); !slices.Equal(got, tc.want) {
			t.Fatalf("%v: got %v, want %v", tc.filter, got, tc.want)
		}
		silent(t, s)
	}
}

func TestWildcardRetainedReplay(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")
	for _, tp := range []Topic{T("board", "state"), T("board", "sym", "A0"), T("board", "sym", "A1"), T("config", "heartbeat")} {
		c.Publish(c.NewMessage(tp, join(tp), true))
	}

	cases := []struct {
		filter Topic
		want   []string
	}{
		{T("board", "sym", "+"), []string{"board/sym/A0", "board/sym/A1"}},
		{T("board", "+", "#"), []string{"board/state", "board/sym/A0", "board/sym/A1"}},
		{T("#"), []string{"board/state", "board/sym/A0", "board/sym/A1", "config/heartbeat"}},
	}
	for _, tc := range cases {
		s := c.Subscribe(tc.filter)
		if got := collect(t, s, len(tc.want)); !slices.Equal(got, tc.want) {
			t.Fatalf("%v: got %v, want %v", tc.filter, got, tc.want)
		}
		c.Unsubscribe(s)
	}
}

func TestMatch(t *testing.T) {
	cases := []struct {
		filter, topic Topic
		want          bool
	}{
		{T("board", "sym", "+"), T("board", "sym", "SDA"), true},
		{T("board", "sym", "+"), T("board", "sym"), false},
		{T("board", "#"), T("board"), true},
		{T("board", "#"), T("board", "sym", "SDA"), true},
		{T("#"), T(), true},
		{T("board", "state"), T("board", "state"), true},
		{T("board", "state"), T("board", "state", "x"), false},
	}
	for _, c := range cases {
		if got := Match(c.filter, c.topic); got != c.want {
			t.Fatalf("Match(%v, %v) = %v, want %v", c.filter, c.topic, got, c.want)
		}
	}
}

func TestAppendDoesNotAlias(t *testing.T) {
	base := make(Topic, 1, 4)
	base[0] = "board"
	a := base.Append("sym")
	b := base.Append("state")
	if a[1] != "sym" || b[1] != "state" {
		t.Fatalf("Append aliased: %v %v", a, b)
	}
}

func TestQueueDropsOldest(t *testing.T) {
	b := NewBus(2)
	c := b.NewConnection("test")
	s := c.Subscribe(T("board", "state"))
	for _, p := range []string{"1", "2", "3"} {
		c.Publish(c.NewMessage(T("board", "state"), p, false))
	}
	if a, b := recv(t, s), recv(t, s); a != "2" || b != "3" {
		t.Fatalf("got %s %s, want 2 3", a, b)
	}
}

func TestRequestWait(t *testing.T) {
	b := NewBus(8)
	client := b.NewConnection("client")
	server := b.NewConnection("server")

	reqs := server.Subscribe(T("board", "resolve"))
	go func() {
		for m := range reqs.Channel() {
			sym, _ := m.Payload.(string)
			server.Reply(m, "resolved "+sym, false)
		}
	}()
	defer server.Disconnect()

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	for _, sym := range []string{"SDA", "SCL"} {
		req := client.NewMessage(T("board", "resolve"), sym, false)
		reply, err := client.RequestWait(ctx, req)
		if err != nil {
			t.Fatalf("%s: %v", sym, err)
		}
		if reply.Payload != "resolved "+sym {
			t.Fatalf("%s: reply %#v", sym, reply.Payload)
		}
		if len(req.ReplyTo) == 0 || !slices.Equal(reply.Topic, req.ReplyTo) {
			t.Fatalf("reply on %v, request ReplyTo %v", reply.Topic, req.ReplyTo)
		}
	}
}

func TestRequestWaitTimeout(t *testing.T) {
	c := NewBus(4).NewConnection("client")
	ctx, cancel := context.WithTimeout(context.Background(), quiet)
	defer cancel()
	if _, err := c.RequestWait(ctx, c.NewMessage(T("board", "resolve"), "SDA", false)); err == nil {
		t.Fatal("expected a timeout with no responder")
	}
}

func TestReplyWithoutReplyToIgnored(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")
	all := c.Subscribe(T("#"))
	c.Reply(c.NewMessage(T("board", "resolve"), "SDA", false), "ignored", false)
	silent(t, all)
}

func TestDisconnectClosesSubscriptions(t *testing.T) {
	b := NewBus(2)
	c := b.NewConnection("test")
	s := c.Subscribe(T("board", "state"))
	c.Disconnect()
	if _, ok := <-s.Channel(); ok {
		t.Fatal("channel still open after Disconnect")
	}
	// Publishing after disconnect must not panic.
	c.Publish(c.NewMessage(T("board", "state"), "late", false))
}

func join(tp Topic) string {
	out := ""
	for i, tok := range tp {
		if i > 0 {
			out += "/"
		}
		out += tok
	}
	return out
}
