package simlink

import (
	"net"
	"testing"
	"time"

	"github.com/mrlm-net/simbridge/pkg/types"
)

// fakeSim pairs a UDP socket facing a Link under test: recv reads what the
// Link sent (RES:1), send pushes datagrams of the test's choosing (the RES:1
// echo, DEF/VF/VS updates).
type fakeSim struct {
	t    *testing.T
	conn *net.UDPConn
	dest *net.UDPAddr
}

func newFakeSim(t *testing.T, recvPort, sendPort int) *fakeSim {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: sendPort})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return &fakeSim{t: t, conn: conn, dest: &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: recvPort}}
}

func (f *fakeSim) send(msg string) {
	f.t.Helper()
	if _, err := f.conn.WriteToUDP([]byte(msg), f.dest); err != nil {
		f.t.Fatalf("send: %v", err)
	}
}

func (f *fakeSim) recv() string {
	f.t.Helper()
	buf := make([]byte, 4096)
	f.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := f.conn.ReadFromUDP(buf)
	if err != nil {
		f.t.Fatalf("recv: %v", err)
	}
	return string(buf[:n])
}

func TestResetHandshakeAndValueUpdates(t *testing.T) {
	cache := types.NewSimCache()
	link, err := New(nil, cache, 18761, 18762, "127.0.0.1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer link.Close()

	sim := newFakeSim(t, 18761, 18762)

	link.RunOnce() // RunOnce queues and flushes RES:1 on its own while unacked

	if got := sim.recv(); got != resetCommand {
		t.Fatalf("expected %q, got %q", resetCommand, got)
	}

	// Datagram before the ack is ignored.
	sim.send("VF:x=1.0")
	link.RunOnce()
	if _, ok := cache.Get("anything"); ok {
		t.Fatalf("expected cache untouched before reset ack")
	}

	sim.send(resetCommand)
	link.RunOnce()

	sim.send("DEF:Aircraft.Position.Airspeed.Indicated=a1")
	link.RunOnce()
	sim.send("VF:a1=51.5")
	link.RunOnce()

	v, ok := cache.Get("Aircraft.Position.Airspeed.Indicated")
	if !ok || v.Number != 51.5 {
		t.Fatalf("got %#v, ok=%v, want 51.5", v, ok)
	}

	sim.send("DEF:Aircraft.Title=t1")
	link.RunOnce()
	sim.send("VS:t1=Cessna 172")
	link.RunOnce()

	v, ok = cache.Get("Aircraft.Title")
	if !ok || !v.IsText || v.Text != "Cessna 172" {
		t.Fatalf("got %#v, ok=%v, want text Cessna 172", v, ok)
	}
}

func TestResetCommandIsResentUntilAcked(t *testing.T) {
	cache := types.NewSimCache()
	link, err := New(nil, cache, 18767, 18768, "127.0.0.1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer link.Close()

	sim := newFakeSim(t, 18767, 18768)

	// Three RunOnce calls with no ack from the fake sim: each one must
	// re-queue and resend RES:1, not just the first.
	for i := 0; i < 3; i++ {
		link.RunOnce()
		if got := sim.recv(); got != resetCommand {
			t.Fatalf("attempt %d: expected %q, got %q", i, resetCommand, got)
		}
	}
	if link.resetAcked {
		t.Fatalf("resetAcked should still be false with no echo from the sim")
	}

	sim.send(resetCommand)
	link.RunOnce()
	if !link.resetAcked {
		t.Fatalf("expected resetAcked after the sim echoes RES:1")
	}

	// Once acked, RunOnce must stop resending it.
	sim.send("DEF:Aircraft.Title=t1")
	link.RunOnce()
	sim.conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	buf := make([]byte, 64)
	if n, _, err := sim.conn.ReadFromUDP(buf); err == nil {
		t.Fatalf("expected no further RES:1 after ack, got %q", string(buf[:n]))
	}
}

func TestUnknownCommandIsIgnored(t *testing.T) {
	cache := types.NewSimCache()
	link, err := New(nil, cache, 18763, 18764, "127.0.0.1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer link.Close()
	link.resetAcked = true

	link.handleDatagram("FOO:bar")
	// No panic, no cache mutation possible to observe directly; this just
	// exercises the default branch without crashing.
}

func TestValueUpdateForUnknownIDIsIgnored(t *testing.T) {
	cache := types.NewSimCache()
	link, err := New(nil, cache, 18765, 18766, "127.0.0.1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer link.Close()
	link.resetAcked = true

	link.handleDatagram("VF:missing=1.0")
	if cache.Len() != 0 {
		t.Fatalf("expected no cache entries for unmapped id")
	}
}
