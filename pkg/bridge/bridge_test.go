package bridge

import (
	"net"
	"testing"
	"time"

	"github.com/mrlm-net/simbridge/pkg/session"
	"github.com/mrlm-net/simbridge/pkg/translate"
	"github.com/mrlm-net/simbridge/pkg/types"
	"github.com/mrlm-net/simbridge/pkg/wire"
	"github.com/stretchr/testify/require"
)

// newTestSession builds a session over a real loopback TCP connection (the
// kernel send buffer lets the Dispatcher write without a concurrent reader
// standing by, unlike net.Pipe); the returned net.Conn is the test's own
// end, used to read whatever the session sends.
func newTestSession(t *testing.T, id string, cache *types.SimCache, sink session.EventSink) (*session.Session, net.Conn) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	acceptCh := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			acceptCh <- conn
		}
	}()

	testSide, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	serverSide := <-acceptCh

	sess := session.New(id, session.NewConnection(serverSide), nil, translate.Default, cache, sink)
	return sess, testSide
}

func readEvent(t *testing.T, conn net.Conn) types.EventMsg {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	frame, _, err := wire.ParseServerFrame(buf[:n])
	require.NoError(t, err)
	msg, err := wire.DecodeServerMessage(frame.Code, frame.Body)
	require.NoError(t, err)
	ev, ok := msg.(types.EventMsg)
	require.True(t, ok, "expected EventMsg, got %T", msg)
	return ev
}

func subscribe(t *testing.T, s *session.Session, clientEventID uint32, name string) {
	t.Helper()
	code, body, err := wire.EncodeClientMessage(types.SubscribeToSystemEventMsg{ClientEventID: clientEventID, EventName: name})
	require.NoError(t, err)
	raw := wire.EncodeClientFrame(4, code, 0, body)
	frame, _, err := wire.ParseClientFrame(raw)
	require.NoError(t, err)
	replies, err := s.HandleFrame(&frame)
	require.NoError(t, err)
	for _, r := range replies {
		s.Conn.Send(r)
	}
}

func TestPauseFanOutToTwoSessions(t *testing.T) {
	cache := types.NewSimCache()
	d := NewDispatcher(nil, cache)

	s1, c1 := newTestSession(t, "s1", cache, d)
	s2, c2 := newTestSession(t, "s2", cache, d)
	defer c1.Close()
	defer c2.Close()
	d.Add(s1)
	d.Add(s2)

	// Both subscribe to "Pause" with distinct client event ids; each
	// subscription immediately emits the current ("not paused") state,
	// which the test drains before triggering the real transition.
	subscribe(t, s1, 11, "Pause")
	subscribe(t, s2, 42, "Pause")
	readEvent(t, c1)
	readEvent(t, c2)

	cache.SetNumber(pausedVariable, 1)
	d.Tick()

	ev1 := readEvent(t, c1)
	require.Equal(t, types.SYSTEM_GROUP_ID, ev1.GroupID)
	require.EqualValues(t, 11, ev1.EventID)
	require.EqualValues(t, 1, ev1.Data)

	ev2 := readEvent(t, c2)
	require.Equal(t, types.SYSTEM_GROUP_ID, ev2.GroupID)
	require.EqualValues(t, 42, ev2.EventID)
	require.EqualValues(t, 1, ev2.Data)
}

// TestSystemEventDerivationSequence walks the three-state cache sequence
// (paused=true, paused=false, paused=true) and checks the exact fan-out
// order a subscribing session receives.
func TestSystemEventDerivationSequence(t *testing.T) {
	cache := types.NewSimCache()
	d := NewDispatcher(nil, cache)
	s, c := newTestSession(t, "s1", cache, d)
	defer c.Close()
	d.Add(s)

	ids := map[string]uint32{"Pause": 1, "Sim": 2, "SimStart": 3, "SimStop": 4, "Paused": 5, "Unpaused": 6}
	names := map[uint32]string{1: "Pause", 2: "Sim", 3: "SimStart", 4: "SimStop", 5: "Paused", 6: "Unpaused"}
	for name, id := range ids {
		subscribe(t, s, id, name)
	}
	// Pause and Sim each emit one immediate current-state frame on
	// subscription; the other four names do not.
	readEvent(t, c)
	readEvent(t, c)

	expect := func(wantName string, wantData int32) {
		t.Helper()
		ev := readEvent(t, c)
		require.Equal(t, wantName, names[ev.EventID])
		require.Equal(t, wantData, ev.Data)
	}

	cache.SetNumber(pausedVariable, 1)
	d.Tick()
	expect("Pause", 1)

	cache.SetNumber(pausedVariable, 0)
	d.Tick()
	expect("Sim", 1)
	expect("SimStart", 0)
	expect("Pause", 0)
	expect("Unpaused", 0)

	cache.SetNumber(pausedVariable, 1)
	d.Tick()
	expect("Pause", 1)
	expect("Paused", 0)
}
