package bridge

import (
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/mrlm-net/simbridge/pkg/session"
	"github.com/mrlm-net/simbridge/pkg/translate"
	"github.com/mrlm-net/simbridge/pkg/types"
)

// workerPollTimeout bounds each Connection.Recv call so a session worker can
// observe keepRunning going false without blocking forever.
const workerPollTimeout = 200 * time.Millisecond

// workerIdleSleep is how long a worker backs off after a Recv call that
// produced neither a message nor an error.
const workerIdleSleep = 50 * time.Millisecond

// Acceptor binds a TCP listener and spawns one worker goroutine per accepted
// connection, grounded on the source's FSForceListener accept loop.
type Acceptor struct {
	Logger     *slog.Logger
	Cache      *types.SimCache
	Table      translate.Table
	Dispatcher *Dispatcher

	listener net.Listener
}

func NewAcceptor(logger *slog.Logger, cache *types.SimCache, table translate.Table, dispatcher *Dispatcher) *Acceptor {
	return &Acceptor{Logger: logger, Cache: cache, Table: table, Dispatcher: dispatcher}
}

// Listen binds the TCP socket; Run then accepts on it until closed.
func (a *Acceptor) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	a.listener = ln
	return nil
}

// Close stops accepting new connections; in-flight sessions keep running
// until their own worker observes keepRunning false.
func (a *Acceptor) Close() error {
	if a.listener == nil {
		return nil
	}
	return a.listener.Close()
}

// Run accepts connections on the calling goroutine until the listener
// closes or keepRunning returns false, spawning a worker per session.
func (a *Acceptor) Run(keepRunning func() bool) {
	for keepRunning() {
		conn, err := a.listener.Accept()
		if err != nil {
			if !keepRunning() {
				return
			}
			if a.Logger != nil {
				a.Logger.Error("acceptor: accept failed", "err", err)
			}
			continue
		}
		a.spawn(conn, keepRunning)
	}
}

func (a *Acceptor) spawn(conn net.Conn, keepRunning func() bool) {
	id := uuid.NewString()
	sc := session.NewConnection(conn)
	sess := session.New(id, sc, a.Logger, a.Table, a.Cache, a.Dispatcher)
	a.Dispatcher.Add(sess)

	if a.Logger != nil {
		a.Logger.Info("acceptor: session accepted", "session", id, "remote", conn.RemoteAddr())
	}

	go a.worker(sess, keepRunning)
}

// worker is the per-session receive loop: poll with a short timeout, handle
// whatever frame arrives, and back off briefly when idle, per the
// one-worker-per-session concurrency model.
func (a *Acceptor) worker(sess *session.Session, keepRunning func() bool) {
	defer sess.Conn.Close()

	for keepRunning() && !sess.Dead {
		frame, err := sess.Conn.Recv(workerPollTimeout)
		if err != nil {
			sess.Dead = true
			return
		}
		if frame == nil {
			time.Sleep(workerIdleSleep)
			continue
		}

		replies, err := sess.HandleFrame(frame)
		for _, reply := range replies {
			sess.Conn.Send(reply)
		}
		if err != nil {
			if a.Logger != nil {
				a.Logger.Error("acceptor: session handler failed, dropping", "session", sess.ID, "err", err)
			}
			sess.Dead = true
			return
		}
	}
}
