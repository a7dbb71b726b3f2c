// Package session implements per-client SimConnect protocol state: message
// handling, the data-request evaluator, and the byte-stream connection that
// layers the wire codec over a TCP socket.
package session

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/mrlm-net/simbridge/pkg/wire"
)

// ErrClosed is returned by Recv once the underlying socket has closed and
// every buffered message has been drained.
var ErrClosed = errors.New("session: connection closed")

const maxPacketSize = 4096

// Connection is a per-peer byte stream <-> message stream adapter, grounded
// on the source's non-blocking Connection, adapted to Go's blocking net.Conn:
// Send writes immediately, Recv reads what is available and parses at most
// one message per call.
type Connection struct {
	conn net.Conn

	sendMu sync.Mutex

	inBytes []byte
	readBuf [maxPacketSize]byte

	alive bool
}

func NewConnection(conn net.Conn) *Connection {
	return &Connection{conn: conn, alive: true}
}

// Send writes an already-framed message to the socket. Safe for concurrent
// use: the Dispatcher and this session's own worker may both call it.
func (c *Connection) Send(frame []byte) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.alive {
		return
	}
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := c.conn.Write(frame); err != nil && !isTimeout(err) {
		c.alive = false
	}
}

// Recv reads what the socket has ready and returns at most one decoded
// Client→Server frame. A nil frame with a nil error means "nothing ready
// yet, call again". ErrClosed is terminal.
func (c *Connection) Recv(timeout time.Duration) (*wire.Frame, error) {
	if !c.alive {
		if frame, consumed, perr := wire.ParseClientFrame(c.inBytes); perr == nil {
			c.inBytes = c.inBytes[consumed:]
			return &frame, nil
		}
		return nil, ErrClosed
	}

	c.conn.SetReadDeadline(time.Now().Add(timeout))
	n, err := c.conn.Read(c.readBuf[:])
	if n > 0 {
		c.inBytes = append(c.inBytes, c.readBuf[:n]...)
	}
	if err != nil {
		if errors.Is(err, io.EOF) || (!isTimeout(err) && !errors.Is(err, net.ErrClosed)) {
			c.alive = false
		}
	}

	frame, consumed, perr := wire.ParseClientFrame(c.inBytes)
	if perr == nil {
		c.inBytes = c.inBytes[consumed:]
		return &frame, nil
	}
	if perr != wire.ErrNeedMoreData {
		c.alive = false
		return nil, perr
	}
	if !c.alive {
		return nil, ErrClosed
	}
	return nil, nil
}

// Close closes the underlying socket. Safe to call more than once.
func (c *Connection) Close() error {
	c.alive = false
	return c.conn.Close()
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
