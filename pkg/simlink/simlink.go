// Package simlink bridges the process to the live sim over a fixed UDP
// socket pair, translating its line-oriented CMD:PAYLOAD protocol into
// SimCache updates.
package simlink

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/mrlm-net/simbridge/pkg/types"
)

const (
	recvTimeout  = 500 * time.Millisecond
	maxDatagram  = 4096
	resetCommand = "RES:1"
)

// Link owns the UDP socket pair and is the SimCache's sole writer, grounded
// on the original FlyInsideConnector message pump.
type Link struct {
	Logger *slog.Logger
	Cache  *types.SimCache

	recvConn *net.UDPConn
	sendConn *net.UDPConn
	destAddr *net.UDPAddr

	idToName map[string]string

	outgoing []string

	resetAcked bool
}

// New binds the receive socket on recvPort and prepares to send to
// remoteHost:sendPort. The reset handshake happens inside Run.
func New(logger *slog.Logger, cache *types.SimCache, recvPort, sendPort int, remoteHost string) (*Link, error) {
	recvAddr := &net.UDPAddr{Port: recvPort}
	recvConn, err := net.ListenUDP("udp", recvAddr)
	if err != nil {
		return nil, fmt.Errorf("simlink: listen on %d: %w", recvPort, err)
	}

	sendConn, err := net.ListenUDP("udp", &net.UDPAddr{})
	if err != nil {
		recvConn.Close()
		return nil, fmt.Errorf("simlink: open send socket: %w", err)
	}

	ip := net.ParseIP(remoteHost)
	if ip == nil {
		recvConn.Close()
		sendConn.Close()
		return nil, fmt.Errorf("simlink: invalid remote host %q", remoteHost)
	}

	return &Link{
		Logger:   logger,
		Cache:    cache,
		recvConn: recvConn,
		sendConn: sendConn,
		destAddr: &net.UDPAddr{IP: ip, Port: sendPort},
		idToName: make(map[string]string),
	}, nil
}

// Close releases both sockets. Safe to call once.
func (l *Link) Close() error {
	err1 := l.recvConn.Close()
	err2 := l.sendConn.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// Send queues an outbound command for the next RunOnce flush.
func (l *Link) Send(cmd string) {
	l.outgoing = append(l.outgoing, cmd)
}

// Run blocks, driving the receive/flush loop until keepRunning returns
// false. Each iteration waits up to recvTimeout for a datagram, then
// flushes any queued outbound commands.
func (l *Link) Run(keepRunning func() bool) {
	for keepRunning() {
		l.RunOnce()
	}
}

// RunOnce performs one receive-with-timeout-and-flush cycle; exported so
// tests can drive the loop deterministically. While the reset handshake is
// outstanding after the receive, it re-queues resetCommand so a dropped
// datagram or a sim that isn't listening yet at startup doesn't strand the
// handshake; the call that receives the echo sends no further RES:1.
func (l *Link) RunOnce() {
	buf := make([]byte, maxDatagram)
	l.recvConn.SetReadDeadline(time.Now().Add(recvTimeout))
	n, _, err := l.recvConn.ReadFromUDP(buf)
	if err == nil && n > 0 {
		l.handleDatagram(string(buf[:n]))
	}

	if !l.resetAcked {
		l.Send(resetCommand)
	}

	for len(l.outgoing) > 0 {
		msg := l.outgoing[0]
		l.outgoing = l.outgoing[1:]
		if _, err := l.sendConn.WriteToUDP([]byte(msg), l.destAddr); err != nil && l.Logger != nil {
			l.Logger.Error("simlink: send failed", "msg", msg, "err", err)
		}
	}
}

func (l *Link) handleDatagram(msg string) {
	msg = strings.TrimSpace(msg)

	if !l.resetAcked {
		if msg == resetCommand {
			l.resetAcked = true
			if l.Cache != nil {
				l.Cache.Reset()
			}
		} else if l.Logger != nil {
			l.Logger.Debug("simlink: ignoring datagram before reset ack", "msg", msg)
		}
		return
	}

	cmd, payload, ok := strings.Cut(msg, ":")
	if !ok {
		if l.Logger != nil {
			l.Logger.Warn("simlink: malformed datagram", "msg", msg)
		}
		return
	}

	switch cmd {
	case "DEF":
		l.handleDef(payload)
	case "VF":
		l.handleValue(payload, false)
	case "VS":
		l.handleValue(payload, true)
	default:
		if l.Logger != nil {
			l.Logger.Warn("simlink: unhandled command", "cmd", cmd, "payload", payload)
		}
	}
}

func (l *Link) handleDef(payload string) {
	name, id, ok := strings.Cut(payload, "=")
	if !ok {
		if l.Logger != nil {
			l.Logger.Warn("simlink: malformed DEF", "payload", payload)
		}
		return
	}
	l.idToName[id] = name
}

func (l *Link) handleValue(payload string, isText bool) {
	id, value, ok := strings.Cut(payload, "=")
	if !ok {
		if l.Logger != nil {
			l.Logger.Warn("simlink: malformed value update", "payload", payload)
		}
		return
	}
	name, ok := l.idToName[id]
	if !ok {
		if l.Logger != nil {
			l.Logger.Warn("simlink: value update for unknown id", "id", id)
		}
		return
	}
	if l.Cache == nil {
		return
	}
	if isText {
		l.Cache.SetText(name, value)
		return
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		if l.Logger != nil {
			l.Logger.Warn("simlink: non-numeric VF payload", "name", name, "value", value)
		}
		return
	}
	l.Cache.SetNumber(name, f)
}
