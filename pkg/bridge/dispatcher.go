// Package bridge wires the per-session protocol state to the live-sim cache:
// the Dispatcher drives ticks and system/axis event fan-out, the Acceptor
// turns incoming TCP connections into sessions.
package bridge

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mrlm-net/simbridge/pkg/session"
	"github.com/mrlm-net/simbridge/pkg/types"
)

// tickInterval is the Dispatcher's fixed cadence, grounded on the source's
// 0.25s FlyInsideConnector.Tick() gate.
const tickInterval = 250 * time.Millisecond

// pausedVariable is the live-sim variable the Dispatcher reads to derive the
// paused/simRunning system events; the live sim has no notion of "running",
// only paused vs. not.
const pausedVariable = "SimState.Paused"

// axisDerivation is one entry of the fixed compile-time axis table: a
// live-sim variable is rescaled and offered to sessions as a named event.
type axisDerivation struct {
	eventName string
	liveVar   string
	scale     float64
	offset    float64
	min       float64
	max       float64
}

// axisTable is deliberately small; it stands in for the fuller set a real
// deployment would configure per aircraft.
var axisTable = []axisDerivation{
	{eventName: "axis_throttle_set", liveVar: "Aircraft.Controls.Engine.Throttle", scale: 163.84, offset: -16384, min: -16384, max: 16384},
	{eventName: "elevator_set", liveVar: "Aircraft.Input.Pitch", scale: 163.84, offset: -16384, min: -16384, max: 16384},
	{eventName: "aileron_set", liveVar: "Aircraft.Surfaces.Aileron.Left.Percent", scale: 163.84, offset: -16384, min: -16384, max: 16384},
}

// Dispatcher is the single owner of SimCache transition detection, session
// ticking, and event fan-out.
type Dispatcher struct {
	Logger *slog.Logger
	Cache  *types.SimCache

	mu       sync.Mutex
	sessions []*session.Session
}

func NewDispatcher(logger *slog.Logger, cache *types.SimCache) *Dispatcher {
	return &Dispatcher{Logger: logger, Cache: cache}
}

// Add registers a newly-accepted session for ticking and fan-out.
func (d *Dispatcher) Add(s *session.Session) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sessions = append(d.sessions, s)
}

// Run blocks on a tickInterval ticker until keepRunning returns false.
func (d *Dispatcher) Run(keepRunning func() bool) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for keepRunning() {
		<-ticker.C
		d.Tick()
	}
}

// Tick performs one dispatch cycle: transition detection, per-session
// evaluator ticks, and derived axis event fan-out. Exported so tests and a
// hand-driven main loop can call it directly instead of waiting on Run.
func (d *Dispatcher) Tick() {
	d.detectTransitions()

	for _, s := range d.liveSessions() {
		d.tickSession(s)
	}
	d.reapDead()
}

func (d *Dispatcher) liveSessions() []*session.Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*session.Session, len(d.sessions))
	copy(out, d.sessions)
	return out
}

func (d *Dispatcher) reapDead() {
	d.mu.Lock()
	defer d.mu.Unlock()
	kept := d.sessions[:0]
	for _, s := range d.sessions {
		if !s.Dead {
			kept = append(kept, s)
		}
	}
	d.sessions = kept
}

func (d *Dispatcher) detectTransitions() {
	raw, _ := d.Cache.Get(pausedVariable)
	paused := raw.Number != 0
	pausedChanged, runningChanged := d.Cache.SetPaused(paused)

	if runningChanged {
		running := d.Cache.SimRunning()
		d.fireSystemEvent("Sim", boolToInt32(running))
		if running {
			d.fireSystemEvent("SimStart", 0)
		} else {
			d.fireSystemEvent("SimStop", 0)
		}
	}

	if pausedChanged {
		d.fireSystemEvent("Pause", boolToInt32(paused))
		// Before the sim has ever started running, a Pause transition is
		// just initial-state settling, not a real pause/unpause; the
		// companion event is withheld until simRunning latches.
		if d.Cache.SimRunning() {
			if paused {
				d.fireSystemEvent("Paused", 0)
			} else {
				d.fireSystemEvent("Unpaused", 0)
			}
		}
	}
}

// fireSystemEvent fans a derived system event to every session; a session
// that panics while encoding is dropped and the rest still receive it.
func (d *Dispatcher) fireSystemEvent(name string, data int32) {
	for _, s := range d.liveSessions() {
		d.safely(s, func() {
			if frame, ok := s.SystemEventFrame(name, data); ok {
				s.Conn.Send(frame)
			}
		})
	}
}

func (d *Dispatcher) tickSession(s *session.Session) {
	d.safely(s, func() {
		for _, frame := range s.Tick() {
			s.Conn.Send(frame)
		}
		d.fireAxisEvents(s)
	})
}

func (d *Dispatcher) fireAxisEvents(s *session.Session) {
	for _, a := range axisTable {
		v, ok := d.Cache.Get(a.liveVar)
		if !ok {
			continue
		}
		scaled := v.Number*a.scale + a.offset
		if scaled < a.min {
			scaled = a.min
		}
		if scaled > a.max {
			scaled = a.max
		}
		if frame, ok := s.AxisEventFrame(a.eventName, int32(scaled)); ok {
			s.Conn.Send(frame)
		}
	}
}

// Forward implements session.EventSink: a client's TransmitClientEvent is
// fanned to every session the way the live sim itself would be observed,
// grounded on FlyInsideConnector.FireEvent/FireSimEvent.
func (d *Dispatcher) Forward(eventName string, objectID, data, groupID, flags uint32) {
	for _, s := range d.liveSessions() {
		d.safely(s, func() {
			if frame, ok := s.ForwardedEventFrame(eventName, groupID, int32(data)); ok {
				s.Conn.Send(frame)
			}
		})
	}
}

// safely runs fn, marking s dead and logging instead of propagating a panic,
// mirroring the source's per-connection try/except around Tick/FireEvent.
func (d *Dispatcher) safely(s *session.Session, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.Dead = true
			if d.Logger != nil {
				d.Logger.Error("dispatcher: session failed, dropping", "session", s.ID, "panic", r)
			}
		}
	}()
	fn()
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
