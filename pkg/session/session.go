package session

import (
	"log/slog"
	"strings"

	"github.com/mrlm-net/simbridge/pkg/translate"
	"github.com/mrlm-net/simbridge/pkg/types"
)

// fixed app identity the stub Open reply always carries.
const (
	serverAppName = "Lockheed Martin® Prepar3D® v4"
)

var serverAppVer = types.Pair{Major: 4, Minor: 3}
var serverAppBuild = types.Pair{Major: 29, Minor: 25520}
var serverSCVer = types.Pair{Major: 4, Minor: 3}
var serverSCBuild = types.Pair{Major: 0, Minor: 0}

// knownSimEvents is the small allow-list of non-custom SimConnect event
// names this bridge recognises; anything containing a dot is treated as a
// custom event name and always allowed.
var knownSimEvents = map[string]bool{
	"brakes": true, "parking_brakes": true, "gear_toggle": true,
	"throttle_set": true, "axis_throttle_set": true,
	"elevator_set": true, "aileron_set": true, "rudder_set": true,
	"pause_on": true, "pause_off": true, "pause_toggle": true,
}

// isKnownInputDefinition is the check input-group member strings must pass;
// it enumerates no real joystick/keyboard bindings and only rejects the
// empty (or all-whitespace) string.
func isKnownInputDefinition(def string) bool {
	return strings.TrimSpace(def) != ""
}

// EventSink is the Dispatcher-side collaborator a Session forwards
// TransmitClientEvent calls to. Kept as an interface so this package never
// imports the bridge package.
type EventSink interface {
	Forward(eventName string, objectID, data, groupID, flags uint32)
}

// Session is one accepted legacy client's protocol state.
type Session struct {
	ID   string
	Conn *Connection

	Logger *slog.Logger
	Table  translate.Table
	Cache  *types.SimCache
	Sink   EventSink

	protocol       uint32
	protocolPinned bool

	dataDefinitions map[uint32][]*types.DatumSpec

	clientEventByName map[string]uint32 // live event name (lower) -> client event id
	nameByClientEvent map[uint32]string

	notificationGroups map[uint32]*types.PriorityGroup
	inputGroups         map[uint32]*types.PriorityGroup

	activeDataRequests []*types.DataRequest

	systemEventSubscriptions map[string]uint32 // event name -> client event id

	joysticks []types.Joystick

	// Dead is set true by the Acceptor's worker when Recv fails or
	// HandleFrame returns an error (unmapped variable, decode failure), and
	// by the Dispatcher when a session panics; the Dispatcher drops dead
	// sessions at the end of each Tick.
	Dead bool
}

func New(id string, conn *Connection, logger *slog.Logger, table translate.Table, cache *types.SimCache, sink EventSink) *Session {
	return &Session{
		ID:                       id,
		Conn:                     conn,
		Logger:                   logger,
		Table:                    table,
		Cache:                    cache,
		Sink:                     sink,
		dataDefinitions:          make(map[uint32][]*types.DatumSpec),
		clientEventByName:        make(map[string]uint32),
		nameByClientEvent:        make(map[uint32]string),
		notificationGroups:       make(map[uint32]*types.PriorityGroup),
		inputGroups:              make(map[uint32]*types.PriorityGroup),
		systemEventSubscriptions: make(map[string]uint32),
		joysticks: []types.Joystick{
			{Name: "Stick 1", Number: 0},
			{Name: "Throttle Quadrant", Number: 1},
		},
	}
}

// notificationGroup mirrors the handlers' create-if-absent rule.
func (s *Session) notificationGroup(id uint32) *types.PriorityGroup {
	g, ok := s.notificationGroups[id]
	if !ok {
		g = types.NewNotificationGroup(id)
		s.notificationGroups[id] = g
	}
	return g
}

func (s *Session) inputGroup(id uint32) *types.PriorityGroup {
	g, ok := s.inputGroups[id]
	if !ok {
		g = types.NewInputGroup(id)
		s.inputGroups[id] = g
	}
	return g
}

// ActiveDataRequests exposes the evaluator's working set to the tick driver.
func (s *Session) ActiveDataRequests() []*types.DataRequest { return s.activeDataRequests }

// removeFinishedRequests drops requests the evaluator marked finished.
func (s *Session) removeFinishedRequests(finished map[uint32]bool) {
	if len(finished) == 0 {
		return
	}
	kept := s.activeDataRequests[:0]
	for _, r := range s.activeDataRequests {
		if !finished[r.RequestID] {
			kept = append(kept, r)
		}
	}
	s.activeDataRequests = kept
}

// NotificationGroupFor reports whether eventID is a member of any
// notification group and returns that group's id and maskable flag.
func (s *Session) NotificationGroupFor(eventID uint32) (groupID uint32, maskable bool, ok bool) {
	for gid, g := range s.notificationGroups {
		if m, present := g.NotificationMembers[eventID]; present {
			return gid, m, true
		}
	}
	return 0, false, false
}

// InputGroupEnabledFor reports whether eventID appears as a down/up target
// in some enabled input group.
func (s *Session) InputGroupEnabledFor(eventID uint32) (groupID uint32, ok bool) {
	for gid, g := range s.inputGroups {
		if !g.Enabled {
			continue
		}
		for _, b := range g.InputMembers {
			if b.DownEventID == eventID || b.UpEventID == eventID {
				return gid, true
			}
		}
	}
	return 0, false
}
