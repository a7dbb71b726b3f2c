package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mrlm-net/simbridge/pkg/types"
	"github.com/mrlm-net/simbridge/pkg/wire"
)

// ErrUnmappedVariable is wrapped into the error handleAddToDataDefinition
// returns when the client names a datum the TranslationTable has no entry
// for; session-creation that referenced it is rejected per spec.md §3.
var ErrUnmappedVariable = errors.New("session: unmapped client variable")

// genericExceptionCode is the Exception value sent for every fatal session
// error; this bridge does not yet distinguish SimConnect's real per-cause
// exception codes (unrecognized id, data error, …), matching
// handleRequestDataOnSimObjectType's existing stub reply.
const genericExceptionCode = 1

// HandleFrame decodes one inbound frame, pins the protocol version on first
// use, dispatches to the matching handler, and returns any reply frames
// ready to enqueue. An unhandled code is logged and ignored, not an error.
// A returned error means the session must be removed by the caller.
func (s *Session) HandleFrame(f *wire.Frame) ([][]byte, error) {
	if !s.protocolPinned {
		s.protocol = f.Protocol
		s.protocolPinned = true
	}

	msg, err := wire.DecodeClientMessage(f.Code, f.Body)
	if err != nil {
		return s.fatalFrames(), fmt.Errorf("session %s: decode code %#x: %w", s.ID, f.Code, err)
	}
	if msg == nil {
		if s.Logger != nil {
			s.Logger.Debug("unhandled message code", "session", s.ID, "code", fmt.Sprintf("%#x", f.Code))
		}
		return nil, nil
	}

	switch m := msg.(type) {
	case types.OpenMsg:
		return s.handleOpen(m)
	case types.AddToDataDefinitionMsg:
		if err := s.handleAddToDataDefinition(m); err != nil {
			return s.fatalFrames(), err
		}
		return nil, nil
	case types.MapClientEventToSimEventMsg:
		s.handleMapClientEventToSimEvent(m)
		return nil, nil
	case types.AddClientEventToNotificationGroupMsg:
		s.handleAddClientEventToNotificationGroup(m)
		return nil, nil
	case types.SetNotificationGroupPriorityMsg:
		s.handleSetNotificationGroupPriority(m)
		return nil, nil
	case types.MapInputEventToClientEventMsg:
		s.handleMapInputEventToClientEvent(m)
		return nil, nil
	case types.SetInputGroupPriorityMsg:
		s.handleSetInputGroupPriority(m)
		return nil, nil
	case types.SetInputGroupStateMsg:
		s.handleSetInputGroupState(m)
		return nil, nil
	case types.RequestDataOnSimObjectMsg:
		s.handleRequestDataOnSimObject(m)
		return nil, nil
	case types.RequestDataOnSimObjectTypeMsg:
		return s.handleRequestDataOnSimObjectType(m)
	case types.RequestSystemStateMsg:
		return s.handleRequestSystemState(m)
	case types.SubscribeToSystemEventMsg:
		return s.handleSubscribeToSystemEvent(m)
	case types.RequestJoystickDeviceInfoMsg:
		return s.handleRequestJoystickDeviceInfo(m)
	case types.TransmitClientEventMsg:
		s.handleTransmitClientEvent(m)
		return nil, nil
	default:
		if s.Logger != nil {
			s.Logger.Debug("no handler for decoded message", "session", s.ID, "type", fmt.Sprintf("%T", msg))
		}
		return nil, nil
	}
}

func (s *Session) encodeServer(msg any) ([]byte, error) {
	code, body, err := wire.EncodeServerMessage(msg)
	if err != nil {
		return nil, err
	}
	return wire.EncodeServerFrame(s.protocol, code, body), nil
}

// fatalFrames builds the Exception+Quit reply pair sent ahead of tearing a
// session down for a fatal error (unmapped variable, decode failure), so the
// legacy client's own SimConnect exception handling fires instead of a bare
// socket close.
func (s *Session) fatalFrames() [][]byte {
	var frames [][]byte
	if f, err := s.encodeServer(types.ExceptionMsg{Exception: genericExceptionCode}); err == nil {
		frames = append(frames, f)
	} else if s.Logger != nil {
		s.Logger.Error("failed to encode fatal Exception", "session", s.ID, "err", err)
	}
	if f, err := s.encodeServer(types.QuitMsg{}); err == nil {
		frames = append(frames, f)
	} else if s.Logger != nil {
		s.Logger.Error("failed to encode fatal Quit", "session", s.ID, "err", err)
	}
	return frames
}

func (s *Session) handleOpen(m types.OpenMsg) ([][]byte, error) {
	reply := types.OpenReplyMsg{
		AppName:  serverAppName,
		AppVer:   serverAppVer,
		AppBuild: serverAppBuild,
		SCVer:    serverSCVer,
		SCBuild:  serverSCBuild,
	}
	frame, err := s.encodeServer(reply)
	if err != nil {
		return nil, err
	}
	return [][]byte{frame}, nil
}

func (s *Session) handleAddToDataDefinition(m types.AddToDataDefinitionMsg) error {
	entry, ok := s.Table.Lookup(m.DatumName)
	if !ok {
		return fmt.Errorf("session %s: %w: %q", s.ID, ErrUnmappedVariable, m.DatumName)
	}
	spec := &types.DatumSpec{
		ClientName:   m.DatumName,
		ClientUnit:   m.UnitsName,
		ClientType:   m.DataType,
		Epsilon:      float64(m.Epsilon),
		DatumID:      m.DatumID,
		LiveName:     entry.LiveName,
		LiveUnit:     entry.LiveUnit,
		DefaultValue: entry.Default,
	}
	s.dataDefinitions[m.DefinitionID] = append(s.dataDefinitions[m.DefinitionID], spec)
	return nil
}

func (s *Session) handleMapClientEventToSimEvent(m types.MapClientEventToSimEventMsg) {
	if m.EventName == "" {
		// Reservation only: id is recorded with no name yet, referenced
		// later by an input mapping.
		s.nameByClientEvent[m.EventID] = ""
		return
	}
	name := strings.ToLower(strings.TrimSpace(m.EventName))
	if !strings.Contains(name, ".") && !knownSimEvents[name] {
		if s.Logger != nil {
			s.Logger.Warn("dropping unknown sim event mapping", "session", s.ID, "eventName", m.EventName)
		}
		return
	}
	s.clientEventByName[name] = m.EventID
	s.nameByClientEvent[m.EventID] = name
}

func (s *Session) handleAddClientEventToNotificationGroup(m types.AddClientEventToNotificationGroupMsg) {
	g := s.notificationGroup(m.GroupID)
	g.NotificationMembers[m.EventID] = m.Maskable != 0
}

func (s *Session) handleSetNotificationGroupPriority(m types.SetNotificationGroupPriorityMsg) {
	s.notificationGroup(m.GroupID).Priority = m.Priority
}

func (s *Session) handleMapInputEventToClientEvent(m types.MapInputEventToClientEventMsg) {
	if !isKnownInputDefinition(m.Definition) {
		if s.Logger != nil {
			s.Logger.Warn("dropping unknown input definition", "session", s.ID, "definition", m.Definition)
		}
		return
	}
	g := s.inputGroup(m.GroupID)
	g.InputMembers[m.Definition] = types.InputBinding{
		DownEventID: m.DownID,
		DownValue:   m.DownValue,
		UpEventID:   m.UpID,
		UpValue:     m.UpValue,
		Maskable:    m.Maskable != 0,
	}
}

func (s *Session) handleSetInputGroupPriority(m types.SetInputGroupPriorityMsg) {
	s.inputGroup(m.GroupID).Priority = m.Priority
}

func (s *Session) handleSetInputGroupState(m types.SetInputGroupStateMsg) {
	s.inputGroup(m.GroupID).Enabled = m.State != 0
}

func (s *Session) handleRequestDataOnSimObject(m types.RequestDataOnSimObjectMsg) {
	if m.ObjectID != types.OBJECT_ID_USER {
		if s.Logger != nil {
			s.Logger.Warn("dropping data request for non-user object", "session", s.ID, "objectId", m.ObjectID)
		}
		return
	}
	req := &types.DataRequest{
		RequestID:       m.RequestID,
		ObjectID:        m.ObjectID,
		DefinitionID:    m.DefinitionID,
		Period:          m.Period,
		Interval:        m.Interval,
		Origin:          m.Origin,
		Flags:           m.Flags,
		TaggedFormat:    m.Flags&types.SIMCONNECT_DATA_REQUEST_FLAG_TAGGED != 0,
		OnlyWhenChanged: m.Flags&types.SIMCONNECT_DATA_REQUEST_FLAG_CHANGED != 0,
		SendCountdown:   m.Origin,
	}
	s.activeDataRequests = append(s.activeDataRequests, req)
}

// handleRequestDataOnSimObjectType always answers with an exception:
// multi-object/radius queries are out of scope.
func (s *Session) handleRequestDataOnSimObjectType(m types.RequestDataOnSimObjectTypeMsg) ([][]byte, error) {
	frame, err := s.encodeServer(types.ExceptionMsg{Exception: 1, SendID: 0, Index: 0})
	if err != nil {
		return nil, err
	}
	return [][]byte{frame}, nil
}

func (s *Session) handleRequestSystemState(m types.RequestSystemStateMsg) ([][]byte, error) {
	name := strings.TrimSpace(m.StateName)
	if !strings.EqualFold(name, "Sim") {
		if s.Logger != nil {
			s.Logger.Error("unhandled system state query", "session", s.ID, "stateName", m.StateName)
		}
		return nil, nil
	}
	dataInt := uint32(0)
	if s.Cache != nil && s.Cache.SimRunning() {
		dataInt = 1
	}
	frame, err := s.encodeServer(types.SystemStateMsg{RequestID: m.RequestID, DataInt: dataInt})
	if err != nil {
		return nil, err
	}
	return [][]byte{frame}, nil
}

func (s *Session) handleSubscribeToSystemEvent(m types.SubscribeToSystemEventMsg) ([][]byte, error) {
	name := strings.TrimSpace(m.EventName)
	s.systemEventSubscriptions[name] = m.ClientEventID

	var frames [][]byte
	switch {
	case strings.EqualFold(name, "Pause"):
		state := uint32(0)
		if s.Cache != nil && s.Cache.Paused() {
			state = 1
		}
		f, err := s.encodeServer(types.EventMsg{GroupID: types.SYSTEM_GROUP_ID, EventID: m.ClientEventID, Data: int32(state)})
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	case strings.EqualFold(name, "Sim"):
		state := uint32(0)
		if s.Cache != nil && s.Cache.SimRunning() {
			state = 1
		}
		f, err := s.encodeServer(types.EventMsg{GroupID: types.SYSTEM_GROUP_ID, EventID: m.ClientEventID, Data: int32(state)})
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func (s *Session) handleRequestJoystickDeviceInfo(m types.RequestJoystickDeviceInfoMsg) ([][]byte, error) {
	frame, err := s.encodeServer(types.JoystickDeviceInfoMsg{RequestID: m.RequestID, Joysticks: s.joysticks})
	if err != nil {
		return nil, err
	}
	return [][]byte{frame}, nil
}

func (s *Session) handleTransmitClientEvent(m types.TransmitClientEventMsg) {
	name, ok := s.nameByClientEvent[m.EventID]
	if !ok || name == "" {
		if s.Logger != nil {
			s.Logger.Warn("transmit of unmapped client event", "session", s.ID, "eventId", m.EventID)
		}
		return
	}
	if s.Sink != nil {
		s.Sink.Forward(name, m.ObjectID, m.Data, m.GroupID, m.Flags)
	}
}

// SystemEventFrame builds the Event frame fired for a derived system-event
// transition, used by the Dispatcher's fan-out. Returns (nil, false) if the
// session is not subscribed.
func (s *Session) SystemEventFrame(eventName string, data int32) ([]byte, bool) {
	clientID, ok := s.systemEventSubscriptions[eventName]
	if !ok {
		return nil, false
	}
	frame, err := s.encodeServer(types.EventMsg{GroupID: types.SYSTEM_GROUP_ID, EventID: clientID, Data: data})
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error("failed to encode system event", "session", s.ID, "event", eventName, "err", err)
		}
		return nil, false
	}
	return frame, true
}

// ForwardedEventFrame builds the Event frame for an event forwarded by the
// Dispatcher from another client's TransmitClientEvent, using the
// originating groupID and data verbatim the way the source's FireSimEvent
// does; returns (nil, false) if this session never mapped eventName.
func (s *Session) ForwardedEventFrame(eventName string, groupID uint32, data int32) ([]byte, bool) {
	eventID, ok := s.clientEventByName[strings.ToLower(eventName)]
	if !ok {
		return nil, false
	}
	frame, err := s.encodeServer(types.EventMsg{GroupID: groupID, EventID: eventID, Data: data})
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error("failed to encode forwarded event", "session", s.ID, "event", eventName, "err", err)
		}
		return nil, false
	}
	return frame, true
}

// AxisEventFrame builds the Event frame for a derived axis event if this
// session has mapped eventName to a client event id belonging to an
// enabled/notification group.
func (s *Session) AxisEventFrame(eventName string, value int32) ([]byte, bool) {
	eventID, ok := s.clientEventByName[strings.ToLower(eventName)]
	if !ok {
		return nil, false
	}
	if groupID, maskable, ok := s.NotificationGroupFor(eventID); ok {
		_ = maskable // priority/masking enforcement is a known gap
		frame, err := s.encodeServer(types.EventMsg{GroupID: groupID, EventID: eventID, Data: value})
		if err != nil {
			return nil, false
		}
		return frame, true
	}
	if groupID, ok := s.InputGroupEnabledFor(eventID); ok {
		frame, err := s.encodeServer(types.EventMsg{GroupID: groupID, EventID: eventID, Data: value})
		if err != nil {
			return nil, false
		}
		return frame, true
	}
	return nil, false
}
