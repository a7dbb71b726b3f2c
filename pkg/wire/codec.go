// Package wire implements the SimConnect binary frame codec: framing,
// message encode/decode, and the explicit (direction, code) dispatch table
// that replaces the reflective, class-name-based dispatch of the source
// protocol.
package wire

import (
	"fmt"

	"github.com/mrlm-net/simbridge/pkg/types"
)

// DecodeClientMessage decodes one Client→Server message body by its masked
// code. The returned value is one of the types.*Msg structs in
// pkg/types/message.go. A nil, nil result means the code has no handler and
// should be logged and skipped, not treated as an error.
func DecodeClientMessage(code uint32, body []byte) (any, error) {
	r := newReader(body)
	switch code {
	case types.ClientOpen:
		return decodeOpen(r)
	case types.ClientMapClientEventToSimEvent:
		return decodeMapClientEventToSimEvent(r)
	case types.ClientTransmitClientEvent:
		return decodeTransmitClientEvent(r)
	case types.ClientAddClientEventToNotifGroup:
		return decodeAddClientEventToNotificationGroup(r)
	case types.ClientSetNotificationGroupPriority:
		return decodeSetNotificationGroupPriority(r)
	case types.ClientAddToDataDefinition:
		return decodeAddToDataDefinition(r)
	case types.ClientRequestDataOnSimObject:
		return decodeRequestDataOnSimObject(r)
	case types.ClientRequestDataOnSimObjectType:
		return decodeRequestDataOnSimObjectType(r)
	case types.ClientMapInputEventToClientEvent:
		return decodeMapInputEventToClientEvent(r)
	case types.ClientSetInputGroupPriority:
		return decodeSetInputGroupPriority(r)
	case types.ClientSetInputGroupState:
		return decodeSetInputGroupState(r)
	case types.ClientSubscribeToSystemEvent:
		return decodeSubscribeToSystemEvent(r)
	case types.ClientRequestSystemState:
		return decodeRequestSystemState(r)
	case types.ClientRequestJoystickDeviceInfo:
		return decodeRequestJoystickDeviceInfo(r)
	default:
		return nil, nil
	}
}

// EncodeClientMessage is the inverse of DecodeClientMessage; used by the
// round-trip tests and by recording/replay tooling built atop this codec.
func EncodeClientMessage(msg any) (code uint32, body []byte, err error) {
	w := &writer{}
	switch m := msg.(type) {
	case types.OpenMsg:
		encodeOpen(w, m)
		return types.ClientOpen, w.bytes(), nil
	case types.MapClientEventToSimEventMsg:
		encodeMapClientEventToSimEvent(w, m)
		return types.ClientMapClientEventToSimEvent, w.bytes(), nil
	case types.TransmitClientEventMsg:
		encodeTransmitClientEvent(w, m)
		return types.ClientTransmitClientEvent, w.bytes(), nil
	case types.AddClientEventToNotificationGroupMsg:
		encodeAddClientEventToNotificationGroup(w, m)
		return types.ClientAddClientEventToNotifGroup, w.bytes(), nil
	case types.SetNotificationGroupPriorityMsg:
		encodeSetNotificationGroupPriority(w, m)
		return types.ClientSetNotificationGroupPriority, w.bytes(), nil
	case types.AddToDataDefinitionMsg:
		encodeAddToDataDefinition(w, m)
		return types.ClientAddToDataDefinition, w.bytes(), nil
	case types.RequestDataOnSimObjectMsg:
		encodeRequestDataOnSimObject(w, m)
		return types.ClientRequestDataOnSimObject, w.bytes(), nil
	case types.RequestDataOnSimObjectTypeMsg:
		encodeRequestDataOnSimObjectType(w, m)
		return types.ClientRequestDataOnSimObjectType, w.bytes(), nil
	case types.MapInputEventToClientEventMsg:
		encodeMapInputEventToClientEvent(w, m)
		return types.ClientMapInputEventToClientEvent, w.bytes(), nil
	case types.SetInputGroupPriorityMsg:
		encodeSetInputGroupPriority(w, m)
		return types.ClientSetInputGroupPriority, w.bytes(), nil
	case types.SetInputGroupStateMsg:
		encodeSetInputGroupState(w, m)
		return types.ClientSetInputGroupState, w.bytes(), nil
	case types.SubscribeToSystemEventMsg:
		encodeSubscribeToSystemEvent(w, m)
		return types.ClientSubscribeToSystemEvent, w.bytes(), nil
	case types.RequestSystemStateMsg:
		encodeRequestSystemState(w, m)
		return types.ClientRequestSystemState, w.bytes(), nil
	case types.RequestJoystickDeviceInfoMsg:
		encodeRequestJoystickDeviceInfo(w, m)
		return types.ClientRequestJoystickDeviceInfo, w.bytes(), nil
	default:
		return 0, nil, fmt.Errorf("wire: no client encoder for %T", msg)
	}
}

// EncodeServerMessage encodes a Server→Client message body by Go type.
func EncodeServerMessage(msg any) (code uint32, body []byte, err error) {
	w := &writer{}
	switch m := msg.(type) {
	case types.OpenReplyMsg:
		encodeOpenReply(w, m)
		return types.ServerOpen, w.bytes(), nil
	case types.ExceptionMsg:
		encodeException(w, m)
		return types.ServerException, w.bytes(), nil
	case types.QuitMsg:
		return types.ServerQuit, nil, nil
	case types.EventMsg:
		encodeEvent(w, m)
		return types.ServerEvent, w.bytes(), nil
	case types.SimObjectDataMsg:
		encodeSimObjectData(w, m)
		return types.ServerSimObjectData, w.bytes(), nil
	case types.SystemStateMsg:
		encodeSystemState(w, m)
		return types.ServerSystemState, w.bytes(), nil
	case types.JoystickDeviceInfoMsg:
		encodeJoystickDeviceInfo(w, m)
		return types.ServerJoystickDeviceInfo, w.bytes(), nil
	default:
		return 0, nil, fmt.Errorf("wire: no server encoder for %T", msg)
	}
}

// DecodeServerMessage is the inverse of EncodeServerMessage; used by the
// round-trip tests (decode(encode(msg)) == msg) and by the passthrough
// recording tooling outside this module.
func DecodeServerMessage(code uint32, body []byte) (any, error) {
	r := newReader(body)
	switch code {
	case types.ServerOpen:
		return decodeOpenReply(r)
	case types.ServerException:
		return decodeException(r)
	case types.ServerQuit:
		return types.QuitMsg{}, nil
	case types.ServerEvent:
		return decodeEvent(r)
	case types.ServerSimObjectData:
		return decodeSimObjectData(r)
	case types.ServerSystemState:
		return decodeSystemState(r)
	case types.ServerJoystickDeviceInfo:
		return decodeJoystickDeviceInfo(r)
	default:
		return nil, nil
	}
}

// --- Client message codecs ---

func decodeOpen(r *reader) (types.OpenMsg, error) {
	var m types.OpenMsg
	var err error
	if m.AppName, err = r.str(256); err != nil {
		return m, err
	}
	var u32 uint32
	if u32, err = r.u32(); err != nil {
		return m, err
	}
	m._I1 = u32
	var b uint8
	if b, err = r.u8(); err != nil {
		return m, err
	}
	m._I2 = b
	if m.SimID, err = r.str(3); err != nil {
		return m, err
	}
	if m.Version.Major, err = r.u32(); err != nil {
		return m, err
	}
	if m.Version.Minor, err = r.u32(); err != nil {
		return m, err
	}
	if m.Build.Major, err = r.u32(); err != nil {
		return m, err
	}
	if m.Build.Minor, err = r.u32(); err != nil {
		return m, err
	}
	return m, nil
}

func encodeOpen(w *writer, m types.OpenMsg) {
	w.str(m.AppName, 256)
	w.u32(m._I1)
	w.u8(m._I2)
	w.str(m.SimID, 3)
	w.u32(m.Version.Major)
	w.u32(m.Version.Minor)
	w.u32(m.Build.Major)
	w.u32(m.Build.Minor)
}

func decodeMapClientEventToSimEvent(r *reader) (types.MapClientEventToSimEventMsg, error) {
	var m types.MapClientEventToSimEventMsg
	var err error
	if m.EventID, err = r.u32(); err != nil {
		return m, err
	}
	if m.EventName, err = r.str(256); err != nil {
		return m, err
	}
	return m, nil
}

func encodeMapClientEventToSimEvent(w *writer, m types.MapClientEventToSimEventMsg) {
	w.u32(m.EventID)
	w.str(m.EventName, 256)
}

func decodeTransmitClientEvent(r *reader) (types.TransmitClientEventMsg, error) {
	var m types.TransmitClientEventMsg
	var err error
	if m.ObjectID, err = r.u32(); err != nil {
		return m, err
	}
	if m.EventID, err = r.u32(); err != nil {
		return m, err
	}
	if m.Data, err = r.u32(); err != nil {
		return m, err
	}
	if m.GroupID, err = r.u32(); err != nil {
		return m, err
	}
	if m.Flags, err = r.u32(); err != nil {
		return m, err
	}
	return m, nil
}

func encodeTransmitClientEvent(w *writer, m types.TransmitClientEventMsg) {
	w.u32(m.ObjectID)
	w.u32(m.EventID)
	w.u32(m.Data)
	w.u32(m.GroupID)
	w.u32(m.Flags)
}

func decodeAddClientEventToNotificationGroup(r *reader) (types.AddClientEventToNotificationGroupMsg, error) {
	var m types.AddClientEventToNotificationGroupMsg
	var err error
	if m.GroupID, err = r.u32(); err != nil {
		return m, err
	}
	if m.EventID, err = r.u32(); err != nil {
		return m, err
	}
	if m.Maskable, err = r.u32(); err != nil {
		return m, err
	}
	return m, nil
}

func encodeAddClientEventToNotificationGroup(w *writer, m types.AddClientEventToNotificationGroupMsg) {
	w.u32(m.GroupID)
	w.u32(m.EventID)
	w.u32(m.Maskable)
}

func decodeSetNotificationGroupPriority(r *reader) (types.SetNotificationGroupPriorityMsg, error) {
	var m types.SetNotificationGroupPriorityMsg
	var err error
	if m.GroupID, err = r.u32(); err != nil {
		return m, err
	}
	if m.Priority, err = r.u32(); err != nil {
		return m, err
	}
	return m, nil
}

func encodeSetNotificationGroupPriority(w *writer, m types.SetNotificationGroupPriorityMsg) {
	w.u32(m.GroupID)
	w.u32(m.Priority)
}

func decodeAddToDataDefinition(r *reader) (types.AddToDataDefinitionMsg, error) {
	var m types.AddToDataDefinitionMsg
	var err error
	if m.DefinitionID, err = r.u32(); err != nil {
		return m, err
	}
	if m.DatumName, err = r.str(256); err != nil {
		return m, err
	}
	if m.UnitsName, err = r.str(256); err != nil {
		return m, err
	}
	var dt uint32
	if dt, err = r.u32(); err != nil {
		return m, err
	}
	m.DataType = types.SIMCONNECT_DATATYPE(dt)
	if m.Epsilon, err = r.f32(); err != nil {
		return m, err
	}
	if m.DatumID, err = r.u32(); err != nil {
		return m, err
	}
	return m, nil
}

func encodeAddToDataDefinition(w *writer, m types.AddToDataDefinitionMsg) {
	w.u32(m.DefinitionID)
	w.str(m.DatumName, 256)
	w.str(m.UnitsName, 256)
	w.u32(uint32(m.DataType))
	w.f32(m.Epsilon)
	w.u32(m.DatumID)
}

func decodeRequestDataOnSimObject(r *reader) (types.RequestDataOnSimObjectMsg, error) {
	var m types.RequestDataOnSimObjectMsg
	var err error
	if m.RequestID, err = r.u32(); err != nil {
		return m, err
	}
	if m.DefinitionID, err = r.u32(); err != nil {
		return m, err
	}
	if m.ObjectID, err = r.u32(); err != nil {
		return m, err
	}
	var period, flags uint32
	if period, err = r.u32(); err != nil {
		return m, err
	}
	m.Period = types.SIMCONNECT_PERIOD(period)
	if flags, err = r.u32(); err != nil {
		return m, err
	}
	m.Flags = types.SIMCONNECT_DATA_REQUEST_FLAG(flags)
	if m.Origin, err = r.u32(); err != nil {
		return m, err
	}
	if m.Interval, err = r.u32(); err != nil {
		return m, err
	}
	if m.Limit, err = r.u32(); err != nil {
		return m, err
	}
	return m, nil
}

func encodeRequestDataOnSimObject(w *writer, m types.RequestDataOnSimObjectMsg) {
	w.u32(m.RequestID)
	w.u32(m.DefinitionID)
	w.u32(m.ObjectID)
	w.u32(uint32(m.Period))
	w.u32(uint32(m.Flags))
	w.u32(m.Origin)
	w.u32(m.Interval)
	w.u32(m.Limit)
}

func decodeRequestDataOnSimObjectType(r *reader) (types.RequestDataOnSimObjectTypeMsg, error) {
	var m types.RequestDataOnSimObjectTypeMsg
	var err error
	if m.RequestID, err = r.u32(); err != nil {
		return m, err
	}
	if m.DefinitionID, err = r.u32(); err != nil {
		return m, err
	}
	if m.RadiusMeters, err = r.u32(); err != nil {
		return m, err
	}
	if m.Type, err = r.u32(); err != nil {
		return m, err
	}
	return m, nil
}

func encodeRequestDataOnSimObjectType(w *writer, m types.RequestDataOnSimObjectTypeMsg) {
	w.u32(m.RequestID)
	w.u32(m.DefinitionID)
	w.u32(m.RadiusMeters)
	w.u32(m.Type)
}

func decodeMapInputEventToClientEvent(r *reader) (types.MapInputEventToClientEventMsg, error) {
	var m types.MapInputEventToClientEventMsg
	var err error
	if m.GroupID, err = r.u32(); err != nil {
		return m, err
	}
	if m.Definition, err = r.str(256); err != nil {
		return m, err
	}
	if m.DownID, err = r.u32(); err != nil {
		return m, err
	}
	if m.DownValue, err = r.u32(); err != nil {
		return m, err
	}
	if m.UpID, err = r.u32(); err != nil {
		return m, err
	}
	if m.UpValue, err = r.u32(); err != nil {
		return m, err
	}
	if m.Maskable, err = r.u32(); err != nil {
		return m, err
	}
	return m, nil
}

func encodeMapInputEventToClientEvent(w *writer, m types.MapInputEventToClientEventMsg) {
	w.u32(m.GroupID)
	w.str(m.Definition, 256)
	w.u32(m.DownID)
	w.u32(m.DownValue)
	w.u32(m.UpID)
	w.u32(m.UpValue)
	w.u32(m.Maskable)
}

func decodeSetInputGroupPriority(r *reader) (types.SetInputGroupPriorityMsg, error) {
	var m types.SetInputGroupPriorityMsg
	var err error
	if m.GroupID, err = r.u32(); err != nil {
		return m, err
	}
	if m.Priority, err = r.u32(); err != nil {
		return m, err
	}
	return m, nil
}

func encodeSetInputGroupPriority(w *writer, m types.SetInputGroupPriorityMsg) {
	w.u32(m.GroupID)
	w.u32(m.Priority)
}

func decodeSetInputGroupState(r *reader) (types.SetInputGroupStateMsg, error) {
	var m types.SetInputGroupStateMsg
	var err error
	if m.GroupID, err = r.u32(); err != nil {
		return m, err
	}
	if m.State, err = r.u32(); err != nil {
		return m, err
	}
	return m, nil
}

func encodeSetInputGroupState(w *writer, m types.SetInputGroupStateMsg) {
	w.u32(m.GroupID)
	w.u32(m.State)
}

func decodeSubscribeToSystemEvent(r *reader) (types.SubscribeToSystemEventMsg, error) {
	var m types.SubscribeToSystemEventMsg
	var err error
	if m.ClientEventID, err = r.u32(); err != nil {
		return m, err
	}
	if m.EventName, err = r.str(256); err != nil {
		return m, err
	}
	return m, nil
}

func encodeSubscribeToSystemEvent(w *writer, m types.SubscribeToSystemEventMsg) {
	w.u32(m.ClientEventID)
	w.str(m.EventName, 256)
}

func decodeRequestSystemState(r *reader) (types.RequestSystemStateMsg, error) {
	var m types.RequestSystemStateMsg
	var err error
	if m.RequestID, err = r.u32(); err != nil {
		return m, err
	}
	if m.StateName, err = r.str(256); err != nil {
		return m, err
	}
	return m, nil
}

func encodeRequestSystemState(w *writer, m types.RequestSystemStateMsg) {
	w.u32(m.RequestID)
	w.str(m.StateName, 256)
}

func decodeRequestJoystickDeviceInfo(r *reader) (types.RequestJoystickDeviceInfoMsg, error) {
	var m types.RequestJoystickDeviceInfoMsg
	var err error
	if m.RequestID, err = r.u32(); err != nil {
		return m, err
	}
	return m, nil
}

func encodeRequestJoystickDeviceInfo(w *writer, m types.RequestJoystickDeviceInfoMsg) {
	w.u32(m.RequestID)
}

// --- Server message codecs ---

func decodeOpenReply(r *reader) (types.OpenReplyMsg, error) {
	var m types.OpenReplyMsg
	var err error
	if m.AppName, err = r.str(256); err != nil {
		return m, err
	}
	for _, pair := range []*types.Pair{&m.AppVer, &m.AppBuild, &m.SCVer, &m.SCBuild} {
		if pair.Major, err = r.u32(); err != nil {
			return m, err
		}
		if pair.Minor, err = r.u32(); err != nil {
			return m, err
		}
	}
	if m._I1, err = r.u32(); err != nil {
		return m, err
	}
	if m._I2, err = r.u32(); err != nil {
		return m, err
	}
	return m, nil
}

func encodeOpenReply(w *writer, m types.OpenReplyMsg) {
	w.str(m.AppName, 256)
	for _, pair := range []types.Pair{m.AppVer, m.AppBuild, m.SCVer, m.SCBuild} {
		w.u32(pair.Major)
		w.u32(pair.Minor)
	}
	w.u32(m._I1)
	w.u32(m._I2)
}

func decodeException(r *reader) (types.ExceptionMsg, error) {
	var m types.ExceptionMsg
	var err error
	if m.Exception, err = r.u32(); err != nil {
		return m, err
	}
	if m.SendID, err = r.u32(); err != nil {
		return m, err
	}
	if m.Index, err = r.u32(); err != nil {
		return m, err
	}
	return m, nil
}

func encodeException(w *writer, m types.ExceptionMsg) {
	w.u32(m.Exception)
	w.u32(m.SendID)
	w.u32(m.Index)
}

func decodeEvent(r *reader) (types.EventMsg, error) {
	var m types.EventMsg
	var err error
	if m.GroupID, err = r.u32(); err != nil {
		return m, err
	}
	if m.EventID, err = r.u32(); err != nil {
		return m, err
	}
	if m.Data, err = r.i32(); err != nil {
		return m, err
	}
	if m.Flags, err = r.u32(); err != nil {
		return m, err
	}
	return m, nil
}

func encodeEvent(w *writer, m types.EventMsg) {
	w.u32(m.GroupID)
	w.u32(m.EventID)
	w.i32(m.Data)
	w.u32(m.Flags)
}

func decodeSimObjectData(r *reader) (types.SimObjectDataMsg, error) {
	var m types.SimObjectDataMsg
	var err error
	if m.RequestID, err = r.u32(); err != nil {
		return m, err
	}
	if m.ObjectID, err = r.u32(); err != nil {
		return m, err
	}
	if m.DefinitionID, err = r.u32(); err != nil {
		return m, err
	}
	if m.Flags, err = r.u32(); err != nil {
		return m, err
	}
	if m.EntryNumber, err = r.u32(); err != nil {
		return m, err
	}
	if m.OutOf, err = r.u32(); err != nil {
		return m, err
	}
	if m.DefineCount, err = r.u32(); err != nil {
		return m, err
	}
	m.Remaining = r.remaining()
	return m, nil
}

func encodeSimObjectData(w *writer, m types.SimObjectDataMsg) {
	w.u32(m.RequestID)
	w.u32(m.ObjectID)
	w.u32(m.DefinitionID)
	w.u32(m.Flags)
	w.u32(m.EntryNumber)
	w.u32(m.OutOf)
	w.u32(m.DefineCount)
	w.raw(m.Remaining)
}

func decodeSystemState(r *reader) (types.SystemStateMsg, error) {
	var m types.SystemStateMsg
	var err error
	if m.RequestID, err = r.u32(); err != nil {
		return m, err
	}
	if m.DataInt, err = r.u32(); err != nil {
		return m, err
	}
	if m.DataFloat, err = r.f32(); err != nil {
		return m, err
	}
	if m.DataString, err = r.str(260); err != nil {
		return m, err
	}
	return m, nil
}

func encodeSystemState(w *writer, m types.SystemStateMsg) {
	w.u32(m.RequestID)
	w.u32(m.DataInt)
	w.f32(m.DataFloat)
	w.str(m.DataString, 260)
}

func decodeJoystickDeviceInfo(r *reader) (types.JoystickDeviceInfoMsg, error) {
	var m types.JoystickDeviceInfoMsg
	var err error
	if m.RequestID, err = r.u32(); err != nil {
		return m, err
	}
	if m.Count, err = r.u32(); err != nil {
		return m, err
	}
	m.Joysticks = make([]types.Joystick, 0, m.Count)
	for i := uint32(0); i < m.Count; i++ {
		var j types.Joystick
		if j.Name, err = r.str(128); err != nil {
			return m, err
		}
		if j.Number, err = r.u32(); err != nil {
			return m, err
		}
		m.Joysticks = append(m.Joysticks, j)
	}
	return m, nil
}

func encodeJoystickDeviceInfo(w *writer, m types.JoystickDeviceInfoMsg) {
	m.Count = uint32(len(m.Joysticks))
	w.u32(m.RequestID)
	w.u32(m.Count)
	for _, j := range m.Joysticks {
		w.str(j.Name, 128)
		w.u32(j.Number)
	}
}

// EncodeDatum encodes one DatumSpec's current value per its ClientType, as
// required by the evaluator's numeric encoding rule. An unimplemented
// datatype (anything past STRING260) returns an error.
func EncodeDatum(dt types.SIMCONNECT_DATATYPE, v types.Value) ([]byte, error) {
	w := &writer{}
	switch dt {
	case types.SIMCONNECT_DATATYPE_INT32:
		w.i32(int32(v.Number))
	case types.SIMCONNECT_DATATYPE_INT64:
		var b [8]byte
		putInt64LE(b[:], int64(v.Number))
		w.raw(b[:])
	case types.SIMCONNECT_DATATYPE_FLOAT32:
		w.f32(float32(v.Number))
	case types.SIMCONNECT_DATATYPE_FLOAT64:
		w.f64(v.Number)
	default:
		if n, ok := dt.FixedStringLen(); ok {
			w.str(v.Text, n)
			return w.bytes(), nil
		}
		return nil, fmt.Errorf("wire: datatype %d not implemented", dt)
	}
	return w.bytes(), nil
}

func putInt64LE(b []byte, v int64) {
	u := uint64(v)
	for i := 0; i < 8; i++ {
		b[i] = byte(u >> (8 * i))
	}
}
