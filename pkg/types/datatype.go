package types

// SIMCONNECT_DATATYPE is the wire encoding of a single datum within a data
// definition. Only the fixed-width primitive and fixed-width string codes
// are implemented; everything past STRING260 (variable-length strings, wide
// strings, and the structured position/marker/waypoint types) is rejected
// by the codec with "not implemented" per spec.
// https://docs.flightsimulator.com/html/Programming_Tools/SimConnect/API_Reference/Structures_And_Enumerations/SIMCONNECT_DATATYPE.htm
type SIMCONNECT_DATATYPE uint32

const (
	SIMCONNECT_DATATYPE_INVALID SIMCONNECT_DATATYPE = iota
	SIMCONNECT_DATATYPE_INT32
	SIMCONNECT_DATATYPE_INT64
	SIMCONNECT_DATATYPE_FLOAT32
	SIMCONNECT_DATATYPE_FLOAT64
	SIMCONNECT_DATATYPE_STRING8
	SIMCONNECT_DATATYPE_STRING32
	SIMCONNECT_DATATYPE_STRING64
	SIMCONNECT_DATATYPE_STRING128
	SIMCONNECT_DATATYPE_STRING256
	SIMCONNECT_DATATYPE_STRING260
	SIMCONNECT_DATATYPE_STRINGV
	SIMCONNECT_DATATYPE_INITPOSITION
	SIMCONNECT_DATATYPE_MARKERSTATE
	SIMCONNECT_DATATYPE_WAYPOINT
	SIMCONNECT_DATATYPE_LATLONALT
	SIMCONNECT_DATATYPE_XYZ
)

// FixedStringLen returns the wire width of a fixed-width string datatype and
// true, or (0, false) for a non-string or variable-length datatype.
func (d SIMCONNECT_DATATYPE) FixedStringLen() (int, bool) {
	switch d {
	case SIMCONNECT_DATATYPE_STRING8:
		return 8, true
	case SIMCONNECT_DATATYPE_STRING32:
		return 32, true
	case SIMCONNECT_DATATYPE_STRING64:
		return 64, true
	case SIMCONNECT_DATATYPE_STRING128:
		return 128, true
	case SIMCONNECT_DATATYPE_STRING256:
		return 256, true
	case SIMCONNECT_DATATYPE_STRING260:
		return 260, true
	default:
		return 0, false
	}
}

// SIMCONNECT_DATA_REQUEST_FLAG is the flags bitset carried by
// RequestDataOnSimObject.
// https://docs.flightsimulator.com/html/Programming_Tools/SimConnect/API_Reference/Events_And_Data/SimConnect_RequestDataOnSimObject.htm
type SIMCONNECT_DATA_REQUEST_FLAG uint32

const (
	SIMCONNECT_DATA_REQUEST_FLAG_DEFAULT SIMCONNECT_DATA_REQUEST_FLAG = 0
	SIMCONNECT_DATA_REQUEST_FLAG_CHANGED SIMCONNECT_DATA_REQUEST_FLAG = 0x00000001
	SIMCONNECT_DATA_REQUEST_FLAG_TAGGED  SIMCONNECT_DATA_REQUEST_FLAG = 0x00000002
	SIMCONNECT_DATA_REQUEST_FLAG_BLOCK   SIMCONNECT_DATA_REQUEST_FLAG = 0x00000004
)

// OBJECT_ID_USER is the only object ID the core serves (spec Non-goals
// exclude multi-object queries).
const OBJECT_ID_USER uint32 = 0

// SYSTEM_GROUP_ID is the reserved notification group ID used for system
// events fired outside of any client-declared notification group.
const SYSTEM_GROUP_ID uint32 = 0xFFFFFFFF
