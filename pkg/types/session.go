package types

import "time"

// DatumSpec is one variable within a data definition, as declared by
// AddToDataDefinition and resolved through the translation table.
type DatumSpec struct {
	ClientName   string
	ClientUnit   string
	ClientType   SIMCONNECT_DATATYPE
	Epsilon      float64
	DatumID      uint32
	LiveName     string
	LiveUnit     string
	DefaultValue Value

	// PreviousValue is the zero Value with HasPrevious=false until the first
	// emission; it is then updated on every subsequent emission.
	PreviousValue    Value
	HasPrevious      bool
}

// Value is a tagged union over the two SimCache payload kinds.
type Value struct {
	IsText bool
	Number float64
	Text   string
}

func NumberValue(n float64) Value { return Value{Number: n} }
func TextValue(s string) Value    { return Value{IsText: true, Text: s} }

// Equal reports whether two values are identical for change-detection
// purposes given a (possibly zero) epsilon for numeric comparison. Epsilon is
// truncated to an integer when both operands are integral, matching the
// evaluator's change-detection rule.
func (v Value) Equal(other Value, epsilon float64) bool {
	if v.IsText != other.IsText {
		return false
	}
	if v.IsText {
		return v.Text == other.Text
	}
	eps := epsilon
	if v.Number == float64(int64(v.Number)) && other.Number == float64(int64(other.Number)) {
		eps = float64(int64(epsilon))
	}
	diff := v.Number - other.Number
	if diff < 0 {
		diff = -diff
	}
	return diff <= eps
}

// InputBinding is the down/up client-event pair mapped onto one input
// definition string within an input group.
type InputBinding struct {
	DownEventID uint32
	DownValue   uint32
	UpEventID   uint32
	UpValue     uint32
	Maskable    bool
}

// PriorityGroup is shared shape for notification groups (members are a
// maskable bool) and input groups (members are InputBinding, plus Enabled).
type PriorityGroup struct {
	GroupID  uint32
	Priority uint32

	// NotificationMembers: eventID -> maskable. Used when this group is a
	// notification group (AddClientEventToNotificationGroup).
	NotificationMembers map[uint32]bool

	// InputMembers: input definition string -> binding. Used when this group
	// is an input group (MapInputEventToClientEvent).
	InputMembers map[string]InputBinding
	Enabled      bool
}

func NewNotificationGroup(groupID uint32) *PriorityGroup {
	return &PriorityGroup{GroupID: groupID, NotificationMembers: map[uint32]bool{}}
}

func NewInputGroup(groupID uint32) *PriorityGroup {
	return &PriorityGroup{GroupID: groupID, InputMembers: map[string]InputBinding{}}
}

// DataRequest is one entry in a session's activeDataRequests, produced by
// RequestDataOnSimObject.
type DataRequest struct {
	RequestID    uint32
	ObjectID     uint32
	DefinitionID uint32
	Period       SIMCONNECT_PERIOD
	Interval     uint32
	Origin       uint32
	Flags        SIMCONNECT_DATA_REQUEST_FLAG

	TaggedFormat    bool
	OnlyWhenChanged bool

	SendCountdown uint32
	LastSentAt    time.Time
	EverSent      bool
}

func (r DataRequest) Finished() bool {
	return r.Period == SIMCONNECT_PERIOD_NEVER || r.Period == SIMCONNECT_PERIOD_ONCE
}
