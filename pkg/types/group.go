package types

// SIMCONNECT_GROUP_PRIORITY orders notification group delivery. Recognized
// and stored on PriorityGroup but not enforced: groups are searched in map
// iteration order, which is unspecified, not in priority order.
// https://docs.flightsimulator.com/msfs2024/html/6_Programming_APIs/SimConnect/SimConnect_API_Reference.htm#simconnect-priorities
type SIMCONNECT_GROUP_PRIORITY uint32

const (
	SIMCONNECT_GROUP_PRIORITY_HIGHEST  SIMCONNECT_GROUP_PRIORITY = 1
	SIMCONNECT_GROUP_PRIORITY_STANDARD SIMCONNECT_GROUP_PRIORITY = 1900000000
	SIMCONNECT_GROUP_PRIORITY_DEFAULT  SIMCONNECT_GROUP_PRIORITY = 2000000000
	SIMCONNECT_GROUP_PRIORITY_LOWEST   SIMCONNECT_GROUP_PRIORITY = 4000000000
)
