package types

// SIMCONNECT_PERIOD is the frequency at which a data request delivers data,
// as carried on the wire by RequestDataOnSimObject.
// https://docs.flightsimulator.com/html/Programming_Tools/SimConnect/API_Reference/Structures_And_Enumerations/SIMCONNECT_PERIOD.htm
type SIMCONNECT_PERIOD uint32

const (
	SIMCONNECT_PERIOD_NEVER        SIMCONNECT_PERIOD = iota // never send data
	SIMCONNECT_PERIOD_ONCE                                  // send data once only
	SIMCONNECT_PERIOD_VISUAL_FRAME                          // send data every visual frame
	SIMCONNECT_PERIOD_SIM_FRAME                             // send data every simulation frame
	SIMCONNECT_PERIOD_SECOND                                // send data once per second
)
