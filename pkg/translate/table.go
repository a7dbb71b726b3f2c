// Package translate holds the static mapping between client (legacy
// SimConnect) variable names and the live sim's own variable names and
// units, grounded on the FSX_FFS_MAP table of the original bridge.
package translate

import (
	"log/slog"
	"strings"

	"github.com/mrlm-net/simbridge/pkg/convert"
	"github.com/mrlm-net/simbridge/pkg/types"
)

// SynthFunc fabricates a value for a client variable the live sim does not
// expose, from whatever the cache currently holds.
type SynthFunc func(cache *types.SimCache) types.Value

// Entry is one TranslationTable row: at most one of LiveName and Synth is
// set, LiveUnit is empty when no conversion is required, and Default is
// used whenever the live sim has nothing for this variable yet.
type Entry struct {
	LiveName string
	Synth    SynthFunc
	LiveUnit string
	Default  types.Value
}

// Table is keyed by lowercased client variable name.
type Table map[string]Entry

// Default is the table every SessionState resolves AddToDataDefinition
// against. Entries with neither LiveName nor Synth have no live-sim
// equivalent and always resolve to their Default.
var Default = Table{
	"title":            {Synth: synthAirplaneName, Default: types.TextValue("my plane")},
	"category":         {Default: types.TextValue("Airplane")},
	"is slew active":   {Default: types.NumberValue(0)},
	"sim on ground":    {LiveName: "Aircraft.Status.OnGround", LiveUnit: "bool", Default: types.NumberValue(1)},
	"stall warning":    {Default: types.NumberValue(0)},

	"airspeed true":             {LiveName: "Aircraft.Position.Airspeed.True", LiveUnit: "meters per second", Default: types.NumberValue(0)},
	"airspeed indicated":        {LiveName: "Aircraft.Position.Airspeed.Indicated", LiveUnit: "meters per second", Default: types.NumberValue(0)},
	"ground velocity":           {LiveName: "Aircraft.Position.GroundSpeed.Value", LiveUnit: "meters per second", Default: types.NumberValue(0)},
	"velocity world y":          {LiveName: "Aircraft.Position.VerticalSpeed.Value", LiveUnit: "meters per second", Default: types.NumberValue(0)},
	"plane alt above ground":    {LiveName: "Aircraft.Position.Altitude.Radar", LiveUnit: "meters", Default: types.NumberValue(0)},
	"plane altitude":            {LiveName: "Aircraft.Position.Altitude.True", LiveUnit: "meters", Default: types.NumberValue(0)},
	"plane latitude":            {LiveName: "Aircraft.Position.Latitude", LiveUnit: "degrees", Default: types.NumberValue(0)},
	"plane longitude":           {LiveName: "Aircraft.Position.Longitude", LiveUnit: "degrees", Default: types.NumberValue(0)},
	"plane bank degrees":        {LiveName: "Aircraft.Position.Bank.Value", LiveUnit: "radians", Default: types.NumberValue(0)},
	"stall alpha":                {LiveName: "Aircraft.Properties.Dynamics.StallAlpha", LiveUnit: "radians", Default: types.NumberValue(0.26)},
	"incidence alpha":            {LiveName: "Aircraft.Dynamics.Alpha", LiveUnit: "radians", Default: types.NumberValue(0.1)},
	"elevator trim position":     {LiveName: "Aircraft.Surfaces.Elevator.Trim.Angle", LiveUnit: "radians", Default: types.NumberValue(0)},
	"rotation velocity body x":   {LiveName: "Aircraft.Velocity.Rotation.Local.X", LiveUnit: "radians per second", Default: types.NumberValue(0)},
	"rotation velocity body y":   {LiveName: "Aircraft.Velocity.Rotation.Local.Y", LiveUnit: "radians per second", Default: types.NumberValue(0)},
	"rotation velocity body z":   {LiveName: "Aircraft.Velocity.Rotation.Local.Z", LiveUnit: "radians per second", Default: types.NumberValue(0)},

	"gear handle position":                          {LiveName: "Aircraft.Input.GearLever.Down", LiveUnit: "percent", Default: types.NumberValue(1)},
	"general eng pct max rpm:1":                      {LiveName: "Aircraft.Engine.1.Piston.RPMPercent", LiveUnit: "percent", Default: types.NumberValue(50)},
	"general eng throttle lever position:1":          {LiveName: "Aircraft.Controls.Engine.Throttle", LiveUnit: "percent", Default: types.NumberValue(50)},
	"elevator position":                              {LiveName: "Aircraft.Input.Pitch", LiveUnit: "percent", Default: types.NumberValue(0)},
	"aileron left deflection pct":                     {LiveName: "Aircraft.Surfaces.Aileron.Left.Percent", LiveUnit: "percent", Default: types.NumberValue(0)},
	"pitot ice pct":                                   {LiveName: "Aircraft.Status.PitotIce.Percent", LiveUnit: "percent", Default: types.NumberValue(0)},
	"center wheel rpm":                                {Synth: synthCenterWheelRPM, Default: types.NumberValue(0)},

	"aircraft wind y": {LiveName: "World.Wind.Velocity.Local.Y", LiveUnit: "meters per second", Default: types.NumberValue(5)},

	"autopilot altitude lock":    {LiveUnit: "bool", Default: types.NumberValue(0)},
	"autopilot approach hold":    {LiveUnit: "bool", Default: types.NumberValue(0)},
	"autopilot attitude hold":    {LiveUnit: "bool", Default: types.NumberValue(0)},
	"autopilot backcourse hold":  {LiveUnit: "bool", Default: types.NumberValue(0)},
	"autopilot glideslope hold":  {LiveUnit: "bool", Default: types.NumberValue(0)},
	"autopilot heading lock":     {LiveUnit: "bool", Default: types.NumberValue(0)},
	"autopilot master":           {LiveUnit: "bool", Default: types.NumberValue(0)},
	"autopilot nav1 lock":        {LiveUnit: "bool", Default: types.NumberValue(0)},
	"autopilot vertical hold":    {LiveUnit: "bool", Default: types.NumberValue(0)},
	"cable caught by tailhook":   {LiveUnit: "bool", Default: types.NumberValue(0)},
	"turb eng afterburner:1":     {Default: types.NumberValue(0)},
	"turb eng n1:1":              {Default: types.NumberValue(0)},

	"surface type":          {Default: types.NumberValue(4)},
	"gear center position":  {Default: types.NumberValue(0)},
	"gear left position":    {Default: types.NumberValue(0)},
	"gear right position":   {Default: types.NumberValue(0)},
	"is gear retractable":   {LiveUnit: "bool", Default: types.NumberValue(1)},
	"visual model radius":   {Default: types.NumberValue(16.4)},
	"is tail dragger":       {LiveUnit: "bool", Default: types.NumberValue(0)},
	"design speed vc":       {Default: types.NumberValue(20)},
	"design speed vs0":      {Default: types.NumberValue(20)},
	"engine type":           {Default: types.NumberValue(0)},

	"kohlsman setting hg":     {LiveName: "Aircraft.Environment.Altimeter.Setting", LiveUnit: "inches of mercury", Default: types.NumberValue(29.92)},
	"ambient temperature":     {LiveName: "World.Weather.Temperature", LiveUnit: "celsius", Default: types.NumberValue(15)},
	"fuel total quantity":     {LiveName: "Aircraft.Fuel.Total.Quantity", LiveUnit: "gallons", Default: types.NumberValue(50)},
	"total weight":            {LiveName: "Aircraft.Mass.Total", LiveUnit: "kilograms", Default: types.NumberValue(1200)},
	"plane heading degrees true": {LiveName: "Aircraft.Position.Heading.True", LiveUnit: "radians", Default: types.NumberValue(0)},
}

func synthAirplaneName(cache *types.SimCache) types.Value {
	return types.TextValue("my plane")
}

// synthCenterWheelRPM fabricates a center-wheel rotation rate from ground
// speed while the aircraft is on the ground; the live sim has no wheel-speed
// variable of its own.
func synthCenterWheelRPM(cache *types.SimCache) types.Value {
	onGround, _ := cache.Get("Aircraft.Status.OnGround")
	if onGround.Number == 0 {
		return types.NumberValue(0)
	}
	groundSpeed, _ := cache.Get("Aircraft.Position.GroundSpeed.Value")
	const tireCircumferenceMeters = 1.5
	revsPerSec := groundSpeed.Number / tireCircumferenceMeters
	return types.NumberValue(revsPerSec * 60.0)
}

// Lookup resolves a client-declared datum name against the table. ok is
// false when the name is unknown; callers must treat that as fatal to the
// session per AddToDataDefinition's invariant.
func (t Table) Lookup(clientName string) (Entry, bool) {
	e, ok := t[strings.ToLower(strings.TrimSpace(clientName))]
	return e, ok
}

// Resolve extracts the current value for a client variable from the cache,
// applying the synthesiser or default and then the unit conversion to
// clientUnit. ok is false only when a non-identical unit pair is unknown;
// the caller must then omit the datum from emission.
func Resolve(logger *slog.Logger, e Entry, cache *types.SimCache, clientUnit string) (types.Value, bool) {
	var v types.Value
	switch {
	case e.Synth != nil:
		v = e.Synth(cache)
	case e.LiveName == "":
		v = e.Default
	default:
		cached, found := cache.Get(e.LiveName)
		if !found {
			v = e.Default
		} else {
			v = cached
		}
	}

	if v.IsText || e.LiveUnit == "" || clientUnit == "" {
		return v, true
	}
	converted, ok := convert.Convert(logger, v.Number, e.LiveUnit, clientUnit)
	if !ok {
		return types.Value{}, false
	}
	return types.NumberValue(converted), true
}
