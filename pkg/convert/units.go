package convert

import (
	"log/slog"
	"strings"
)

// Convert dispatches a value between two lowercased unit names, as required
// by the translation table's unit layer. Unknown (from, to) pairs are logged
// and reported via ok=false so the caller can omit the datum from emission.
func Convert(logger *slog.Logger, value float64, from, to string) (result float64, ok bool) {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))

	if from == to {
		return value, true
	}

	switch {
	case from == "meters per second" && to == "knots":
		return MetersPerSecondToKnots(value), true
	case from == "knots" && to == "meters per second":
		return KnotsToMetersPerSecond(value), true
	case from == "meters per second" && to == "feet per minute":
		return MetersPerSecondToFeetPerMinute(value), true
	case from == "feet per minute" && to == "meters per second":
		return FeetPerMinuteToMetersPerSecond(value), true
	case from == "meters" && to == "feet":
		return MetersToFeet(value), true
	case from == "feet" && to == "meters":
		return FeetToMeters(value), true
	case from == "radians" && to == "degrees":
		return RadiansToDegrees(value), true
	case from == "degrees" && to == "radians":
		return DegreesToRadians(value), true
	case from == "radians per second" && to == "degrees per second":
		return RadiansToDegrees(value), true
	case from == "degrees per second" && to == "radians per second":
		return DegreesToRadians(value), true
	case from == "percent" && to == "bool":
		if value > 0 {
			return 1, true
		}
		return 0, true
	case from == "inches of mercury" && to == "millibars":
		return InHgToMillibar(value), true
	case from == "millibars" && to == "inches of mercury":
		return MillibarToInHg(value), true
	case from == "inches of mercury" && to == "pascal":
		return InHgToPascal(value), true
	case from == "pascal" && to == "inches of mercury":
		return PascalToInHg(value), true
	case from == "celsius" && to == "fahrenheit":
		return CelsiusToFahrenheit(value), true
	case from == "fahrenheit" && to == "celsius":
		return FahrenheitToCelsius(value), true
	case from == "celsius" && to == "kelvin":
		return CelsiusToKelvin(value), true
	case from == "kelvin" && to == "celsius":
		return KelvinToCelsius(value), true
	case from == "kilograms" && to == "pounds":
		return KilogramsToPounds(value), true
	case from == "pounds" && to == "kilograms":
		return PoundsToKilograms(value), true
	case from == "gallons" && to == "liters":
		return USGallonsToLiters(value), true
	case from == "liters" && to == "gallons":
		return LitersToUSGallons(value), true
	}

	if logger != nil {
		logger.Warn("unknown unit conversion", "from", from, "to", to)
	}
	return 0, false
}
