package convert

// kgPerLb is the international avoirdupois pound, exact by definition.
const kgPerLb = 0.45359237

// litersPerUSGallon is the US liquid gallon, exact by definition.
const litersPerUSGallon = 3.785411784

func PoundsToKilograms(lbs float64) float64 {
	return lbs * kgPerLb
}

func KilogramsToPounds(kg float64) float64 {
	return kg / kgPerLb
}

func USGallonsToLiters(gal float64) float64 {
	return gal * litersPerUSGallon
}

func LitersToUSGallons(l float64) float64 {
	return l / litersPerUSGallon
}
