package convert

// epsilon bounds the float error expected from a straight unit conversion
// (a single multiply or divide).
const epsilon = 1e-9

// epsilonDeg is looser, for round-trips through a degree/radian conversion.
const epsilonDeg = 1e-4
