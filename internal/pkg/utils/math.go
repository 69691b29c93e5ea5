package utils

import "math"

func ClampInt(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}

func ClampFloat(value, minValue, maxValue float64) float64 {
	return math.Max(minValue, math.Min(maxValue, value))
}

// RoundToInt rounds half away from zero.
func RoundToInt(value float64) int {
	return int(math.Round(value))
}

// Rescale maps value from [fromMin, fromMax] onto [toMin, toMax]. A degenerate source range maps to toMin.
func Rescale(value, fromMin, fromMax, toMin, toMax float64) float64 {
	if fromMax <= fromMin {
		return toMin
	}
	ratio := (ClampFloat(value, fromMin, fromMax) - fromMin) / (fromMax - fromMin)
	return toMin + ratio*(toMax-toMin)
}

// RoundTo rounds value to the given number of decimals.
func RoundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
