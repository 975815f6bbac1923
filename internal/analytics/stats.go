package analytics

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance returns the population variance, or 0 for an empty slice.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values))
}

// TrendSlope returns the ordinary-least-squares slope of values against their
// 1-based index, using the closed-form formula
// (N*Σxy - Σx*Σy) / (N*Σx² - (Σx)²). Fewer than two points yield 0.
func TrendSlope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	fn := float64(n)
	sumX := fn * (fn + 1) / 2
	sumX2 := fn * (fn + 1) * (2*fn + 1) / 6
	var sumY, sumXY float64
	for i, v := range values {
		sumY += v
		sumXY += v * float64(i+1)
	}
	return (fn*sumXY - sumX*sumY) / (fn*sumX2 - sumX*sumX)
}

// RangeStdDev estimates a standard deviation as (max-min)/4, a cheap proxy
// good enough for confidence tiering.
func RangeStdDev(max, min float64) float64 {
	return (max - min) / 4
}
