package transpiler

import (
	"math"
	"strconv"
)

// formatNumber renders f the way JavaScript's Number::toString does, so the
// emitted literal reads back as the same double.
func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == 0 {
		return "0" // -0 included
	}

	absF := math.Abs(f)
	if absF < 1e-6 || absF >= 1e21 {
		return cleanExponentialFormat(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// cleanExponentialFormat strips leading zeros from the exponent:
// "1e-07" -> "1e-7", "1e+025" -> "1e+25".
func cleanExponentialFormat(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != 'e' && s[i] != 'E' {
			continue
		}
		if i+1 >= len(s) || (s[i+1] != '+' && s[i+1] != '-') {
			return s
		}
		j := i + 2
		for j < len(s) && s[j] == '0' {
			j++
		}
		if j >= len(s) {
			return s[:i+2] + "0"
		}
		return s[:i+2] + s[j:]
	}
	return s
}
