package utils

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// FormatNumber renders f the way a JavaScript runtime prints a number:
// shortest round-trip digits, plain notation for 1e-6 <= |f| < 1e21 and
// exponent notation (e.g. "1e+21", "1.5e-7") outside that range.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok || len(exp) < 2 {
		return s
	}
	// strconv pads the exponent to two digits
	return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// ToFixed formats x with exactly digits fractional digits. Rounding works on
// the exact binary value of x and resolves ties away from zero, so 1.005
// yields "1.00" and 0.125 yields "0.13".
func ToFixed(x float64, digits int) string {
	if digits < 0 {
		digits = 0
	}
	if math.IsNaN(x) {
		return "NaN"
	}
	if math.Abs(x) >= 1e21 {
		return FormatNumber(x)
	}
	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}
	scale := new(big.Float).SetPrec(256).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil))
	scaled := new(big.Float).SetPrec(256).SetFloat64(x)
	scaled.Mul(scaled, scale)
	scaled.Add(scaled, big.NewFloat(0.5))
	n, _ := scaled.Int(nil)
	s := n.String()
	if digits == 0 {
		return sign + s
	}
	if len(s) <= digits {
		s = strings.Repeat("0", digits-len(s)+1) + s
	}
	return sign + s[:len(s)-digits] + "." + s[len(s)-digits:]
}
