// Package format renders simulated amounts as text.
package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Fixed renders an amount rounded half away from zero to two decimals
// (e.g., "1126.83"). Used for machine-readable output. Amounts that overflowed
// render as "+Inf", "-Inf" or "NaN".
func Fixed(amount float64) string {
	if s, ok := nonFinite(amount); ok {
		return s
	}
	return decimal.NewFromFloat(amount).StringFixed(2)
}

func nonFinite(amount float64) (string, bool) {
	switch {
	case math.IsNaN(amount):
		return "NaN", true
	case math.IsInf(amount, 1):
		return "+Inf", true
	case math.IsInf(amount, -1):
		return "-Inf", true
	}
	return "", false
}

// Grouped renders an amount to two decimals with thousands separators
// (e.g., "-1,234.56").
func Grouped(amount float64) string {
	if s, ok := nonFinite(amount); ok {
		return s
	}
	fixed := Fixed(amount)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, decPart, _ := strings.Cut(fixed, ".")
	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return sign + intPart + "." + decPart
}
