package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatAmount formats a budget amount with thousands separators and two
// decimals when the amount is not whole. e.g., 1234.5 -> "1,234.50", 25 -> "25"
func FormatAmount(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	whole := math.Floor(v)
	frac := v - whole
	var s string
	if math.Round(frac*100) == 0 {
		s = groupThousands(strconv.FormatFloat(whole, 'f', 0, 64))
	} else {
		parts := strings.SplitN(strconv.FormatFloat(v, 'f', 2, 64), ".", 2)
		s = groupThousands(parts[0]) + "." + parts[1]
	}

	if neg {
		return "-" + s
	}
	return s
}

// FormatPercent formats a fraction in [0,1] as a percentage with one decimal.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
