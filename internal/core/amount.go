package core

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// digits, optionally signed, with single '.' or ',' separators between digit runs
var amountPattern = regexp.MustCompile(`^[+-]?[0-9]+([.,][0-9]+)*$`)

// ParseAmount converts a human formatted amount into a float.
//
// It tolerates surrounding whitespace and a leading currency symbol. Only
// digits, an optional sign and '.' or ',' separators are accepted, so
// exponents and hex floats are rejected. Separator rules:
//
//	ParseAmount("1,234.50")  -> 1234.5   (both: the last one is decimal)
//	ParseAmount("1.234,50")  -> 1234.5
//	ParseAmount("1,234,567") -> 1234567  (repeated: grouping)
//	ParseAmount("1,234")     -> 1234     (single comma before three digits: grouping)
//	ParseAmount("12,50")     -> 12.5     (other single comma: decimal)
//	ParseAmount("1.234")     -> 1.234    (single dot: decimal)
//	ParseAmount("$ 25")      -> 25
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.Is(unicode.Sc, r) || unicode.IsSpace(r)
	})
	if !amountPattern.MatchString(s) {
		return 0, ErrNonNumericBudget
	}

	normalized, ok := normalizeSeparators(s)
	if !ok {
		return 0, ErrNonNumericBudget
	}
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNonNumericBudget
	}
	return v, nil
}

// normalizeSeparators rewrites s so that it holds at most one '.' as the
// decimal point and no grouping characters.
func normalizeSeparators(s string) (string, bool) {
	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case dots > 0 && commas > 0:
		decimal, group := ".", ","
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			decimal, group = ",", "."
		}
		if strings.Count(s, decimal) > 1 {
			return "", false
		}
		s = strings.ReplaceAll(s, group, "")
		return strings.Replace(s, decimal, ".", 1), true
	case commas > 1:
		return strings.ReplaceAll(s, ",", ""), true
	case commas == 1:
		if len(s)-strings.Index(s, ",")-1 == 3 {
			return strings.Replace(s, ",", "", 1), true
		}
		return strings.Replace(s, ",", ".", 1), true
	case dots > 1:
		return strings.ReplaceAll(s, ".", ""), true
	default:
		return s, true
	}
}
