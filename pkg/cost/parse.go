package cost

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseNumeric reads a number from free-form input and never fails.
//
// Non-string values are converted to text first, so numbers, fmt.Stringer
// implementations (including json.Number) and nil are all accepted. A
// Stringer that is a nil pointer or panics reads as 0. The
// first comma is treated as a decimal point. Leading whitespace is skipped
// and the longest leading decimal literal is parsed; whatever follows it is
// ignored. Input without a leading number yields 0.
//
// The result is always finite. Literals that overflow float64 and
// non-finite inputs such as math.Inf(1) yield 0.
func ParseNumeric(v any) float64 {
	s := strings.Replace(toText(v), ",", ".", 1)
	lit := leadingFloat(s)
	if lit == "" {
		return 0
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	default:
		return fmt.Sprint(t)
	}
}

// leadingFloat returns the longest prefix of s (after whitespace) that forms
// a decimal literal: [+-] digits [. digits] [(e|E) [+-] digits]. A bare
// trailing dot is dropped from the returned literal.
func leadingFloat(s string) string {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intDigits := i - start

	var b strings.Builder
	b.WriteString(s[:i])

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		fracDigits = j - i - 1
		if fracDigits > 0 {
			b.WriteString(s[i:j])
		}
		if intDigits > 0 || fracDigits > 0 {
			i = j
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return ""
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			b.WriteString(s[i:k])
		}
	}
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
