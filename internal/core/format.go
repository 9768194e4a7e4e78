package core

// Display formatting for dollar amounts and recipient counts. Aggregation
// always happens on the raw int64 values; formatting is applied only at the
// template and CSV boundary.

import "strconv"

// FormatCount renders an integer with thousands separators ("1,234,567").
func FormatCount(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	n := len(s)
	if n > 3 {
		var b []byte
		for i, c := range []byte(s) {
			if i > 0 && (n-i)%3 == 0 {
				b = append(b, ',')
			}
			b = append(b, c)
		}
		s = string(b)
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatUSD renders whole dollars with a currency sign ("$1,234,567").
func FormatUSD(v int64) string {
	if v < 0 {
		return "-$" + FormatCount(-v)
	}
	return "$" + FormatCount(v)
}

// FormatPercent renders a 0..1 ratio as a whole percentage ("42%").
func FormatPercent(ratio float64) string {
	return strconv.FormatInt(int64(ratio*100+0.5), 10) + "%"
}
