package gcode

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/fwojciec/printwatch"
)

// Millimeters converts a length value in the given unit to millimeters.
// An empty unit means the value is already in millimeters. Unknown units
// are a parse failure for the field, not a crash.
func Millimeters(value float64, unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "mm":
		return value, nil
	case "cm":
		return value * 10, nil
	case "m":
		return value * 1000, nil
	}
	return 0, printwatch.Errorf(printwatch.EUNPARSABLE, "unknown length unit %q", unit)
}

// Grams converts a mass value in the given unit to grams. An empty unit
// means the value is already in grams.
func Grams(value float64, unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "g":
		return value, nil
	case "kg":
		return value * 1000, nil
	}
	return 0, printwatch.Errorf(printwatch.EUNPARSABLE, "unknown mass unit %q", unit)
}

// Seconds parses a duration in any of the textual shapes slicers emit and
// returns total seconds. Accepted shapes:
//
//   - component form: ordered <number><unit> tokens with units d/h/m/s,
//     e.g. "17h56m", "1h 2m 3s"; components must not repeat and larger
//     units must come first; whitespace is insignificant
//   - clock form: "HH:MM:SS" or "MM:SS"; minute and second fields must be
//     below 60
//   - bare integer seconds, e.g. "3723"
//
// Fractional seconds are truncated toward zero. Malformed input returns an
// EUNPARSABLE error; callers treat the field as absent.
func Seconds(text string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0, printwatch.Errorf(printwatch.EUNPARSABLE, "empty duration")
	}
	if strings.Contains(s, ":") {
		return clockSeconds(s)
	}
	if allDigits(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, printwatch.Errorf(printwatch.EUNPARSABLE, "duration %q out of range", text)
		}
		return n, nil
	}
	return componentSeconds(s)
}

// clockSeconds parses colon-delimited durations. The two-field form is
// interpreted as MM:SS.
func clockSeconds(s string) (int64, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 2 && len(fields) != 3 {
		return 0, printwatch.Errorf(printwatch.EUNPARSABLE, "clock duration %q must have 2 or 3 fields", s)
	}

	values := make([]int64, 0, 3)
	if len(fields) == 2 {
		values = append(values, 0) // implicit zero hours
	}
	for _, f := range fields {
		if !allDigits(f) {
			return 0, printwatch.Errorf(printwatch.EUNPARSABLE, "clock duration %q has a non-numeric field", s)
		}
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return 0, printwatch.Errorf(printwatch.EUNPARSABLE, "clock duration %q out of range", s)
		}
		values = append(values, v)
	}

	if values[1] > 59 || values[2] > 59 {
		return 0, printwatch.Errorf(printwatch.EUNPARSABLE, "clock duration %q has an out-of-range field", s)
	}

	return values[0]*3600 + values[1]*60 + values[2], nil
}

// secondsPerUnit maps component-form unit letters to their length in
// seconds. It doubles as the ordering rank: larger units must precede
// smaller ones.
var secondsPerUnit = map[byte]float64{
	'd': 86400,
	'h': 3600,
	'm': 60,
	's': 1,
}

// componentSeconds parses "<number><unit>" token sequences. Every token
// must be digits followed by a single unit letter; a unit letter without
// preceding digits (e.g. "h5m"), a repeated unit, or an out-of-order unit
// makes the whole duration unparsable.
func componentSeconds(s string) (int64, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	var total float64
	prev := -1.0

	for i := 0; i < len(compact); {
		start := i
		for i < len(compact) && (isDigit(compact[i]) || compact[i] == '.') {
			i++
		}
		if start == i || i == len(compact) {
			return 0, printwatch.Errorf(printwatch.EUNPARSABLE, "malformed duration component in %q", s)
		}

		value, err := strconv.ParseFloat(compact[start:i], 64)
		if err != nil {
			return 0, printwatch.Errorf(printwatch.EUNPARSABLE, "malformed duration component in %q", s)
		}

		mult, ok := secondsPerUnit[compact[i]]
		if !ok {
			return 0, printwatch.Errorf(printwatch.EUNPARSABLE, "unknown duration unit %q in %q", string(compact[i]), s)
		}
		if prev >= 0 && mult >= prev {
			return 0, printwatch.Errorf(printwatch.EUNPARSABLE, "repeated or out-of-order duration component in %q", s)
		}
		prev = mult
		total += value * mult
		i++
	}

	return int64(total), nil
}

// SplitAmount separates a filament amount into its numeric value and
// trailing unit token, e.g. "1.2m" → (1.2, "m") and "1234.5" → (1234.5, "").
func SplitAmount(s string) (float64, string, error) {
	t := strings.TrimSpace(s)

	i := len(t)
	for i > 0 && isLetter(t[i-1]) {
		i--
	}
	unit := t[i:]

	value, err := strconv.ParseFloat(strings.TrimSpace(t[:i]), 64)
	if err != nil {
		return 0, "", printwatch.Errorf(printwatch.EUNPARSABLE, "malformed filament amount %q", s)
	}

	return value, strings.ToLower(unit), nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
