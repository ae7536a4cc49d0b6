package acctcode

import (
	"strings"
)

// DefaultSeparators split one journal cell into several account codes.
const DefaultSeparators = ",;"

const blanks = " \t\r\n\u00a0"

// Codec normalizes and splits account codes with a fixed separator set.
// The zero value uses DefaultSeparators.
type Codec struct {
	Separators string
}

// Default is the codec behind the package-level helpers.
var Default = Codec{Separators: DefaultSeparators}

func (c Codec) separators() string {
	if c.Separators == "" {
		return DefaultSeparators
	}
	return c.Separators
}

// Normalize returns the grouping key for an account code:
// surrounding whitespace and separator characters are removed.
// "  1001; " -> "1001"
func (c Codec) Normalize(code string) string {
	return strings.Trim(code, blanks+c.separators())
}

// Split returns the normalized codes listed in a cell.
// "1001, 1002" -> ["1001", "1002"]. Empty parts are dropped.
func (c Codec) Split(raw string) []string {
	seps := c.separators()
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		if code := c.Normalize(p); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// HasSeparator reports whether a normalized code still contains a
// separator, so a journal cell naming it would be split apart.
func (c Codec) HasSeparator(code string) bool {
	return strings.ContainsAny(c.Normalize(code), c.separators())
}

// Normalize normalizes code with the default separators.
func Normalize(code string) string { return Default.Normalize(code) }

// Split splits raw with the default separators.
func Split(raw string) []string { return Default.Split(raw) }

// Less orders codes naturally: runs of digits compare by numeric value,
// other runs byte-wise, and a digit run sorts before a non-digit run.
// Codes that compare equal that way fall back to plain string order.
// "9" < "10" < "1001" < "1001a" < "1010".
func Less(a, b string) bool {
	x, y := a, b
	for x != "" && y != "" {
		var cx, cy string
		cx, x = nextChunk(x)
		cy, y = nextChunk(y)
		dx, dy := isDigit(cx[0]), isDigit(cy[0])
		switch {
		case dx && !dy:
			return true
		case !dx && dy:
			return false
		case dx:
			if c := compareNumeric(cx, cy); c != 0 {
				return c < 0
			}
		default:
			if cx != cy {
				return cx < cy
			}
		}
	}
	if x != y {
		return x == ""
	}
	return a < b
}

// nextChunk splits off the leading run of digits or non-digits.
func nextChunk(s string) (chunk, rest string) {
	d := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == d {
		i++
	}
	return s[:i], s[i:]
}

func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
