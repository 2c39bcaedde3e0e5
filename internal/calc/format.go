package calc

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

const (
	// ErrorText replaces the display whenever a result cannot be shown.
	ErrorText = "Error"

	maxDisplayLen    = 12
	roundingDigits   = 8
	mantissaDigits   = 6
	smallResultLimit = 1e-7
	largeResultLimit = 1e11
)

// ErrUnrepresentable marks a finite result too long for the display.
var ErrUnrepresentable = errors.New("result does not fit the display")

// FormatResult renders v for the display. Fractions are rounded to eight
// places so binary noise never reaches the user, and anything that still
// does not fit in twelve characters is shown in scientific notation when it
// is very small or very large, or as ErrorText otherwise.
func FormatResult(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrorText
	}

	s := numberString(v)
	if strings.Contains(s, ".") {
		rounded, err := strconv.ParseFloat(fixed(v, roundingDigits), 64)
		if err != nil {
			return ErrorText
		}
		s = numberString(rounded)
	}

	if len(s) > maxDisplayLen {
		abs := math.Abs(v)
		if abs < smallResultLimit || abs > largeResultLimit {
			return exponential(v, mantissaDigits)
		}
		return ErrorText
	}
	return s
}

// numberString is the shortest round-trip rendering of v. Plain decimal
// notation is used for magnitudes in [1e-6, 1e21) and exponent notation
// ("1.5e-7", "2e+21") outside it. Negative zero renders as "0".
func numberString(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	mant, exp := splitExponent(strconv.FormatFloat(v, 'e', -1, 64))
	if exp >= -6 && exp <= 20 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return joinExponent(mant, exp)
}

// fixed renders v with the given number of fraction digits. Exact halfway
// cases round away from zero.
func fixed(v float64, digits int) string {
	if fixedHalfway(v, digits) {
		v = math.Nextafter(v, math.Copysign(math.Inf(1), v))
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}

// fixedHalfway reports whether |v| lies exactly between two candidates with
// digits fraction digits, i.e. |v| * 10^(digits+1) is an integer ending in 5.
func fixedHalfway(v float64, digits int) bool {
	r := new(big.Rat).SetFloat64(math.Abs(v))
	if r == nil {
		return false
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits+1)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))
	if !r.IsInt() {
		return false
	}
	return new(big.Int).Mod(r.Num(), big.NewInt(10)).Int64() == 5
}

// exponential renders v with the given number of mantissa fraction digits.
// Exact halfway cases round away from zero.
func exponential(v float64, digits int) string {
	if halfway(v, digits) {
		v = math.Nextafter(v, math.Copysign(math.Inf(1), v))
	}
	mant, exp := splitExponent(strconv.FormatFloat(v, 'e', digits, 64))
	return joinExponent(mant, exp)
}

// halfway reports whether |v| lies exactly between two candidates with
// digits+1 significant digits. Only magnitudes >= 1 can tie at this
// precision; their exact decimal expansion has at most 20 fraction digits
// for the range the formatter uses.
func halfway(v float64, digits int) bool {
	abs := math.Abs(v)
	if abs < 1 {
		return false
	}
	exact := new(big.Float).SetFloat64(abs).Text('f', 20)
	sig := strings.TrimRight(strings.Replace(exact, ".", "", 1), "0")
	sig = strings.TrimLeft(sig, "0")
	return len(sig) == digits+2 && sig[len(sig)-1] == '5'
}

func splitExponent(s string) (string, int) {
	i := strings.IndexByte(s, 'e')
	if i < 0 {
		return s, 0
	}
	exp, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return s, 0
	}
	return s[:i], exp
}

func joinExponent(mant string, exp int) string {
	sign := "+"
	if exp < 0 {
		sign = "-"
		exp = -exp
	}
	return mant + "e" + sign + strconv.Itoa(exp)
}

// parseEntry converts a display buffer back into a number. Buffers that do
// not hold a number ("Error", a lone ".") yield NaN so the arithmetic layer
// rejects them.
func parseEntry(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
