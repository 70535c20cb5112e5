package validation

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	apperrors "go-chi-remote-calc/internal/errors"
)

// InvalidNumberMessage is reported for any value that cannot become a number.
const InvalidNumberMessage = "Must be a valid number"

// maxSafeInteger is the largest integer a float64 holds without loss (2^53 - 1).
const maxSafeInteger = 1<<53 - 1

// ErrNotInteger is returned by Integer for finite numbers with a fractional
// part or outside the safe integer range.
var ErrNotInteger = errors.New("value is not an integer")

// Number coerces a raw field value into a finite float64. Strings are trimmed
// and parsed in base 10; nil, booleans, empty strings, NaN and infinities are
// rejected with an INVALID_TYPE error.
func Number(v any) (float64, error) {
	var f float64

	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, invalidNumber(err)
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, invalidNumber(nil)
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, invalidNumber(err)
		}
		f = parsed
	default:
		return 0, invalidNumber(nil)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalidNumber(nil)
	}
	return f, nil
}

// Integer coerces v with Number and then requires it to be a whole number
// within the safe integer range.
func Integer(v any) (int, error) {
	f, err := Number(v)
	if err != nil {
		return 0, err
	}
	if math.Trunc(f) != f || math.Abs(f) > maxSafeInteger {
		return 0, ErrNotInteger
	}
	return int(f), nil
}

func invalidNumber(cause error) *apperrors.Error {
	return apperrors.Wrap(apperrors.KindInvalidType, cause, InvalidNumberMessage)
}
