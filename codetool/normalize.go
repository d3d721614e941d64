package codetool

import (
	"encoding/json"
	"fmt"
	"github.com/gogf/gf/v2/util/gconv"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Normalize turns a caller supplied deal identifier into the canonical int64 key.
// Strings keep only their ASCII digits, floats are truncated toward zero.
func Normalize(v interface{}) (int64, error) {
	switch val := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: nil", ErrInvalidIdentifier)
	case int:
		return positive(int64(val))
	case int8:
		return positive(int64(val))
	case int16:
		return positive(int64(val))
	case int32:
		return positive(int64(val))
	case int64:
		return positive(val)
	case uint:
		return fromUint(uint64(val))
	case uint8:
		return fromUint(uint64(val))
	case uint16:
		return fromUint(uint64(val))
	case uint32:
		return fromUint(uint64(val))
	case uint64:
		return fromUint(val)
	case float32:
		return fromFloat(float64(val))
	case float64:
		return fromFloat(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return positive(i)
		}
		if f, err := val.Float64(); err == nil {
			return fromFloat(f)
		}
		return fromDigits(val.String())
	case string:
		return fromDigits(val)
	case []byte:
		return fromDigits(string(val))
	}
	return fromDigits(gconv.String(v))
}

func positive(i int64) (int64, error) {
	if i <= 0 {
		return 0, fmt.Errorf("%w: %d is not positive", ErrInvalidIdentifier, i)
	}
	return i, nil
}

func fromUint(u uint64) (int64, error) {
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d overflows", ErrInvalidIdentifier, u)
	}
	return positive(int64(u))
}

func fromFloat(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v is not finite", ErrInvalidIdentifier, f)
	}
	f = math.Trunc(f)
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, fmt.Errorf("%w: %v overflows", ErrInvalidIdentifier, f)
	}
	return positive(int64(f))
}

func fromDigits(s string) (int64, error) {
	digits := strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0, fmt.Errorf("%w: %q has no digits", ErrInvalidIdentifier, s)
	}
	i, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %s", ErrInvalidIdentifier, s, err.Error())
	}
	return positive(i)
}

// DealRef keeps the caller's deal identifier next to its normalized form.
type DealRef struct {
	Original interface{} `json:"original"`
	Id       int64       `json:"id"`
}

func NewDealRef(v interface{}) (DealRef, error) {
	id, err := Normalize(v)
	if err != nil {
		return DealRef{Original: v}, err
	}
	return DealRef{Original: v, Id: id}, nil
}

func (d DealRef) String() string {
	return strconv.FormatInt(d.Id, 10)
}
