package codetool

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int64
	}{
		{42, 42},
		{int64(42), 42},
		{uint32(42), 42},
		{"42", 42},
		{"#42!", 42},
		{" deal-42 ", 42},
		{[]byte("42"), 42},
		{42.9, 42},
		{float32(7), 7},
		{json.Number("42"), 42},
		{json.Number("42.5"), 42},
		{"00042", 42},
	}
	for _, c := range cases {
		got, err := Normalize(c.in)
		if err != nil {
			t.Errorf("Normalize(%#v) err: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Normalize(%#v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestNormalizeInvalid(t *testing.T) {
	for _, in := range []interface{}{nil, "", "abc", "#!", 0, -5, "0", math.NaN(), math.Inf(1), uint64(math.MaxUint64), "99999999999999999999", true} {
		_, err := Normalize(in)
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Errorf("Normalize(%#v) err = %v, want ErrInvalidIdentifier", in, err)
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Normalize(%#v) err should wrap ErrInvalidInput", in)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range []interface{}{42, "42", "#42!", 42.0, "a1b2c3"} {
		once, err := Normalize(in)
		if err != nil {
			t.Fatal(err)
		}
		twice, err := Normalize(once)
		if err != nil {
			t.Fatal(err)
		}
		if once != twice {
			t.Errorf("Normalize not idempotent for %#v: %d != %d", in, once, twice)
		}
	}
}

func TestNewDealRef(t *testing.T) {
	ref, err := NewDealRef("#77")
	if err != nil {
		t.Fatal(err)
	}
	if ref.Id != 77 || ref.Original != "#77" || ref.String() != "77" {
		t.Fatalf("unexpected ref %+v", ref)
	}
	ref, err = NewDealRef("x")
	if err == nil || ref.Original != "x" {
		t.Fatalf("want error keeping original, got %+v %v", ref, err)
	}
}
