package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Price is a fixed-point monetary amount with exactly two fractional digits,
// held as an integer number of cents. It marshals to a JSON string such as
// "3.50" and accepts either a JSON string or number on input.
type Price int64

var (
	ErrPriceInvalid   = errors.New("domain: invalid price")
	ErrPricePrecision = errors.New("domain: price has more than two fractional digits")
	ErrPriceNegative  = errors.New("domain: price must not be negative")
)

// ParsePrice converts a decimal string such as "3.50" into a Price.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrPriceInvalid
	}

	negative := false
	if s[0] == '-' {
		negative = true
		s = s[1:]
	}

	whole, frac, ok := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, ErrPriceInvalid
	}
	if whole == "" {
		whole = "0"
	}
	if ok && len(frac) > 2 {
		return 0, ErrPricePrecision
	}
	// Right-pad the fraction to cents: "5" -> "50".
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrPriceInvalid
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, ErrPriceInvalid
	}

	// Cent conversion must not overflow int64.
	if units > (math.MaxInt64-99)/100 {
		return 0, ErrPriceInvalid
	}

	total := units*100 + cents
	if negative {
		return 0, ErrPriceNegative
	}
	return Price(total), nil
}

// Cents returns the raw cent count for storage.
func (p Price) Cents() int64 { return int64(p) }

// String formats the price with two fractional digits.
func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", int64(p)/100, int64(p)%100)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
