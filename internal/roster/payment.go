package roster

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// PaymentState is the tri-state payment status of a participant
type PaymentState int

const (
	Unpaid PaymentState = iota
	Partial
	Paid
)

func (s PaymentState) String() string {
	switch s {
	case Paid:
		return "paid"
	case Partial:
		return "partial"
	default:
		return "unpaid"
	}
}

// Amount is a peso amount stored in centavos
type Amount int64

// Pesos builds an Amount from whole pesos
func Pesos(p int64) Amount {
	return Amount(p * 100)
}

// WholePesos rounds the amount half-up to whole pesos for display
func (a Amount) WholePesos() int64 {
	if a < 0 {
		return -int64((-a + 50) / 100)
	}
	return int64((a + 50) / 100)
}

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a free-text peso amount such as "250", "₱1,250.50" or "PHP 300".
// Blank input yields zero without error.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.TrimPrefix(s, "₱")
	if len(s) >= 3 && strings.EqualFold(s[:3], "php") {
		s = s[3:]
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, ErrInvalidAmount
	}
	centavos := math.Round(f * 100)
	// float64(MaxInt64) rounds up to 2^63, which no longer fits
	if centavos >= math.MaxInt64 {
		return 0, ErrInvalidAmount
	}
	return Amount(centavos), nil
}

// DerivePaymentState applies the canonical payment rule:
// "paid", "true" or "yes" (any case, trimmed) is paid; otherwise text mentioning
// "partial" or a positive partial amount is partial; everything else is unpaid.
func DerivePaymentState(text string, partial Amount) PaymentState {
	v := strings.ToLower(strings.TrimSpace(text))
	switch v {
	case "paid", "true", "yes":
		return Paid
	}
	if strings.Contains(v, "partial") || partial > 0 {
		return Partial
	}
	return Unpaid
}
