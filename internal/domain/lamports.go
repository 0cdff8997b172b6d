package domain

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

// maxSafeInteger is the largest integer a JSON number can carry without
// losing precision in standard double-precision clients (2^53 - 1).
const maxSafeInteger = 1<<53 - 1

// maxLamportsDigits matches the numeric(78,0) columns the store uses for
// lamport amounts.
const maxLamportsDigits = 78

// lamportsPerSol is the number of lamports in one SOL, used only for
// human-readable feed messages.
var lamportsPerSol = big.NewRat(1_000_000_000, 1)

// Lamports is an exact-integer currency amount in the smallest unit.
//
// On the wire amounts travel as decimal strings so they survive clients whose
// JSON numbers top out at 2^53. Bare JSON numbers are still accepted for
// small amounts, but anything above the safe-integer threshold must be quoted
// or it is rejected rather than silently truncated.
type Lamports struct {
	value big.Int
}

// NewLamports builds an amount from an int64, for tests and defaults.
func NewLamports(v int64) Lamports {
	var l Lamports
	l.value.SetInt64(v)
	return l
}

// ParseLamports parses a decimal string into a positive lamport amount.
func ParseLamports(s string) (Lamports, error) {
	var l Lamports
	if s == "" {
		return l, errors.New("amount is required")
	}
	if len(s) > maxLamportsDigits {
		return l, fmt.Errorf("amount exceeds %d digits", maxLamportsDigits)
	}
	if _, ok := l.value.SetString(s, 10); !ok {
		return l, fmt.Errorf("invalid integer amount %q", s)
	}
	if l.value.Sign() <= 0 {
		return l, errors.New("amount must be positive")
	}
	return l, nil
}

// UnmarshalJSON accepts either a quoted decimal string or a bare JSON number
// within the safe-integer range.
func (l *Lamports) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return errors.New("amount is required")
	}

	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		parsed, err := ParseLamports(s)
		if err != nil {
			return err
		}
		*l = parsed
		return nil
	}

	// Bare numbers above 2^53 may already have lost precision in the client,
	// so reject them instead of guessing what was meant.
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("amount must be an integer (use a string for large values): %q", string(data))
	}
	if n > maxSafeInteger {
		return fmt.Errorf("numeric amount %d exceeds the safe integer range, send it as a string", n)
	}
	if n <= 0 {
		return errors.New("amount must be positive")
	}
	l.value.SetInt64(n)
	return nil
}

// MarshalJSON renders the amount as a quoted decimal string.
func (l Lamports) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(l.value.String())), nil
}

// String returns the decimal representation, suitable for numeric(78,0) columns.
func (l Lamports) String() string {
	return l.value.String()
}

// IsZero reports whether the amount is unset.
func (l Lamports) IsZero() bool {
	return l.value.Sign() == 0
}

// Cmp compares two amounts like big.Int.Cmp.
func (l Lamports) Cmp(other Lamports) int {
	return l.value.Cmp(&other.value)
}

// FormatSOL renders a lamport amount string in SOL with two decimals for feed
// messages, e.g. "0.50". Invalid input falls back to "0.00".
func FormatSOL(lamports string) string {
	var i big.Int
	if _, ok := i.SetString(lamports, 10); !ok {
		return "0.00"
	}
	r := new(big.Rat).SetInt(&i)
	return r.Quo(r, lamportsPerSol).FloatString(2)
}
