package domain

import (
	"bytes"
	"errors"
	"regexp"
	"strconv"
)

var (
	ErrMissingQuantity    = errors.New("quantity is required")
	ErrQuantityNotInteger = errors.New("quantity must be an integer")
	ErrQuantityOutOfRange = errors.New("quantity does not fit in a 64-bit integer")
)

var integerLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)

// ParseQuantity interprets a raw JSON token as a quantity. Only integral number
// literals are accepted: "5", 5.0, 1e3, true and friends are rejected rather
// than coerced. An empty token or JSON null means the quantity was not sent.
func ParseQuantity(raw []byte) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, ErrMissingQuantity
	}
	if !integerLiteral.Match(raw) {
		return 0, ErrQuantityNotInteger
	}
	quantity, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, ErrQuantityOutOfRange
	}
	return quantity, nil
}
