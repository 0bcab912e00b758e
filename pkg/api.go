package pkg

import (
	"errors"
	"fmt"
)

// Error kinds shared by word, density, ticklib and quote. Call sites wrap
// them with context; match with errors.Is.
var (
	ErrOverflow       = errors.New("arithmetic overflow")
	ErrUnderflow      = errors.New("arithmetic underflow")
	ErrDivisionByZero = errors.New("division by zero")

	ErrTickOutOfRange = errors.New("tick out of range")
	// ErrRatioTooLow and ErrRatioTooHigh both match ErrTickOutOfRange.
	ErrRatioTooLow  = fmt.Errorf("%w: ratio too low", ErrTickOutOfRange)
	ErrRatioTooHigh = fmt.Errorf("%w: ratio too high", ErrTickOutOfRange)

	ErrNotNormalized   = errors.New("ratio is not normalized")
	ErrZeroTickSpacing = errors.New("tick spacing cannot be 0")

	ErrInvalidDensity  = errors.New("invalid density")
	ErrZeroMantissa    = errors.New("mantissa cannot be 0")
	ErrVolumeTooLarge  = errors.New("volume too large")
	ErrInvalidDecimals = errors.New("decimals out of range")
	ErrInvalidPrice    = errors.New("invalid price")
)

// Rounding selects the direction of an amount conversion.
type Rounding uint8

const (
	RoundDown Rounding = iota
	RoundUp
)

func (r Rounding) String() string {
	switch r {
	case RoundDown:
		return "down"
	case RoundUp:
		return "up"
	default:
		return fmt.Sprintf("rounding(%d)", uint8(r))
	}
}
