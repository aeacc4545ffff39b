package volume

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds      = errors.New("volume: position out of bounds")
	ErrInvalidSize      = errors.New("volume: size must be positive on every axis")
	ErrUnknownState     = errors.New("volume: block state unknown to the global palette")
	ErrSealed           = errors.New("volume: buffer was sealed into an immutable buffer")
	ErrRawLength        = errors.New("volume: raw id array length does not match volume")
	ErrRepresentation   = errors.New("volume: invalid packed representation")
	ErrRegistryMismatch = errors.New("volume: global palette belongs to another registry")
)

// BoundsError reports a position or range outside a buffer. Min and Max are
// the inclusive corners the position was checked against. No buffer is ever
// modified by a call that fails with a BoundsError.
type BoundsError struct {
	Pos      Vec3i
	Min, Max Vec3i
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("volume: position %v outside %v..%v", e.Pos, e.Min, e.Max)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
