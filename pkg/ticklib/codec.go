package ticklib

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/yimingwow/ticklib/pkg"
	"lukechampine.com/uint128"
)

// Ratios encode as u128 mantissa (lo, hi) followed by a u16 exponent, ticks
// as i32, all little-endian.

func (r Ratio) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if !r.IsNormalized() || !r.InRange() {
		return fmt.Errorf("cannot encode ratio %s: %w", r, pkg.ErrTickOutOfRange)
	}
	if err = encoder.WriteUint64(r.Mantissa.Lo, binary.LittleEndian); err != nil {
		return err
	}
	if err = encoder.WriteUint64(r.Mantissa.Hi, binary.LittleEndian); err != nil {
		return err
	}
	return encoder.WriteUint16(uint16(r.Exp), binary.LittleEndian)
}

func (r *Ratio) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	lo, err := decoder.ReadUint64(binary.LittleEndian)
	if err != nil {
		return fmt.Errorf("failed to decode mantissa: %w", err)
	}
	hi, err := decoder.ReadUint64(binary.LittleEndian)
	if err != nil {
		return fmt.Errorf("failed to decode mantissa: %w", err)
	}
	exp, err := decoder.ReadUint16(binary.LittleEndian)
	if err != nil {
		return fmt.Errorf("failed to decode exponent: %w", err)
	}
	v := Ratio{Mantissa: uint128.New(lo, hi), Exp: uint64(exp)}
	if !v.IsNormalized() || !v.InRange() {
		return fmt.Errorf("decoded ratio %s: %w", v, pkg.ErrTickOutOfRange)
	}
	*r = v
	return nil
}

func (t Tick) MarshalWithEncoder(encoder *bin.Encoder) error {
	if !t.InRange() {
		return fmt.Errorf("cannot encode tick %d: %w", t, pkg.ErrTickOutOfRange)
	}
	return encoder.WriteInt32(int32(t), binary.LittleEndian)
}

func (t *Tick) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	v, err := decoder.ReadInt32(binary.LittleEndian)
	if err != nil {
		return fmt.Errorf("failed to decode tick: %w", err)
	}
	if !Tick(v).InRange() {
		return fmt.Errorf("decoded tick %d: %w", v, pkg.ErrTickOutOfRange)
	}
	*t = Tick(v)
	return nil
}

// EncodeRatio returns the 18-byte form of r.
func EncodeRatio(r Ratio) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := r.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("unable to encode ratio: %w", err)
	}
	return buf.Bytes(), nil
}

func DecodeRatio(data []byte) (Ratio, error) {
	var r Ratio
	if err := r.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return Ratio{}, err
	}
	return r, nil
}

func EncodeTick(t Tick) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := t.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("unable to encode tick: %w", err)
	}
	return buf.Bytes(), nil
}

func DecodeTick(data []byte) (Tick, error) {
	var t Tick
	if err := t.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return 0, err
	}
	return t, nil
}
