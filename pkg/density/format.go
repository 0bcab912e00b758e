package density

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

var mantissaStrings = [...]string{"1", "1.25", "1.5", "1.75"}

// ToString renders d as "<mantissa> * 2^<exp>", e.g. "1.5 * 2^-20".
func ToString(d Density) (string, error) {
	if err := d.validate(); err != nil {
		return "", err
	}
	if d.IsSubnormal() {
		return fmt.Sprintf("%d * 2^-%d", d.Mantissa(), FractionalBits), nil
	}
	return fmt.Sprintf("%s * 2^%d", mantissaStrings[d.Mantissa()], int64(d.Exponent())-FractionalBits), nil
}

func (d Density) String() string {
	s, err := ToString(d)
	if err != nil {
		return fmt.Sprintf("invalid density %#x", uint16(d))
	}
	return s
}

func (d Density) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := d.validate(); err != nil {
		return err
	}
	return encoder.WriteUint16(uint16(d), binary.LittleEndian)
}

func (d *Density) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	raw, err := decoder.ReadUint16(binary.LittleEndian)
	if err != nil {
		return fmt.Errorf("failed to decode density: %w", err)
	}
	v, err := FromPacked(uint64(raw))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Encode returns the 2-byte little-endian form of d.
func (d Density) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := d.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("unable to encode density: %w", err)
	}
	return buf.Bytes(), nil
}

func Decode(data []byte) (Density, error) {
	var d Density
	if err := d.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return 0, err
	}
	return d, nil
}
