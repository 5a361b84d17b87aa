// Package checksum computes the additive 8, 16 and 32 bit checksums.
//
// Words are assembled big-endian and summed into an accumulator wider than
// the result, which is masked to the width at the end. Input shorter than a
// whole word is completed with PaddingByte, so callers may pass data padded
// or not and get the same value.
package checksum

import (
	"github.com/deploymenttheory/go-addsum/internal/errors"
)

// Checksum8 sums every byte of data, modulo 256.
func Checksum8(data []byte) uint8 {
	var sum uint32
	for _, b := range data {
		sum += uint32(b)
	}
	return uint8(sum & 0xff)
}

// Checksum16 sums data as big-endian 16-bit words, modulo 2^16.
func Checksum16(data []byte) uint16 {
	var sum uint64
	for i := 0; i < len(data); i += 2 {
		word := uint64(data[i])<<8 | uint64(byteAt(data, i+1))
		sum += word
	}
	return uint16(sum & 0xffff)
}

// Checksum32 sums data as big-endian 32-bit words, modulo 2^32.
func Checksum32(data []byte) uint32 {
	var sum uint64
	for i := 0; i < len(data); i += 4 {
		word := uint64(data[i])<<24 |
			uint64(byteAt(data, i+1))<<16 |
			uint64(byteAt(data, i+2))<<8 |
			uint64(byteAt(data, i+3))
		sum += word
	}
	return uint32(sum & 0xffffffff)
}

// Compute returns the checksum of data for width w.
func Compute(w Width, data []byte) (uint32, error) {
	switch w {
	case Width8:
		return uint32(Checksum8(data)), nil
	case Width16:
		return uint32(Checksum16(data)), nil
	case Width32:
		return Checksum32(data), nil
	default:
		return 0, errors.Wrap(errors.ErrInvalidWidth, "got %d", int(w))
	}
}

// Verify compares the checksum of data against expected.
func Verify(w Width, data []byte, expected uint32) (bool, error) {
	sum, err := Compute(w, data)
	if err != nil {
		return false, err
	}
	return sum == expected, nil
}
