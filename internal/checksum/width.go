package checksum

import (
	"strconv"
	"strings"

	"github.com/deploymenttheory/go-addsum/internal/errors"
)

// Width selects the word size and mask of the additive checksum.
type Width int

const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
)

// Widths lists the supported widths in ascending order.
var Widths = []Width{Width8, Width16, Width32}

// ParseWidth parses a command line width argument. Only "8", "16" and "32"
// are accepted, so signed or zero-prefixed forms such as "+16" are rejected.
func ParseWidth(s string) (Width, error) {
	switch strings.TrimSpace(s) {
	case "8":
		return Width8, nil
	case "16":
		return Width16, nil
	case "32":
		return Width32, nil
	default:
		return 0, errors.Wrap(errors.ErrInvalidWidth, "got %q", s)
	}
}

// Valid reports whether w is one of the supported widths.
func (w Width) Valid() bool {
	switch w {
	case Width8, Width16, Width32:
		return true
	default:
		return false
	}
}

// WordSize returns the number of bytes summed as one word.
func (w Width) WordSize() int {
	switch w {
	case Width16:
		return 2
	case Width32:
		return 4
	default:
		return 1
	}
}

// Mask returns the bit mask applied to the running sum.
func (w Width) Mask() uint32 {
	switch w {
	case Width8:
		return 0xff
	case Width16:
		return 0xffff
	default:
		return 0xffffffff
	}
}

// HexDigits is the number of hex digits needed to print a full checksum of this width.
func (w Width) HexDigits() int {
	return int(w) / 4
}

func (w Width) String() string {
	return strconv.Itoa(int(w))
}
