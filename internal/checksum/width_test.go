package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-addsum/internal/errors"
)

func TestParseWidth(t *testing.T) {
	for _, s := range []string{"8", "16", "32", " 16 "} {
		w, err := ParseWidth(s)
		require.NoError(t, err, s)
		assert.True(t, w.Valid())
	}

	for _, s := range []string{"", "0", "4", "24", "64", "sixteen", "16bit", "-8", "+16", "016", "0x10", "8.0"} {
		_, err := ParseWidth(s)
		require.Error(t, err, s)
		assert.True(t, errors.Is(err, errors.ErrInvalidWidth), s)
	}
}

func TestWidthProperties(t *testing.T) {
	assert.Equal(t, 1, Width8.WordSize())
	assert.Equal(t, 2, Width16.WordSize())
	assert.Equal(t, 4, Width32.WordSize())

	assert.Equal(t, uint32(0xff), Width8.Mask())
	assert.Equal(t, uint32(0xffff), Width16.Mask())
	assert.Equal(t, uint32(0xffffffff), Width32.Mask())

	assert.Equal(t, 2, Width8.HexDigits())
	assert.Equal(t, 8, Width32.HexDigits())
	assert.Equal(t, "16", Width16.String())
}
