package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		width Width
		input string
		want  string
	}{
		{"8 never pads", Width8, "ABC", "ABC"},
		{"16 even untouched", Width16, "ABCD", "ABCD"},
		{"16 odd gains one", Width16, "ABC", "ABCX"},
		{"16 empty", Width16, "", ""},
		{"32 aligned untouched", Width32, "ABCDEFGH", "ABCDEFGH"},
		{"32 one short", Width32, "ABCDEFG", "ABCDEFGX"},
		{"32 three short", Width32, "ABCDE", "ABCDEXXX"},
		{"32 empty", Width32, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pad([]byte(tt.input), tt.width)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, len(tt.want), PadLen(len(tt.input), tt.width))
		})
	}
}

func TestPadDoesNotModifyInput(t *testing.T) {
	data := make([]byte, 5, 16)
	copy(data, "hello")

	padded := Pad(data, Width32)

	assert.Equal(t, "hello", string(data))
	assert.Equal(t, "helloXXX", string(padded))
	assert.Equal(t, byte(0), data[:6][5], "spare capacity must stay untouched")
}
