package runner

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-addsum/internal/checksum"
	"github.com/deploymenttheory/go-addsum/internal/digest"
	"github.com/deploymenttheory/go-addsum/internal/errors"
	"github.com/deploymenttheory/go-addsum/internal/input"
	"github.com/deploymenttheory/go-addsum/internal/report"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func textOptions(path string, w checksum.Width) Options {
	return Options{
		Path:       path,
		Width:      w,
		Input:      input.DefaultOptions(),
		Format:     report.FormatText,
		LineLength: report.DefaultLineLength,
	}
}

func TestRunText(t *testing.T) {
	tests := []struct {
		name    string
		content string
		width   checksum.Width
		want    string
	}{
		{
			name:    "8 bit no padding",
			content: "A",
			width:   checksum.Width8,
			want:    "\nA\n 8 bit checksum is       41 for all    1 chars\n",
		},
		{
			name:    "16 bit odd input is padded",
			content: "A",
			width:   checksum.Width16,
			want:    "\nAX\n16 bit checksum is     4158 for all    2 chars\n",
		},
		{
			name:    "32 bit pads to four",
			content: "AB",
			width:   checksum.Width32,
			want:    "\nABXX\n32 bit checksum is 41425858 for all    4 chars\n",
		},
		{
			name:    "empty file",
			content: "",
			width:   checksum.Width32,
			want:    "\n32 bit checksum is        0 for all    0 chars\n",
		},
		{
			name:    "trailing newline counts",
			content: "AAAA\n",
			width:   checksum.Width8,
			want:    "\nAAAA\n\n 8 bit checksum is        e for all    5 chars\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := Run(textOptions(writeInput(t, tt.content), tt.width), &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRunCapThenPad(t *testing.T) {
	path := writeInput(t, strings.Repeat("a", 2000))

	var out bytes.Buffer
	r, err := Run(textOptions(path, checksum.Width32), &out)
	require.NoError(t, err)

	assert.True(t, r.Truncated)
	assert.Equal(t, 1024, r.Chars)
	assert.Equal(t, 1, r.Padding)
	assert.True(t, strings.HasSuffix(out.String(), "for all 1024 chars\n"))
}

func TestRunJSONWithDigest(t *testing.T) {
	opts := textOptions(writeInput(t, "abc"), checksum.Width16)
	opts.Format = report.FormatJSON
	opts.Digest = digest.SHA256

	var out bytes.Buffer
	_, err := Run(opts, &out)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "sha256", got["digest_algorithm"])
	// The digest covers the bytes read, not the padding.
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", got["digest"])
	assert.Equal(t, "c4ba", got["checksum_hex"])
}

func TestRunExpect(t *testing.T) {
	path := writeInput(t, "ABCD")

	opts := textOptions(path, checksum.Width32)
	opts.Expect = "0x41424344"
	_, err := Run(opts, &bytes.Buffer{})
	require.NoError(t, err)

	opts.Expect = "41424345"
	var out bytes.Buffer
	r, err := Run(opts, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrChecksumMismatch))
	assert.NotNil(t, r)
	assert.Contains(t, out.String(), "41424344", "report is still written on mismatch")
}

func TestRunExpectCoversPadding(t *testing.T) {
	opts := textOptions(writeInput(t, "A"), checksum.Width16)
	opts.Expect = "4158"

	r, err := Run(opts, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Padding)
}

func TestRunErrors(t *testing.T) {
	path := writeInput(t, "AB")

	_, err := Run(textOptions(path, checksum.Width(12)), &bytes.Buffer{})
	assert.True(t, errors.Is(err, errors.ErrInvalidWidth))
	assert.Equal(t, errors.KindInvalidWidth, errors.Kind(err))

	_, err = Run(textOptions(filepath.Join(t.TempDir(), "nope.txt"), checksum.Width8), &bytes.Buffer{})
	assert.True(t, errors.Is(err, errors.ErrFileOpen))

	opts := textOptions(path, checksum.Width8)
	opts.Expect = "zz"
	_, err = Run(opts, &bytes.Buffer{})
	assert.True(t, errors.Is(err, errors.ErrInvalidExpected))
}

func TestParseExpected(t *testing.T) {
	v, err := ParseExpected("FF", checksum.Width8)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xff), v)

	_, err = ParseExpected("100", checksum.Width8)
	assert.True(t, errors.Is(err, errors.ErrInvalidExpected))

	v, err = ParseExpected(" 0xFFFFFFFF ", checksum.Width32)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xffffffff), v)

	_, err = ParseExpected("", checksum.Width16)
	assert.Error(t, err)
}
