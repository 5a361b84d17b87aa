// Package runner ties input, checksum, digest and report together for one
// invocation of the command.
package runner

import (
	"io"
	"strconv"
	"strings"

	"github.com/deploymenttheory/go-addsum/internal/checksum"
	"github.com/deploymenttheory/go-addsum/internal/digest"
	"github.com/deploymenttheory/go-addsum/internal/errors"
	"github.com/deploymenttheory/go-addsum/internal/input"
	"github.com/deploymenttheory/go-addsum/internal/logger"
	"github.com/deploymenttheory/go-addsum/internal/report"
)

// Options describes a single checksum run.
type Options struct {
	Path       string
	Width      checksum.Width
	Input      input.Options
	Format     report.Format
	LineLength int
	Digest     digest.Algorithm

	// Expect is an optional hex checksum the result must match.
	Expect string
}

// Run checksums the file at opts.Path and writes the report to out. The
// report is written even when the checksum does not match opts.Expect.
func Run(opts Options, out io.Writer) (*report.Report, error) {
	if !opts.Width.Valid() {
		return nil, errors.NewCLIError(errors.KindInvalidWidth,
			errors.Wrap(errors.ErrInvalidWidth, "got %d", int(opts.Width)))
	}

	var (
		expected uint32
		verify   = strings.TrimSpace(opts.Expect) != ""
	)
	if verify {
		var err error
		if expected, err = ParseExpected(opts.Expect, opts.Width); err != nil {
			return nil, err
		}
	}

	in, err := input.ReadFile(opts.Path, opts.Input)
	if err != nil {
		return nil, err
	}

	if in.Truncated {
		logger.LogWarn("Input exceeds the size cap and was truncated", map[string]interface{}{
			"source":    in.Source,
			"max_bytes": opts.Input.MaxBytes,
		})
	}

	padded := checksum.Pad(in.Data, opts.Width)

	sum, err := checksum.Compute(opts.Width, padded)
	if err != nil {
		return nil, err
	}

	r := report.New(in.Source, opts.Width, sum, padded, len(padded)-len(in.Data))
	r.Truncated = in.Truncated
	if in.Encoding != input.EncodingNone {
		r.Encoding = string(in.Encoding)
	}

	if opts.Digest != digest.None {
		hasher, err := digest.NewHasher(opts.Digest)
		if err != nil {
			return nil, err
		}
		if r.Digest, err = hasher.Hash(in.Data); err != nil {
			return nil, err
		}
		r.DigestAlgorithm = string(hasher.Algorithm())
	}

	logger.LogDebug("Checksum computed", map[string]interface{}{
		"source":   r.Source,
		"width":    r.Width,
		"checksum": r.ChecksumHex,
		"chars":    r.Chars,
		"padding":  r.Padding,
	})

	if err := report.NewWriter(opts.Format, out, opts.LineLength).Serialize(r); err != nil {
		return nil, err
	}

	if verify {
		ok, err := checksum.Verify(opts.Width, padded, expected)
		if err != nil {
			return r, err
		}
		if !ok {
			return r, errors.Wrap(errors.ErrChecksumMismatch, "expected %0*x, got %s",
				opts.Width.HexDigits(), expected, r.ChecksumHex)
		}
	}

	return r, nil
}

// ParseExpected parses a hex checksum, with or without a 0x prefix, that
// must fit in width w.
func ParseExpected(s string, w checksum.Width) (uint32, error) {
	hex := strings.ToLower(strings.TrimSpace(s))
	hex = strings.TrimPrefix(hex, "0x")

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, errors.Wrap(errors.ErrInvalidExpected, "%q", s)
	}

	if uint32(v) > w.Mask() {
		return 0, errors.Wrap(errors.ErrInvalidExpected, "%q does not fit in %d bits", s, int(w))
	}

	return uint32(v), nil
}
