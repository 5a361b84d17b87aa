// Package input reads the file to be checksummed into a bounded buffer.
package input

import (
	"fmt"
	"io"
	"os"

	"github.com/deploymenttheory/go-addsum/internal/errors"
	"github.com/deploymenttheory/go-addsum/internal/logger"
)

// DefaultMaxBytes keeps 1023 bytes of content, a 1024 byte buffer less
// one byte for a string terminator.
const DefaultMaxBytes = 1023

// Options controls how input is read.
type Options struct {
	// MaxBytes caps the number of bytes kept. Zero means no cap.
	MaxBytes int

	// Decompress enables magic-byte detection of gzip, bzip2, xz and zstd
	// input. The cap applies to the decoded bytes.
	Decompress bool
}

// DefaultOptions returns the default cap without decompression.
func DefaultOptions() Options {
	return Options{MaxBytes: DefaultMaxBytes}
}

// Input is the text that was read and how it was obtained.
type Input struct {
	Data      []byte
	Source    string
	Encoding  Encoding
	Truncated bool
}

// ReadFile opens path and reads it according to opts.
func ReadFile(path string, opts Options) (*Input, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewCLIError(errors.KindFileOpen,
			fmt.Errorf("%w %q: %v", errors.ErrFileOpen, path, err))
	}
	defer file.Close()

	in, err := Read(file, opts)
	if err != nil {
		return nil, err
	}
	in.Source = path

	logger.LogDebug("Input read", map[string]interface{}{
		"source":    path,
		"bytes":     len(in.Data),
		"encoding":  string(in.Encoding),
		"truncated": in.Truncated,
	})

	return in, nil
}

// Read consumes r up to the configured cap. Bytes past the cap are
// dropped and reported through Input.Truncated.
func Read(r io.Reader, opts Options) (*Input, error) {
	if opts.MaxBytes < 0 {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "max bytes must not be negative, got %d", opts.MaxBytes)
	}

	in := &Input{Encoding: EncodingNone}

	if opts.Decompress {
		dec, enc, closeFn, err := decoder(r)
		if err != nil {
			return nil, err
		}
		defer closeFn()
		r = dec
		in.Encoding = enc
	}

	if opts.MaxBytes == 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, readError(in.Encoding, err)
		}
		in.Data = data
		return in, nil
	}

	// One extra byte tells a file of exactly MaxBytes apart from a longer one.
	data, err := io.ReadAll(io.LimitReader(r, int64(opts.MaxBytes)+1))
	if err != nil {
		return nil, readError(in.Encoding, err)
	}

	if len(data) > opts.MaxBytes {
		data = data[:opts.MaxBytes]
		in.Truncated = true
	}
	in.Data = data

	return in, nil
}

func readError(enc Encoding, err error) error {
	if enc != EncodingNone {
		return errors.Wrap(errors.ErrDecompression, "%s: %v", enc, err)
	}
	return errors.Wrap(errors.ErrFileRead, "%v", err)
}
