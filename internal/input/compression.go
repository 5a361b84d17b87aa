package input

import (
	"bufio"
	"bytes"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/deploymenttheory/go-addsum/internal/errors"
	"github.com/deploymenttheory/go-addsum/internal/logger"
)

// Encoding names the container format detected on the input.
type Encoding string

const (
	EncodingNone  Encoding = "none"
	EncodingGZIP  Encoding = "gzip"
	EncodingBZIP2 Encoding = "bzip2"
	EncodingXZ    Encoding = "xz"
	EncodingZSTD  Encoding = "zstd"
)

var (
	magicGZIP  = []byte{0x1f, 0x8b}
	magicBZIP2 = []byte("BZh")
	magicXZ    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	magicZSTD  = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// DetectEncoding sniffs the compression format from the leading bytes.
func DetectEncoding(header []byte) Encoding {
	switch {
	case bytes.HasPrefix(header, magicXZ):
		return EncodingXZ
	case bytes.HasPrefix(header, magicZSTD):
		return EncodingZSTD
	case bytes.HasPrefix(header, magicGZIP):
		return EncodingGZIP
	case bytes.HasPrefix(header, magicBZIP2):
		return EncodingBZIP2
	default:
		return EncodingNone
	}
}

// recordingReader keeps a copy of what it reads until stop is called, so a
// stream that only looks compressed can be replayed from the start.
type recordingReader struct {
	r       io.Reader
	buf     bytes.Buffer
	stopped bool
}

func (rr *recordingReader) Read(p []byte) (int, error) {
	n, err := rr.r.Read(p)
	if !rr.stopped {
		rr.buf.Write(p[:n])
	}
	return n, err
}

func (rr *recordingReader) stop() {
	rr.stopped = true
	rr.buf = bytes.Buffer{}
}

// decoder wraps r with the decompressor matching its magic bytes. The
// returned close func releases decoder resources and never closes r.
//
// Magic bytes alone do not prove the input is compressed: a text file may
// start with "BZh". When the decompressor rejects the stream before it
// yields a single byte, the raw bytes are returned instead. Corruption
// after decoding has started is still an error.
func decoder(r io.Reader) (io.Reader, Encoding, func(), error) {
	br := bufio.NewReader(r)

	// A short peek just means a short file, which cannot be compressed.
	header, _ := br.Peek(len(magicXZ))
	enc := DetectEncoding(header)
	if enc == EncodingNone {
		return br, EncodingNone, func() {}, nil
	}

	rec := &recordingReader{r: br}

	dec, closeFn, err := newDecompressor(enc, rec)
	if err == nil {
		var first [1]byte
		n, readErr := io.ReadFull(dec, first[:])
		switch readErr {
		case nil:
			rec.stop()
			return io.MultiReader(bytes.NewReader(first[:n]), dec), enc, closeFn, nil
		case io.EOF:
			// A valid stream holding no data.
			rec.stop()
			return bytes.NewReader(nil), enc, closeFn, nil
		}
		closeFn()
		err = readErr
	}

	logger.LogWarn("Input has a compression signature but does not decode, reading raw bytes", map[string]interface{}{
		"encoding": string(enc),
		"error":    err.Error(),
	})

	return io.MultiReader(bytes.NewReader(rec.buf.Bytes()), br), EncodingNone, func() {}, nil
}

func newDecompressor(enc Encoding, r io.Reader) (io.Reader, func(), error) {
	switch enc {
	case EncodingGZIP:
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrDecompression, "gzip: %v", err)
		}
		return gzipReader, func() { gzipReader.Close() }, nil

	case EncodingBZIP2:
		bzip2Reader, err := bzip2.NewReader(r, nil)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrDecompression, "bzip2: %v", err)
		}
		return bzip2Reader, func() { bzip2Reader.Close() }, nil

	case EncodingXZ:
		xzReader, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrDecompression, "xz: %v", err)
		}
		return xzReader, func() {}, nil

	case EncodingZSTD:
		// Synchronous decoding keeps all reads of r on this goroutine.
		zstdReader, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrDecompression, "zstd: %v", err)
		}
		return zstdReader, zstdReader.Close, nil

	default:
		return nil, nil, errors.Wrap(errors.ErrDecompression, "unknown encoding %q", enc)
	}
}
