package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"howett.net/plist"

	"github.com/deploymenttheory/go-addsum/internal/errors"
)

// DefaultLineLength is the number of echoed characters per line.
const DefaultLineLength = 80

// Format represents the output format type
type Format string

const (
	// FormatText echoes the input and prints the classic summary line
	FormatText Format = "text"
	// FormatJSON outputs the report in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs the report in YAML format
	FormatYAML Format = "yaml"
	// FormatPlist outputs the report as an XML property list
	FormatPlist Format = "plist"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatText, FormatJSON, FormatYAML, FormatPlist:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %s", errors.ErrUnsupportedFormat, s)
	}
}

// Writer handles rendering of reports to various formats.
type Writer struct {
	format     Format
	output     io.Writer
	lineLength int
}

// NewWriter creates a new Writer. If output is nil, os.Stdout is used and a
// non-positive lineLength falls back to DefaultLineLength.
func NewWriter(format Format, output io.Writer, lineLength int) *Writer {
	if output == nil {
		output = os.Stdout
	}
	if lineLength <= 0 {
		lineLength = DefaultLineLength
	}
	return &Writer{
		format:     format,
		output:     output,
		lineLength: lineLength,
	}
}

// Serialize outputs the report in the configured format.
func (w *Writer) Serialize(r *Report) error {
	var err error
	switch w.format {
	case FormatText, "":
		err = w.serializeText(r)
	case FormatJSON:
		err = w.serializeJSON(r)
	case FormatYAML:
		err = w.serializeYAML(r)
	case FormatPlist:
		err = w.serializePlist(r)
	default:
		return fmt.Errorf("%w: %s", errors.ErrUnsupportedFormat, w.format)
	}

	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrOutputWrite, err)
	}
	return nil
}

// serializeText writes a newline before every lineLength-th character,
// so non-empty text starts on a fresh line, then the summary.
func (w *Writer) serializeText(r *Report) error {
	bw := bufio.NewWriter(w.output)

	for i, c := range r.Text {
		if i%w.lineLength == 0 {
			bw.WriteByte('\n')
		}
		bw.WriteByte(c)
	}
	bw.WriteByte('\n')
	bw.WriteString(r.Summary())

	if r.Digest != "" {
		fmt.Fprintf(bw, "%s digest is %s\n", r.DigestAlgorithm, r.Digest)
	}

	return bw.Flush()
}

func (w *Writer) serializeJSON(r *Report) error {
	encoder := json.NewEncoder(w.output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

func (w *Writer) serializeYAML(r *Report) error {
	encoder := yaml.NewEncoder(w.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(r); err != nil {
		return err
	}
	return encoder.Close()
}

func (w *Writer) serializePlist(r *Report) error {
	encoder := plist.NewEncoderForFormat(w.output, plist.XMLFormat)
	encoder.Indent("\t")
	if err := encoder.Encode(r); err != nil {
		return err
	}
	_, err := io.WriteString(w.output, "\n")
	return err
}
