// Package report renders a checksum result for the terminal or for machines.
package report

import (
	"fmt"

	"github.com/deploymenttheory/go-addsum/internal/checksum"
)

// Report is the outcome of checksumming one input.
type Report struct {
	Source          string `json:"source" yaml:"source" plist:"source"`
	Width           int    `json:"width" yaml:"width" plist:"width"`
	Checksum        uint32 `json:"checksum" yaml:"checksum" plist:"checksum"`
	ChecksumHex     string `json:"checksum_hex" yaml:"checksum_hex" plist:"checksum_hex"`
	Chars           int    `json:"chars" yaml:"chars" plist:"chars"`
	Padding         int    `json:"padding" yaml:"padding" plist:"padding"`
	Truncated       bool   `json:"truncated" yaml:"truncated" plist:"truncated"`
	Encoding        string `json:"encoding,omitempty" yaml:"encoding,omitempty" plist:"encoding,omitempty"`
	DigestAlgorithm string `json:"digest_algorithm,omitempty" yaml:"digest_algorithm,omitempty" plist:"digest_algorithm,omitempty"`
	Digest          string `json:"digest,omitempty" yaml:"digest,omitempty" plist:"digest,omitempty"`

	// Text is the padded buffer, echoed only by the text format.
	Text []byte `json:"-" yaml:"-" plist:"-"`
}

// New builds a report for the padded buffer and its checksum.
func New(source string, width checksum.Width, sum uint32, padded []byte, padding int) *Report {
	return &Report{
		Source:      source,
		Width:       int(width),
		Checksum:    sum,
		ChecksumHex: fmt.Sprintf("%0*x", width.HexDigits(), sum),
		Chars:       len(padded),
		Padding:     padding,
		Text:        padded,
	}
}

// Summary is the fixed-layout result line that existing expected outputs compare against.
func (r *Report) Summary() string {
	return fmt.Sprintf("%2d bit checksum is %8x for all %4d chars\n", r.Width, r.Checksum, r.Chars)
}
