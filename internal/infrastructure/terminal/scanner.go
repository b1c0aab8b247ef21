package terminal

import (
	"bufio"
	"io"

	"github.com/doeshing/goterm/internal/ports"
)

// ScannerReader reads lines without editing features. It is used when stdin
// is not a terminal, e.g. when a script is piped into goterm.
type ScannerReader struct {
	scanner *bufio.Scanner
}

// NewScannerReader builds a plain line reader over r.
func NewScannerReader(r io.Reader) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(r)}
}

// ReadLine implements ports.LineReader. The prompt is ignored.
func (s *ScannerReader) ReadLine(string) (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// Remember is a no-op; there is no recall buffer without a terminal.
func (s *ScannerReader) Remember(string) {}

// Close is a no-op.
func (s *ScannerReader) Close() error { return nil }

var _ ports.LineReader = (*ScannerReader)(nil)
