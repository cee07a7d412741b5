// Package classify decides whether a file holds binary or text content.
//
// The decision is layered: a known extension settles it without any I/O, then a
// magic-number check on the first bytes, then a byte-distribution heuristic over
// the first 10 KiB. Failing to open or read the file errs on the side of "text";
// failing to rewind after the magic check errs on the side of "binary".
package classify

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	// SignatureSize is how many leading bytes are compared against known signatures.
	SignatureSize = 8
	// SampleSize is how many leading bytes feed the content heuristic.
	SampleSize = 10 * 1024
	// NonTextPercent is the share of non-text bytes a sample may hold and still be text.
	NonTextPercent = 20
)

// Reason names the rule that produced a verdict.
type Reason int

const (
	ExtensionDenied Reason = iota
	ExtensionAllowed
	OpenFailed
	Signature
	SeekFailed
	ReadFailed
	ContentText
	ContentBinary
)

var reasonNames = map[Reason]string{
	ExtensionDenied:  "binary extension",
	ExtensionAllowed: "text extension",
	OpenFailed:       "open failed",
	Signature:        "binary signature",
	SeekFailed:       "seek failed",
	ReadFailed:       "read failed",
	ContentText:      "text content",
	ContentBinary:    "binary content",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return "unknown"
}

// Verdict is the outcome of classifying one file.
type Verdict struct {
	Binary bool
	Reason Reason
}

// OpenFunc opens a file for sniffing.
type OpenFunc func(path string) (io.ReadSeekCloser, error)

// Classifier classifies files. The zero value is not usable; use New.
type Classifier struct {
	open   OpenFunc
	logger *zap.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithOpener replaces the function used to open files for sniffing.
func WithOpener(open OpenFunc) Option {
	return func(c *Classifier) { c.open = open }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Classifier reading from the local filesystem.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		open:   openFile,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var defaultClassifier = New()

// IsBinary reports whether the file at path is binary, using the local filesystem.
func IsBinary(path string) bool {
	return defaultClassifier.Classify(path).Binary
}

// IsBinary reports whether the file at path is binary.
func (c *Classifier) IsBinary(path string) bool {
	return c.Classify(path).Binary
}

// Classify runs the full decision procedure for the file at path.
func (c *Classifier) Classify(path string) Verdict {
	v := c.classify(path)
	c.logger.Debug("Classified file",
		zap.String("path", path),
		zap.Bool("binary", v.Binary),
		zap.Stringer("reason", v.Reason))
	return v
}

func (c *Classifier) classify(path string) Verdict {
	if ext := Extension(path); ext != "" {
		if binaryExtensions[ext] {
			return Verdict{Binary: true, Reason: ExtensionDenied}
		}
		if textExtensions[ext] {
			return Verdict{Binary: false, Reason: ExtensionAllowed}
		}
	}

	f, err := c.open(path)
	if err != nil {
		return Verdict{Binary: false, Reason: OpenFailed}
	}
	defer f.Close()

	head := make([]byte, SignatureSize)
	n, err := readUpTo(f, head)
	if err != nil {
		return Verdict{Binary: false, Reason: ReadFailed}
	}
	if HasBinarySignature(head[:n]) {
		return Verdict{Binary: true, Reason: Signature}
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Verdict{Binary: true, Reason: SeekFailed}
	}

	sample := make([]byte, SampleSize)
	n, err = readUpTo(f, sample)
	if err != nil {
		return Verdict{Binary: false, Reason: ReadFailed}
	}
	if LooksBinary(sample[:n]) {
		return Verdict{Binary: true, Reason: ContentBinary}
	}
	return Verdict{Binary: false, Reason: ContentText}
}

// Extension returns the lowercased extension of the final path element,
// without the leading dot. Dotfiles such as ".gitignore" yield "gitignore".
func Extension(path string) string {
	ext := filepath.Ext(filepath.Base(path))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// HasBinarySignature reports whether head starts with a known binary signature.
func HasBinarySignature(head []byte) bool {
	for _, sig := range signatures {
		if bytes.HasPrefix(head, sig.prefix) {
			return true
		}
	}
	return false
}

// LooksBinary applies the content heuristic to a sample taken from the start
// of a file. Plain ASCII without NUL bytes is text; otherwise the sample is
// binary when more than NonTextPercent of it (rounded up) are NUL, control
// bytes below 0x20 or bytes above 0x7E.
func LooksBinary(sample []byte) bool {
	if isPlainASCII(sample) {
		return false
	}

	nonText := 0
	for _, b := range sample {
		if b < 0x20 || b > 0x7E {
			nonText++
		}
	}
	threshold := (len(sample)*NonTextPercent + 99) / 100
	return nonText > threshold
}

func isPlainASCII(sample []byte) bool {
	if !utf8.Valid(sample) {
		return false
	}
	for _, b := range sample {
		if b == 0 || b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// readUpTo fills buf as far as the reader allows; a short read at EOF is not an error.
func readUpTo(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return n, nil
	}
	return n, err
}

func openFile(path string) (io.ReadSeekCloser, error) {
	return os.Open(path)
}
