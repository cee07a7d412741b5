// Package export writes a built message set to a stream or to a directory of
// numbered message files with a JSON manifest.
package export

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"foldertoai/pkg/segment"

	"github.com/rivo/uniseg"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"
)

// ManifestName is the file name of the manifest written by WriteDir.
const ManifestName = "manifest.json"

// Separator is written between messages by WriteStream.
var Separator = "\n" + strings.Repeat("=", 80) + "\n"

// MessageMeta describes one written message.
type MessageMeta struct {
	Index     int    `json:"index"`
	FileName  string `json:"file_name"`
	Graphemes int    `json:"graphemes"`
	Bytes     int    `json:"bytes"`
	XXH3      string `json:"xxh3"`
}

// Manifest describes a directory written by WriteDir.
type Manifest struct {
	Folder        string        `json:"folder"`
	TotalMessages int           `json:"total_messages"`
	MaxChars      int           `json:"max_chars"`
	Messages      []MessageMeta `json:"messages"`
	CreatedAt     string        `json:"created_at"`
}

// FileName returns the name of the file holding message i (zero-based).
func FileName(i int) string {
	return fmt.Sprintf("message_%03d.txt", i+1)
}

// Describe computes the metadata of message i.
func Describe(i int, message string) MessageMeta {
	return MessageMeta{
		Index:     i + 1,
		FileName:  FileName(i),
		Graphemes: uniseg.GraphemeClusterCount(message),
		Bytes:     len(message),
		XXH3:      fmt.Sprintf("%016x", xxh3.HashString(message)),
	}
}

// WriteStream writes every message to w, separated by Separator.
func WriteStream(w io.Writer, set segment.MessageSet) error {
	writer := bufio.NewWriter(w)
	for i := 0; i < set.Len(); i++ {
		if i > 0 {
			if _, err := writer.WriteString(Separator); err != nil {
				return fmt.Errorf("failed to write separator: %w", err)
			}
		}
		if _, err := writer.WriteString(set.At(i)); err != nil {
			return fmt.Errorf("failed to write message %d: %w", i+1, err)
		}
	}
	if _, err := writer.WriteString("\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// WriteDir writes each message to its own file in dir and a manifest next to them.
func WriteDir(dir, folder string, maxChars int, set segment.MessageSet, logger *zap.Logger) (*Manifest, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := ensureDirectory(dir, logger); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	manifest := &Manifest{
		Folder:        folder,
		TotalMessages: set.Len(),
		MaxChars:      maxChars,
		Messages:      make([]MessageMeta, 0, set.Len()),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	for i := 0; i < set.Len(); i++ {
		message := set.At(i)
		meta := Describe(i, message)
		if err := writeToFile(filepath.Join(dir, meta.FileName), []byte(message), logger); err != nil {
			return nil, fmt.Errorf("failed to write message %d: %w", meta.Index, err)
		}
		manifest.Messages = append(manifest.Messages, meta)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := writeToFile(filepath.Join(dir, ManifestName), data, logger); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	logger.Info("Wrote messages", zap.String("directory", dir), zap.Int("messages", set.Len()))
	return manifest, nil
}

// ReadManifest loads a manifest written by WriteDir.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// ErrCorrupt is returned by Verify when a message file does not match its manifest entry.
var ErrCorrupt = errors.New("message file does not match manifest")

// Verify re-reads every message file listed in dir's manifest and checks its
// size and xxh3 hash.
func Verify(dir string) (*Manifest, error) {
	m, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}
	if len(m.Messages) != m.TotalMessages {
		return nil, fmt.Errorf("%w: manifest lists %d of %d messages", ErrCorrupt, len(m.Messages), m.TotalMessages)
	}
	for _, want := range m.Messages {
		data, err := os.ReadFile(filepath.Join(dir, want.FileName))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", want.FileName, err)
		}
		got := Describe(want.Index-1, string(data))
		if got.Bytes != want.Bytes || got.XXH3 != want.XXH3 {
			return nil, fmt.Errorf("%w: %s", ErrCorrupt, want.FileName)
		}
	}
	return m, nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}

// writeToFile writes data to a file and logs the operation.
func writeToFile(path string, data []byte, logger *zap.Logger) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Error("Failed to write file", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Successfully wrote file", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
