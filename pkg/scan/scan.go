// Package scan enumerates a directory tree into a flat list of file records.
package scan

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"foldertoai/pkg/ignore"

	"go.uber.org/zap"
)

// ErrRootUnreadable is returned when the scan root itself cannot be listed.
var ErrRootUnreadable = errors.New("scan root cannot be read")

// ReadDirFunc lists the entries of a directory.
type ReadDirFunc func(dir string) ([]os.DirEntry, error)

// Scanner walks directory trees.
type Scanner struct {
	ignored ignore.DirSet
	logger  *zap.Logger
	readDir ReadDirFunc
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithReadDir replaces the function used to list directories.
func WithReadDir(fn ReadDirFunc) Option {
	return func(s *Scanner) {
		if fn != nil {
			s.readDir = fn
		}
	}
}

// NewScanner returns a Scanner flagging files under any of the ignored directory names.
func NewScanner(ignored ignore.DirSet, logger *zap.Logger, opts ...Option) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scanner{ignored: ignored, logger: logger, readDir: os.ReadDir}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Scan walks root with a throwaway Scanner.
func Scan(root string, ignored ignore.DirSet) (*FolderSnapshot, error) {
	return NewScanner(ignored, nil).Scan(root)
}

// Scan recursively lists root. Ignored directories are still walked; their files
// are only flagged. Subdirectories that cannot be read and files whose metadata
// cannot be read are left out without failing the scan.
func (s *Scanner) Scan(root string) (*FolderSnapshot, error) {
	entries, err := s.readDir(root)
	if err != nil {
		s.logger.Error("Failed to read scan root", zap.String("root", root), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %v", ErrRootUnreadable, root, err)
	}

	snapshot := &FolderSnapshot{Root: root}
	s.collect(root, "", entries, snapshot)

	for i := range snapshot.Records {
		snapshot.TotalSize += snapshot.Records[i].SizeBytes
	}

	s.logger.Debug("Completed folder scan",
		zap.String("root", root),
		zap.Int("files", len(snapshot.Records)),
		zap.Int64("totalSize", snapshot.TotalSize))
	return snapshot, nil
}

func (s *Scanner) collect(dir, rel string, entries []os.DirEntry, snapshot *FolderSnapshot) {
	for _, entry := range entries {
		entryRel := path.Join(rel, entry.Name())
		entryPath := filepath.Join(dir, entry.Name())

		switch {
		case entry.Type().IsRegular():
			info, err := entry.Info()
			if err != nil {
				s.logger.Warn("Skipping file with unreadable metadata", zap.String("path", entryRel), zap.Error(err))
				continue
			}
			snapshot.Records = append(snapshot.Records, FileRecord{
				Path:      entryRel,
				SizeBytes: info.Size(),
				Ignored:   s.ignored.MatchesPath(entryRel),
			})

		case entry.IsDir():
			children, err := s.readDir(entryPath)
			if err != nil {
				s.logger.Warn("Skipping unreadable directory", zap.String("directory", entryRel), zap.Error(err))
				continue
			}
			s.collect(entryPath, entryRel, children, snapshot)

		default:
			s.logger.Debug("Skipping non-regular entry", zap.String("path", entryRel))
		}
	}
}

// AbsPath joins a record's root-relative path back onto the snapshot root.
func (s *FolderSnapshot) AbsPath(r *FileRecord) string {
	return filepath.Join(s.Root, filepath.FromSlash(r.Path))
}
