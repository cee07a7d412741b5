// Package ignore holds the set of directory names whose presence anywhere in a
// file's ancestry marks that file as ignored.
package ignore

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ErrInvalidName is returned when an ignore entry is not a plain directory name.
var ErrInvalidName = errors.New("ignore entry must be a plain directory name")

// DefaultDirs are the directory names ignored out of the box.
var DefaultDirs = []string{
	".cache",
	".cargo",
	".git",
	".gradle",
	".idea",
	".mvn",
	".npm",
	".pytest_cache",
	".rustup",
	".svn",
	".venv",
	".vs",
	".vscode",
	"bin",
	"build",
	"dist",
	"node_modules",
	"obj",
	"target",
	"tmp",
	"venv",
	"__pycache__",
}

// DirSet is an immutable set of directory names. The zero value ignores nothing.
type DirSet struct {
	names map[string]struct{}
}

// NewDirSet builds a DirSet from the given names. Invalid names are rejected.
func NewDirSet(names ...string) (DirSet, error) {
	set := DirSet{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if err := ValidateName(name); err != nil {
			return DirSet{}, err
		}
		set.names[name] = struct{}{}
	}
	return set, nil
}

// Defaults returns a DirSet holding DefaultDirs.
func Defaults() DirSet {
	set, _ := NewDirSet(DefaultDirs...)
	return set
}

// ValidateName reports whether name can be used as an ignore entry.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

// With returns a new DirSet holding the receiver's names plus the given ones.
func (s DirSet) With(names ...string) (DirSet, error) {
	return NewDirSet(append(s.Names(), names...)...)
}

// Contains reports whether name is in the set.
func (s DirSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of names in the set.
func (s DirSet) Len() int {
	return len(s.names)
}

// Names returns the names in the set, sorted.
func (s DirSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for name := range s.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MatchesPath reports whether any directory component of relPath is in the set.
// relPath is a forward-slash path relative to the scan root; its final element
// is the file itself and is not checked.
func (s DirSet) MatchesPath(relPath string) bool {
	if len(s.names) == 0 {
		return false
	}
	dir := path.Dir(relPath)
	for dir != "." && dir != "/" && dir != "" {
		if s.Contains(path.Base(dir)) {
			return true
		}
		dir = path.Dir(dir)
	}
	return false
}

// LoadFile reads directory names from fpath, one per line. Blank lines and lines
// starting with '#' are skipped.
func LoadFile(fpath string, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	content, err := os.ReadFile(fpath)
	if err != nil {
		logger.Error("Failed to read ignore file", zap.String("filePath", fpath), zap.Error(err))
		return nil, fmt.Errorf("failed to read ignore file: %w", err)
	}

	var names []string
	for i, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if err := ValidateName(trimmed); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", fpath, i+1, err)
		}
		names = append(names, trimmed)
	}

	logger.Debug("Loaded ignore file", zap.String("filePath", fpath), zap.Int("nameCount", len(names)))
	return names, nil
}
