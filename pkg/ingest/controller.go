// Package ingest drives a folder through scanning, classification, size
// filtering, content loading and message building, one small step at a time.
//
// A Controller never blocks for longer than one file's worth of I/O per
// Advance call, so a caller can interleave it with other per-tick work. It does
// not start goroutines; abandoning a run is simply a matter of no longer
// calling Advance.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"foldertoai/pkg/classify"
	"foldertoai/pkg/ignore"
	"foldertoai/pkg/scan"
	"foldertoai/pkg/segment"

	"go.uber.org/zap"
)

// DefaultMaxFileSize is the size above which files are not loaded (100 KiB).
const DefaultMaxFileSize int64 = 100 * 1024

// ErrNotReady is returned when messages are requested before the pipeline finished.
var ErrNotReady = errors.New("messages are not ready")

// Config is the immutable input of one run.
type Config struct {
	Ignored     ignore.DirSet
	MaxFileSize int64
	Segment     segment.Options
}

// DefaultConfig returns the out-of-the-box configuration.
func DefaultConfig() Config {
	return Config{
		Ignored:     ignore.Defaults(),
		MaxFileSize: DefaultMaxFileSize,
		Segment:     segment.DefaultOptions(),
	}
}

// BinaryDetector decides whether the file at an absolute path is binary.
type BinaryDetector interface {
	IsBinary(path string) bool
}

// ReadFileFunc reads a whole file.
type ReadFileFunc func(path string) ([]byte, error)

// Controller owns one run of the pipeline and its FolderSnapshot.
type Controller struct {
	root     string
	cfg      Config
	detector BinaryDetector
	readFile ReadFileFunc
	logger   *zap.Logger

	state          State
	snapshot       *scan.FolderSnapshot
	messages       segment.MessageSet
	err            error
	classifyCursor int
	loadCursor     int
	progress       Progress
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDetector replaces the binary classifier.
func WithDetector(d BinaryDetector) Option {
	return func(c *Controller) { c.detector = d }
}

// WithReadFile replaces the function used to load file contents.
func WithReadFile(fn ReadFileFunc) Option {
	return func(c *Controller) { c.readFile = fn }
}

// New prepares a run over root. No I/O happens until the first Advance.
func New(root string, cfg Config, opts ...Option) *Controller {
	c := &Controller{
		root:     root,
		cfg:      cfg,
		readFile: os.ReadFile,
		logger:   zap.NewNop(),
		state:    Initializing,
	}
	for _, o := range opts {
		o(c)
	}
	if c.detector == nil {
		c.detector = classify.New(classify.WithLogger(c.logger))
	}
	return c
}

// Root returns the folder being ingested.
func (c *Controller) Root() string { return c.root }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Progress returns a copy of the progress counters.
func (c *Controller) Progress() Progress { return c.progress }

// Err returns the fatal error once the controller has Failed.
func (c *Controller) Err() error { return c.err }

// Snapshot returns the folder snapshot, or nil before the scan completed.
// Callers must not modify it.
func (c *Controller) Snapshot() *scan.FolderSnapshot { return c.snapshot }

// Messages returns the built messages once the controller is Ready.
func (c *Controller) Messages() (segment.MessageSet, error) {
	if c.state != Ready {
		return segment.MessageSet{}, fmt.Errorf("%w: state is %s", ErrNotReady, c.state)
	}
	return c.messages, nil
}

// Advance performs exactly one unit of work and returns the resulting state.
// It is a no-op in Ready and Failed.
func (c *Controller) Advance() State {
	switch c.state {
	case Initializing:
		c.transition(ScanningTree)
	case ScanningTree:
		c.scanTree()
	case ClassifyingBinary:
		c.classifyNext()
	case FilteringSize:
		c.filterSizes()
	case LoadingContent:
		c.loadNext()
	case BuildingMessages:
		c.buildMessages()
	}
	return c.state
}

func (c *Controller) scanTree() {
	snapshot, err := scan.NewScanner(c.cfg.Ignored, c.logger).Scan(c.root)
	if err != nil {
		c.fail(fmt.Errorf("failed to scan folder: %w", err))
		return
	}
	c.snapshot = snapshot
	c.progress.TotalFiles = snapshot.NumFiles()
	c.logger.Info("Scanned folder",
		zap.String("root", c.root),
		zap.Int("files", snapshot.NumFiles()),
		zap.Int("ignored", snapshot.NumIgnored()),
		zap.Int64("totalSize", snapshot.TotalSize))
	c.transition(ClassifyingBinary)
}

// classifyNext classifies the next non-ignored record. Ignored records are
// stepped over without consulting the detector.
func (c *Controller) classifyNext() {
	records := c.snapshot.Records
	for c.classifyCursor < len(records) && records[c.classifyCursor].Ignored {
		c.classifyCursor++
	}
	if c.classifyCursor < len(records) {
		r := &records[c.classifyCursor]
		r.IsBinary = c.detector.IsBinary(c.snapshot.AbsPath(r))
		c.classifyCursor++
	}
	c.progress.Classified = c.classifyCursor

	if c.classifyCursor >= len(records) {
		c.transition(FilteringSize)
	}
}

func (c *Controller) filterSizes() {
	for i := range c.snapshot.Records {
		r := &c.snapshot.Records[i]
		if r.Ignored {
			continue
		}
		r.TooLarge = r.SizeBytes > c.cfg.MaxFileSize
	}
	c.progress.FilesToLoad = c.snapshot.NumToLoad()
	c.progress.BinaryFiles = c.snapshot.NumBinary()
	c.logger.Info("Classified files",
		zap.Int("binary", c.progress.BinaryFiles),
		zap.Int("toLoad", c.progress.FilesToLoad),
		zap.Int64("maxFileSize", c.cfg.MaxFileSize))
	c.transition(LoadingContent)
}

// loadNext loads the next record whose content should be loaded. A read
// failure leaves the record without content.
func (c *Controller) loadNext() {
	records := c.snapshot.Records
	for c.loadCursor < len(records) && !records[c.loadCursor].ShouldLoadContent() {
		c.loadCursor++
	}
	if c.loadCursor < len(records) {
		r := &records[c.loadCursor]
		data, err := c.readFile(c.snapshot.AbsPath(r))
		if err != nil {
			c.logger.Warn("Failed to load file content", zap.String("path", r.Path), zap.Error(err))
		} else {
			content := strings.ToValidUTF8(string(data), "\uFFFD")
			r.Content = &content
		}
		c.progress.Loaded++
		c.loadCursor++
	}
	c.progress.LoadCursor = c.loadCursor

	if c.loadCursor >= len(records) {
		c.progress.CouldNotLoad = c.snapshot.NumCouldNotLoad()
		c.logger.Info("Loaded file contents",
			zap.Int("loaded", c.progress.FilesToLoad-c.progress.CouldNotLoad),
			zap.Int("couldNotLoad", c.progress.CouldNotLoad))
		c.transition(BuildingMessages)
	}
}

func (c *Controller) buildMessages() {
	messages, err := segment.Build(c.snapshot, c.cfg.Segment)
	if err != nil {
		c.fail(fmt.Errorf("failed to build messages: %w", err))
		return
	}
	c.messages = messages
	c.logger.Info("Built messages", zap.Int("messages", messages.Len()))
	c.transition(Ready)
}

func (c *Controller) transition(next State) {
	c.logger.Debug("Ingestion state change", zap.Stringer("from", c.state), zap.Stringer("to", next))
	c.state = next
}

func (c *Controller) fail(err error) {
	c.logger.Error("Ingestion failed", zap.Stringer("state", c.state), zap.Error(err))
	c.err = err
	c.state = Failed
}
