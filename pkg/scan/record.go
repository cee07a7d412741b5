// File: pkg/scan/record.go
package scan

// FileRecord describes one regular file found under a scan root.
type FileRecord struct {
	Path      string  // Root-relative, forward-slash path.
	SizeBytes int64   // Size captured at scan time.
	Ignored   bool    // Under a directory named in the ignore-set; fixed at scan time.
	IsBinary  bool    // Set by classification; meaningless when Ignored.
	TooLarge  bool    // Set by size filtering.
	Content   *string // Present only if loading was attempted and succeeded.
}

// ShouldLoadContent reports whether the record's content is meant to be loaded.
func (r *FileRecord) ShouldLoadContent() bool {
	return !r.Ignored && !r.IsBinary && !r.TooLarge
}

// HasContent reports whether content was loaded.
func (r *FileRecord) HasContent() bool {
	return r.Content != nil
}

// FolderSnapshot aggregates every record produced by one scan.
type FolderSnapshot struct {
	Root      string       // Root path as given to Scan.
	Records   []FileRecord // Directory-walk order.
	TotalSize int64        // Sum of all record sizes, ignored files included.
}

// NumFiles returns the number of records.
func (s *FolderSnapshot) NumFiles() int {
	return len(s.Records)
}

// HasRelevantFiles reports whether at least one record is not ignored.
func (s *FolderSnapshot) HasRelevantFiles() bool {
	for i := range s.Records {
		if !s.Records[i].Ignored {
			return true
		}
	}
	return false
}

// NumToLoad counts records whose content should be loaded.
func (s *FolderSnapshot) NumToLoad() int {
	return s.count(func(r *FileRecord) bool { return r.ShouldLoadContent() })
}

// NumBinary counts records classified as binary.
func (s *FolderSnapshot) NumBinary() int {
	return s.count(func(r *FileRecord) bool { return r.IsBinary })
}

// NumIgnored counts ignored records.
func (s *FolderSnapshot) NumIgnored() int {
	return s.count(func(r *FileRecord) bool { return r.Ignored })
}

// NumCouldNotLoad counts records that should have been loaded but have no content.
func (s *FolderSnapshot) NumCouldNotLoad() int {
	return s.count(func(r *FileRecord) bool { return r.ShouldLoadContent() && !r.HasContent() })
}

func (s *FolderSnapshot) count(pred func(*FileRecord) bool) int {
	n := 0
	for i := range s.Records {
		if pred(&s.Records[i]) {
			n++
		}
	}
	return n
}
