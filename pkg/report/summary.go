// Package report renders human-readable views of a folder snapshot.
package report

import (
	"fmt"
	"strings"

	"foldertoai/pkg/scan"
	"foldertoai/pkg/segment"
)

// Summary lists the folder's aggregate counters, one per line.
func Summary(snapshot *scan.FolderSnapshot, messages int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Folder: %q\n", snapshot.Root)
	fmt.Fprintf(&b, "Size: %s\n", segment.HumanSize(snapshot.TotalSize))
	fmt.Fprintf(&b, "Total number of files: %d\n", snapshot.NumFiles())
	fmt.Fprintf(&b, "Ignored files: %d\n", snapshot.NumIgnored())
	fmt.Fprintf(&b, "Number of binary files: %d (%s%% of total)\n", snapshot.NumBinary(), percent(snapshot.NumBinary(), snapshot.NumFiles()))
	fmt.Fprintf(&b, "Files loaded: %d/%d\n", snapshot.NumToLoad()-snapshot.NumCouldNotLoad(), snapshot.NumToLoad())
	fmt.Fprintf(&b, "Messages: %d\n", messages)
	return b.String()
}

func percent(n, total int) string {
	if total == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(n)/float64(total)*100)
}
