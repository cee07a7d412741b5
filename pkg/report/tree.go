// File: pkg/report/tree.go
package report

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"foldertoai/pkg/scan"
	"foldertoai/pkg/segment"

	"github.com/charmbracelet/lipgloss"
)

// Styles decorates the annotations of a rendered tree.
type Styles struct {
	Directory  lipgloss.Style
	Annotation lipgloss.Style
	Warning    lipgloss.Style
}

// PlainStyles renders without any decoration.
func PlainStyles() Styles {
	return Styles{
		Directory:  lipgloss.NewStyle(),
		Annotation: lipgloss.NewStyle(),
		Warning:    lipgloss.NewStyle(),
	}
}

// ColorStyles renders directories in bold and annotations in muted and warning colors.
func ColorStyles() Styles {
	return Styles{
		Directory:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6")),
		Annotation: lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
	}
}

type treeNode struct {
	dirs  map[string]*treeNode
	files []*scan.FileRecord
}

func newTreeNode() *treeNode {
	return &treeNode{dirs: map[string]*treeNode{}}
}

// Tree renders the snapshot as a directory tree, directories first and then
// files, both sorted case-insensitively. Each file carries its size and status.
func Tree(snapshot *scan.FolderSnapshot, styles Styles) string {
	root := newTreeNode()
	for i := range snapshot.Records {
		r := &snapshot.Records[i]
		n := root
		dir := path.Dir(r.Path)
		if dir != "." {
			for _, part := range strings.Split(dir, "/") {
				child, ok := n.dirs[part]
				if !ok {
					child = newTreeNode()
					n.dirs[part] = child
				}
				n = child
			}
		}
		n.files = append(n.files, r)
	}

	var b strings.Builder
	b.WriteString(styles.Directory.Render(strings.TrimSuffix(snapshot.Root, "/")+"/") + "\n")
	renderNode(&b, root, "", styles)
	return b.String()
}

func renderNode(b *strings.Builder, n *treeNode, prefix string, styles Styles) {
	dirNames := make([]string, 0, len(n.dirs))
	for name := range n.dirs {
		dirNames = append(dirNames, name)
	}
	sort.Slice(dirNames, func(i, j int) bool {
		return strings.ToLower(dirNames[i]) < strings.ToLower(dirNames[j])
	})

	files := append([]*scan.FileRecord(nil), n.files...)
	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(path.Base(files[i].Path)) < strings.ToLower(path.Base(files[j].Path))
	})

	total := len(dirNames) + len(files)
	idx := 0
	next := func() (string, string) {
		idx++
		if idx == total {
			return "└── ", "    "
		}
		return "├── ", "│   "
	}

	for _, name := range dirNames {
		connector, extension := next()
		fmt.Fprintf(b, "%s%s%s\n", prefix, connector, styles.Directory.Render(name+"/"))
		renderNode(b, n.dirs[name], prefix+extension, styles)
	}
	for _, r := range files {
		connector, _ := next()
		fmt.Fprintf(b, "%s%s%s %s\n", prefix, connector, path.Base(r.Path), annotate(r, styles))
	}
}

func annotate(r *scan.FileRecord, styles Styles) string {
	size := styles.Annotation.Render("(" + segment.HumanSize(r.SizeBytes) + ")")
	var status string
	switch {
	case r.Ignored:
		status = "[ignored]"
	case r.IsBinary:
		status = "[binary]"
	case r.TooLarge:
		status = "[too large]"
	case r.ShouldLoadContent() && !r.HasContent():
		return size + " " + styles.Warning.Render("[not loaded]")
	default:
		return size
	}
	return size + " " + styles.Annotation.Render(status)
}
