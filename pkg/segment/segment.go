// Package segment turns a loaded folder snapshot into a numbered sequence of
// size-bounded text messages.
//
// All file blocks are concatenated into one logical stream which is then cut
// purely by position every Options.ChunkSize() grapheme clusters. Splits may
// fall inside a marker line or a file's content; the prologue tells the
// receiving party how to reassemble the stream.
package segment

import (
	"errors"
	"fmt"
	"strings"

	"foldertoai/pkg/scan"

	"github.com/dustin/go-humanize"
	"github.com/rivo/uniseg"
)

const (
	DefaultMaxChars = 4096
	DefaultReserve  = 16

	Banner      = "[FolderToAI]"
	BeginMarker = "--- BEGINNING OF CONTENT ---"
	EndMarker   = "--- END OF CONTENT ---"

	PlaceholderBinary    = "[Binary file]"
	PlaceholderTooLarge  = "[This file is too large to be loaded]"
	PlaceholderNotLoaded = "[File content could not be loaded]"
	PlaceholderError     = "[Error]"
)

var (
	// ErrInvalidBudget is returned when the options leave no room for content.
	ErrInvalidBudget = errors.New("message budget leaves no room for content")
	// ErrNoSnapshot is returned when Build is called without a snapshot.
	ErrNoSnapshot = errors.New("no folder snapshot to segment")
)

// Options bounds the size of each message.
type Options struct {
	MaxChars int // Hard per-message ceiling announced in the prologue.
	Reserve  int // Room kept free for the "Message i/N:" header.
}

// DefaultOptions models a 4096-character budget with a 16-character reserve.
func DefaultOptions() Options {
	return Options{MaxChars: DefaultMaxChars, Reserve: DefaultReserve}
}

// ChunkSize is the number of grapheme clusters carried by each content message.
func (o Options) ChunkSize() int {
	return o.MaxChars - o.Reserve
}

// Validate checks that the options leave room for content.
func (o Options) Validate() error {
	if o.Reserve < 0 || o.ChunkSize() <= 0 {
		return fmt.Errorf("%w: max chars %d, reserve %d", ErrInvalidBudget, o.MaxChars, o.Reserve)
	}
	return nil
}

// MessageSet is an immutable, ordered list of messages. Index 0 is the prologue.
type MessageSet struct {
	messages []string
}

// NewMessageSet copies messages into a MessageSet.
func NewMessageSet(messages []string) MessageSet {
	return MessageSet{messages: append([]string(nil), messages...)}
}

// Len returns the number of messages.
func (m MessageSet) Len() int {
	return len(m.messages)
}

// At returns message i (zero-based).
func (m MessageSet) At(i int) string {
	return m.messages[i]
}

// Prologue returns the first message, or "" for an empty set.
func (m MessageSet) Prologue() string {
	if len(m.messages) == 0 {
		return ""
	}
	return m.messages[0]
}

// All returns a copy of every message.
func (m MessageSet) All() []string {
	return append([]string(nil), m.messages...)
}

// Build produces the message sequence for snapshot.
func Build(snapshot *scan.FolderSnapshot, opts Options) (MessageSet, error) {
	if snapshot == nil {
		return MessageSet{}, ErrNoSnapshot
	}
	if err := opts.Validate(); err != nil {
		return MessageSet{}, err
	}

	if !snapshot.HasRelevantFiles() {
		return NewMessageSet([]string{emptyFolderMessage(snapshot.Root)}), nil
	}

	chunks := Split(Stream(snapshot), opts.ChunkSize())
	total := len(chunks) + 1

	messages := make([]string, 0, total)
	messages = append(messages, prologue(snapshot, opts, total))
	for i, chunk := range chunks {
		messages = append(messages, fmt.Sprintf("Message %d/%d:\n", i+2, total)+chunk)
	}
	return MessageSet{messages: messages}, nil
}

// Stream concatenates the block of every non-ignored record, in record order.
func Stream(snapshot *scan.FolderSnapshot) string {
	var b strings.Builder
	for i := range snapshot.Records {
		r := &snapshot.Records[i]
		if r.Ignored {
			continue
		}
		writeBlock(&b, r)
	}
	return b.String()
}

func writeBlock(b *strings.Builder, r *scan.FileRecord) {
	fmt.Fprintf(b, "File: %s\nSize: %s\n%s\n", r.Path, HumanSize(r.SizeBytes), BeginMarker)
	b.WriteString(body(r))
	b.WriteString("\n" + EndMarker + "\n")
}

func body(r *scan.FileRecord) string {
	switch {
	case r.Content != nil:
		return *r.Content
	case r.IsBinary:
		return PlaceholderBinary
	case r.TooLarge:
		return PlaceholderTooLarge
	case r.ShouldLoadContent():
		return PlaceholderNotLoaded
	default:
		return PlaceholderError
	}
}

// Split cuts s into consecutive pieces of at most size grapheme clusters.
// A cluster is never divided between two pieces.
func Split(s string, size int) []string {
	if s == "" || size <= 0 {
		return nil
	}

	var chunks []string
	start, count := 0, 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		from, _ := g.Positions()
		if count == size {
			chunks = append(chunks, s[start:from])
			start, count = from, 0
		}
		count++
	}
	if count > 0 {
		chunks = append(chunks, s[start:])
	}
	return chunks
}

// HumanSize formats a byte count with IEC units.
func HumanSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

func emptyFolderMessage(root string) string {
	return fmt.Sprintf("%s\n\nMessage 1/1\n\nThis message will provide you relevant information about the files within the folder %s.\n\nThe folder contains no relevant files.", Banner, root)
}

func prologue(snapshot *scan.FolderSnapshot, opts Options, total int) string {
	var b strings.Builder
	b.WriteString(Banner)
	fmt.Fprintf(&b, "\n\nMessage 1/%d:\n\nThis and the message(s) that follow will provide you relevant information about the files within the folder \"%s\", which occupies %s. There are %d messages in total.",
		total, snapshot.Root, HumanSize(snapshot.TotalSize), total)
	fmt.Fprintf(&b, "\n\nAt the beginning of each message, its index will be stated, along with the total number of messages. Each file's content will be between lines that read \"%s\" and \"%s\". Note that these delimiters may be split in between messages but they will all eventually be there once all the parts get sent.",
		BeginMarker, EndMarker)
	fmt.Fprintf(&b, "\n\nThe messages will contain at most %d characters, including line breaks. Please acknowledge that you get all the messages correctly and in sequence, given the indices provided at the beginning of each message. Warn me about any gaps (missing messages) and make sure you receive all %d of them in order.",
		opts.MaxChars, total)
	return b.String()
}
