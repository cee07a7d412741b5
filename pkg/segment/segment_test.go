package segment

import (
	"strings"
	"testing"

	"foldertoai/pkg/scan"

	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const family = "\U0001F468\u200d\U0001F469\u200d\U0001F467" // one grapheme, five code points

func strPtr(s string) *string { return &s }

func TestBuild_EmptyFolder(t *testing.T) {
	snapshot := &scan.FolderSnapshot{
		Root:    "/work/empty",
		Records: []scan.FileRecord{{Path: ".git/HEAD", SizeBytes: 10, Ignored: true}},
	}

	set, err := Build(snapshot, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "[FolderToAI]\n\nMessage 1/1\n\nThis message will provide you relevant information about the files within the folder /work/empty.\n\nThe folder contains no relevant files.", set.At(0))
}

func TestBuild_Prologue(t *testing.T) {
	snapshot := &scan.FolderSnapshot{
		Root:      "/work/proj",
		TotalSize: 2048,
		Records:   []scan.FileRecord{{Path: "main.go", SizeBytes: 12, Content: strPtr("package main")}},
	}

	set, err := Build(snapshot, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	want := "[FolderToAI]\n\nMessage 1/2:\n\n" +
		"This and the message(s) that follow will provide you relevant information about the files within the folder \"/work/proj\", which occupies 2.0 KiB. There are 2 messages in total.\n\n" +
		"At the beginning of each message, its index will be stated, along with the total number of messages. Each file's content will be between lines that read \"--- BEGINNING OF CONTENT ---\" and \"--- END OF CONTENT ---\". Note that these delimiters may be split in between messages but they will all eventually be there once all the parts get sent.\n\n" +
		"The messages will contain at most 4096 characters, including line breaks. Please acknowledge that you get all the messages correctly and in sequence, given the indices provided at the beginning of each message. Warn me about any gaps (missing messages) and make sure you receive all 2 of them in order."
	assert.Equal(t, want, set.Prologue())

	assert.Equal(t, "Message 2/2:\nFile: main.go\nSize: 12 B\n--- BEGINNING OF CONTENT ---\npackage main\n--- END OF CONTENT ---\n", set.At(1))
}

func TestBuild_Placeholders(t *testing.T) {
	snapshot := &scan.FolderSnapshot{
		Root: "/p",
		Records: []scan.FileRecord{
			{Path: "img.png", IsBinary: true},
			{Path: "big.log", TooLarge: true},
			{Path: "locked.txt"},
			{Path: "vendor/skip.go", Ignored: true, Content: strPtr("never shown")},
		},
	}

	stream := Stream(snapshot)
	assert.Contains(t, stream, "File: img.png\nSize: 0 B\n--- BEGINNING OF CONTENT ---\n[Binary file]\n--- END OF CONTENT ---\n")
	assert.Contains(t, stream, "[This file is too large to be loaded]")
	assert.Contains(t, stream, "[File content could not be loaded]")
	assert.NotContains(t, stream, "never shown")
	assert.NotContains(t, stream, "vendor/skip.go")
}

func TestBody_ErrorFallback(t *testing.T) {
	// Ignored records never reach the stream; body still has a fallback for them.
	assert.Equal(t, PlaceholderError, body(&scan.FileRecord{Ignored: true}))
}

func TestBuild_ExactMultipleWithEmojiAtBoundary(t *testing.T) {
	opts := Options{MaxChars: 116, Reserve: 16}
	size := opts.ChunkSize()
	require.Equal(t, 100, size)

	head := "File: a.txt\nSize: 0 B\n" + BeginMarker + "\n"
	tail := "\n" + EndMarker + "\n"

	// The family emoji becomes the last grapheme of the first chunk.
	content := strings.Repeat("x", size-1-len(head)) + family
	content += strings.Repeat("y", 2*size-len(head)-len(tail)-uniseg.GraphemeClusterCount(content))

	snapshot := &scan.FolderSnapshot{
		Root:    "/p",
		Records: []scan.FileRecord{{Path: "a.txt", Content: &content}},
	}
	require.Equal(t, 2*size, uniseg.GraphemeClusterCount(Stream(snapshot)))

	set, err := Build(snapshot, opts)
	require.NoError(t, err)
	require.Equal(t, 3, set.Len())

	first := strings.TrimPrefix(set.At(1), "Message 2/3:\n")
	second := strings.TrimPrefix(set.At(2), "Message 3/3:\n")
	assert.True(t, strings.HasPrefix(set.At(1), "Message 2/3:\n"))
	assert.True(t, strings.HasPrefix(set.At(2), "Message 3/3:\n"))
	assert.Equal(t, size, uniseg.GraphemeClusterCount(first))
	assert.Equal(t, size, uniseg.GraphemeClusterCount(second))
	assert.True(t, strings.HasSuffix(first, family))
	assert.Equal(t, Stream(snapshot), first+second)
	assert.Contains(t, set.Prologue(), "at most 116 characters")
}

func TestBuild_BinaryOnlyStillProducesAChunk(t *testing.T) {
	snapshot := &scan.FolderSnapshot{
		Root:    "/p",
		Records: []scan.FileRecord{{Path: "a.bin", IsBinary: true}},
	}

	set, err := Build(snapshot, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())
	assert.Contains(t, set.At(1), PlaceholderBinary)
}

func TestBuild_InvalidBudget(t *testing.T) {
	snapshot := &scan.FolderSnapshot{Root: "/p"}

	_, err := Build(snapshot, Options{MaxChars: 16, Reserve: 16})
	require.ErrorIs(t, err, ErrInvalidBudget)

	_, err = Build(nil, DefaultOptions())
	require.ErrorIs(t, err, ErrNoSnapshot)
}

func TestSplit(t *testing.T) {
	assert.Nil(t, Split("", 4))
	assert.Equal(t, []string{"abcd", "ef"}, Split("abcdef", 4))
	assert.Equal(t, []string{"ab", "cd"}, Split("abcd", 2))

	// "e" + combining acute is one cluster; CRLF is one cluster.
	assert.Equal(t, []string{"e\u0301\r\n", "z"}, Split("e\u0301\r\nz", 2))
}

func TestSplit_ChunkCountIsCeiling(t *testing.T) {
	s := strings.Repeat("\u00e9", 1001)
	chunks := Split(s, 100)
	assert.Len(t, chunks, 11)
	assert.Equal(t, s, strings.Join(chunks, ""))
}

func TestMessageSet_IsACopy(t *testing.T) {
	src := []string{"a", "b"}
	set := NewMessageSet(src)
	src[0] = "changed"
	assert.Equal(t, "a", set.At(0))

	all := set.All()
	all[1] = "changed"
	assert.Equal(t, "b", set.At(1))
	assert.Equal(t, "", MessageSet{}.Prologue())
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "0 B", HumanSize(0))
	assert.Equal(t, "0 B", HumanSize(-5))
	assert.Equal(t, "100 KiB", HumanSize(100*1024))
}
