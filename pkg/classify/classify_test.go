package classify

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0644))
	return p
}

func printableSample(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte('a' + i%26)
	}
	return buf
}

func TestClassify_BinaryExtensionWithoutIO(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist.PNG")

	c := New(WithOpener(func(string) (io.ReadSeekCloser, error) {
		t.Fatal("opener must not be called for a known extension")
		return nil, nil
	}))

	v := c.Classify(missing)
	assert.True(t, v.Binary)
	assert.Equal(t, ExtensionDenied, v.Reason)
	assert.True(t, IsBinary(missing))
}

func TestClassify_TextExtensionTrustsName(t *testing.T) {
	p := writeFile(t, "notes.md", []byte{0x00, 0x01, 0x02, 0xFF, 0xFE, 0x00})

	v := New().Classify(p)
	assert.False(t, v.Binary)
	assert.Equal(t, ExtensionAllowed, v.Reason)
}

func TestClassify_DotfileExtension(t *testing.T) {
	p := writeFile(t, ".gitignore", []byte{0x89, 0x50, 0x4E, 0x47})
	assert.False(t, IsBinary(p))
}

func TestClassify_PNGSignatureWithoutExtension(t *testing.T) {
	p := writeFile(t, "logo", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 'x'})

	v := New().Classify(p)
	assert.True(t, v.Binary)
	assert.Equal(t, Signature, v.Reason)
}

func TestClassify_UnknownExtensionSniffsContent(t *testing.T) {
	p := writeFile(t, "data.weird", []byte{0x7F, 'E', 'L', 'F', 2, 1, 1, 0})
	assert.True(t, IsBinary(p))
}

func TestClassify_PrintableSampleIsText(t *testing.T) {
	p := writeFile(t, "README", printableSample(SampleSize))

	v := New().Classify(p)
	assert.False(t, v.Binary)
	assert.Equal(t, ContentText, v.Reason)
}

func TestClassify_QuarterNULIsBinary(t *testing.T) {
	sample := printableSample(SampleSize)
	for i := 3; i < len(sample); i += 4 {
		sample[i] = 0
	}
	p := writeFile(t, "README", sample)

	v := New().Classify(p)
	assert.True(t, v.Binary)
	assert.Equal(t, ContentBinary, v.Reason)
}

func TestClassify_EmptyFileIsText(t *testing.T) {
	p := writeFile(t, "EMPTY", nil)
	assert.False(t, IsBinary(p))
}

func TestClassify_OpenFailureFailsOpen(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "Dockerfile")

	v := New().Classify(missing)
	assert.False(t, v.Binary)
	assert.Equal(t, OpenFailed, v.Reason)
}

type fakeFile struct {
	*bytes.Reader
	seekErr error
	readErr error
	reads   int
}

func (f *fakeFile) Read(p []byte) (int, error) {
	f.reads++
	if f.readErr != nil && f.reads > 1 {
		return 0, f.readErr
	}
	return f.Reader.Read(p)
}

func (f *fakeFile) Seek(offset int64, whence int) (int64, error) {
	if f.seekErr != nil {
		return 0, f.seekErr
	}
	return f.Reader.Seek(offset, whence)
}

func (f *fakeFile) Close() error { return nil }

func TestClassify_SeekFailureFailsClosed(t *testing.T) {
	c := New(WithOpener(func(string) (io.ReadSeekCloser, error) {
		return &fakeFile{Reader: bytes.NewReader([]byte("plain text")), seekErr: errors.New("unseekable")}, nil
	}))

	v := c.Classify("pipe")
	assert.True(t, v.Binary)
	assert.Equal(t, SeekFailed, v.Reason)
}

func TestClassify_SampleReadFailureFailsOpen(t *testing.T) {
	c := New(WithOpener(func(string) (io.ReadSeekCloser, error) {
		return &fakeFile{Reader: bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09}), readErr: errors.New("io error")}, nil
	}))

	v := c.Classify("flaky")
	assert.False(t, v.Binary)
	assert.Equal(t, ReadFailed, v.Reason)
}

func TestLooksBinary_Threshold(t *testing.T) {
	// 10 bytes: threshold is 2, so 2 non-text bytes stay text and 3 do not.
	twoBad := []byte{'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 0x00, 0xFF}
	threeBad := []byte{'a', 'b', 'c', 'd', 'e', 'f', 'g', 0x01, 0x00, 0xFF}

	assert.False(t, LooksBinary(twoBad))
	assert.True(t, LooksBinary(threeBad))
}

func TestLooksBinary_NonASCIIUTF8CountsBytes(t *testing.T) {
	assert.True(t, LooksBinary([]byte("日本語のテキスト")))
	assert.False(t, LooksBinary([]byte("mostly ascii text with one é")))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "go", Extension("pkg/main.GO"))
	assert.Equal(t, "", Extension("Makefile"))
	assert.Equal(t, "", Extension("dir.v2/LICENSE"))
	assert.Equal(t, "gz", Extension("a/b.tar.gz"))
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "binary signature", Signature.String())
	assert.Equal(t, "unknown", Reason(99).String())
}
