package ingest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrive_FirstWindowOnlyLeavesInitializing(t *testing.T) {
	root := makeTree(t, map[string]string{"a.txt": "a"})
	c := New(root, DefaultConfig())

	assert.Equal(t, ScanningTree, Drive(c, time.Hour))
	assert.Equal(t, Ready, Drive(c, time.Hour))
}

func TestDrive_ZeroBudgetStillMakesProgress(t *testing.T) {
	root := makeTree(t, map[string]string{"a.txt": "a", "b.txt": "b"})
	c := New(root, DefaultConfig())

	var states []State
	for i := 0; i < 20 && !c.State().Terminal(); i++ {
		states = append(states, Drive(c, 0))
	}

	assert.Equal(t, []State{
		ScanningTree,
		ClassifyingBinary,
		ClassifyingBinary,
		FilteringSize,
		LoadingContent,
		LoadingContent,
		BuildingMessages,
		Ready,
	}, states)
}

func TestDrive_TerminalIsNoop(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "missing"), DefaultConfig())
	for !c.State().Terminal() {
		Drive(c, time.Hour)
	}
	assert.Equal(t, Failed, Drive(c, time.Hour))
}

func TestRun_ReportsProgressAndReturnsMessages(t *testing.T) {
	root := makeTree(t, map[string]string{"a.txt": "a"})
	c := New(root, DefaultConfig())

	var seen []State
	set, err := Run(context.Background(), c, time.Hour, func(s State, _ Progress) {
		seen = append(seen, s)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []State{ScanningTree, Ready}, seen)
}

func TestRun_ReturnsFatalError(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "missing"), DefaultConfig())
	_, err := Run(context.Background(), c, time.Hour, nil)
	require.Error(t, err)
	assert.Equal(t, Failed, c.State())
}

func TestRun_StopsOnCancelledContext(t *testing.T) {
	root := makeTree(t, map[string]string{"a.txt": "a"})
	c := New(root, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, c, time.Hour, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Initializing, c.State())
}

func TestStatusLine(t *testing.T) {
	p := Progress{TotalFiles: 10, Classified: 3, FilesToLoad: 4, Loaded: 2}
	assert.Equal(t, "Obtaining initial info...", StatusLine(Initializing, p))
	assert.Equal(t, "Determining binary files... (3/10)", StatusLine(ClassifyingBinary, p))
	assert.Equal(t, "Loading contents... (2/4)", StatusLine(LoadingContent, p))
	assert.Equal(t, "All relevant files have been successfully loaded (4/4)", StatusLine(Ready, p))
	assert.Equal(t, "Loading process in execution, please wait...", StatusLine(BuildingMessages, p))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "classifying-binary", ClassifyingBinary.String())
	assert.Equal(t, "state(42)", State(42).String())
	assert.True(t, Ready.Terminal())
	assert.True(t, Failed.Terminal())
	assert.False(t, LoadingContent.Terminal())
}

func TestProgressFraction(t *testing.T) {
	assert.Equal(t, 1.0, Progress{}.Fraction())
	assert.Equal(t, 0.25, Progress{TotalFiles: 4, Classified: 2}.Fraction())
}
