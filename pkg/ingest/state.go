// File: pkg/ingest/state.go
package ingest

import "fmt"

// State is a stage of the ingestion pipeline. Stages only move forward, except
// that any stage may move to Failed.
type State int

const (
	Initializing State = iota
	ScanningTree
	ClassifyingBinary
	FilteringSize
	LoadingContent
	BuildingMessages
	Ready
	Failed
)

var stateNames = [...]string{
	Initializing:      "initializing",
	ScanningTree:      "scanning-tree",
	ClassifyingBinary: "classifying-binary",
	FilteringSize:     "filtering-size",
	LoadingContent:    "loading-content",
	BuildingMessages:  "building-messages",
	Ready:             "ready",
	Failed:            "failed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether no further work will happen in this state.
func (s State) Terminal() bool {
	return s == Ready || s == Failed
}

// Progress holds the counters a front end polls between advances.
type Progress struct {
	TotalFiles   int // Records in the snapshot, ignored ones included.
	Classified   int // Records the classification cursor has passed.
	FilesToLoad  int // Records whose content should be loaded; known after size filtering.
	Loaded       int // Load attempts made so far.
	LoadCursor   int // Records the loading cursor has passed.
	BinaryFiles  int // Known after classification.
	CouldNotLoad int // Known once loading has finished.
}

// Fraction is the overall completion of the per-file work in [0, 1].
func (p Progress) Fraction() float64 {
	if p.TotalFiles == 0 {
		return 1
	}
	return float64(p.Classified+p.LoadCursor) / float64(2*p.TotalFiles)
}

// StatusLine renders a one-line, human-readable description of the pipeline.
func StatusLine(state State, p Progress) string {
	switch state {
	case Initializing, ScanningTree:
		return "Obtaining initial info..."
	case ClassifyingBinary:
		return fmt.Sprintf("Determining binary files... (%d/%d)", p.Classified, p.TotalFiles)
	case LoadingContent:
		return fmt.Sprintf("Loading contents... (%d/%d)", p.Loaded, p.FilesToLoad)
	case Ready:
		loaded := p.FilesToLoad - p.CouldNotLoad
		if p.CouldNotLoad == 0 {
			return fmt.Sprintf("All relevant files have been successfully loaded (%d/%d)", loaded, p.FilesToLoad)
		}
		return fmt.Sprintf("Not all relevant files could be loaded (%d/%d); perhaps they're being used somehow?", loaded, p.FilesToLoad)
	case Failed:
		return "The folder could not be processed"
	default:
		return "Loading process in execution, please wait..."
	}
}
