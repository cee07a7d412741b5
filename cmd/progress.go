package cmd

import (
	"io"
	"time"

	"foldertoai/pkg/ingest"

	"github.com/pterm/pterm"
)

const spinnerDelay = 100 * time.Millisecond

// progressReporter shows a spinner until the folder has been scanned and a
// progress bar over the per-file work after that.
type progressReporter struct {
	out     io.Writer
	spinner *pterm.SpinnerPrinter
	bar     *pterm.ProgressbarPrinter
}

func newProgressReporter(out io.Writer) *progressReporter {
	r := &progressReporter{out: out}
	r.spinner, _ = pterm.DefaultSpinner.
		WithWriter(out).
		WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(spinnerDelay).
		WithRemoveWhenDone(true).
		Start(ingest.StatusLine(ingest.Initializing, ingest.Progress{}))
	return r
}

func (r *progressReporter) update(state ingest.State, p ingest.Progress) {
	if state == ingest.Initializing || state == ingest.ScanningTree || state == ingest.Failed {
		return
	}
	if r.bar == nil {
		r.stopSpinner()
		r.bar, _ = pterm.DefaultProgressbar.
			WithWriter(r.out).
			WithTotal(max(2*p.TotalFiles, 1)).
			WithRemoveWhenDone(true).
			Start(ingest.StatusLine(state, p))
	}
	if r.bar == nil {
		return
	}
	r.bar.UpdateTitle(ingest.StatusLine(state, p))
	if done := p.Classified + p.LoadCursor; done > r.bar.Current {
		r.bar.Add(done - r.bar.Current)
	}
}

func (r *progressReporter) stopSpinner() {
	if r.spinner != nil {
		_ = r.spinner.Stop()
		r.spinner = nil
	}
}

func (r *progressReporter) stop() {
	r.stopSpinner()
	if r.bar != nil {
		_, _ = r.bar.Stop()
	}
}
