package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar renders run progress
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

func describe(passed, failed int) string {
	return color.CyanString("Running invocations: ") +
		color.GreenString("[ok: %d", passed) +
		" | " +
		color.RedString("failed: %d]", failed)
}

// NewProgressBar creates a progress bar over count invocations writing to w
func NewProgressBar(count int, w io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(0, 0)),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

// Update sets the bar to the number of completed invocations. Skipped and
// aborted invocations count as ok.
func (p *ProgressBar) Update(okCount, failCount int) {
	_ = p.bar.Set(okCount + failCount)
	p.bar.Describe(describe(okCount, failCount))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}
