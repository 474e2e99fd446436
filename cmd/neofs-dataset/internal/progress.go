package common

import (
	"github.com/cheggaaa/pb"
	"github.com/spf13/cobra"
)

// Progress is a progress bar written to the command error output. Nil
// Progress does nothing.
type Progress struct {
	bar *pb.ProgressBar
}

// StartProgress starts progress bar with the given total. Zero total
// means unknown one. Returns nil if progress bar is disabled by flag.
func StartProgress(cmd *cobra.Command, total int) *Progress {
	noProgress, _ := cmd.Flags().GetBool(NoProgressFlag)
	if noProgress {
		return nil
	}

	bar := pb.New(total)
	bar.Output = cmd.ErrOrStderr()
	bar.ShowSpeed = total == 0
	bar.Start()

	return &Progress{bar: bar}
}

// Set sets current progress.
func (p *Progress) Set(n int) {
	if p != nil {
		p.bar.Set(n)
	}
}

// Finish stops the progress bar.
func (p *Progress) Finish() {
	if p != nil {
		p.bar.Finish()
	}
}
