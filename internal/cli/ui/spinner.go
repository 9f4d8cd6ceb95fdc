package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Progress shows a spinner while a long batch runs. When static is true (no
// TTY) it prints plain lines so piped output stays readable.
type Progress struct {
	w      io.Writer
	s      *spinner.Spinner
	msg    string
	static bool
}

// NewProgress creates a Progress writing to w.
func NewProgress(w io.Writer, static bool) *Progress {
	return &Progress{w: w, static: static}
}

// Start begins a step described by msg.
func (p *Progress) Start(msg string) {
	p.msg = msg
	if p.static {
		fmt.Fprintf(p.w, "  %s", msg)
		return
	}
	p.s = spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(p.w))
	p.s.Prefix = "  "
	p.s.Suffix = " " + msg
	p.s.Start()
}

// Done ends the step with a check mark and an optional summary.
func (p *Progress) Done(summary string) {
	p.finish(StyleSuccess.Render(SymbolCheck), summary)
}

// Fail ends the step with a cross.
func (p *Progress) Fail(summary string) {
	p.finish(StyleError.Render(SymbolCross), summary)
}

func (p *Progress) finish(mark, summary string) {
	if summary != "" {
		summary = " " + StyleDim.Render(summary)
	}
	if p.static {
		fmt.Fprintf(p.w, " %s%s\n", mark, summary)
		return
	}
	p.stop()
	fmt.Fprintf(p.w, "\r  %s %s%s\n", p.msg, mark, summary)
}

func (p *Progress) stop() {
	if p.s != nil {
		p.s.Stop()
		p.s = nil
	}
}
