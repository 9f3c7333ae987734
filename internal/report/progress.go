package report

import (
	"fmt"
	"io"
	"sync"
)

// Indicators are the spinner glyphs cycled through by Progress.
const Indicators = `/-\|`

// Progress prints a single self-overwriting status line such as
// " - 3 / 8 => 37.50%". It is safe for concurrent use.
type Progress struct {
	w     io.Writer
	total int

	mu      sync.Mutex
	current int
}

// NewProgress returns a Progress over total items. A nil writer disables output.
func NewProgress(w io.Writer, total int) *Progress {
	return &Progress{w: w, total: total}
}

// Step advances the counter by one and redraws the line.
func (p *Progress) Step() {
	if p == nil || p.w == nil || p.total == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current++
	pct := float64(p.current) * 100.0 / float64(p.total)
	glyph := Indicators[p.current%len(Indicators)]
	fmt.Fprintf(p.w, " %c %d / %d => %.2f%%\r", glyph, p.current, p.total, pct)
}

// Finish ends the status line so later output starts on a fresh line.
func (p *Progress) Finish() {
	if p == nil || p.w == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current > 0 {
		fmt.Fprintln(p.w)
	}
}
