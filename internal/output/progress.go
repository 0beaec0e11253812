// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/pdiddy/arxiv-fetch/internal/acquire"
)

const barWidth = 30

// Progress renders a single-line download bar per file, redrawn in place
// with a carriage return and finished with a newline.
type Progress struct {
	w         io.Writer
	useColors bool
}

// NewProgress returns a renderer writing to w.
func NewProgress(w io.Writer, useColors bool) *Progress {
	return &Progress{w: w, useColors: useColors}
}

// Func returns the callback to hand to acquire.Fetcher.
func (p *Progress) Func() acquire.ProgressFunc {
	return p.Update
}

// Update redraws the bar for name.
func (p *Progress) Update(name string, written, total int64) {
	if total <= 0 {
		return
	}
	if written > total {
		written = total
	}
	filled := int(written * barWidth / total)
	bar := strings.Repeat("#", filled) + strings.Repeat(" ", barWidth-filled)
	if p.useColors {
		c := color.New(color.FgGreen)
		c.EnableColor()
		bar = c.Sprint(bar)
	}

	fmt.Fprintf(p.w, "\r%s: %3d%% |%s| %s/%s", name, written*100/total, bar, formatMB(written), formatMB(total))
	if written == total {
		fmt.Fprintln(p.w)
	}
}

func formatMB(n int64) string {
	return fmt.Sprintf("%.1fMB", float64(n)/(1024*1024))
}
