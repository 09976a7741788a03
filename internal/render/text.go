// Package render draws board generations for human consumption.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/conway.space/internal/life"
)

// Two-column glyphs so cells come out roughly square in a terminal.
const (
	liveGlyph = "██"
	deadGlyph = "  "
)

// Text writes g to w, one line per row. It reads the grid and never
// mutates it.
func Text(w io.Writer, g life.Grid) error {
	var sb strings.Builder
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.Alive(x, y) {
				sb.WriteString(liveGlyph)
			} else {
				sb.WriteString(deadGlyph)
			}
		}
		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}

	return nil
}
