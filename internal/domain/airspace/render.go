package airspace

import "strings"

// Render draws the grid as text, one heading glyph per occupied cell.
// When several flights share a cell the first one in the slice is drawn.
func Render(g Grid, flights []Flight) string {
	cells := make(map[[2]int]Direction, len(flights))
	for _, f := range flights {
		at := [2]int{f.X, f.Y}
		if _, taken := cells[at]; taken {
			continue
		}
		cells[at] = f.Direction
	}

	var b strings.Builder
	border := " " + strings.Repeat("---", g.Width) + "\n"
	b.WriteString(border)
	for y := 0; y < g.Height; y++ {
		b.WriteByte('|')
		for x := 0; x < g.Width; x++ {
			if d, ok := cells[[2]int{x, y}]; ok {
				b.WriteString(" " + d.Glyph() + " ")
				continue
			}
			b.WriteString("   ")
		}
		b.WriteString("|\n")
	}
	b.WriteString(border)
	return b.String()
}
