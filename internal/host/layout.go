package host

import "scratchcard/internal/scratch"

// Grid раскладка карт по строкам в логических пикселях
type Grid struct {
	Cols   int
	Cell   scratch.Box
	Gap    float64
	Margin float64
	// Высота подписи под картой
	Caption float64
}

func (g Grid) cols() int {
	return max(g.Cols, 1)
}

// Origin returns the top-left corner of card i.
func (g Grid) Origin(i int) scratch.Point {
	col, row := i%g.cols(), i/g.cols()
	return scratch.Point{
		X: g.Margin + float64(col)*(g.Cell.W+g.Gap),
		Y: g.Margin + float64(row)*(g.Cell.H+g.Caption+g.Gap),
	}
}

// Size returns the area needed for n cards.
func (g Grid) Size(n int) (w, h float64) {
	if n <= 0 {
		return 2 * g.Margin, 2 * g.Margin
	}
	cols := min(n, g.cols())
	rows := (n + g.cols() - 1) / g.cols()
	w = 2*g.Margin + float64(cols)*g.Cell.W + float64(cols-1)*g.Gap
	h = 2*g.Margin + float64(rows)*(g.Cell.H+g.Caption) + float64(rows-1)*g.Gap
	return w, h
}
