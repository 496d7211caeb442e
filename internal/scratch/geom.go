package scratch

import "math"

// Point координаты в логических пикселях
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Box размер видимой области карты в логических пикселях
type Box struct {
	W, H float64
}

// Empty reports whether the box has not been laid out yet.
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Pixels returns the device buffer size for the box at the given ratio.
func (b Box) Pixels(dpr float64) (w, h int) {
	w = int(math.Round(b.W * dpr))
	h = int(math.Round(b.H * dpr))
	return max(w, 1), max(h, 1)
}
