package scratch

import (
	"context"
	"errors"
	"image"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
)

var (
	// ErrSurfaceReleased поверхность уже освобождена (карта размонтирована)
	ErrSurfaceReleased = errors.New("scratch: surface released")
)

var (
	labelOnce   sync.Once
	labelSource *text.FontSource
)

// labelFont returns the shared label font, nil if it cannot be parsed.
func labelFont() *text.FontSource {
	labelOnce.Do(func() {
		src, err := text.NewFontSource(gobold.TTF)
		if err != nil {
			Logger().Warn("scratch: label font unavailable", "error", err)
			return
		}
		labelSource = src
	})
	return labelSource
}

// Surface is a card's cover layer. Its pixel buffer is the erase mask:
// alpha 0 means revealed. Drawing contexts are pre-scaled by the device
// pixel ratio, so callers always pass logical coordinates.
type Surface struct {
	box    Box
	dpr    float64
	origin Point
	radius float64

	pixmap *gg.Pixmap
	dc     *gg.Context

	// кисть: сюда растеризуется штрих, затем он вычитается из маски
	brushPix *gg.Pixmap
	brush    *gg.Context

	revision uint64
	erased   bool

	// токен жизни поверхности, отменяется в Release
	ctx    context.Context
	cancel context.CancelFunc
}

func newSurface(box Box, dpr float64, radius float64) *Surface {
	if dpr <= 0 {
		dpr = 1
	}
	w, h := box.Pixels(dpr)

	pm := gg.NewPixmap(w, h)
	dc := gg.NewContext(w, h, gg.WithPixmap(pm))
	dc.Scale(dpr, dpr)

	bp := gg.NewPixmap(w, h)
	brush := gg.NewContext(w, h, gg.WithPixmap(bp))
	brush.Scale(dpr, dpr)
	brush.SetRGBA(1, 1, 1, 1)
	brush.SetLineWidth(radius * 2)
	brush.SetLineCap(gg.LineCapRound)
	brush.SetLineJoin(gg.LineJoinRound)

	ctx, cancel := context.WithCancel(context.Background())
	return &Surface{
		box:      box,
		dpr:      dpr,
		radius:   radius,
		pixmap:   pm,
		dc:       dc,
		brushPix: bp,
		brush:    brush,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Box returns the logical size.
func (s *Surface) Box() Box { return s.box }

// DPR returns the device pixel ratio the buffer was allocated with.
func (s *Surface) DPR() float64 { return s.dpr }

// PixelSize returns the buffer size in device pixels.
func (s *Surface) PixelSize() (w, h int) {
	return s.box.Pixels(s.dpr)
}

// Origin returns the top-left corner of the surface in screen coordinates.
func (s *Surface) Origin() Point { return s.origin }

// Revision grows on every change of the buffer, hosts re-upload when it moves.
func (s *Surface) Revision() uint64 { return s.revision }

// Alive reports whether the surface has not been released.
func (s *Surface) Alive() bool {
	return s.ctx.Err() == nil
}

// Done is closed when the surface is released.
func (s *Surface) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Pixmap returns the mask buffer in straight RGBA, nil after release.
func (s *Surface) Pixmap() *gg.Pixmap {
	if !s.Alive() {
		return nil
	}
	return s.pixmap
}

// Pixels returns the raw RGBA bytes of the mask.
func (s *Surface) Pixels() ([]byte, error) {
	if !s.Alive() || s.pixmap == nil {
		return nil, ErrSurfaceReleased
	}
	return s.pixmap.Data(), nil
}

// Contains reports whether a screen point falls inside the surface.
func (s *Surface) Contains(p Point) bool {
	l := p.Sub(s.origin)
	return l.X >= 0 && l.Y >= 0 && l.X < s.box.W && l.Y < s.box.H
}

// ToLocal maps a screen position to surface coordinates. The context is
// already scaled by the device ratio, so no ratio correction happens here.
func (s *Surface) ToLocal(p Point) (Point, bool) {
	if s == nil || !s.Alive() {
		return Point{}, false
	}
	return p.Sub(s.origin), true
}

// paintCover fills the box with the cover colour.
func (s *Surface) paintCover(cfg Config) error {
	s.dc.SetHexColor(cfg.CoverColor)
	s.dc.DrawRectangle(0, 0, s.box.W, s.box.H)
	if err := s.dc.Fill(); err != nil {
		return err
	}
	s.revision++
	return nil
}

// drawBackground stretches img over the logical box.
func (s *Surface) drawBackground(img *gg.ImageBuf) {
	if img == nil {
		return
	}
	s.dc.DrawImageEx(img, gg.DrawImageOptions{
		X:             0,
		Y:             0,
		DstWidth:      s.box.W,
		DstHeight:     s.box.H,
		Interpolation: gg.InterpBilinear,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
	s.revision++
}

// drawLabel рисует надпись по центру: сначала обводка, затем заливка.
// gg выводит текст в пикселях буфера, поэтому координаты и кегль
// пересчитываются через dpr вручную.
func (s *Surface) drawLabel(cfg Config) {
	src := labelFont()
	if src == nil || cfg.Label == "" {
		return
	}
	s.dc.SetFont(src.Face(cfg.LabelSize * s.dpr))

	cx := s.box.W / 2 * s.dpr
	cy := s.box.H / 2 * s.dpr
	o := cfg.OutlineWidth * s.dpr

	s.dc.SetHexColor(cfg.LabelOutline)
	for _, d := range [...][2]float64{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	} {
		s.dc.DrawStringAnchored(cfg.Label, cx+d[0]*o, cy+d[1]*o, 0.5, 0.5)
	}

	s.dc.SetHexColor(cfg.LabelColor)
	s.dc.DrawStringAnchored(cfg.Label, cx, cy, 0.5, 0.5)
	s.revision++
}

// EraseDisc clears a filled disc centred at p.
func (s *Surface) EraseDisc(p Point) error {
	if !s.Alive() {
		return ErrSurfaceReleased
	}
	s.brush.ClearPath()
	s.brush.DrawCircle(p.X, p.Y, s.radius)
	if err := s.brush.Fill(); err != nil {
		return err
	}
	s.applyBrush(p, p)
	return nil
}

// EraseSegment clears a round-capped band from a to b, so fast pointer
// movement leaves no gaps between samples.
func (s *Surface) EraseSegment(a, b Point) error {
	if !s.Alive() {
		return ErrSurfaceReleased
	}
	s.brush.ClearPath()
	s.brush.MoveTo(a.X, a.Y)
	s.brush.LineTo(b.X, b.Y)
	if err := s.brush.Stroke(); err != nil {
		return err
	}
	s.applyBrush(a, b)
	return nil
}

// applyBrush composites the brush onto the mask with destination-out
// (dst.a *= 1 - brush.a) inside the stroke's bounds, then wipes the brush.
func (s *Surface) applyBrush(a, b Point) {
	w, h := s.PixelSize()
	r := s.strokeBounds(a, b).Intersect(image.Rect(0, 0, w, h))
	if r.Empty() {
		return
	}

	dst := s.pixmap.Data()
	src := s.brushPix.Data()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := y * w * 4
		for x := r.Min.X; x < r.Max.X; x++ {
			i := row + x*4
			cover := src[i+3]
			if cover == 0 {
				continue
			}
			alpha := uint32(dst[i+3]) * uint32(255-cover) / 255
			dst[i+3] = uint8(alpha)
			if alpha == 0 {
				dst[i], dst[i+1], dst[i+2] = 0, 0, 0
			}
			src[i], src[i+1], src[i+2], src[i+3] = 0, 0, 0, 0
		}
	}
	s.erased = true
	s.revision++
}

// strokeBounds returns the device-pixel rectangle a stroke can touch,
// padded for anti-aliasing.
func (s *Surface) strokeBounds(a, b Point) image.Rectangle {
	const pad = 2
	minX := math.Min(a.X, b.X) - s.radius
	minY := math.Min(a.Y, b.Y) - s.radius
	maxX := math.Max(a.X, b.X) + s.radius
	maxY := math.Max(a.Y, b.Y) + s.radius
	return image.Rect(
		int(math.Floor(minX*s.dpr))-pad,
		int(math.Floor(minY*s.dpr))-pad,
		int(math.Ceil(maxX*s.dpr))+pad,
		int(math.Ceil(maxY*s.dpr))+pad,
	)
}

// Release frees the buffers and cancels the liveness token. Idempotent.
func (s *Surface) Release() {
	if !s.Alive() {
		return
	}
	s.cancel()
	_ = s.dc.Close()
	_ = s.brush.Close()
	s.pixmap = nil
	s.brushPix = nil
}
