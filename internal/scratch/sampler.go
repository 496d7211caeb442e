package scratch

import (
	"scratchcard/internal/scratch/frame"
	"time"
)

// Coverage estimates the revealed fraction of an RGBA buffer by checking the
// alpha of every stride-th pixel.
func Coverage(pix []byte, stride int) float64 {
	if stride < 1 {
		stride = 1
	}
	var sampled, clear int
	for i := 3; i < len(pix); i += 4 * stride {
		sampled++
		if pix[i] == 0 {
			clear++
		}
	}
	if sampled == 0 {
		return 0
	}
	return float64(clear) / float64(sampled)
}

// startSampler schedules the per-frame progress task. Any running sampler
// is canceled first.
func (c *Card) startSampler() {
	c.sampler.Cancel()
	c.sampler = c.group.loop.RequestFrame(c.sampleFrame)
}

// stopSampler is safe to call when no sampler runs.
func (c *Card) stopSampler() {
	c.sampler.Cancel()
	c.sampler = nil
}

// sampleFrame пересчитывает прогресс, только если с прошлого кадра было стирание
func (c *Card) sampleFrame(time.Time) frame.Next {
	if !c.dirty {
		return frame.Continue()
	}
	if c.surface == nil {
		return frame.Break()
	}

	pix, err := c.surface.Pixels()
	if err != nil {
		// буфер недоступен, пробуем на следующем кадре
		return frame.Continue()
	}
	c.dirty = false

	if p := Coverage(pix, c.cfg.SampleStride); p > c.progress {
		c.progress = p
	}

	if c.progress >= c.cfg.Threshold && !c.card.IsScratched && !c.state.Latched() {
		c.latch()
		return frame.Break()
	}
	return frame.Continue()
}
