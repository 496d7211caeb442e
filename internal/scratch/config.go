package scratch

import "time"

// Config настройки движка. Нулевые поля заменяются значениями по умолчанию.
type Config struct {
	// Доля стёртых пикселей, после которой карта открывается
	Threshold float64
	// Пауза между срабатыванием порога и коммитом
	RevealDelay time.Duration
	// Радиус кисти в логических пикселях
	StrokeRadius float64
	// Проверяется каждый N-й пиксель маски
	SampleStride int
	// Не чаще одного стирания за интервал
	StrokeInterval time.Duration
	// Не чаще одного звука за интервал
	SoundInterval time.Duration

	// Размер по умолчанию, пока контейнер не размечен
	DefaultWidth  float64
	DefaultHeight float64

	CoverColor   string
	Label        string
	LabelSize    float64
	LabelColor   string
	LabelOutline string
	// Толщина обводки надписи в логических пикселях
	OutlineWidth float64
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		Threshold:      0.7,
		RevealDelay:    500 * time.Millisecond,
		StrokeRadius:   10,
		SampleStride:   10,
		StrokeInterval: 16 * time.Millisecond,
		SoundInterval:  120 * time.Millisecond,
		DefaultWidth:   200,
		DefaultHeight:  110,
		CoverColor:     "#b8b8c0",
		Label:          "SCRATCH HERE",
		LabelSize:      18,
		LabelColor:     "#ffffff",
		LabelOutline:   "#4a4a55",
		OutlineWidth:   1.5,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Threshold <= 0 || c.Threshold > 1 {
		c.Threshold = d.Threshold
	}
	if c.RevealDelay <= 0 {
		c.RevealDelay = d.RevealDelay
	}
	if c.StrokeRadius <= 0 {
		c.StrokeRadius = d.StrokeRadius
	}
	if c.SampleStride < 1 {
		c.SampleStride = d.SampleStride
	}
	if c.StrokeInterval <= 0 {
		c.StrokeInterval = d.StrokeInterval
	}
	if c.SoundInterval <= 0 {
		c.SoundInterval = d.SoundInterval
	}
	if c.DefaultWidth <= 0 || c.DefaultHeight <= 0 {
		c.DefaultWidth, c.DefaultHeight = d.DefaultWidth, d.DefaultHeight
	}
	if c.Label == "" {
		c.Label = d.Label
	}
	if c.CoverColor == "" {
		c.CoverColor = d.CoverColor
	}
	if c.LabelSize <= 0 {
		c.LabelSize = d.LabelSize
	}
	if c.LabelColor == "" {
		c.LabelColor = d.LabelColor
	}
	if c.LabelOutline == "" {
		c.LabelOutline = d.LabelOutline
	}
	if c.OutlineWidth <= 0 {
		c.OutlineWidth = d.OutlineWidth
	}
	return c
}
