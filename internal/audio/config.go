package audio

import "time"

// Config параметры синтеза шороха
type Config struct {
	Enabled    bool          `yaml:"enabled"`
	SampleRate int           `yaml:"sample_rate"`
	Volume     float64       `yaml:"volume"`
	Peak       float64       `yaml:"peak"`
	Duration   time.Duration `yaml:"duration"`
	Attack     time.Duration `yaml:"attack"`
	// Частота среза high-pass выбирается случайно в [CutoffMin, CutoffMax)
	CutoffMin float64 `yaml:"cutoff_min"`
	CutoffMax float64 `yaml:"cutoff_max"`
}

// DefaultConfig returns the tuning of the scratch sound.
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		SampleRate: 44100,
		Volume:     1,
		Peak:       0.12,
		Duration:   150 * time.Millisecond,
		Attack:     10 * time.Millisecond,
		CutoffMin:  2000,
		CutoffMax:  3000,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SampleRate <= 0 {
		c.SampleRate = d.SampleRate
	}
	if c.Volume < 0 {
		c.Volume = 0
	}
	if c.Volume > 1 {
		c.Volume = 1
	}
	if c.Peak <= 0 || c.Peak > 1 {
		c.Peak = d.Peak
	}
	if c.Duration <= 0 {
		c.Duration = d.Duration
	}
	if c.Attack <= 0 || c.Attack >= c.Duration {
		c.Attack = min(d.Attack, c.Duration/2)
	}
	if c.CutoffMin <= 0 || c.CutoffMax <= c.CutoffMin {
		c.CutoffMin, c.CutoffMax = d.CutoffMin, d.CutoffMax
	}
	// срез не выше Найквиста
	nyquist := float64(c.SampleRate) / 2
	if c.CutoffMax >= nyquist {
		c.CutoffMax = nyquist * 0.9
		c.CutoffMin = min(c.CutoffMin, c.CutoffMax*0.9)
	}
	return c
}
