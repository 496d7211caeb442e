package env

import (
	"fmt"
	"os"
	"scratchcard/internal/audio"
	"scratchcard/internal/config"
	"scratchcard/internal/model"
	"scratchcard/internal/scratch"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig структура config.yaml
type fileConfig struct {
	Scratch        scratchSection  `yaml:"scratch"`
	Audio          yaml.Node       `yaml:"audio"`
	FillerMessages []fillerMessage `yaml:"filler_messages"`
}

type scratchSection struct {
	Threshold      float64       `yaml:"threshold"`
	RevealDelay    time.Duration `yaml:"reveal_delay"`
	StrokeRadius   float64       `yaml:"stroke_radius"`
	SampleStride   int           `yaml:"sample_stride"`
	StrokeInterval time.Duration `yaml:"stroke_interval"`
	SoundInterval  time.Duration `yaml:"sound_interval"`
	Width          float64       `yaml:"width"`
	Height         float64       `yaml:"height"`
	Label          labelSection  `yaml:"label"`
}

type labelSection struct {
	Text         string  `yaml:"text"`
	Size         float64 `yaml:"size"`
	Color        string  `yaml:"color"`
	Outline      string  `yaml:"outline"`
	OutlineWidth float64 `yaml:"outline_width"`
	Cover        string  `yaml:"cover"`
}

type fillerMessage struct {
	Message  string `yaml:"message"`
	Emoji    string `yaml:"emoji"`
	Category string `yaml:"category"`
}

func readFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

type engineConfig struct {
	scratch scratch.Config
	audio   audio.Config
}

// NewEngineConfigFromYAML читает секции scratch и audio. Незаданные поля
// движок заменит значениями по умолчанию.
func NewEngineConfigFromYAML(path string) (config.EngineConfig, error) {
	file, err := readFile(path)
	if err != nil {
		return nil, err
	}

	s := file.Scratch
	if s.Threshold < 0 || s.Threshold > 1 {
		return nil, fmt.Errorf("scratch.threshold must be in [0, 1], got %v", s.Threshold)
	}

	// секция audio накладывается поверх значений по умолчанию
	a := audio.DefaultConfig()
	if !file.Audio.IsZero() {
		if err := file.Audio.Decode(&a); err != nil {
			return nil, fmt.Errorf("parse audio section: %w", err)
		}
	}

	return &engineConfig{
		scratch: scratch.Config{
			Threshold:      s.Threshold,
			RevealDelay:    s.RevealDelay,
			StrokeRadius:   s.StrokeRadius,
			SampleStride:   s.SampleStride,
			StrokeInterval: s.StrokeInterval,
			SoundInterval:  s.SoundInterval,
			DefaultWidth:   s.Width,
			DefaultHeight:  s.Height,
			CoverColor:     s.Label.Cover,
			Label:          s.Label.Text,
			LabelSize:      s.Label.Size,
			LabelColor:     s.Label.Color,
			LabelOutline:   s.Label.Outline,
			OutlineWidth:   s.Label.OutlineWidth,
		},
		audio: a,
	}, nil
}

func (c *engineConfig) Scratch() scratch.Config { return c.scratch }
func (c *engineConfig) Audio() audio.Config     { return c.audio }

type fillerConfig struct {
	messages []model.FillerMessage
}

// NewFillerConfigFromYAML читает каталог filler_messages.
func NewFillerConfigFromYAML(path string) (config.FillerConfig, error) {
	file, err := readFile(path)
	if err != nil {
		return nil, err
	}

	messages := make([]model.FillerMessage, 0, len(file.FillerMessages))
	for i, m := range file.FillerMessages {
		if m.Message == "" {
			return nil, fmt.Errorf("filler_messages[%d]: empty message", i)
		}
		messages = append(messages, model.FillerMessage{
			Message:  m.Message,
			Emoji:    m.Emoji,
			Category: m.Category,
		})
	}
	return &fillerConfig{messages: messages}, nil
}

func (c *fillerConfig) Messages() []model.FillerMessage { return c.messages }
