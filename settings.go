package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/olivierh59500/ramp-sandbox-go/internal/physics"
)

const settingsFile = "sandbox.json"

// MaxBlockSize keeps the default window at least one block wide.
const MaxBlockSize = 128

// Settings is the tunable part of the sandbox, saved and loaded as JSON.
type Settings struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	BlockSize   float64 `json:"blockSize"`
	Threshold   float64 `json:"threshold"`
	LineLeaf    float64 `json:"lineLeafSize"`
	BrushRadius float64 `json:"brushRadius"`
	NoiseScale  float64 `json:"noiseScale"`

	Physics physics.Config `json:"physics"`
}

func DefaultSettings() Settings {
	return Settings{
		Width:       960,
		Height:      640,
		BlockSize:   16,
		Threshold:   0.5,
		LineLeaf:    64,
		BrushRadius: 40,
		NoiseScale:  6,
		Physics:     physics.DefaultConfig(960, 640),
	}
}

// normalize makes loaded values usable: block size becomes a whole number
// of at least one pixel, the window is rounded down to whole blocks and is
// at least one block, and the bounds are copied into the physics config.
// Values that cannot be used fall back to the defaults.
func (s Settings) normalize() Settings {
	def := DefaultSettings()
	s.BlockSize = math.Floor(s.BlockSize)
	if !(s.BlockSize >= 1 && s.BlockSize <= MaxBlockSize) {
		s.BlockSize = def.BlockSize
	}
	b := int(s.BlockSize)
	if s.Width < b {
		s.Width = def.Width
	}
	if s.Height < b {
		s.Height = def.Height
	}
	s.Width = s.Width / b * b
	s.Height = s.Height / b * b

	// A leaf size of zero never stops splitting.
	if !(s.LineLeaf > 0) {
		s.LineLeaf = def.LineLeaf
	}
	if !(s.Physics.BodyLeafSize > 0) {
		s.Physics.BodyLeafSize = def.Physics.BodyLeafSize
	}

	s.Physics.Width = float64(s.Width)
	s.Physics.Height = float64(s.Height)
	return s
}

// saveSettings writes s as JSON
func saveSettings(filename string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// loadSettings reads JSON over the defaults, so missing keys keep their
// default values.
func loadSettings(filename string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(filename)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("decode %s: %w", filename, err)
	}
	return s.normalize(), nil
}
