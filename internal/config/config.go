// Package config holds the tunables of the physics core and loads them from disk.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where executables look for physics settings, relative to the working directory.
const DefaultPath = "config/physics.json"

// Physics holds solver settings. Zero values are not meaningful; start from Default().
type Physics struct {
	// Fixed sub-step length in seconds
	Tick    float32    `json:"tick" yaml:"tick"`
	Gravity [3]float32 `json:"gravity" yaml:"gravity"`

	// Baumgarte positional correction
	Slop              float32 `json:"slop" yaml:"slop"`
	CorrectionPercent float32 `json:"correctionPercent" yaml:"correctionPercent"`

	// Speeds below this snap to zero during integration
	RestVelocity float32 `json:"restVelocity" yaml:"restVelocity"`

	GJKMaxIterations int `json:"gjkMaxIterations" yaml:"gjkMaxIterations"`
	EPAMaxIterations int `json:"epaMaxIterations" yaml:"epaMaxIterations"`

	ContactCache   bool    `json:"contactCache" yaml:"contactCache"`
	CacheTolerance float32 `json:"cacheTolerance" yaml:"cacheTolerance"`

	// Bodies slower than SleepVelocity (linear and angular) for SleepTicks
	// consecutive ticks stop integrating until something wakes them
	Sleep         bool    `json:"sleep" yaml:"sleep"`
	SleepVelocity float32 `json:"sleepVelocity" yaml:"sleepVelocity"`
	SleepTicks    int     `json:"sleepTicks" yaml:"sleepTicks"`

	// Narrow-phase goroutines; 0 or 1 runs pair tests on the calling goroutine
	Workers int `json:"workers" yaml:"workers"`
}

// Default returns the settings the solver was tuned with (100 Hz, earth-like gravity).
func Default() Physics {
	return Physics{
		Tick:              0.01,
		Gravity:           [3]float32{0, -9.81, 0},
		Slop:              0.01,
		CorrectionPercent: 0.2,
		RestVelocity:      0.01,
		GJKMaxIterations:  64,
		EPAMaxIterations:  64,
		ContactCache:      false,
		CacheTolerance:    0.1,
		Sleep:             false,
		SleepVelocity:     0.15,
		SleepTicks:        50,
		Workers:           1,
	}
}

// Validate reports every setting that would make the solver misbehave,
// joined into one error.
func (p Physics) Validate() error {
	var errs []error
	if p.Tick <= 0 {
		errs = append(errs, fmt.Errorf("tick must be positive, got %v", p.Tick))
	}
	if p.Slop < 0 {
		errs = append(errs, fmt.Errorf("slop must not be negative, got %v", p.Slop))
	}
	if p.CorrectionPercent < 0 || p.CorrectionPercent > 1 {
		errs = append(errs, fmt.Errorf("correctionPercent must be within [0,1], got %v", p.CorrectionPercent))
	}
	if p.RestVelocity < 0 {
		errs = append(errs, fmt.Errorf("restVelocity must not be negative, got %v", p.RestVelocity))
	}
	if p.GJKMaxIterations <= 0 || p.EPAMaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("iteration caps must be positive, got gjk=%d epa=%d", p.GJKMaxIterations, p.EPAMaxIterations))
	}
	if p.CacheTolerance < 0 {
		errs = append(errs, fmt.Errorf("cacheTolerance must not be negative, got %v", p.CacheTolerance))
	}
	if p.Sleep && (p.SleepVelocity <= 0 || p.SleepTicks <= 0) {
		errs = append(errs, fmt.Errorf("sleep needs positive sleepVelocity and sleepTicks, got %v and %d", p.SleepVelocity, p.SleepTicks))
	}
	if p.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", p.Workers))
	}
	return errors.Join(errs...)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Load reads settings from a JSON or YAML file (chosen by extension). Keys missing from
// the file keep their Default() values. A missing file is not an error.
func Load(path string) (Physics, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("read physics config: %w", err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, &p)
	} else {
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return Default(), fmt.Errorf("parse physics config %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid physics config %s: %w", path, err)
	}
	return p, nil
}

// Save writes settings to path, creating the parent directory if needed.
func Save(path string, p Physics) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(p)
	} else {
		data, err = json.MarshalIndent(p, "", "\t")
	}
	if err != nil {
		return fmt.Errorf("marshal physics config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
