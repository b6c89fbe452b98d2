// Package config loads the simulation tunables from YAML, applying defaults
// for anything a project file leaves out.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable parameters of a simulation session. Distances are
// world units (pixels), rates are Hz, durations are seconds.
type Config struct {
	TickRate       float64 `yaml:"tick_rate" json:"tick_rate"`
	VehicleSpeed   float64 `yaml:"vehicle_speed" json:"vehicle_speed"`
	LaneOffset     float64 `yaml:"lane_offset" json:"lane_offset"`
	OfficeDwellSec float64 `yaml:"office_dwell_sec" json:"office_dwell_sec"`
	SpawnEverySec  float64 `yaml:"spawn_every_sec" json:"spawn_every_sec"`
	MaxVehicles    int     `yaml:"max_vehicles" json:"max_vehicles"`
	WorldWidth     float64 `yaml:"world_width" json:"world_width"`
	WorldHeight    float64 `yaml:"world_height" json:"world_height"`
	BuildingPairs  int     `yaml:"building_pairs" json:"building_pairs"`
	Seed           int64   `yaml:"seed" json:"seed"`
}

// Default returns the configuration used when no project file overrides it.
func Default() Config {
	return Config{
		TickRate:       60,
		VehicleSpeed:   1.5,
		LaneOffset:     6,
		OfficeDwellSec: 3,
		SpawnEverySec:  2,
		MaxVehicles:    40,
		WorldWidth:     1280,
		WorldHeight:    720,
		BuildingPairs:  5,
		Seed:           1,
	}
}

// Load reads a config from a YAML file and fills in defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config YAML: %w", err)
	}
	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadProject loads the config from a project directory, looking for
// roadmaker.yaml. A missing file is not an error; defaults apply.
func LoadProject(projectDir string) (Config, error) {
	path := filepath.Join(projectDir, "roadmaker.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) withDefaults() Config {
	d := Default()
	if c.TickRate == 0 {
		c.TickRate = d.TickRate
	}
	if c.VehicleSpeed == 0 {
		c.VehicleSpeed = d.VehicleSpeed
	}
	if c.LaneOffset == 0 {
		c.LaneOffset = d.LaneOffset
	}
	if c.OfficeDwellSec == 0 {
		c.OfficeDwellSec = d.OfficeDwellSec
	}
	if c.SpawnEverySec == 0 {
		c.SpawnEverySec = d.SpawnEverySec
	}
	if c.MaxVehicles == 0 {
		c.MaxVehicles = d.MaxVehicles
	}
	if c.WorldWidth == 0 {
		c.WorldWidth = d.WorldWidth
	}
	if c.WorldHeight == 0 {
		c.WorldHeight = d.WorldHeight
	}
	if c.BuildingPairs == 0 {
		c.BuildingPairs = d.BuildingPairs
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	return c
}

// Validate rejects configurations the engine cannot run.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %.2f", c.TickRate)
	}
	if c.VehicleSpeed <= 0 {
		return fmt.Errorf("vehicle_speed must be positive, got %.2f", c.VehicleSpeed)
	}
	if c.OfficeDwellSec < 0 {
		return fmt.Errorf("office_dwell_sec must not be negative, got %.2f", c.OfficeDwellSec)
	}
	if c.SpawnEverySec <= 0 {
		return fmt.Errorf("spawn_every_sec must be positive, got %.2f", c.SpawnEverySec)
	}
	if c.MaxVehicles < 0 {
		return fmt.Errorf("max_vehicles must not be negative, got %d", c.MaxVehicles)
	}
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return fmt.Errorf("world dimensions must be positive, got %.0fx%.0f", c.WorldWidth, c.WorldHeight)
	}
	return nil
}

// TickInterval is the wall-clock duration of one tick.
func (c Config) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.TickRate)
}

// OfficeDwell is the stay duration at an office before the return trip.
func (c Config) OfficeDwell() time.Duration {
	return time.Duration(c.OfficeDwellSec * float64(time.Second))
}

// SpawnEvery is the minimum interval between spawn attempts.
func (c Config) SpawnEvery() time.Duration {
	return time.Duration(c.SpawnEverySec * float64(time.Second))
}
