package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-yaml/yaml"
)

const (
	MinFloor            = 0
	MaxFloor            = 5
	FloorTravelDuration = 1 * time.Second
	DoorsOpenDuration   = 2 * time.Second
	ButtonPressDelay    = 500 * time.Millisecond
	SensorPollRate      = 25 * time.Millisecond
	SubscriberBuffer    = 16
)

var ErrInvalid = errors.New("invalid config")

// Config holds the building extent and the timing of the car.
type Config struct {
	MinFloor            int
	MaxFloor            int
	FloorTravelDuration time.Duration
	DoorsOpenDuration   time.Duration
	ButtonPressDelay    time.Duration
}

func Default() Config {
	return Config{
		MinFloor:            MinFloor,
		MaxFloor:            MaxFloor,
		FloorTravelDuration: FloorTravelDuration,
		DoorsOpenDuration:   DoorsOpenDuration,
		ButtonPressDelay:    ButtonPressDelay,
	}
}

// NumFloors returns the number of floors in [MinFloor, MaxFloor].
func (c Config) NumFloors() int {
	return c.MaxFloor - c.MinFloor + 1
}

func (c Config) InRange(floor int) bool {
	return floor >= c.MinFloor && floor <= c.MaxFloor
}

func (c Config) Validate() error {
	if c.MinFloor > c.MaxFloor {
		return fmt.Errorf("%w: min floor %d above max floor %d", ErrInvalid, c.MinFloor, c.MaxFloor)
	}
	if c.FloorTravelDuration <= 0 {
		return fmt.Errorf("%w: floor travel duration must be positive, got %v", ErrInvalid, c.FloorTravelDuration)
	}
	if c.DoorsOpenDuration <= 0 {
		return fmt.Errorf("%w: doors open duration must be positive, got %v", ErrInvalid, c.DoorsOpenDuration)
	}
	if c.ButtonPressDelay <= 0 {
		return fmt.Errorf("%w: button press delay must be positive, got %v", ErrInvalid, c.ButtonPressDelay)
	}
	return nil
}

// fileConfig mirrors the YAML layout. Durations are given in milliseconds.
type fileConfig struct {
	MinFloor      *int `yaml:"min_floor"`
	MaxFloor      *int `yaml:"max_floor"`
	FloorTravelMs *int `yaml:"floor_travel_ms"`
	DoorsOpenMs   *int `yaml:"doors_open_ms"`
	ButtonPressMs *int `yaml:"button_press_delay_ms"`
}

// Load reads a YAML config file on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}

	// Strict, so a misspelled key is an error instead of a silent default.
	var fc fileConfig
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}
	if fc.MinFloor != nil {
		c.MinFloor = *fc.MinFloor
	}
	if fc.MaxFloor != nil {
		c.MaxFloor = *fc.MaxFloor
	}
	if fc.FloorTravelMs != nil {
		c.FloorTravelDuration = time.Duration(*fc.FloorTravelMs) * time.Millisecond
	}
	if fc.DoorsOpenMs != nil {
		c.DoorsOpenDuration = time.Duration(*fc.DoorsOpenMs) * time.Millisecond
	}
	if fc.ButtonPressMs != nil {
		c.ButtonPressDelay = time.Duration(*fc.ButtonPressMs) * time.Millisecond
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}
