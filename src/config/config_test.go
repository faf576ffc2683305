package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"elevsim/src/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "elevator.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := config.Default().Validate(); err != nil {
		t.Errorf("default config rejected: %v", err)
	}
	if n := config.Default().NumFloors(); n != 6 {
		t.Errorf("expected 6 floors, got %d", n)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *config.Config)
	}{
		{"min above max", func(c *config.Config) { c.MinFloor, c.MaxFloor = 3, 2 }},
		{"zero travel", func(c *config.Config) { c.FloorTravelDuration = 0 }},
		{"negative doors", func(c *config.Config) { c.DoorsOpenDuration = -time.Second }},
		{"zero debounce", func(c *config.Config) { c.ButtonPressDelay = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.Default()
			tt.modify(&c)
			if err := c.Validate(); !errors.Is(err, config.ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}

	single := config.Default()
	single.MinFloor, single.MaxFloor = 2, 2
	if err := single.Validate(); err != nil {
		t.Errorf("single floor building rejected: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "min_floor: -1\nmax_floor: 9\nfloor_travel_ms: 300\n")
	c, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.MinFloor != -1 || c.MaxFloor != 9 {
		t.Errorf("unexpected floor range [%d, %d]", c.MinFloor, c.MaxFloor)
	}
	if c.FloorTravelDuration != 300*time.Millisecond {
		t.Errorf("unexpected travel duration %v", c.FloorTravelDuration)
	}
	if c.DoorsOpenDuration != config.DoorsOpenDuration {
		t.Errorf("unset field should keep default, got %v", c.DoorsOpenDuration)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	c, err := config.Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c != config.Default() {
		t.Errorf("empty file should yield defaults, got %+v", c)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := config.Load(writeConfig(t, "min_floor: 4\nmax_floor: 1\n"))
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := config.Load(writeConfig(t, "max_floor: 9\ndoor_open_ms: 100\n"))
	if err == nil {
		t.Error("expected error for misspelled key")
	}
}
