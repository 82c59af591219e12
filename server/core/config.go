package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls the authoritative server. Every field can be set from the
// environment; cmd/server lets flags override it.
type Config struct {
	Port          uint          `env:"COMPOSITE_PORT"           envDefault:"7373"`
	TickRate      int           `env:"COMPOSITE_TICK_RATE"      envDefault:"60"`
	Level         string        `env:"COMPOSITE_LEVEL"          envDefault:"crack_the_door"`
	LevelsDir     string        `env:"COMPOSITE_LEVELS_DIR"`
	Version       string        `env:"COMPOSITE_VERSION"`
	MaxSessions   int           `env:"COMPOSITE_MAX_SESSIONS"   envDefault:"64"`
	InputBuffer   int           `env:"COMPOSITE_INPUT_BUFFER"   envDefault:"128"`
	SnapshotEvery int           `env:"COMPOSITE_SNAPSHOT_EVERY" envDefault:"2"`
	DoorTween     time.Duration `env:"COMPOSITE_DOOR_TWEEN"     envDefault:"400ms"`
	Dev           bool          `env:"COMPOSITE_DEV"`
	FreeMovement  bool          `env:"COMPOSITE_FREE_MOVEMENT"`
}

// LoadConfig reads Config from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick rate must be positive, got %d", c.TickRate))
	}
	if c.MaxSessions <= 0 {
		errs = append(errs, fmt.Errorf("max sessions must be positive, got %d", c.MaxSessions))
	}
	if c.InputBuffer <= 0 {
		errs = append(errs, fmt.Errorf("input buffer must be positive, got %d", c.InputBuffer))
	}
	if c.SnapshotEvery <= 0 {
		errs = append(errs, fmt.Errorf("snapshot interval must be positive, got %d", c.SnapshotEvery))
	}
	if c.Level == "" {
		errs = append(errs, errors.New("level is required"))
	}
	return errors.Join(errs...)
}

// Delta is the simulated time of one tick in seconds.
func (c Config) Delta() float64 {
	return 1 / float64(c.TickRate)
}
