package simulation

import (
	"errors"
	"time"
)

// ErrInvalidConfig is returned by New for unusable settings.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config controls a simulation run.
type Config struct {
	// Workers is the number of concurrent desk workers.
	Workers int

	// Operations is the number of scenarios to execute.
	Operations int

	// MinBooks, MinBorrowers and MinStaff are topped up with generated entities before the run.
	MinBooks     int
	MinBorrowers int
	MinStaff     int

	// YesProbability is the chance of answering yes to a question.
	YesProbability float64

	// MaxClockStep is the longest the simulated clock moves per operation.
	MaxClockStep time.Duration

	Start time.Time
	Seed  int64
}

// DefaultConfig returns a run of 1000 operations with 8 workers over a small library.
func DefaultConfig() Config {
	return Config{
		Workers:        8,
		Operations:     1000,
		MinBooks:       20,
		MinBorrowers:   30,
		MinStaff:       2,
		YesProbability: 0.5,
		MaxClockStep:   12 * time.Hour,
		Start:          time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		Seed:           1,
	}
}

// Validate checks the settings.
func (c Config) Validate() error {
	switch {
	case c.Workers < 1:
		return errors.Join(ErrInvalidConfig, errors.New("at least one worker is needed"))
	case c.Operations < 0:
		return errors.Join(ErrInvalidConfig, errors.New("operations must not be negative"))
	case c.MinBooks < 1 || c.MinBorrowers < 1 || c.MinStaff < 1:
		return errors.Join(ErrInvalidConfig, errors.New("at least one book, borrower and staff member are needed"))
	case c.YesProbability < 0 || c.YesProbability > 1:
		return errors.Join(ErrInvalidConfig, errors.New("yes probability must be between 0 and 1"))
	case c.MaxClockStep < 0:
		return errors.Join(ErrInvalidConfig, errors.New("clock step must not be negative"))
	}

	return nil
}
