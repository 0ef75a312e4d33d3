// Package config provides YAML/TOML configuration loading for the coin game
// and the step sources that feed it.
package config

import (
	"errors"
	"fmt"
)

// CoinsConfig contains all configuration for the coin-collection game.
type CoinsConfig struct {
	Playfield PlayfieldConfig `yaml:"playfield" toml:"playfield"`
	Physics   PhysicsConfig   `yaml:"physics" toml:"physics"`
	Economy   EconomyConfig   `yaml:"economy" toml:"economy"`
	Timing    TimingConfig    `yaml:"timing" toml:"timing"`
	Coin      CoinConfig      `yaml:"coin" toml:"coin"`
	Collector CollectorConfig `yaml:"collector" toml:"collector"`
	Sensor    SensorConfig    `yaml:"sensor" toml:"sensor"`
}

// PlayfieldConfig is the world size in world units. The renderer scales it
// to whatever terminal it gets.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// PhysicsConfig holds world physics parameters.
type PhysicsConfig struct {
	Gravity  float64 `yaml:"gravity" toml:"gravity"`     // Downward acceleration, units/s²
	TiltGain float64 `yaml:"tilt_gain" toml:"tilt_gain"` // Collector speed per unit of tilt
}

// EconomyConfig holds the step-currency rules.
type EconomyConfig struct {
	StepCostPerCoin int `yaml:"step_cost_per_coin" toml:"step_cost_per_coin"`
	MaxMissedCoins  int `yaml:"max_missed_coins" toml:"max_missed_coins"`
}

// TimingConfig holds schedule lengths in seconds of simulated time.
type TimingConfig struct {
	SpawnInterval float64 `yaml:"spawn_interval" toml:"spawn_interval"`
	CoinTimeout   float64 `yaml:"coin_timeout" toml:"coin_timeout"`
	AlertDuration float64 `yaml:"alert_duration" toml:"alert_duration"`
}

// CoinConfig describes spawned coins.
type CoinConfig struct {
	Radius float64 `yaml:"radius" toml:"radius"`
}

// CollectorConfig describes the bag.
type CollectorConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	Y      float64 `yaml:"y" toml:"y"` // Center height above the floor
}

// SensorConfig tunes the simulated pedometer.
type SensorConfig struct {
	WalkRate         float64 `yaml:"walk_rate" toml:"walk_rate"` // Steps per second, 0 disables walking
	UpdateIntervalMS int     `yaml:"update_interval_ms" toml:"update_interval_ms"`
}

// Validate checks that the configuration can drive a game.
func (c CoinsConfig) Validate() error {
	var errs []error
	if c.Playfield.Width <= 0 || c.Playfield.Height <= 0 {
		errs = append(errs, fmt.Errorf("playfield must be positive, got %gx%g", c.Playfield.Width, c.Playfield.Height))
	}
	if c.Timing.SpawnInterval <= 0 {
		errs = append(errs, fmt.Errorf("spawn_interval must be positive, got %g", c.Timing.SpawnInterval))
	}
	if c.Timing.CoinTimeout <= 0 {
		errs = append(errs, fmt.Errorf("coin_timeout must be positive, got %g", c.Timing.CoinTimeout))
	}
	if c.Economy.StepCostPerCoin < 0 {
		errs = append(errs, fmt.Errorf("step_cost_per_coin must not be negative, got %d", c.Economy.StepCostPerCoin))
	}
	if c.Economy.MaxMissedCoins <= 0 {
		errs = append(errs, fmt.Errorf("max_missed_coins must be positive, got %d", c.Economy.MaxMissedCoins))
	}
	if c.Coin.Radius <= 0 {
		errs = append(errs, fmt.Errorf("coin radius must be positive, got %g", c.Coin.Radius))
	}
	if c.Collector.Width <= 0 || c.Collector.Height <= 0 {
		errs = append(errs, fmt.Errorf("collector size must be positive, got %gx%g", c.Collector.Width, c.Collector.Height))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid coins config: %w", errors.Join(errs...))
	}
	return nil
}
