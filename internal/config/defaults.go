package config

import (
	_ "embed"
)

//go:embed defaults/coins.yaml
var defaultCoinsYAML []byte

// DefaultCoinsConfig returns the built-in configuration. It mirrors
// defaults/coins.yaml and is used when the embedded file cannot be parsed.
func DefaultCoinsConfig() CoinsConfig {
	return CoinsConfig{
		Playfield: PlayfieldConfig{
			Width:  390,
			Height: 844,
		},
		Physics: PhysicsConfig{
			Gravity:  450, // 3 m/s² at 150 units per meter
			TiltGain: 1000,
		},
		Economy: EconomyConfig{
			StepCostPerCoin: 10,
			MaxMissedCoins:  5,
		},
		Timing: TimingConfig{
			SpawnInterval: 1.0,
			CoinTimeout:   5.0,
			AlertDuration: 2.0,
		},
		Coin: CoinConfig{
			Radius: 20,
		},
		Collector: CollectorConfig{
			Width:  80,
			Height: 50,
			Y:      50,
		},
		Sensor: SensorConfig{
			WalkRate:         1.6,
			UpdateIntervalMS: 500,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultCoinsYAML
}
