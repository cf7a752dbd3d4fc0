// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/stakepool/ident"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/staking"
)

// Config is the yaml configuration. Unset keys keep their defaults.
type Config struct {
	StakingProgram  ident.Address `yaml:"staking-program"`
	TokenProgram    ident.Address `yaml:"token-program"`
	RewardRate      uint64        `yaml:"reward-rate"`
	AccrualMode     string        `yaml:"accrual-mode"`
	DeriveCacheSize int           `yaml:"derive-cache-size"`
	Database        lvldb.Options `yaml:"database"`
	API             APIConfig     `yaml:"api"`
}

type APIConfig struct {
	Addr        string `yaml:"addr"`
	AdminAddr   string `yaml:"admin-addr"`
	CORS        string `yaml:"cors"`
	Metrics     bool   `yaml:"metrics"`
	RequestLogs bool   `yaml:"request-logs"`
}

func defaultConfig() *Config {
	return &Config{
		StakingProgram:  ident.NameToAddress("stakepool/staking"),
		TokenProgram:    ident.NameToAddress("stakepool/token"),
		RewardRate:      staking.DefaultRewardRate,
		AccrualMode:     staking.Checkpoint.String(),
		DeriveCacheSize: 1024,
		Database: lvldb.Options{
			CacheSize:              16,
			OpenFilesCacheCapacity: 64,
		},
		API: APIConfig{
			Addr: "localhost:8680",
		},
	}
}

// loadConfig reads the yaml file at path over the defaults. Environment
// variables in the file are expanded. An empty path yields the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := staking.ParseAccrualMode(c.AccrualMode); err != nil {
		return err
	}
	if c.StakingProgram == c.TokenProgram {
		return errors.New("staking and token programs must differ")
	}
	if c.StakingProgram.IsZero() || c.TokenProgram.IsZero() {
		return errors.New("program ids must be set")
	}
	return nil
}

func (c *Config) engine() staking.Engine {
	// validated on load
	mode, _ := staking.ParseAccrualMode(c.AccrualMode)
	return staking.NewEngine(c.RewardRate, mode)
}
