// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/slotio/slot-auction/auction"
	"github.com/slotio/slot-auction/slot"
)

// Config is the deployment configuration of the auction engine, loaded from
// the yaml file named by --config.
type Config struct {
	Era             string `yaml:"era"`
	Admin           string `yaml:"admin"`
	Treasury        string `yaml:"treasury"`
	Duration        uint64 `yaml:"duration"`
	TimeBuffer      uint64 `yaml:"timeBuffer"`
	MinBidIncrement uint8  `yaml:"minBidIncrement"`
	ReservePrice    string `yaml:"reservePrice"`
}

func loadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "read config")
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.WithMessage(err, "parse config")
	}
	return &cfg, nil
}

func (c *Config) era() (uint32, error) {
	switch c.Era {
	case "", "native":
		return slot.EraNative, nil
	case "token":
		return slot.EraToken, nil
	}
	return 0, errors.Errorf("unknown era %q", c.Era)
}

func (c *Config) initConfig() (auction.InitConfig, error) {
	admin, err := slot.ParseAddress(c.Admin)
	if err != nil {
		return auction.InitConfig{}, errors.WithMessage(err, "admin")
	}
	treasury, err := slot.ParseAddress(c.Treasury)
	if err != nil {
		return auction.InitConfig{}, errors.WithMessage(err, "treasury")
	}
	reserve := new(big.Int)
	if c.ReservePrice != "" {
		if _, ok := reserve.SetString(c.ReservePrice, 10); !ok {
			return auction.InitConfig{}, errors.Errorf("invalid reserve price %q", c.ReservePrice)
		}
	}
	return auction.InitConfig{
		Admin:           admin,
		Treasury:        treasury,
		Duration:        c.Duration,
		TimeBuffer:      c.TimeBuffer,
		MinBidIncrement: c.MinBidIncrement,
		ReservePrice:    reserve,
	}, nil
}
