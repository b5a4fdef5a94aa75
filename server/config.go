// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config is a layered source (YAML file + environment overrides) for the
// values a process needs to host a Room: listen address, client caps,
// reconnection grace, and the input-intake rate limit (§2.1).
type Config struct {
	ListenAddr         string        `mapstructure:"listen_addr"`
	MaxClients         int           `mapstructure:"max_clients"`
	MaxConnsPerIP      int           `mapstructure:"max_conns_per_ip"`
	ReconnectionGrace  time.Duration `mapstructure:"reconnection_grace"`
	InputRateLimit     float64       `mapstructure:"input_rate_limit"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
}

func defaultConfig() Config {
	return Config{
		ListenAddr:         ":8192",
		MaxClients:         256,
		MaxConnsPerIP:      10,
		ReconnectionGrace:  20 * time.Second,
		InputRateLimit:     60,
		CORSAllowedOrigins: []string{"*"},
	}
}

// LoadConfig reads config.yaml from path (if present) and applies
// ARENASYNC_-prefixed environment overrides on top, falling back to
// defaultConfig for anything unset.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("arenasync")
	v.AutomaticEnv()

	v.SetDefault("listen_addr", cfg.ListenAddr)
	v.SetDefault("max_clients", cfg.MaxClients)
	v.SetDefault("max_conns_per_ip", cfg.MaxConnsPerIP)
	v.SetDefault("reconnection_grace", cfg.ReconnectionGrace)
	v.SetDefault("input_rate_limit", cfg.InputRateLimit)
	v.SetDefault("cors_allowed_origins", cfg.CORSAllowedOrigins)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
