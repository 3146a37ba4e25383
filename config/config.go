// Package config resolves relay core startup configuration from flags,
// environment variables, and an optional config file, layered the way
// depot-cli's pkg/config does it (flag > env > file > default), but
// through an explicit *viper.Viper instance bound to a *pflag.FlagSet
// rather than viper's package-level globals, so a process can host more
// than one Manager in tests without cross-talk.
/*
 * Copyright (c) 2024, Cloud Robotics Project. All rights reserved.
 */
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cloudrobotics/relaycore/wire"
)

// Config is the resolved set of knobs a relay node starts with
// (SPEC_FULL.md §2 "Configuration").
type Config struct {
	// CommID is this node's own address on the mesh.
	CommID wire.CommID
	// ListenAddr is the address the relay accepts peer connections on.
	ListenAddr string
	// PeerAddrs are the initial outbound peers to dial at start-up,
	// "commID=host:port" pairs.
	PeerAddrs []string
	// MetricsAddr is the bind address for the Prometheus /metrics
	// endpoint; empty disables it.
	MetricsAddr string
	// MaxMessageLength is the resolved --max-message-length value. Nothing
	// in this module reads it; the router always enforces the constant
	// wire.MaxLength.
	MaxMessageLength int
	// ConfigFile is the path of the config file actually loaded, if any.
	ConfigFile string
}

// BindFlags registers this package's flags onto fs, e.g. a cobra
// command's Flags(), before Execute (depot-cli's
// cmd/root.go pattern of wiring flags ahead of config resolution).
func BindFlags(fs *pflag.FlagSet) {
	fs.String("comm-id", "", "this node's CommID on the relay mesh")
	fs.String("listen", ":7447", "address to accept peer connections on")
	fs.StringSlice("peer", nil, "commID=host:port of a peer to dial at start-up, repeatable")
	fs.String("metrics-addr", ":9090", "bind address for the Prometheus metrics endpoint, empty to disable")
	fs.Int("max-message-length", 0, "maximum message length in bytes, recorded in Config only; the router enforces its built-in limit")
	fs.String("config", "", "path to a relaycore config file (yaml, json, toml)")
}

// Load resolves a Config from fs (already parsed) layered over
// environment variables (RELAYCORE_ prefixed) and an optional config
// file, mirroring depot-cli's NewConfig: SetEnvPrefix + AutomaticEnv +
// ReadInConfig, tolerating a missing file.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RELAYCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("could not bind flags: %w", err)
	}

	if cf, _ := fs.GetString("config"); cf != "" {
		v.SetConfigFile(cf)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file %q: %w", cf, err)
		}
	}

	commID := v.GetString("comm-id")
	if commID == "" {
		return nil, fmt.Errorf("comm-id is required")
	}

	return &Config{
		CommID:           wire.CommID(commID),
		ListenAddr:       v.GetString("listen"),
		PeerAddrs:        v.GetStringSlice("peer"),
		MetricsAddr:      v.GetString("metrics-addr"),
		MaxMessageLength: v.GetInt("max-message-length"),
		ConfigFile:       v.ConfigFileUsed(),
	}, nil
}
