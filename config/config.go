// Package config loads the ambient tuning parameters shared by both CLI
// entry points: worker/thread counts, chunk sizes, and iteration caps.
// Defaults are embedded at build time and optionally overridden by a
// user-supplied YAML file.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable ambient parameter. Zero is never a valid
// override value for these fields, so a partial override file only
// changes the keys it actually sets — everything else keeps its
// embedded default.
type Config struct {
	Cluster ClusterConfig `yaml:"cluster"`
	MPP     MPPConfig     `yaml:"mpp"`
}

// ClusterConfig tunes the SPMD substrate: how many ranks
// participate and how work is chunked within a rank. GatherBufferSize and
// BroadcastBufferSize are parsed but not read by the cluster package,
// whose collectives use no buffered channels.
type ClusterConfig struct {
	Workers             int `yaml:"workers"`
	ChunkSize           int `yaml:"chunk_size"`
	GatherBufferSize    int `yaml:"gather_buffer_size"`
	BroadcastBufferSize int `yaml:"broadcast_buffer_size"`
}

// MPPConfig tunes the lumping engine's bounded fixed-point loop.
type MPPConfig struct {
	MaxRounds int `yaml:"max_rounds"`
}

// Load reads configuration from the embedded defaults, then merges in
// path if it is non-empty. A partial override file only changes the
// fields it sets; yaml.Unmarshal into an already-populated struct
// leaves absent keys untouched.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if cfg.Cluster.Workers <= 0 {
		cfg.Cluster.Workers = runtime.GOMAXPROCS(0)
	}
	return cfg, nil
}
