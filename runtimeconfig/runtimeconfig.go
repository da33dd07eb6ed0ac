// Package runtimeconfig loads the configuration a composed runtime
// needs to wire its StateStore and Orchestrator implementations: which
// backend to use for each, and how to reach it. It has no opinion on how
// the resulting values are used and constructs no backend itself; no
// package in this module, cmd/coredemo included, reads it.
package runtimeconfig

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type (
	// Config is the top-level runtime configuration document.
	Config struct {
		// StateBackend selects which state.StateStore implementation to
		// construct. One of "memory", "redis", "mongo".
		StateBackend string `yaml:"state_backend"`
		// Redis configures the Redis-backed StateStore. Only read when
		// StateBackend is "redis".
		Redis RedisConfig `yaml:"redis"`
		// Mongo configures the MongoDB-backed StateStore. Only read when
		// StateBackend is "mongo".
		Mongo MongoConfig `yaml:"mongo"`
		// OrchestratorBackend selects which Orchestrator implementation
		// to construct. One of "dispatcher" (in-process) or "temporal".
		OrchestratorBackend string `yaml:"orchestrator_backend"`
		// Temporal configures the Temporal-backed Orchestrator. Only
		// read when OrchestratorBackend is "temporal".
		Temporal TemporalConfig `yaml:"temporal"`
	}

	// RedisConfig addresses a Redis instance.
	RedisConfig struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	}

	// MongoConfig addresses a MongoDB database and collection.
	MongoConfig struct {
		URI        string `yaml:"uri"`
		Database   string `yaml:"database"`
		Collection string `yaml:"collection"`
	}

	// TemporalConfig addresses a Temporal cluster.
	TemporalConfig struct {
		HostPort  string `yaml:"host_port"`
		Namespace string `yaml:"namespace"`
		TaskQueue string `yaml:"task_queue"`
	}
)

// Default returns a Config suitable for local development: in-memory
// state, in-process dispatch, no external dependencies.
func Default() Config {
	return Config{
		StateBackend:        "memory",
		OrchestratorBackend: "dispatcher",
	}
}

// Load reads and parses a YAML configuration document from r. Fields
// absent from the document keep Default's values; Load starts from
// Default and decodes on top of it.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("runtimeconfig: decode: %w", err)
	}
	return cfg, nil
}

// LoadFile opens path and parses it with Load.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("runtimeconfig: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}
