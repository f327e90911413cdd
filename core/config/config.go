package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ggdaltoso/aleph.js/core/logger"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppName string  `yaml:"app_name"`
	Server  Server  `yaml:"server"`
	Refresh Refresh `yaml:"refresh"`
	Dev     Dev     `yaml:"dev"`
}

type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Refresh names the fast-refresh runtime entry points the rewritten
// modules call into.
type Refresh struct {
	RegFunc string `yaml:"reg_func"`
	SigFunc string `yaml:"sig_func"`
}

type Dev struct {
	AppDir  string   `yaml:"app_dir"`
	Exclude []string `yaml:"exclude"`
}

func Default() *Config {
	return &Config{
		AppName: "aleph",
		Server: Server{
			Host: "localhost",
			Port: 3000,
		},
		Refresh: Refresh{
			RegFunc: "$RefreshReg$",
			SigFunc: "$RefreshSig$",
		},
		Dev: Dev{
			AppDir: ".",
		},
	}
}

func Load() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cannot determine working dir: %w", err)
	}

	paths := []string{
		filepath.Join(wd, "aleph.yaml"),
		filepath.Join(wd, "aleph.yml"),
	}

	var filePath string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			filePath = p
			break
		}
	}

	if filePath == "" {
		logger.Debug("No config file found, using default config")
		return Default(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if cfg.Refresh.RegFunc == "" {
		cfg.Refresh.RegFunc = "$RefreshReg$"
	}
	if cfg.Refresh.SigFunc == "" {
		cfg.Refresh.SigFunc = "$RefreshSig$"
	}
	logger.Debug("Config file found: %s", filePath)
	logger.Debug("Config: %+v", cfg)

	return cfg, nil
}
