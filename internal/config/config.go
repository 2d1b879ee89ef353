package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const ConfigName = "offshoot"

var DefaultProtectedBranches = []string{"main", "master"}

// projectConfigNames are looked up in the main checkout, first match wins.
var projectConfigNames = []string{"offshoot.yaml", ".offshoot.yaml"}

// Config represents the merged global and project configuration
type Config struct {
	// Shell is the command used for the interactive shell handoff. Empty
	// means $SHELL.
	Shell             string        `mapstructure:"shell"`
	ProtectedBranches []string      `mapstructure:"protected_branches"`
	Share             []string      `mapstructure:"share"`
	Clone             []string      `mapstructure:"clone"`
	Spinner           bool          `mapstructure:"spinner"`
	Cleanup           CleanupConfig `mapstructure:"cleanup"`
}

// CleanupConfig represents cleanup configuration
type CleanupConfig struct {
	Confirm bool `mapstructure:"confirm"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		ProtectedBranches: slices.Clone(DefaultProtectedBranches),
		Spinner:           true,
	}
}

// Load reads the global config from globalDir and merges the project config
// found in projectDir over it. Missing files are not an error; either
// directory may be empty to skip it.
func Load(globalDir, projectDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("protected_branches", DefaultProtectedBranches)
	v.SetDefault("spinner", true)

	if globalDir != "" {
		path := filepath.Join(globalDir, ConfigName+".yaml")
		if fileExists(path) {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading global config: %w", err)
			}
		}
	}

	if projectDir != "" {
		for _, name := range projectConfigNames {
			path := filepath.Join(projectDir, name)
			if !fileExists(path) {
				continue
			}
			v.SetConfigFile(path)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("reading project config %s: %w", name, err)
			}
			break
		}
	}

	var config Config
	// Lists may also be written as a comma-separated string.
	hook := viper.DecodeHook(mapstructure.StringToSliceHookFunc(","))
	if err := v.Unmarshal(&config, hook); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	config.ProtectedBranches = trimAll(config.ProtectedBranches)
	config.Share = trimAll(config.Share)
	config.Clone = trimAll(config.Clone)

	if len(config.Share) > 0 && len(config.Clone) > 0 {
		return nil, errors.New("config sets both share and clone; choose one")
	}

	return &config, nil
}

// LoadForProject loads the global config from its standard location merged
// with the project config in projectDir.
func LoadForProject(projectDir string) (*Config, error) {
	globalDir, err := GetGlobalConfigDir()
	if err != nil {
		return nil, err
	}
	return Load(globalDir, projectDir)
}

// GetGlobalConfigDir returns the global config directory
func GetGlobalConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, ConfigName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, ".config", ConfigName), nil
}

// IsProtected reports whether files may not be shared into a worktree on branch.
func (c *Config) IsProtected(branch string) bool {
	return slices.Contains(c.ProtectedBranches, strings.TrimSpace(branch))
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
