// Package config loads practica settings from defaults, an optional YAML
// file and PRACTICA_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/abhisek/practica/internal/energy"
	"github.com/abhisek/practica/internal/skills"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PRACTICA_"

// ConfigPathEnvVar names an explicit config file.
const ConfigPathEnvVar = "PRACTICA_CONFIG"

// Skill source kinds.
const (
	SourceStore = "store"
	SourceFile  = "file"
)

// Config is the full application configuration.
type Config struct {
	Database   DatabaseConfig      `koanf:"database"`
	Skills     SkillsConfig        `koanf:"skills"`
	Categories map[string][]string `koanf:"categories"`
	Engine     EngineConfig        `koanf:"engine"`
	Energy     EnergyConfig        `koanf:"energy"`
	Log        LogConfig           `koanf:"log"`
	Coach      CoachConfig         `koanf:"coach"`
}

type DatabaseConfig struct {
	Path    string        `koanf:"path"` // empty = PRACTICA_DB or the XDG data dir
	Timeout time.Duration `koanf:"timeout"`
}

type SkillsConfig struct {
	Source       string        `koanf:"source"` // store or file
	File         string        `koanf:"file"`
	FetchTimeout time.Duration `koanf:"fetch_timeout"`
}

type EngineConfig struct {
	CooldownDays    int `koanf:"cooldown_days"`
	RetentionDays   int `koanf:"retention_days"`
	InterleaveCount int `koanf:"interleave_count"`
	BlockMinutes    int `koanf:"block_minutes"`
}

type EnergyConfig struct {
	Level       string  `koanf:"level"`
	MediumScale float64 `koanf:"medium_scale"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// CoachConfig controls how results are phrased. With LLM enabled and a
// provider configured, messages are written by the model.
type CoachConfig struct {
	LLM bool `koanf:"llm"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Timeout: 5 * time.Second,
		},
		Skills: SkillsConfig{
			Source:       SourceStore,
			FetchTimeout: 10 * time.Second,
		},
		Engine: EngineConfig{
			CooldownDays:    2,
			RetentionDays:   7,
			InterleaveCount: 3,
			BlockMinutes:    90,
		},
		Energy: EnergyConfig{
			Level:       string(energy.High),
			MediumScale: energy.DefaultMediumScale,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load builds the configuration. path may be empty, in which case
// PRACTICA_CONFIG and then the XDG config location are tried; a missing
// default file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	configPath, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the explicit path if given (it must exist), then
// PRACTICA_CONFIG, then $XDG_CONFIG_HOME/practica/config.yaml if present.
func findConfigFile(explicit string) (string, error) {
	if explicit == "" {
		explicit = os.Getenv(ConfigPathEnvVar)
	}
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}

	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", nil
		}
		dir = filepath.Join(home, ".config")
	}
	p := filepath.Join(dir, "practica", "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}
	return "", nil
}

// envTransform maps PRACTICA_ENGINE_COOLDOWN_DAYS to engine.cooldown_days.
// Variables outside the config sections (PRACTICA_DB, PRACTICA_LLM_*, ...)
// are ignored here.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok || rest == "" {
		return ""
	}
	switch section {
	case "database", "skills", "engine", "energy", "log", "coach":
		return section + "." + rest
	default:
		return ""
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.Database.Timeout <= 0 {
		errs = append(errs, errors.New("database.timeout must be positive"))
	}
	switch c.Skills.Source {
	case SourceStore:
	case SourceFile:
		if c.Skills.File == "" {
			errs = append(errs, errors.New("skills.file is required when skills.source is file"))
		}
	default:
		errs = append(errs, fmt.Errorf("skills.source must be %q or %q, got %q", SourceStore, SourceFile, c.Skills.Source))
	}
	if c.Skills.FetchTimeout <= 0 {
		errs = append(errs, errors.New("skills.fetch_timeout must be positive"))
	}
	if c.Engine.CooldownDays < 1 {
		errs = append(errs, errors.New("engine.cooldown_days must be at least 1"))
	}
	if c.Engine.RetentionDays < c.Engine.CooldownDays {
		errs = append(errs, errors.New("engine.retention_days must not be shorter than engine.cooldown_days"))
	}
	if c.Engine.InterleaveCount < 1 {
		errs = append(errs, errors.New("engine.interleave_count must be at least 1"))
	}
	if c.Engine.BlockMinutes < 1 {
		errs = append(errs, errors.New("engine.block_minutes must be at least 1"))
	}
	if _, err := energy.Parse(c.Energy.Level); err != nil {
		errs = append(errs, fmt.Errorf("energy.level: %w", err))
	}
	if c.Energy.MediumScale <= 0 || c.Energy.MediumScale > 1 {
		errs = append(errs, errors.New("energy.medium_scale must be in (0, 1]"))
	}
	return errors.Join(errs...)
}

// Cooldown returns the recommendation cooldown window.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.Engine.CooldownDays) * 24 * time.Hour
}

// Retention returns how long ledger entries are kept.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.Engine.RetentionDays) * 24 * time.Hour
}

// EnergyLevel returns the configured default energy level.
func (c *Config) EnergyLevel() energy.Level {
	l, err := energy.Parse(c.Energy.Level)
	if err != nil {
		return energy.High
	}
	return l
}

// CategoryMap returns the configured topics. When none are configured the
// topics are derived from each skill's own category.
func (c *Config) CategoryMap(all []skills.Skill) skills.CategoryMap {
	if len(c.Categories) == 0 {
		return skills.CategoriesFromSkills(all)
	}
	m := make(skills.CategoryMap, len(c.Categories))
	for topic, names := range c.Categories {
		m[topic] = append([]string(nil), names...)
	}
	return m
}
