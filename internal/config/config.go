package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is read when no path is given and the file exists in the working directory.
	DefaultPath = "journalclub.yaml"

	configPathEnv = "JOURNAL_CLUB_CONFIG"
	rootEnv       = "JOURNAL_CLUB_ROOT"
	sessionsEnv   = "JOURNAL_CLUB_SESSIONS"
	outputDirEnv  = "JOURNAL_CLUB_OUTPUT_DIR"
	logLevelEnv   = "JOURNAL_CLUB_LOG_LEVEL"
)

var (
	ErrUnknownConfigFormat = errors.New("config file must be .yaml, .yml or .toml")
	ErrMissingRoot         = errors.New("input.root is required")
	ErrMissingRecordsFile  = errors.New("input.records_file is required")
	ErrMissingSessions     = errors.New("input.sessions_table is required")
	ErrMissingOutputPath   = errors.New("output.sessions_path and output.subjects_path are required")
	ErrInvalidLinkTemplate = errors.New("links.default_template must contain exactly one %s")
	ErrInvalidRule         = errors.New("subjects.rules entry is invalid")
	ErrInvalidDebounce     = errors.New("watch.debounce_ms must be non-negative")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat    = errors.New("logging.format must be one of: text, json, auto")
)

// Config holds every setting of the build, tag, populate and watch commands.
type Config struct {
	Input    InputConfig    `yaml:"input" toml:"input"`
	Output   OutputConfig   `yaml:"output" toml:"output"`
	Links    LinksConfig    `yaml:"links" toml:"links"`
	Subjects SubjectsConfig `yaml:"subjects" toml:"subjects"`
	Watch    WatchConfig    `yaml:"watch" toml:"watch"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// InputConfig locates the extracted records and the curated table.
type InputConfig struct {
	Root          string `yaml:"root" toml:"root"`
	RecordsFile   string `yaml:"records_file" toml:"records_file"`
	SessionsTable string `yaml:"sessions_table" toml:"sessions_table"`
}

// OutputConfig locates the artifacts. An empty SQLitePath disables the database export.
type OutputConfig struct {
	SessionsPath string `yaml:"sessions_path" toml:"sessions_path"`
	SubjectsPath string `yaml:"subjects_path" toml:"subjects_path"`
	SQLitePath   string `yaml:"sqlite_path" toml:"sqlite_path"`
}

// LinksConfig builds the display link of sessions without a curated pdf.
type LinksConfig struct {
	DefaultTemplate string `yaml:"default_template" toml:"default_template"`
}

// SubjectsConfig tunes the classifier.
type SubjectsConfig struct {
	Fallback     string `yaml:"fallback" toml:"fallback"`
	PediatricTag string `yaml:"pediatric_tag" toml:"pediatric_tag"`
	KeepCurated  bool   `yaml:"keep_curated" toml:"keep_curated"`
	StripMarkup  *bool  `yaml:"strip_markup" toml:"strip_markup"`
	// Rules are merged over the built-in table; a tag listed here replaces the built-in patterns.
	Rules map[string][]string `yaml:"rules" toml:"rules"`
}

// MarkupStripping reports whether HTML is removed before classification (default true).
func (s SubjectsConfig) MarkupStripping() bool {
	return s.StripMarkup == nil || *s.StripMarkup
}

// WatchConfig drives the watch command.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" toml:"debounce_ms"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Load reads the configuration file (if any), applies environment overrides and validates the result.
// An explicit path, or one named by JOURNAL_CLUB_CONFIG, must exist. The resolved path is returned,
// empty when only defaults were used.
func Load(path string) (Config, string, error) {
	cfg := defaultConfig()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, "", err
	}

	if resolved != "" {
		fileCfg, err := readFile(resolved)
		if err != nil {
			return Config{}, "", err
		}
		cfg = mergeConfig(cfg, fileCfg)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return Config{}, "", fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, resolved, nil
}

func resolvePath(path string) (string, error) {
	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config %s: %w", path, err)
		}
		return path, nil
	}

	if info, err := os.Stat(DefaultPath); err == nil && info.Mode().IsRegular() {
		return DefaultPath, nil
	}
	return "", nil
}

func readFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &cfg)
	case ".toml":
		err = toml.Unmarshal(raw, &cfg)
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownConfigFormat, path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(rootEnv); v != "" {
		c.Input.Root = v
	}

	if v := os.Getenv(sessionsEnv); v != "" {
		c.Input.SessionsTable = v
	}

	if v := os.Getenv(outputDirEnv); v != "" {
		c.Output.SessionsPath = filepath.Join(v, filepath.Base(c.Output.SessionsPath))
		c.Output.SubjectsPath = filepath.Join(v, filepath.Base(c.Output.SubjectsPath))
		if c.Output.SQLitePath != "" {
			c.Output.SQLitePath = filepath.Join(v, filepath.Base(c.Output.SQLitePath))
		}
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the settings that would otherwise fail halfway through a run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input.Root) == "" {
		return ErrMissingRoot
	}
	if strings.TrimSpace(c.Input.RecordsFile) == "" {
		return ErrMissingRecordsFile
	}
	if strings.TrimSpace(c.Input.SessionsTable) == "" {
		return ErrMissingSessions
	}
	if strings.TrimSpace(c.Output.SessionsPath) == "" || strings.TrimSpace(c.Output.SubjectsPath) == "" {
		return ErrMissingOutputPath
	}

	if t := c.Links.DefaultTemplate; strings.Count(t, "%s") != 1 || strings.Count(t, "%") != 1 {
		return fmt.Errorf("%w: %q", ErrInvalidLinkTemplate, t)
	}

	for tag, patterns := range c.Subjects.Rules {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: empty tag name", ErrInvalidRule)
		}
		if len(patterns) == 0 {
			return fmt.Errorf("%w: %s has no patterns", ErrInvalidRule, tag)
		}
		for _, pattern := range patterns {
			if _, err := regexp.Compile("(?i)" + pattern); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidRule, tag, err)
			}
		}
	}

	if c.Watch.DebounceMS < 0 {
		return ErrInvalidDebounce
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return ErrInvalidLogLevel
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "text", "json", "auto":
	default:
		return ErrInvalidLogFormat
	}

	return nil
}

func mergeConfig(base, override Config) Config {
	if override.Input.Root != "" {
		base.Input.Root = override.Input.Root
	}
	if override.Input.RecordsFile != "" {
		base.Input.RecordsFile = override.Input.RecordsFile
	}
	if override.Input.SessionsTable != "" {
		base.Input.SessionsTable = override.Input.SessionsTable
	}

	if override.Output.SessionsPath != "" {
		base.Output.SessionsPath = override.Output.SessionsPath
	}
	if override.Output.SubjectsPath != "" {
		base.Output.SubjectsPath = override.Output.SubjectsPath
	}
	if override.Output.SQLitePath != "" {
		base.Output.SQLitePath = override.Output.SQLitePath
	}

	if override.Links.DefaultTemplate != "" {
		base.Links.DefaultTemplate = override.Links.DefaultTemplate
	}

	if override.Subjects.Fallback != "" {
		base.Subjects.Fallback = override.Subjects.Fallback
	}
	if override.Subjects.PediatricTag != "" {
		base.Subjects.PediatricTag = override.Subjects.PediatricTag
	}
	if override.Subjects.KeepCurated {
		base.Subjects.KeepCurated = true
	}
	if override.Subjects.StripMarkup != nil {
		base.Subjects.StripMarkup = override.Subjects.StripMarkup
	}
	if len(override.Subjects.Rules) > 0 {
		base.Subjects.Rules = override.Subjects.Rules
	}

	if override.Watch.DebounceMS != 0 {
		base.Watch.DebounceMS = override.Watch.DebounceMS
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Input: InputConfig{
			Root:          ".",
			RecordsFile:   "ent_all_results.json",
			SessionsTable: "sessions.csv",
		},
		Output: OutputConfig{
			SessionsPath: filepath.Join("data", "journal_club.json"),
			SubjectsPath: filepath.Join("data", "subject_summary.json"),
		},
		Links:    LinksConfig{DefaultTemplate: "https://pubmed.ncbi.nlm.nih.gov/%s/"},
		Subjects: SubjectsConfig{Fallback: "General ENT/Other", PediatricTag: "Pediatrics"},
		Watch:    WatchConfig{DebounceMS: 500},
		Logging:  LoggingConfig{Level: "info", Format: "auto"},
	}
}
