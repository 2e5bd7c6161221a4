// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for wikipeople configuration.
	DefaultConfigDir = ".wikipeople"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultKeywordsFile is the default keyword ruleset file name.
	DefaultKeywordsFile = "keyword_to_professions.csv"
	// DefaultSummaryWindow is how many leading summary characters the classifier reads.
	DefaultSummaryWindow = 300
)

// Config holds everything a pipeline run needs. It is loaded once and passed
// explicitly to each component.
type Config struct {
	OutputDirectory               string         `yaml:"output_directory"`
	Email                         string         `yaml:"email"`
	MinRefCountForSummary         int            `yaml:"min_ref_count_for_summary"`
	MinRefCountsPerProfession     map[string]int `yaml:"min_ref_counts_per_profession,omitempty"`
	MinRefCountsPerSoleProfession map[string]int `yaml:"min_ref_counts_per_sole_profession,omitempty"`
	KeywordsFile                  string         `yaml:"keywords_file,omitempty"`

	Classifier ClassifierConfig `yaml:"classifier,omitempty"`
	Source     SourceConfig     `yaml:"source,omitempty"`
	Images     ImagesConfig     `yaml:"images,omitempty"`
	Embedder   EmbedderConfig   `yaml:"embedder,omitempty"`
	Qdrant     QdrantConfig     `yaml:"qdrant,omitempty"`
	SQLite     SQLiteConfig     `yaml:"sqlite,omitempty"`
}

// ClassifierConfig tunes keyword matching.
type ClassifierConfig struct {
	SummaryWindow int `yaml:"summary_window,omitempty"`
}

// SourceConfig points at the encyclopedia API.
type SourceConfig struct {
	APIURL  string        `yaml:"api_url,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// ImagesConfig controls portrait storage. A zero ThumbnailSize disables thumbnails.
type ImagesConfig struct {
	ThumbnailSize int `yaml:"thumbnail_size,omitempty"`
}

// EmbedderConfig holds configuration for the embedding provider.
type EmbedderConfig struct {
	Model     string `yaml:"model,omitempty"`
	APIKey    string `yaml:"api_key,omitempty"`
	BatchSize int    `yaml:"batch_size,omitempty"`
}

// QdrantConfig holds configuration for the Qdrant vector database.
type QdrantConfig struct {
	Host       string `yaml:"host,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Collection string `yaml:"collection,omitempty"`
	APIKey     string `yaml:"api_key,omitempty"`
	UseTLS     bool   `yaml:"use_tls,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite person store.
type SQLiteConfig struct {
	// Path defaults to people.db inside the output directory.
	Path string `yaml:"path,omitempty"`
}

// ConfigError reports a missing or invalid configuration. It is fatal at startup.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		OutputDirectory:       "output",
		MinRefCountForSummary: 10,
		KeywordsFile:          DefaultKeywordsFile,
		Classifier: ClassifierConfig{
			SummaryWindow: DefaultSummaryWindow,
		},
		Source: SourceConfig{
			APIURL:  "https://en.wikipedia.org/w/api.php",
			Timeout: 30 * time.Second,
		},
		Embedder: EmbedderConfig{
			Model:     "text-embedding-3-small",
			BatchSize: 64,
		},
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "wikipeople",
		},
	}
}

// Load loads configuration from the .wikipeople directory in the given path.
// Relative file locations are resolved against basePath.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, &ConfigError{Path: configFile, Err: errors.New("not found (run 'wikipeople init' first)")}
	}
	if err != nil {
		return nil, &ConfigError{Path: configFile, Err: err}
	}

	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ConfigError{Path: configFile, Err: fmt.Errorf("parsing: %w", err)}
	}

	cfg.applyEnvOverrides()
	cfg.resolvePaths(basePath)

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Path: configFile, Err: err}
	}

	return cfg, nil
}

// Validate checks the values a run cannot do without.
func (c *Config) Validate() error {
	if c.OutputDirectory == "" {
		return errors.New("output_directory is required")
	}
	if c.Email == "" {
		return errors.New("email is required (it identifies requests to the encyclopedia)")
	}
	if c.MinRefCountForSummary < 0 {
		return fmt.Errorf("min_ref_count_for_summary must not be negative, got %d", c.MinRefCountForSummary)
	}
	for profession, n := range c.MinRefCountsPerProfession {
		if n < 0 {
			return fmt.Errorf("min_ref_counts_per_profession[%s] must not be negative", profession)
		}
	}
	for profession, n := range c.MinRefCountsPerSoleProfession {
		if n < 0 {
			return fmt.Errorf("min_ref_counts_per_sole_profession[%s] must not be negative", profession)
		}
	}
	if c.Classifier.SummaryWindow <= 0 {
		return fmt.Errorf("classifier.summary_window must be positive, got %d", c.Classifier.SummaryWindow)
	}
	if c.Source.Timeout <= 0 {
		return errors.New("source.timeout must be positive")
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if email := os.Getenv("WIKIPEOPLE_EMAIL"); email != "" {
		c.Email = email
	}
	if dir := os.Getenv("WIKIPEOPLE_OUTPUT_DIR"); dir != "" {
		c.OutputDirectory = dir
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.Embedder.APIKey == "" {
		c.Embedder.APIKey = key
	}
	if key := os.Getenv("QDRANT_API_KEY"); key != "" && c.Qdrant.APIKey == "" {
		c.Qdrant.APIKey = key
	}
}

func (c *Config) resolvePaths(basePath string) {
	if c.OutputDirectory != "" && !filepath.IsAbs(c.OutputDirectory) {
		c.OutputDirectory = filepath.Join(basePath, c.OutputDirectory)
	}
	if c.KeywordsFile != "" && !filepath.IsAbs(c.KeywordsFile) {
		c.KeywordsFile = filepath.Join(basePath, c.KeywordsFile)
	}
	if c.SQLite.Path != "" && c.SQLite.Path != ":memory:" && !filepath.IsAbs(c.SQLite.Path) {
		c.SQLite.Path = filepath.Join(basePath, c.SQLite.Path)
	}
}

// DatabasePath returns the SQLite file holding people and associations.
func (c *Config) DatabasePath() string {
	if c.SQLite.Path != "" {
		return c.SQLite.Path
	}
	return filepath.Join(c.OutputDirectory, "people.db")
}

// CandidateDir returns the directory holding per-year candidate files.
func (c *Config) CandidateDir() string {
	return filepath.Join(c.OutputDirectory, "birth_year_files")
}

// ImageDir returns the directory holding downloaded portraits.
func (c *Config) ImageDir() string {
	return filepath.Join(c.OutputDirectory, "images")
}

// SemanticEnabled reports whether the embedding index can be used.
func (c *Config) SemanticEnabled() bool {
	return c.Embedder.APIKey != ""
}

// ConfigDir returns the path to the .wikipeople config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}
