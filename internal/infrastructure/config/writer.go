package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# wikipeople configuration

# Where the database, candidate files and images are written.
output_directory: output

# Contact address sent in the User-Agent of every request (required).
email: you@example.com

# Candidates with fewer references are never stored.
min_ref_count_for_summary: 10

# People in these professions need at least this many references.
min_ref_counts_per_profession:
  politician: 40

# People whose only profession is this one need at least this many references.
min_ref_counts_per_sole_profession:
  athlete: 60

keywords_file: keyword_to_professions.csv

classifier:
  summary_window: 300

source:
  api_url: https://en.wikipedia.org/w/api.php
  timeout: 30s

images:
  thumbnail_size: 0

embedder:
  model: text-embedding-3-small
  # api_key: your-api-key (or set OPENAI_API_KEY env var)

qdrant:
  host: localhost
  port: 6334
  collection: wikipeople
  # api_key: your-api-key (for Qdrant Cloud)
`

// DefaultKeywordsCSV seeds the keyword ruleset.
const DefaultKeywordsCSV = `keyword,profession
actor,actor
actress,actor
painter,artist
sculptor,artist
footballer,athlete
composer,musician
singer,musician
novelist,writer
poet,writer
politician,politician
king,royalty
queen,royalty
`

// WriteDefault creates the .wikipeople directory and writes a default config
// file. A starter keyword ruleset is written next to it unless one exists.
func WriteDefault(basePath string) error {
	configDir := ConfigDir(basePath)
	configFile := ConfigFilePath(basePath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	keywords := filepath.Join(basePath, DefaultKeywordsFile)
	if _, err := os.Stat(keywords); os.IsNotExist(err) {
		if err := os.WriteFile(keywords, []byte(DefaultKeywordsCSV), 0644); err != nil {
			return fmt.Errorf("writing keyword ruleset: %w", err)
		}
	}

	return nil
}

// Exists checks if a wikipeople config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
