// Package config resolves the server credentials and tool defaults for a
// run. Credentials come from the environment, with an optional YAML
// config file as fallback; the environment always wins.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvURL and EnvToken are the environment variables every invocation
// requires.
const (
	EnvURL   = "MEALIE_URL"
	EnvToken = "MEALIE_TOKEN"
)

// ConfigFilenames contains the possible config file names, tried in order
// against the working directory and then the home directory.
var ConfigFilenames = []string{
	".mealie-api.yaml",
	".mealie-api.yml",
}

// Credentials identify the target server. They are resolved once at
// startup and read-only for the lifetime of the run.
type Credentials struct {
	BaseURL string // trailing slash stripped
	Token   string
}

// FileConfig is the optional YAML config file.
type FileConfig struct {
	URL         string `yaml:"url,omitempty"`
	Token       string `yaml:"token,omitempty"`
	Timeout     string `yaml:"timeout,omitempty"` // duration string, e.g. "30s"
	NoColor     bool   `yaml:"noColor,omitempty"`
	HistoryPath string `yaml:"historyPath,omitempty"`
}

// MissingVarError reports a required setting that is neither in the
// environment nor the config file.
type MissingVarError struct {
	Name string
	Hint string
}

func (e *MissingVarError) Error() string {
	return fmt.Sprintf("%s environment variable is not set", e.Name)
}

// Load resolves credentials from the environment, falling back to the
// optional config file. Both values are required; a missing one fails the
// invocation before any request is attempted.
func Load() (*Credentials, *FileConfig, error) {
	file, err := FindConfigFile()
	if err != nil {
		return nil, nil, err
	}

	url := os.Getenv(EnvURL)
	if url == "" {
		url = file.URL
	}
	if url == "" {
		return nil, nil, &MissingVarError{
			Name: EnvURL,
			Hint: "Set it with: export MEALIE_URL='https://your-mealie-instance.com'",
		}
	}

	token := os.Getenv(EnvToken)
	if token == "" {
		token = file.Token
	}
	if token == "" {
		return nil, nil, &MissingVarError{
			Name: EnvToken,
			Hint: "Set it with: export MEALIE_TOKEN='your-api-token'",
		}
	}

	return &Credentials{
		BaseURL: strings.TrimRight(url, "/"),
		Token:   token,
	}, file, nil
}

// FindConfigFile searches the working directory and the home directory
// for a config file. No file at all is not an error; defaults apply.
func FindConfigFile() (*FileConfig, error) {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}

	for _, dir := range dirs {
		for _, name := range ConfigFilenames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return loadConfigFile(path)
			}
		}
	}

	return &FileConfig{}, nil
}

func loadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &FileConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	return cfg, nil
}
