package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	appDirName          = ".budget-tracker"
	defaultDataFileName = "budget_data.json"
)

type Config struct {
	// DataFile is the ledger location; may carry a backend prefix (e.g. "sqlite:~/budget.db")
	DataFile string `yaml:"data_file,omitempty"`

	// Currency is the ISO code used for display only; amounts are never converted
	Currency string `yaml:"currency,omitempty"`

	// ExportDir is where exported summaries are written. Defaults to the working directory.
	ExportDir string `yaml:"export_dir,omitempty"`

	// Output is the default console format, "table" or "json"
	Output string `yaml:"output,omitempty"`

	// Limits are default budget limits given to every newly created month
	Limits map[string]float64 `yaml:"limits,omitempty"`

	// parsed limits (not serialized)
	defaultLimits Amounts `yaml:"-"`
}

// DefaultConfigPath returns the default config file path (~/.budget-tracker/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, appDirName, "config.yaml")
}

// DefaultDataPath returns the default ledger path (~/.budget-tracker/budget_data.json),
// falling back to the working directory when there is no home directory
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDataFileName
	}
	return filepath.Join(home, appDirName, defaultDataFileName)
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Output != "" {
		if err := ValidateOutputFormat(cfg.Output); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	// Validate default limits
	cfg.defaultLimits = Amounts{}
	for raw, limit := range cfg.Limits {
		category := NormalizeCategory(raw)
		if category == "" {
			return nil, fmt.Errorf("%w: empty category in config limits", ErrInvalidCategory)
		}
		if limit < 0 {
			return nil, fmt.Errorf("config limit for %q: %w: %v must not be negative", category, ErrInvalidLimit, limit)
		}
		cfg.defaultLimits[category] = decimal.NewFromFloat(limit)
	}

	cfg.DataFile = expandHome(cfg.DataFile)
	cfg.ExportDir = expandHome(cfg.ExportDir)

	return &cfg, nil
}

// LoadConfigOrDefault loads path if given. Without an explicit path the default
// location is tried, and a missing default file yields an empty config.
func LoadConfigOrDefault(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	def := DefaultConfigPath()
	if def == "" {
		return &Config{}, nil
	}
	if _, err := os.Stat(def); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadConfig(def)
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultLimits returns the validated default limits, or nil
func (c *Config) DefaultLimits() Amounts {
	if c == nil {
		return nil
	}
	return c.defaultLimits
}

// expandHome replaces a leading "~/" with the user's home directory.
// A backend prefix such as "sqlite:~/x.db" is kept in front.
func expandHome(p string) string {
	prefix := ""
	if idx := strings.Index(p, ":"); idx != -1 && IsKnownBackend(p[:idx]) {
		prefix, p = p[:idx+1], p[idx+1:]
	}
	if !strings.HasPrefix(p, "~/") {
		return prefix + p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return prefix + p
	}
	return prefix + filepath.Join(home, p[2:])
}
