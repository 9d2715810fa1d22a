package shared

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/sentrylint/internal/settings"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./sentrylint.db"
	} `yaml:"database"`

	Scan struct {
		Sources  []string `yaml:"sources"`   // ["./src"]
		RulesDir string   `yaml:"rules_dir"` // extra rule packs; "" = builtin only
	} `yaml:"scan"`

	// Analyzer settings, merged field by field against the fixed defaults.
	Analyzer settings.Partial `yaml:"analyzer"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./sentrylint.db"
	c.Reporting.OutDir = "./reports"
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("SENTRYLINT_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("SENTRYLINT_RULES_DIR"); v != "" {
		c.Scan.RulesDir = v
	}
	if v := os.Getenv("SENTRYLINT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("SENTRYLINT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SENTRYLINT_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	return c, nil
}

// RulesDir resolves the active rules directory: config/env override first,
// then a path next to the executable.
func (c Config) RulesDir() string {
	install, err := os.Executable()
	if err != nil {
		install = "."
	} else {
		install = dirOf(install)
	}
	return settings.ResolveRulesDir(c.Scan.RulesDir, install)
}

func dirOf(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' || p[i] == '\\' {
			return p[:i]
		}
	}
	return "."
}
