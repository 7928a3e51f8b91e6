package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"localesync/internal/domain"
	"localesync/internal/domain/entities"
)

type Config struct {
	I18nDir       string
	TemplateFile  string
	NodesDir      string
	NodeDirPrefix string
	LocalesSubdir string
	MappingsFile  string
	BaseLocale    string
	LogEnv        string

	Mappings entities.Mappings
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when the variables come from the environment (CI, make).
	}

	cfg := &Config{
		I18nDir:       getenv("I18N_DIR", "i18n"),
		TemplateFile:  getenv("TEMPLATE_FILE", "template.json"),
		NodesDir:      getenv("NODES_DIR", "rules-nodes"),
		NodeDirPrefix: getenv("NODE_DIR_PREFIX", "rules-node-"),
		LocalesSubdir: getenv("LOCALES_SUBDIR", "locales"),
		MappingsFile:  os.Getenv("MAPPINGS_FILE"),
		BaseLocale:    getenv("BASE_LOCALE", "en"),
		LogEnv:        getenv("LOG_ENV", "development"),
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize builds the mapping tables, merging MappingsFile over the
// defaults, and validates the result. Call it again after changing fields.
func (c *Config) Finalize() error {
	mappings := DefaultMappings()
	if c.MappingsFile != "" {
		override, err := LoadMappingsFile(c.MappingsFile)
		if err != nil {
			return err
		}
		mappings = override.Apply(mappings)
	}
	c.Mappings = mappings
	return c.validate()
}

// TemplatePath returns the template location; a bare file name is taken
// relative to I18nDir.
func (c *Config) TemplatePath() string {
	if filepath.Base(c.TemplateFile) != c.TemplateFile {
		return c.TemplateFile
	}
	return filepath.Join(c.I18nDir, c.TemplateFile)
}

// validate checks directories and every locale identifier.
func (c *Config) validate() error {
	if strings.TrimSpace(c.I18nDir) == "" {
		return fmt.Errorf("config: I18N_DIR is required and cannot be empty")
	}
	if strings.TrimSpace(c.NodesDir) == "" {
		return fmt.Errorf("config: NODES_DIR is required and cannot be empty")
	}
	if strings.TrimSpace(c.TemplateFile) == "" {
		return fmt.Errorf("config: TEMPLATE_FILE is required and cannot be empty")
	}

	if _, err := language.Parse(c.BaseLocale); err != nil {
		return fmt.Errorf("config: BASE_LOCALE %q: %w", c.BaseLocale, domain.ErrInvalidLocale)
	}
	if len(c.Mappings.Locales) == 0 {
		return fmt.Errorf("config: at least one supported locale is required")
	}
	seen := make(map[string]bool, len(c.Mappings.Locales))
	for _, id := range c.Mappings.Locales {
		if _, err := language.Parse(id); err != nil {
			return fmt.Errorf("config: locale %q: %w", id, domain.ErrInvalidLocale)
		}
		if seen[id] {
			return fmt.Errorf("config: locale %q is listed twice", id)
		}
		seen[id] = true
	}
	for id, folder := range c.Mappings.LocaleFolders {
		if !isPathSegment(folder) {
			return fmt.Errorf("config: folder %q for locale %q must be a single path segment", folder, id)
		}
	}
	for component, segment := range c.Mappings.ComponentPaths {
		if !isPathSegment(segment) {
			return fmt.Errorf("config: path %q for component %q must be a single path segment", segment, component)
		}
	}
	return nil
}

// isPathSegment reports whether s names exactly one directory entry.
func isPathSegment(s string) bool {
	return s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
