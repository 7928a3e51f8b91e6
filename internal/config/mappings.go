package config

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"localesync/internal/domain/entities"
)

// DefaultMappings returns the tables of the rules node packages.
func DefaultMappings() entities.Mappings {
	return entities.Mappings{
		Locales: []string{
			"en", "cs", "da", "de", "el", "es", "fi", "fr", "hu", "it", "ko",
			"nb-NO", "nl", "pl", "pt", "ro", "ru", "sk", "sv", "tr",
			"zh-Hans", "zh-Hant",
		},
		LocaleFolders: map[string]string{
			"en":      "en-US",
			"zh-Hans": "zh-CN",
			"zh-Hant": "zh-TW",
		},
		ComponentPaths: map[string]string{
			"rules-debug": "debug",
		},
		Namespaces: map[string]string{
			"input-parameters":         "InputParameters",
			"data-collector-v2":        "DataCollector-V2",
			"data-collector-v2-1":      "DataCollector-V2-1",
			"list-data-collector-v2":   "ListDataCollector-V2",
			"list-data-collector-v2-1": "ListDataCollector-V2-1",
			"result":                   "result",
			"result-v2":                "Result-V2",
			"topology":                 "topology",
			"rules-debug":              "rules-debug",
		},
		HelpKey: "HTML_HELP_TEMPLATE",
	}
}

// MappingsFile is the TOML form of the mapping tables:
//
//	locales = ["en", "de"]
//	help_key = "HTML_HELP_TEMPLATE"
//
//	[locale_folders]
//	en = "en-US"
//
//	[component_paths]
//	rules-debug = "debug"
//
//	[namespaces]
//	result = "result"
type MappingsFile struct {
	Locales        []string          `toml:"locales"`
	HelpKey        string            `toml:"help_key"`
	LocaleFolders  map[string]string `toml:"locale_folders"`
	ComponentPaths map[string]string `toml:"component_paths"`
	Namespaces     map[string]string `toml:"namespaces"`
}

func LoadMappingsFile(path string) (*MappingsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: mappings file: %w", err)
	}
	var mf MappingsFile
	if err := toml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("config: mappings file %s: %w", path, err)
	}
	return &mf, nil
}

// Apply returns base with the file's entries merged in. A non-empty locale
// list replaces the base list; table entries are added or replaced one by
// one.
func (mf *MappingsFile) Apply(base entities.Mappings) entities.Mappings {
	out := entities.Mappings{
		Locales:        slices.Clone(base.Locales),
		LocaleFolders:  maps.Clone(base.LocaleFolders),
		ComponentPaths: maps.Clone(base.ComponentPaths),
		Namespaces:     maps.Clone(base.Namespaces),
		HelpKey:        base.HelpKey,
	}
	if len(mf.Locales) > 0 {
		out.Locales = slices.Clone(mf.Locales)
	}
	if mf.HelpKey != "" {
		out.HelpKey = mf.HelpKey
	}
	out.LocaleFolders = merge(out.LocaleFolders, mf.LocaleFolders)
	out.ComponentPaths = merge(out.ComponentPaths, mf.ComponentPaths)
	out.Namespaces = merge(out.Namespaces, mf.Namespaces)
	return out
}

func merge(dst, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	maps.Copy(dst, src)
	return dst
}
