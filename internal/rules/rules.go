// Package rules holds the pipeline's injected configuration data: the
// supplier lookup table, the UK gazetteer, the Reuters country remap and the
// classification preset table. Defaults are compiled in; a YAML rules file
// overrides each section it sets.
package rules

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"newswire/wirenorm/internal/category"
	"newswire/wirenorm/internal/classify"
)

// Rules is the full injected configuration set.
type Rules struct {
	// Suppliers maps raw source-feed labels to canonical suppliers,
	// case-sensitive exact match.
	Suppliers map[string]category.Supplier `yaml:"suppliers"`

	// Gazetteer lists UK place names for region inference.
	Gazetteer []string `yaml:"gazetteer"`

	// ReutersCountryRemap rewrites legacy Reuters country codes.
	ReutersCountryRemap map[string]string `yaml:"reuters_country_remap"`

	// Presets is the ordered classification preset table.
	Presets []classify.Preset `yaml:"presets"`
}

// Default returns the compiled-in rule set.
func Default() *Rules {
	return &Rules{
		Suppliers:           defaultSuppliers(),
		Gazetteer:           defaultGazetteer(),
		ReutersCountryRemap: defaultCountryRemap(),
		Presets:             defaultPresets(),
	}
}

// Load reads a YAML rules file over the defaults. Sections absent from the
// file keep their default value. An empty path returns the defaults.
func Load(path string) (*Rules, error) {
	r := Default()
	if path == "" {
		return r, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var overrides Rules
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	if overrides.Suppliers != nil {
		r.Suppliers = overrides.Suppliers
	}
	if overrides.Gazetteer != nil {
		r.Gazetteer = overrides.Gazetteer
	}
	if overrides.ReutersCountryRemap != nil {
		r.ReutersCountryRemap = overrides.ReutersCountryRemap
	}
	if overrides.Presets != nil {
		r.Presets = overrides.Presets
	}

	log.Info().
		Str("path", path).
		Int("suppliers", len(r.Suppliers)).
		Int("gazetteer", len(r.Gazetteer)).
		Int("presets", len(r.Presets)).
		Msg("Loaded rules file")
	return r, nil
}
