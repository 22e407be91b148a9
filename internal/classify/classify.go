// Package classify evaluates normalized records against named search-criteria
// presets. Classification runs consumer-side at query time; it is never part
// of ingestion.
package classify

import "newswire/wirenorm/internal/category"

// SearchCriteria is one rule inside a preset. The exclude lists are accepted
// in configuration for forward compatibility but are not consulted by
// matching.
type SearchCriteria struct {
	CategoryCodes        []string `yaml:"categoryCodes"`
	CategoryCodesExclude []string `yaml:"categoryCodesExclude"`
	Keywords             []string `yaml:"keywords"`
	KeywordsExclude      []string `yaml:"keywordsExclude"`
}

// Preset is a named saved-search rule, keyed per supplier.
type Preset struct {
	Name     string                                 `yaml:"name"`
	Criteria map[category.Supplier][]SearchCriteria `yaml:"criteria"`
}

// Record is the slice of a processed record that classification consumes.
type Record struct {
	CategoryCodes []string
	Supplier      category.Supplier
	Keywords      []string
}

// Engine evaluates records against an ordered preset table.
type Engine struct {
	presets []Preset
}

// NewEngine builds an Engine over the given preset table. Order is
// significant: results come back in table order.
func NewEngine(presets []Preset) *Engine {
	return &Engine{presets: presets}
}

// Classify returns the names of all presets the record matches, in preset
// table order. A preset matches when any of its criteria for the record's
// supplier matches.
func (e *Engine) Classify(rec Record) []string {
	matched := []string{}
	for _, preset := range e.presets {
		for _, criteria := range preset.Criteria[rec.Supplier] {
			if criteria.matches(rec) {
				matched = append(matched, preset.Name)
				break
			}
		}
	}
	return matched
}

// matches requires overlap on category codes and keywords, with an empty
// criteria list counting as a wildcard. Exclude lists are intentionally not
// applied.
func (c SearchCriteria) matches(rec Record) bool {
	if len(c.CategoryCodes) > 0 && !overlaps(c.CategoryCodes, rec.CategoryCodes) {
		return false
	}
	if len(c.Keywords) > 0 && !overlaps(c.Keywords, rec.Keywords) {
		return false
	}
	return true
}

func overlaps(criteria, values []string) bool {
	for _, c := range criteria {
		for _, v := range values {
			if c == v {
				return true
			}
		}
	}
	return false
}
