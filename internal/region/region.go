// Package region infers a UK location signal from free text. The signal is
// advisory only: it feeds a single category code marker and false positives
// or negatives are acceptable.
package region

import (
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/rs/zerolog/log"
)

// MarkerGB is the category code emitted when UK geography is detected.
const MarkerGB = "N2:GB"

// Extractor pulls candidate place-name strings out of free text. The
// production extractor runs NLP entity extraction; tests inject a fake.
type Extractor func(text string) []string

// Inferrer matches extracted places against a gazetteer of UK place names.
type Inferrer struct {
	gazetteer []string
	extract   Extractor
}

// NewInferrer builds an Inferrer over the given gazetteer (entries are
// lowercased once here). A nil extractor selects the prose-based one.
func NewInferrer(gazetteer []string, extract Extractor) *Inferrer {
	if extract == nil {
		extract = ProseExtractor
	}
	entries := make([]string, 0, len(gazetteer))
	for _, entry := range gazetteer {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return &Inferrer{gazetteer: entries, extract: extract}
}

// Infer returns MarkerGB when any extracted place matches the gazetteer,
// "" otherwise. Extracted places are lowercased and split on commas and
// newlines before substring matching.
func (i *Inferrer) Infer(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	for _, place := range i.extract(text) {
		for _, fragment := range splitPlace(place) {
			for _, entry := range i.gazetteer {
				if strings.Contains(fragment, entry) {
					return MarkerGB
				}
			}
		}
	}
	return ""
}

func splitPlace(place string) []string {
	place = strings.ToLower(place)
	var fragments []string
	for _, part := range strings.FieldsFunc(place, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		part = strings.TrimSpace(part)
		if part != "" {
			fragments = append(fragments, part)
		}
	}
	return fragments
}

// ProseExtractor extracts place-like entities via NLP. Extraction errors are
// logged and treated as "no places found".
func ProseExtractor(text string) []string {
	doc, err := prose.NewDocument(text)
	if err != nil {
		log.Warn().Err(err).Msg("Place extraction failed")
		return nil
	}

	var places []string
	for _, ent := range doc.Entities() {
		if ent.Label == "GPE" {
			places = append(places, ent.Text)
		}
	}
	return places
}
