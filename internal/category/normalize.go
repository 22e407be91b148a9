// Package category canonicalizes supplier-specific taxonomy codes into a
// single deduplicated list of `prefix:code` strings. Each supplier ships its
// own flavor of damage; the per-supplier rules here unpack, re-prefix and
// flatten them into one shape.
package category

import "strings"

// HighPriority is the synthetic marker prepended for priority-1 items.
const HighPriority = "HIGH_PRIORITY"

// reutersDestinations is the allow-list of Reuters distribution channels
// carried through as category codes.
var reutersDestinations = map[string]bool{
	"RWS":   true,
	"RNA":   true,
	"RWSA":  true,
	"REULB": true,
	"RBN":   true,
}

// Input carries everything category normalization consumes for one item.
type Input struct {
	Supplier         Supplier
	SubjectCodes     []string
	DestinationCodes []string
	Priority         string
	BodyText         string
	MediaCatCodes    string
	AgencyMetadata   map[string]string
}

// RegionFunc infers a region marker (e.g. "N2:GB") from free text, returning
// "" when no signal is found.
type RegionFunc func(text string) string

// Normalizer holds the injected configuration the supplier rules depend on.
type Normalizer struct {
	countryRemap map[string]string
	inferRegion  RegionFunc
}

// NewNormalizer builds a Normalizer. countryRemap rewrites Reuters country
// codes; inferRegion may be nil to disable geography inference.
func NewNormalizer(countryRemap map[string]string, inferRegion RegionFunc) *Normalizer {
	return &Normalizer{countryRemap: countryRemap, inferRegion: inferRegion}
}

// Normalize produces the canonical category code list for one item. The
// output is deduplicated preserving first-seen order; priority-1 items get
// the HIGH_PRIORITY marker prepended.
func (n *Normalizer) Normalize(in Input) []string {
	var codes []string

	switch in.Supplier {
	case AP:
		codes = prefixedCodes(in.SubjectCodes, "apCat", true)
	case AFP:
		codes = prefixedCodes(in.SubjectCodes, "afpCat", true)
	case AAP:
		codes = aapCodes(in.SubjectCodes)
	case PA:
		codes = prefixedCodes(in.SubjectCodes, "paCat", true)
		codes = append(codes, paAPICodes(in)...)
	case Reuters:
		codes = n.reutersCodes(in)
	case Unknown:
		codes = prefixedCodes(in.SubjectCodes, "unknownCat", false)
	default:
		codes = prefixedCodes(in.SubjectCodes, strings.ToLower(string(in.Supplier))+"Cat", false)
	}

	// Geography inference is advisory and only fills a gap: items that
	// already carry a region code keep what their supplier said.
	if n.inferRegion != nil && !hasRegionCode(codes) {
		if marker := n.inferRegion(in.BodyText); marker != "" {
			codes = append(codes, marker)
		}
	}

	codes = dedupe(codes)
	if in.Priority == "1" {
		codes = append([]string{HighPriority}, codes...)
	}
	return codes
}

// prefixedCodes implements the shared AP/AFP/PA shape: drop service routing
// codes, unpack with the supplier's default prefix, and optionally remap the
// iptccat prefix these agencies mislabel their own codes with.
func prefixedCodes(raw []string, defaultPrefix string, remapIPTC bool) []string {
	var out []string
	for _, code := range raw {
		if strings.Contains(code, "service:") {
			continue
		}
		for _, cc := range Unpack(code, defaultPrefix) {
			if remapIPTC && cc.Prefix == "iptccat" {
				cc.Prefix = defaultPrefix
			}
			out = append(out, cc.String())
		}
	}
	return dedupe(out)
}

// aapCodes flattens AAP's compound codes. Pipe-separated pieces are split
// first; pieces carrying a colon are IPTC media topics kept verbatim, pieces
// carrying a plus are legacy subject codes reduced to the part before the
// plus, and anything else (stray words the feed leaks in) is dropped. Media
// topics sort before legacy subject codes.
func aapCodes(raw []string) []string {
	var topics, legacy []string
	for _, code := range raw {
		for _, piece := range strings.Split(code, "|") {
			piece = strings.TrimSpace(piece)
			switch {
			case strings.Contains(piece, ":"):
				topics = append(topics, piece)
			case strings.Contains(piece, "+"):
				subject := strings.TrimSpace(strings.SplitN(piece, "+", 2)[0])
				if subject != "" {
					legacy = append(legacy, "subj:"+subject)
				}
			}
		}
	}
	return dedupe(append(topics, legacy...))
}

// paAPICodes is the PA API layer on top of the PA unpack rules: the newer
// feed delivers its taxonomy through mediaCatCodes and agency metadata
// instead of subjects.
func paAPICodes(in Input) []string {
	var out []string
	for _, code := range strings.Split(in.MediaCatCodes, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		for _, cc := range Unpack(code, "paCat") {
			if cc.Prefix == "iptccat" {
				cc.Prefix = "paCat"
			}
			out = append(out, cc.String())
		}
	}
	if subjects, ok := in.AgencyMetadata["subjects"]; ok {
		for _, code := range strings.Split(subjects, ",") {
			code = strings.TrimSpace(code)
			if code == "" || strings.Contains(code, "service:") {
				continue
			}
			for _, cc := range Unpack(code, "paCat") {
				if cc.Prefix == "iptccat" {
					cc.Prefix = "paCat"
				}
				out = append(out, cc.String())
			}
		}
	}
	return dedupe(out)
}

// reutersCodes keeps allow-listed destinations under the REUTERS prefix and
// carries subject topic codes through, remapping legacy country codes.
func (n *Normalizer) reutersCodes(in Input) []string {
	var out []string
	for _, dest := range in.DestinationCodes {
		dest = strings.TrimSpace(dest)
		if reutersDestinations[dest] {
			out = append(out, "REUTERS:"+dest)
		}
	}
	for _, subject := range in.SubjectCodes {
		for _, cc := range Unpack(subject, "topic") {
			code := cc.String()
			if remapped, ok := n.countryRemap[code]; ok {
				code = remapped
			}
			out = append(out, code)
		}
	}
	return dedupe(out)
}

func hasRegionCode(codes []string) bool {
	for _, code := range codes {
		if strings.HasPrefix(code, "N2:") {
			return true
		}
	}
	return false
}

func dedupe(codes []string) []string {
	out := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
