package rules

import (
	"newswire/wirenorm/internal/category"
	"newswire/wirenorm/internal/classify"
)

// defaultSuppliers maps the raw channel labels the feeds actually send to
// canonical suppliers. This table must track upstream feed naming; unmatched
// labels resolve to Unknown at lookup time.
func defaultSuppliers() map[string]category.Supplier {
	return map[string]category.Supplier{
		"AP":                    category.AP,
		"AP WIRE":               category.AP,
		"AP NATIONAL":           category.AP,
		"AP INTERNATIONAL":      category.AP,
		"AP BUSINESSWIRE":       category.AP,
		"AP ONLINE":             category.AP,
		"ASSOCIATED PRESS":      category.AP,
		"AAP":                   category.AAP,
		"AAP NEWSWIRE":          category.AAP,
		"AAP GENERAL":           category.AAP,
		"AAP SPORT":             category.AAP,
		"AFP":                   category.AFP,
		"AFP ENGLISH WIRE":      category.AFP,
		"AGENCE FRANCE-PRESSE":  category.AFP,
		"PA":                    category.PA,
		"PA NEWS":               category.PA,
		"PA SPORT":              category.PA,
		"PA SPORT DATA":         category.PA,
		"PA ENTERTAINMENT":      category.PA,
		"PA SCOTLAND":           category.PA,
		"PA API":                category.PA,
		"PRESS ASSOCIATION":     category.PA,
		"REUTERS":               category.Reuters,
		"REUTERS NEWS":          category.Reuters,
		"REUTERS WORLD SERVICE": category.Reuters,
		"RTRS":                  category.Reuters,
	}
}

func defaultCountryRemap() map[string]string {
	return map[string]string{
		"N2:UK":  "N2:GB",
		"N2:GBN": "N2:GB",
		"N2:EIR": "N2:IE",
	}
}

// defaultPresets is the ordered preset table. Order is significant: results
// of classification come back in this order.
func defaultPresets() []classify.Preset {
	return []classify.Preset{
		{
			Name: "all-uk",
			Criteria: map[category.Supplier][]classify.SearchCriteria{
				category.PA: {
					{CategoryCodes: []string{"paCat:HHH", "paCat:SCN", "paCat:CCC", "paCat:PPP", "N2:GB"}},
				},
				category.Reuters: {
					{CategoryCodes: []string{"N2:GB", "REUTERS:REULB"}},
				},
				category.AP: {
					{CategoryCodes: []string{"N2:GB"}},
					{CategoryCodes: []string{"apCat:i"}, Keywords: []string{"UK", "Britain", "London"}},
				},
				category.AFP: {
					{CategoryCodes: []string{"N2:GB"}},
					{Keywords: []string{"UK", "Britain", "London"}},
				},
				category.AAP: {
					{CategoryCodes: []string{"N2:GB"}},
					{Keywords: []string{"UK", "Britain"}},
				},
			},
		},
		{
			Name: "high-priority",
			Criteria: map[category.Supplier][]classify.SearchCriteria{
				category.AP:      {{CategoryCodes: []string{category.HighPriority}}},
				category.AAP:     {{CategoryCodes: []string{category.HighPriority}}},
				category.AFP:     {{CategoryCodes: []string{category.HighPriority}}},
				category.PA:      {{CategoryCodes: []string{category.HighPriority}}},
				category.Reuters: {{CategoryCodes: []string{category.HighPriority}}},
				category.Unknown: {{CategoryCodes: []string{category.HighPriority}}},
			},
		},
		{
			Name: "all-sport",
			Criteria: map[category.Supplier][]classify.SearchCriteria{
				category.PA:      {{CategoryCodes: []string{"paCat:SSS", "paCat:SRES"}}},
				category.AP:      {{CategoryCodes: []string{"apCat:s"}}},
				category.AFP:     {{CategoryCodes: []string{"afpCat:SPO"}}},
				category.AAP:     {{CategoryCodes: []string{"subj:15000000", "medtop:20000822"}}},
				category.Reuters: {{CategoryCodes: []string{"topic:SPO"}}},
			},
		},
		{
			Name: "business",
			Criteria: map[category.Supplier][]classify.SearchCriteria{
				category.PA:      {{CategoryCodes: []string{"paCat:FFF", "paCat:CIT"}}},
				category.AP:      {{CategoryCodes: []string{"apCat:f", "apCat:b"}}},
				category.AFP:     {{CategoryCodes: []string{"afpCat:ECO", "afpCat:FIN"}}},
				category.AAP:     {{CategoryCodes: []string{"subj:04000000", "medtop:20000170"}}},
				category.Reuters: {{CategoryCodes: []string{"topic:BUS", "REUTERS:RBN"}}},
			},
		},
	}
}
