// Package pipeline chains the per-item transforms: tolerant JSON parsing,
// schema validation, HTML body cleaning, supplier resolution, category code
// normalization and region inference. Each invocation is pure and operates
// only on its own input, so items can be processed concurrently without
// locking.
package pipeline

import (
	"fmt"

	"newswire/wirenorm/internal/category"
	"newswire/wirenorm/internal/htmlclean"
	"newswire/wirenorm/internal/jsonrepair"
	"newswire/wirenorm/internal/models"
	"newswire/wirenorm/internal/payload"
	"newswire/wirenorm/internal/region"
	"newswire/wirenorm/internal/rules"
)

// idFields are the payload fields scraped, in order, when the caller supplies
// no external id.
var idFields = []string{"externalId", "uri", "guid"}

// Pipeline holds the injected configuration shared across invocations. It is
// immutable after construction and safe for concurrent use.
type Pipeline struct {
	suppliers  map[string]category.Supplier
	normalizer *category.Normalizer
}

// New builds a Pipeline from a rule set. A nil extractor selects the NLP one.
func New(r *rules.Rules, extract region.Extractor) *Pipeline {
	inferrer := region.NewInferrer(r.Gazetteer, extract)
	return &Pipeline{
		suppliers:  r.Suppliers,
		normalizer: category.NewNormalizer(r.ReutersCountryRemap, inferrer.Infer),
	}
}

// Process transforms one raw payload into a ProcessedRecord. externalID is
// the caller-supplied identity key; when empty, the payload's own identifier
// fields are used. sourceFeedHint stands in for a missing sourceFeed field.
//
// The item either fully succeeds or fully fails with an *ItemError; no
// partially-transformed record is ever returned.
func (p *Pipeline) Process(raw []byte, externalID, sourceFeedHint string) (*models.ProcessedRecord, error) {
	doc, err := jsonrepair.RepairAndParse(raw)
	if err != nil {
		id := externalID
		for _, field := range idFields {
			if id != "" {
				break
			}
			id = jsonrepair.ExtractField(raw, field)
		}
		return nil, &ItemError{Stage: StageParse, ExternalID: id, Err: err}
	}

	if externalID == "" {
		for _, field := range idFields {
			if s, ok := doc[field].(string); ok && s != "" {
				externalID = s
				break
			}
		}
	}

	body, err := payload.Validate(doc)
	if err != nil {
		return nil, &ItemError{Stage: StageValidate, ExternalID: externalID, Err: err}
	}

	if externalID == "" {
		return nil, &ItemError{
			Stage:      StageValidate,
			ExternalID: "",
			Err:        fmt.Errorf("%w: no external id supplied or present in payload", payload.ErrValidation),
		}
	}

	if body.BodyText != "" {
		body.BodyText = htmlclean.Clean(body.BodyText)
	}

	sourceFeed := body.SourceFeed
	if sourceFeed == "" {
		sourceFeed = sourceFeedHint
	}
	supplier := category.ResolveSupplier(sourceFeed, p.suppliers)

	return &models.ProcessedRecord{
		ExternalID:    externalID,
		Supplier:      string(supplier),
		Content:       body,
		CategoryCodes: p.normalizeCodes(supplier, body),
	}, nil
}

// RecomputeCodes re-derives supplier and category codes from stored content.
// JSON repair and HTML cleaning only ever run at first ingestion, so the
// stored body text is used as-is.
func (p *Pipeline) RecomputeCodes(content models.NormalizedInputBody) (category.Supplier, []string) {
	supplier := category.ResolveSupplier(content.SourceFeed, p.suppliers)
	return supplier, p.normalizeCodes(supplier, content)
}

func (p *Pipeline) normalizeCodes(supplier category.Supplier, body models.NormalizedInputBody) []string {
	return p.normalizer.Normalize(category.Input{
		Supplier:         supplier,
		SubjectCodes:     body.SubjectCodes,
		DestinationCodes: body.DestinationCodes,
		Priority:         body.Priority,
		BodyText:         body.BodyText,
		MediaCatCodes:    body.MediaCatCodes,
		AgencyMetadata:   body.AgencyMetadata,
	})
}
