// Package payload validates and coerces repaired wire JSON into the
// canonical input-body shape. Parsing stays untyped; this package is the
// explicit coercion pass that produces a strongly-typed record.
package payload

import (
	"errors"
	"fmt"

	"newswire/wirenorm/internal/models"
)

// ErrValidation means the parsed payload did not conform to the expected
// shape after coercion.
var ErrValidation = errors.New("payload failed validation")

// Validate coerces a parsed payload tree into a NormalizedInputBody.
// Absent optional fields stay at their zero value; present fields of the
// wrong type fail validation. The keywords field is normalized and the body
// text decoded as part of validation.
func Validate(doc map[string]any) (models.NormalizedInputBody, error) {
	var body models.NormalizedInputBody

	stringFields := []struct {
		key  string
		dest *string
	}{
		{"sourceFeed", &body.SourceFeed},
		{"headline", &body.Headline},
		{"subhead", &body.Subhead},
		{"byline", &body.Byline},
		{"slug", &body.Slug},
		{"abstract", &body.Abstract},
		{"ednote", &body.Ednote},
		{"usage", &body.Usage},
		{"location", &body.Location},
		{"language", &body.Language},
		{"priority", &body.Priority},
		{"mediaCatCodes", &body.MediaCatCodes},
		{"version", &body.Version},
		{"firstVersion", &body.FirstVersion},
		{"versionCreated", &body.VersionCreated},
		{"dateTimeSent", &body.DateTimeSent},
	}
	for _, f := range stringFields {
		val, err := optionalString(doc, f.key)
		if err != nil {
			return body, err
		}
		*f.dest = val
	}

	keywords, err := NormalizeKeywords(doc["keywords"])
	if err != nil {
		return body, err
	}
	body.Keywords = keywords

	rawBody, err := optionalString(doc, "bodyText")
	if err != nil {
		return body, err
	}
	body.BodyText = DecodeBodyText(rawBody)

	if body.SubjectCodes, err = codeList(doc, "subjects"); err != nil {
		return body, err
	}
	if body.DestinationCodes, err = codeList(doc, "destinations"); err != nil {
		return body, err
	}
	if body.AgencyMetadata, err = metadataMap(doc, "agencyMetadata"); err != nil {
		return body, err
	}

	return body, nil
}

func optionalString(doc map[string]any, key string) (string, error) {
	raw, ok := doc[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q must be a string, got %T", ErrValidation, key, raw)
	}
	return s, nil
}

// codeList accepts the two shapes feeds use for taxonomy codes: a list of
// `{code: "..."}` objects or a list of plain strings.
func codeList(doc map[string]any, key string) ([]string, error) {
	raw, ok := doc[key]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q must be a list, got %T", ErrValidation, key, raw)
	}

	codes := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			codes = append(codes, v)
		case map[string]any:
			code, err := optionalString(v, "code")
			if err != nil {
				return nil, fmt.Errorf("%w: field %q entry has a non-string code", ErrValidation, key)
			}
			if code != "" {
				codes = append(codes, code)
			}
		default:
			return nil, fmt.Errorf("%w: field %q entry must be a string or object, got %T", ErrValidation, key, item)
		}
	}
	return codes, nil
}

func metadataMap(doc map[string]any, key string) (map[string]string, error) {
	raw, ok := doc[key]
	if !ok || raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q must be an object, got %T", ErrValidation, key, raw)
	}

	out := make(map[string]string, len(obj))
	for k, v := range obj {
		// Non-string extension values are carried by suppliers we do not
		// consume metadata from; skip rather than fail.
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out, nil
}
