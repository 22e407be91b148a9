package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// NormalizedInputBody is the canonical content extracted from one wire payload.
// Optional fields hold their zero value when the payload omits them.
type NormalizedInputBody struct {
	SourceFeed string `json:"sourceFeed,omitempty"`
	Headline   string `json:"headline,omitempty"`
	Subhead    string `json:"subhead,omitempty"`
	Byline     string `json:"byline,omitempty"`
	Slug       string `json:"slug,omitempty"`
	Abstract   string `json:"abstract,omitempty"`
	Ednote     string `json:"ednote,omitempty"`
	Usage      string `json:"usage,omitempty"`
	Location   string `json:"location,omitempty"`
	Language   string `json:"language,omitempty"`

	// Keywords is always a deduplicated, trimmed list with no empty entries.
	Keywords []string `json:"keywords"`

	// BodyText is the decoded, cleaned HTML fragment.
	BodyText string `json:"bodyText,omitempty"`

	// Raw supplier-specific taxonomy codes as received.
	SubjectCodes     []string `json:"subjectCodes,omitempty"`
	DestinationCodes []string `json:"destinationCodes,omitempty"`

	Priority       string `json:"priority,omitempty"`
	MediaCatCodes  string `json:"mediaCatCodes,omitempty"`
	Version        string `json:"version,omitempty"`
	FirstVersion   string `json:"firstVersion,omitempty"`
	VersionCreated string `json:"versionCreated,omitempty"`
	DateTimeSent   string `json:"dateTimeSent,omitempty"`

	// AgencyMetadata carries supplier extension fields (used by the PA API feed).
	AgencyMetadata map[string]string `json:"agencyMetadata,omitempty"`
}

// ProcessedRecord represents a row in the processed_records table.
// Content and CategoryCodes are stored as JSON columns; EncodeColumns and
// DecodeColumns convert between the typed fields and their raw column values.
type ProcessedRecord struct {
	ID         int64  `db:"id" json:"-"`
	ExternalID string `db:"external_id" json:"externalId"`
	Supplier   string `db:"supplier" json:"supplier"`

	Content       NormalizedInputBody `db:"-" json:"content"`
	CategoryCodes []string            `db:"-" json:"categoryCodes"`

	ContentRaw       []byte `db:"content" json:"-"`
	CategoryCodesRaw []byte `db:"category_codes" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// EncodeColumns marshals Content and CategoryCodes into their raw column values.
func (r *ProcessedRecord) EncodeColumns() error {
	content, err := json.Marshal(r.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal record content: %w", err)
	}
	codes := r.CategoryCodes
	if codes == nil {
		codes = []string{}
	}
	codesRaw, err := json.Marshal(codes)
	if err != nil {
		return fmt.Errorf("failed to marshal category codes: %w", err)
	}
	r.ContentRaw = content
	r.CategoryCodesRaw = codesRaw
	return nil
}

// DecodeColumns unmarshals the raw column values back into the typed fields.
func (r *ProcessedRecord) DecodeColumns() error {
	if len(r.ContentRaw) > 0 {
		if err := json.Unmarshal(r.ContentRaw, &r.Content); err != nil {
			return fmt.Errorf("failed to unmarshal record content: %w", err)
		}
	}
	r.CategoryCodes = []string{}
	if len(r.CategoryCodesRaw) > 0 {
		if err := json.Unmarshal(r.CategoryCodesRaw, &r.CategoryCodes); err != nil {
			return fmt.Errorf("failed to unmarshal category codes: %w", err)
		}
	}
	return nil
}
