package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/wirenorm/internal/category"
	"newswire/wirenorm/internal/jsonrepair"
	"newswire/wirenorm/internal/payload"
	"newswire/wirenorm/internal/rules"
)

// noPlaces keeps tests off the NLP model.
func noPlaces(string) []string { return nil }

func londonOnly(text string) []string {
	return []string{"London"}
}

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	return New(rules.Default(), noPlaces)
}

func TestProcessFullChain(t *testing.T) {
	p := testPipeline(t)

	raw := []byte(`{
		"sourceFeed": "PA NEWS",
		"headline": "Commons vote tonight",
		"keywords": "politics+westminster+politics",
		"bodyText": "<p>First line.<br />Second line.</p>",
		"subjects": [{"code": "iptccat:HHH"}, {"code": "service:advisory"}],
		"priority": "1"
	}`)

	rec, err := p.Process(raw, "pa-item-1", "")
	require.NoError(t, err)

	assert.Equal(t, "pa-item-1", rec.ExternalID)
	assert.Equal(t, "PA", rec.Supplier)
	assert.Equal(t, []string{"politics", "westminster"}, rec.Content.Keywords)
	assert.Equal(t, "<p>First line.</p><p>Second line.</p>", rec.Content.BodyText)
	assert.Equal(t, []string{category.HighPriority, "paCat:HHH"}, rec.CategoryCodes)
}

func TestProcessRepairsBrokenPayload(t *testing.T) {
	p := testPipeline(t)

	raw := []byte("{\"sourceFeed\": \"AP WIRE\", \"headline\": \"Tab\there\", \"subjects\": [\"iptccat:a\"]}")
	rec, err := p.Process(raw, "ap-item-1", "")
	require.NoError(t, err)

	assert.Equal(t, "Tab here", rec.Content.Headline)
	assert.Equal(t, "AP", rec.Supplier)
	assert.Equal(t, []string{"apCat:a"}, rec.CategoryCodes)
}

func TestProcessParseFailureCarriesScrapedID(t *testing.T) {
	p := testPipeline(t)

	raw := []byte(`{"uri": "tag:pa:item-9", "bodyText": "truncated`)
	_, err := p.Process(raw, "", "")
	require.Error(t, err)

	var itemErr *ItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, StageParse, itemErr.Stage)
	assert.Equal(t, "tag:pa:item-9", itemErr.ExternalID)
	assert.ErrorIs(t, err, jsonrepair.ErrParse)
}

func TestProcessValidationFailure(t *testing.T) {
	p := testPipeline(t)

	_, err := p.Process([]byte(`{"headline": 42}`), "item-1", "")
	var itemErr *ItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, StageValidate, itemErr.Stage)
	assert.ErrorIs(t, err, payload.ErrValidation)
}

func TestProcessExternalIDFallsBackToPayload(t *testing.T) {
	p := testPipeline(t)

	rec, err := p.Process([]byte(`{"externalId": "from-payload", "sourceFeed": "PA"}`), "", "")
	require.NoError(t, err)
	assert.Equal(t, "from-payload", rec.ExternalID)

	_, err = p.Process([]byte(`{"sourceFeed": "PA"}`), "", "")
	var itemErr *ItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, StageValidate, itemErr.Stage)
}

func TestProcessSourceFeedHint(t *testing.T) {
	p := testPipeline(t)

	rec, err := p.Process([]byte(`{"subjects": ["iptccat:SPO"]}`), "item-1", "AFP ENGLISH WIRE")
	require.NoError(t, err)
	assert.Equal(t, "AFP", rec.Supplier)

	// Payload's own sourceFeed wins over the hint.
	rec, err = p.Process([]byte(`{"sourceFeed": "PA NEWS"}`), "item-2", "AFP ENGLISH WIRE")
	require.NoError(t, err)
	assert.Equal(t, "PA", rec.Supplier)

	// Unmapped labels resolve to Unknown.
	rec, err = p.Process([]byte(`{"sourceFeed": "MYSTERY FEED"}`), "item-3", "")
	require.NoError(t, err)
	assert.Equal(t, "Unknown", rec.Supplier)
}

func TestProcessRegionInference(t *testing.T) {
	p := New(rules.Default(), londonOnly)

	raw := []byte(`{
		"sourceFeed": "AP WIRE",
		"bodyText": "The prime minister spoke in London today.",
		"subjects": ["iptccat:i"]
	}`)
	rec, err := p.Process(raw, "ap-item-2", "")
	require.NoError(t, err)
	assert.Contains(t, rec.CategoryCodes, "N2:GB")
}

func TestRecomputeCodes(t *testing.T) {
	p := testPipeline(t)

	raw := []byte(`{
		"sourceFeed": "PA NEWS",
		"subjects": ["iptccat:HHH"],
		"priority": "1"
	}`)
	rec, err := p.Process(raw, "pa-item-3", "")
	require.NoError(t, err)

	supplier, codes := p.RecomputeCodes(rec.Content)
	assert.Equal(t, category.PA, supplier)
	assert.Equal(t, rec.CategoryCodes, codes)
}
