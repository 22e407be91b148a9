package jsonrepair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairAndParse(t *testing.T) {
	tests := map[string]struct {
		raw     string
		wantErr bool
		check   func(t *testing.T, doc map[string]any)
	}{
		"valid payload passes through": {
			raw: `{"headline":"Market update","priority":"1"}`,
			check: func(t *testing.T, doc map[string]any) {
				assert.Equal(t, "Market update", doc["headline"])
			},
		},
		"unescaped tab inside string becomes a space": {
			raw: "{\"headline\":\"Market\tupdate\"}",
			check: func(t *testing.T, doc map[string]any) {
				assert.Equal(t, "Market update", doc["headline"])
			},
		},
		"raw newline inside string becomes a space": {
			raw: "{\"headline\":\"Market\nupdate\"}",
			check: func(t *testing.T, doc map[string]any) {
				assert.Equal(t, "Market update", doc["headline"])
			},
		},
		"backslash-escaped curly quote yields bare quote": {
			raw: `{"headline":"He said \` + "“" + `no\` + "”" + ` today"}`,
			check: func(t *testing.T, doc map[string]any) {
				assert.Equal(t, "He said “no” today", doc["headline"])
			},
		},
		"structurally broken payload still fails": {
			raw:     `{"headline": `,
			wantErr: true,
		},
		"unrepairable escape still fails": {
			raw:     `{"headline":"bad \x escape"}`,
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			doc, err := RepairAndParse([]byte(tc.raw))
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrParse)
				return
			}
			require.NoError(t, err)
			tc.check(t, doc)
		})
	}
}

func TestExtractField(t *testing.T) {
	broken := []byte(`{"uri":"tag:ap.org,2024:item-42","headline":"partial`)

	assert.Equal(t, "tag:ap.org,2024:item-42", ExtractField(broken, "uri"))
	assert.Equal(t, "", ExtractField(broken, "missing"))
	assert.Equal(t, `with \"quotes\"`, ExtractField([]byte(`{"slug":"with \"quotes\""}`), "slug"))
}
