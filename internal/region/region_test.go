package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeExtractor(places ...string) Extractor {
	return func(string) []string { return places }
}

func TestInfer(t *testing.T) {
	gazetteer := []string{"London", "Manchester", "West Midlands"}

	tests := map[string]struct {
		extractor Extractor
		text      string
		want      string
	}{
		"direct match": {
			extractor: fakeExtractor("London"),
			text:      "story text",
			want:      MarkerGB,
		},
		"case-insensitive match": {
			extractor: fakeExtractor("MANCHESTER"),
			text:      "story text",
			want:      MarkerGB,
		},
		"comma-joined place splits before matching": {
			extractor: fakeExtractor("Birmingham, West Midlands"),
			text:      "story text",
			want:      MarkerGB,
		},
		"gazetteer entry as substring": {
			extractor: fakeExtractor("Greater London Area"),
			text:      "story text",
			want:      MarkerGB,
		},
		"no match": {
			extractor: fakeExtractor("Paris", "Lyon"),
			text:      "story text",
			want:      "",
		},
		"no places extracted": {
			extractor: fakeExtractor(),
			text:      "story text",
			want:      "",
		},
		"empty text skips extraction entirely": {
			extractor: func(string) []string {
				t.Fatal("extractor must not run on empty text")
				return nil
			},
			text: "   ",
			want: "",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			inf := NewInferrer(gazetteer, tc.extractor)
			assert.Equal(t, tc.want, inf.Infer(tc.text))
		})
	}
}
