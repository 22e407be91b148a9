package htmlclean

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"line break splits paragraph": {
			input: `<p>This is a test string.<br />This is another test string.</p>`,
			want:  `<p>This is a test string.</p><p>This is another test string.</p>`,
		},
		"list passes through unchanged": {
			input: `<ul><li><p>Item 1</p></li><li>Item 2</li></ul>`,
			want:  `<ul><li><p>Item 1</p></li><li>Item 2</li></ul>`,
		},
		"bare text gets wrapped": {
			input: `Plain wire copy.`,
			want:  `<p>Plain wire copy.</p>`,
		},
		"nested paragraphs collapse to siblings": {
			input: `<p>Lead.<p>Second.</p></p>`,
			want:  `<p>Lead.</p><p>Second.</p>`,
		},
		"block container is flattened in place": {
			input: `<div class="story">Intro<br/>Outro</div>`,
			want:  `<div class="story"><p>Intro</p><p>Outro</p></div>`,
		},
		"inline markup stays inside its paragraph": {
			input: `Before <b>bold</b> after.<br/>Next.`,
			want:  `<p>Before <b>bold</b> after.</p><p>Next.</p>`,
		},
		"whitespace-only leaf is dropped": {
			input: `<p>   </p><p>Kept.</p>`,
			want:  `<p>Kept.</p>`,
		},
		"table passes through unchanged": {
			input: `<table><tbody><tr><td>A</td><td>B</td></tr></tbody></table>`,
			want:  `<table><tbody><tr><td>A</td><td>B</td></tr></tbody></table>`,
		},
		"leading breaks produce no empty paragraphs": {
			input: `<br/><br/>Body text.`,
			want:  `<p>Body text.</p>`,
		},
		"empty input passes through": {
			input: ``,
			want:  ``,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clean(tc.input))
		})
	}
}

// Nested paragraphs inside block containers collapse, mixed with a list that
// must survive untouched.
func TestCleanMixedStructure(t *testing.T) {
	input := `<div><p>First.<br/>Second.</p><ul><li>One</li></ul>Trailing text</div>`
	want := `<div><p>First.</p><p>Second.</p><ul><li>One</li></ul><p>Trailing text</p></div>`

	assert.Equal(t, want, Clean(input))
}

func TestCleanPreservesVisibleText(t *testing.T) {
	inputs := []string{
		`<p>One.<br/>Two.</p>`,
		`<div><div>Deep <i>inline</i> text</div></div>`,
		`Text with no markup at all`,
		`<p>A</p><ul><li>B</li></ul><p>C</p>`,
		`<section id="x"><p>Nested <a href="/y">link</a>.</p></section>`,
		`<p>Dangling <b>unclosed`,
	}

	for _, input := range inputs {
		cleaned := Clean(input)

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
		require.NoError(t, err)
		cleanedDoc, err := goquery.NewDocumentFromReader(strings.NewReader(cleaned))
		require.NoError(t, err)

		original := strings.Join(strings.Fields(doc.Text()), "")
		rewritten := strings.Join(strings.Fields(cleanedDoc.Text()), "")
		assert.Equal(t, original, rewritten, "visible text changed for %q", input)
	}
}

// A paragraph holding only a void inline element has no text but must not be
// dropped.
func TestCleanKeepsVoidInlineElements(t *testing.T) {
	cleaned := Clean(`<img src="/wire.jpg"/>`)
	assert.Equal(t, `<p><img src="/wire.jpg"/></p>`, cleaned)
}
