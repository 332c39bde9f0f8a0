package preprocessors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type repairCase struct {
	name     string
	input    string
	expected string
}

func runRepairCases(t *testing.T, repair interface{ Apply(string) string }, tests []repairCase) {
	t.Helper()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, repair.Apply(tc.input))
		})
	}
}

func TestVoidElements_Apply(t *testing.T) {
	runRepairCases(t, VoidElements{}, []repairCase{
		{name: "lower case", input: "a<br>b", expected: "a<br/>b"},
		{name: "upper case", input: "a<BR>b", expected: "a<BR/>b"},
		{name: "mixed case", input: "a<Br>b", expected: "a<Br/>b"},
		{name: "already closed", input: "a<br/>b", expected: "a<br/>b"},
		{name: "already closed with space", input: "a<br />b", expected: "a<br />b"},
		{name: "attributes kept verbatim", input: `<img src="a.png"  alt='x'>`, expected: `<img src="a.png"  alt='x'/>`},
		{name: "trailing space", input: `<hr class="x" >`, expected: `<hr class="x" />`},
		{name: "closed with attributes", input: `<img src="a.png"/>`, expected: `<img src="a.png"/>`},
		{name: "boolean attribute", input: "<input disabled>", expected: "<input disabled/>"},
		{name: "non-void element", input: "<p>text</p>", expected: "<p>text</p>"},
		{name: "prefix of longer name", input: "<bread>x</bread>", expected: "<bread>x</bread>"},
		{name: "end tag", input: "</br>", expected: "</br>"},
		{name: "mjml image", input: `<mj-image src="x">`, expected: `<mj-image src="x">`},
		{name: "several", input: "<br><hr><wbr>", expected: "<br/><hr/><wbr/>"},
	})
}

func TestNamedEntities_Apply(t *testing.T) {
	runRepairCases(t, NamedEntities{}, []repairCase{
		{name: "nbsp", input: "a&nbsp;b", expected: "a&#160;b"},
		{name: "copy", input: "&copy;", expected: "&#169;"},
		{name: "trade", input: "&trade;", expected: "&#8482;"},
		{name: "case insensitive", input: "&NBSP;", expected: "&#160;"},
		{name: "predefined", input: "&amp;&lt;&gt;&quot;&apos;", expected: "&amp;&lt;&gt;&quot;&apos;"},
		{name: "predefined upper case", input: "&AMP;", expected: "&AMP;"},
		{name: "decimal", input: "&#160;", expected: "&#160;"},
		{name: "hex", input: "&#xA0;", expected: "&#xA0;"},
		{name: "unknown", input: "&bogus;", expected: "&bogus;"},
		{name: "no semicolon", input: "&nbsp", expected: "&nbsp"},
		{name: "bare ampersand", input: "AT&T", expected: "AT&T"},
		{name: "inside attribute", input: `<a title="&hellip;">`, expected: `<a title="&#8230;">`},
	})
}

func TestAttributeAmpersands_Apply(t *testing.T) {
	runRepairCases(t, AttributeAmpersands{}, []repairCase{
		{name: "query string", input: `<img src="u?a=1&b=2">`, expected: `<img src="u?a=1&amp;b=2">`},
		{name: "already escaped", input: `<a href="x?a=1&amp;b=2">`, expected: `<a href="x?a=1&amp;b=2">`},
		{name: "numeric references", input: `<a title="&#169; &#xA9; &lt;">`, expected: `<a title="&#169; &#xA9; &lt;">`},
		{name: "unknown reference", input: `<a href="?x=&unknown;">`, expected: `<a href="?x=&amp;unknown;">`},
		{name: "upper case predefined", input: `<a title="&AMP;">`, expected: `<a title="&amp;AMP;">`},
		{name: "trailing ampersand", input: `<a title="a&">`, expected: `<a title="a&amp;">`},
		{name: "second attribute", input: `<a href="x" title="a&b">`, expected: `<a href="x" title="a&amp;b">`},
		{name: "text untouched", input: `<p class="a">Tom & Jerry</p>`, expected: `<p class="a">Tom & Jerry</p>`},
		{name: "empty value", input: `<p class="">&</p>`, expected: `<p class="">&</p>`},
		{name: "spaces around equals", input: `<a x = "a&b" y= "c&d">`, expected: `<a x = "a&amp;b" y= "c&amp;d">`},
	})
}

func TestDuplicateAttributes_Apply(t *testing.T) {
	runRepairCases(t, DuplicateAttributes{}, []repairCase{
		{name: "last value first position", input: `<a x="1" y="2" x="3">`, expected: `<a x="3" y="2">`},
		{name: "mjml section", input: `<mj-section bg="#fff" bg="#000">`, expected: `<mj-section bg="#000">`},
		{name: "self closing", input: `<img src="a" src="b"/>`, expected: `<img src="b"/>`},
		{name: "self closing with space", input: `<img src="a" src="b" />`, expected: `<img src="b"/>`},
		{name: "no duplicates unchanged", input: `<a  x="1"   y="2">`, expected: `<a  x="1"   y="2">`},
		{name: "no attributes", input: `<p>x</p>`, expected: `<p>x</p>`},
		{name: "case sensitive names", input: `<a X="1" x="2">`, expected: `<a X="1" x="2">`},
		{name: "hyphenated names", input: `<mj-text font-size="1" font-size="2">`, expected: `<mj-text font-size="2">`},
		{name: "several tags", input: `<a b="1" b="2"><c d="3"><e f="4" f="5"/>`, expected: `<a b="2"><c d="3"><e f="5"/>`},
		{name: "end tags untouched", input: `</a>`, expected: `</a>`},
		{name: "spaces around equals", input: `<a x = "1" x= "2">`, expected: `<a x="2">`},
		{name: "unquoted and boolean attributes dropped", input: `<img src="a" src="b" alt='x' disabled>`, expected: `<img src="b">`},
	})
}

func TestPreprocess_EndToEnd(t *testing.T) {
	input := `<mjml><mj-body><mj-section bg="#fff" bg="#000"><mj-column>` +
		`<mj-text>Line 1<br>Line 2&nbsp;&copy;</mj-text></mj-column></mj-section></mj-body></mjml>`
	expected := `<mjml><mj-body><mj-section bg="#000"><mj-column>` +
		`<mj-text>Line 1<br/>Line 2&#160;&#169;</mj-text></mj-column></mj-section></mj-body></mjml>`

	assert.Equal(t, expected, Preprocess(input))
}

func TestPreprocess_PassOrder(t *testing.T) {
	// Entities are numericised before ampersands are escaped, and void
	// elements are closed before duplicates are rebuilt.
	input := `<img alt="&copy;" src="a&b" src="c&d">`
	assert.Equal(t, `<img alt="&#169;" src="c&amp;d"/>`, Preprocess(input))
}

func TestPreprocess_SpacedDuplicateValuesEscaped(t *testing.T) {
	once := Preprocess(`<a x = "a&b" x = "c&d">`)
	assert.Equal(t, `<a x="c&amp;d">`, once)
	assert.Equal(t, once, Preprocess(once))
}

func TestPreprocess_DuplicateRebuildDropsUnquotedAttributes(t *testing.T) {
	assert.Equal(t, `<img src="b"/>`, Preprocess(`<img src="a" src="b" disabled>`))
	assert.Equal(t, `<img src="a" disabled/>`, Preprocess(`<img src="a" disabled>`))
}

func TestPreprocess_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"not markup at all & < >",
		"<br><BR><Br><br/><br />",
		`<img src="u?a=1&b=2">`,
		`<a x="1" y="2" x="3">`,
		`<img src="a&b" src="c&d">`,
		"&nbsp;&copy;&trade;&amp;&lt;&#160;&#xA0;&bogus;",
		`<a title="&copy" href="&ampx;">`,
		`<mjml><mj-body><mj-section bg="#fff" bg="#000"><mj-column><mj-text>Line 1<br>Line 2&nbsp;&copy;</mj-text></mj-column></mj-section></mj-body></mjml>`,
		`<p a="1" a="2">x="y" & z</p>`,
		"<<>>=\"\"&;",
		`<a x = "a&b" x = "c&d">`,
		`<a x ="a&b" y= "1" x= "c&amp;d&e">`,
	}

	for _, input := range inputs {
		once := Preprocess(input)
		assert.Equal(t, once, Preprocess(once), "input: %q", input)
	}
}

func TestPreprocess_CanonicalInputUnchanged(t *testing.T) {
	inputs := []string{
		`<mjml><mj-body><mj-section><mj-column><mj-text>Hi<br/></mj-text></mj-column></mj-section></mj-body></mjml>`,
		`<p title="a&amp;b">&#160;&amp;&lt;&gt;&quot;&apos;</p>`,
		`<img src="x.png" alt="x" />`,
	}

	for _, input := range inputs {
		assert.Equal(t, input, Preprocess(input))
	}
}

func BenchmarkPreprocess(b *testing.B) {
	input := `<mjml><mj-body><mj-section bg="#fff" bg="#000"><mj-column>` +
		`<mj-text>Line 1<br>Line 2&nbsp;&copy;</mj-text>` +
		`<mj-image src="https://example.com/a.png?w=1&h=2"></mj-image>` +
		`</mj-column></mj-section></mj-body></mjml>`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Preprocess(input)
	}
}
