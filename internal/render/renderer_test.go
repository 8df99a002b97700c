package render

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/snippetdoc/internal/example"
	ferrors "git.home.luguber.info/inful/snippetdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/snippetdoc/internal/highlight"
)

const (
	helloJS = "var React = require('react');\n// PRELUDE\nvar Hello = 'hello';\n// POSTSCRIPT\nmount(Hello);\n"
	worldJS = "// PRELUDE\nvar World = 'world';\n// POSTSCRIPT\nmount(World);\n"
)

func newTestRenderer(t *testing.T, templates fstest.MapFS) *Renderer {
	t.Helper()
	examples := fstest.MapFS{
		"hello.js":  {Data: []byte(helloJS)},
		"world.js":  {Data: []byte(worldJS)},
		"broken.js": {Data: []byte("// PRELUDE\nno postscript\n")},
	}
	h, err := highlight.NewChroma(highlight.Options{WrapperClass: highlight.DefaultWrapper})
	require.NoError(t, err)
	return NewRenderer(templates, example.NewLoader(examples, example.DefaultMarkers()), h)
}

// countHighlightBlocks walks the parsed page counting <div class="highlight">.
func countHighlightBlocks(t *testing.T, page string) int {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)

	count := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			for _, a := range n.Attr {
				if a.Key == "class" && a.Val == highlight.DefaultWrapper {
					count++
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return count
}

func TestRender_TwoExamples(t *testing.T) {
	r := newTestRenderer(t, fstest.MapFS{
		"template.html": {Data: []byte(`<html><body>
<h1>Examples</h1>
{% code_example "hello.js" %}
<p>between</p>
{% code_example "world.js" %}
</body></html>`)},
	})

	res, err := r.Render("template.html", DefaultHeader, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, countHighlightBlocks(t, res.Page))
	assert.Contains(t, res.Page, "<p>between</p>")
	assert.Contains(t, res.Page, "Hello")
	assert.Contains(t, res.Page, "World")
	assert.NotContains(t, res.Page, "mount", "postscript code is not displayed")
	assert.NotContains(t, res.Page, "require", "prelude code is not displayed")
	assert.NotContains(t, res.Page, "PRELUDE")

	require.Equal(t, 3, res.Scripts.Len())
	assert.Equal(t, []string{DefaultHeader, helloJS, worldJS}, res.Scripts.Items())
	assert.Equal(t, DefaultHeader+"\n"+helloJS+"\n"+worldJS, res.Scripts.Join())
	assert.Equal(t, []string{"hello.js", "world.js"}, res.Examples())
}

func TestRender_Deterministic(t *testing.T) {
	templates := fstest.MapFS{
		"template.html": {Data: []byte(`{% code_example "hello.js" %}{% code_example "world.js" %}`)},
	}
	first, err := newTestRenderer(t, templates).Render("template.html", DefaultHeader, nil)
	require.NoError(t, err)
	second, err := newTestRenderer(t, templates).Render("template.html", DefaultHeader, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Page, second.Page)
	assert.Equal(t, first.Scripts.Join(), second.Scripts.Join())
}

func TestRender_RepeatedRenderStartsFreshAccumulator(t *testing.T) {
	r := newTestRenderer(t, fstest.MapFS{
		"template.html": {Data: []byte(`{% code_example "hello.js" %}`)},
	})
	_, err := r.Render("template.html", DefaultHeader, nil)
	require.NoError(t, err)
	res, err := r.Render("template.html", DefaultHeader, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Scripts.Len())
}

func TestRender_ExpressionArguments(t *testing.T) {
	r := newTestRenderer(t, fstest.MapFS{
		"template.html": {Data: []byte(`<title>{{ title }}</title>{% for f in files %}{% code_example f %}{% endfor %}`)},
	})

	res, err := r.Render("template.html", "", map[string]any{
		"title": "Docs",
		"files": []string{"world.js", "hello.js", "world.js"},
	})
	require.NoError(t, err)

	assert.Contains(t, res.Page, "<title>Docs</title>")
	assert.Equal(t, 3, countHighlightBlocks(t, res.Page))
	assert.Equal(t, []string{"", worldJS, helloJS, worldJS}, res.Scripts.Items())
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]any
		category ferrors.ErrorCategory
	}{
		{"missing marker aborts", `<p>before</p>{% code_example "hello.js" %}{% code_example "broken.js" %}`, nil, ferrors.CategoryNotFound},
		{"missing example file", `{% code_example "nope.js" %}`, nil, ferrors.CategoryNotFound},
		{"escaping path", `{% code_example "../hello.js" %}`, nil, ferrors.CategoryValidation},
		{"too many arguments", `{% code_example "hello.js" "world.js" %}`, nil, ferrors.CategoryTemplate},
		{"non-string argument", `{% code_example 42 %}`, nil, ferrors.CategoryTemplate},
		{"reserved data key", `x`, map[string]any{sessionKey: 1}, ferrors.CategoryConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRenderer(t, fstest.MapFS{"template.html": {Data: []byte(tt.template)}})
			res, err := r.Render("template.html", DefaultHeader, tt.data)
			require.Error(t, err)
			assert.Nil(t, res, "no partial page on failure")
			assert.Equal(t, tt.category, ferrors.GetCategory(err))
		})
	}
}

func TestRender_TemplateNotFound(t *testing.T) {
	r := newTestRenderer(t, fstest.MapFS{})
	_, err := r.Render("template.html", DefaultHeader, nil)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestRender_MarkdownFilter(t *testing.T) {
	r := newTestRenderer(t, fstest.MapFS{
		"template.html": {Data: []byte(`<section>
    {% filter markdown %}
    ## Counter

    A *small* component. <script>alert(1)</script>
    {% endfilter %}
</section>{{ intro|markdown }}`)},
	})

	res, err := r.Render("template.html", DefaultHeader, map[string]any{"intro": "**bold**"})
	require.NoError(t, err)

	assert.Contains(t, res.Page, "<h2")
	assert.Contains(t, res.Page, "<em>small</em>")
	assert.Contains(t, res.Page, "<strong>bold</strong>")
	assert.NotContains(t, res.Page, "<script>")
	assert.NotContains(t, res.Page, "<pre><code>## Counter", "indentation is stripped before conversion")
}

func TestScripts(t *testing.T) {
	s := NewScripts("// header")
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "// header", s.Join())

	s.Append("a();")
	s.Append("b();")
	items := s.Items()
	items[0] = "mutated"
	assert.Equal(t, []string{"// header", "a();", "b();"}, s.Items())
	assert.Equal(t, "// header\na();\nb();", s.Join())
}

func TestDedent(t *testing.T) {
	assert.Equal(t, "a\n  b\n\nc", dedent("    a\n      b\n\n    c"))
	assert.Equal(t, "a\nb", dedent("a\nb"))
}
