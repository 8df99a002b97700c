package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/snippetdoc/internal/foundation/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".", cfg.Template.Dir)
	assert.Equal(t, "template.html", cfg.Template.Name)
	assert.Equal(t, "examples", cfg.Examples.Dir)
	assert.Equal(t, "// PRELUDE", cfg.Examples.Prelude)
	assert.Equal(t, "// POSTSCRIPT", cfg.Examples.Postscript)
	assert.Equal(t, "index.html", cfg.Output.Page)
	assert.Equal(t, "./docs-output/bundle.js", cfg.Output.Bundle)
	assert.Equal(t, "./node_modules/.bin/browserify", cfg.Bundle.Command)
	assert.Equal(t, []string{"-t", "[", "reactify", "--es6", "]", "-d"}, cfg.Bundle.Args)
	assert.Equal(t, "-o", cfg.Bundle.OutputFlag)
	assert.Equal(t, "/** @jsx React.DOM */", cfg.Bundle.Header)
	assert.Equal(t, ".", cfg.Bundle.EntryDir)
	assert.Empty(t, cfg.Output.Styles)
	require.NoError(t, cfg.Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("missing.yaml")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoad_DefaultPathAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("SNIPPETDOC_TEST_STYLE", "monokai")

	require.NoError(t, os.WriteFile(".env", []byte("SNIPPETDOC_TEST_OUT=public\nSNIPPETDOC_TEST_STYLE=ignored\n"), 0o600))
	require.NoError(t, os.WriteFile(DefaultPath, []byte(`
template:
  name: page.html
  data:
    title: Components
highlight:
  style: ${SNIPPETDOC_TEST_STYLE}
output:
  page: ${SNIPPETDOC_TEST_OUT}/index.html
  bundle: ${SNIPPETDOC_TEST_OUT}/bundle.js
bundle:
  args: []
`), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("SNIPPETDOC_TEST_OUT") })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "page.html", cfg.Template.Name)
	assert.Equal(t, "Components", cfg.Template.Data["title"])
	assert.Equal(t, "monokai", cfg.Highlight.Style, "process env wins over .env")
	assert.Equal(t, "public/index.html", cfg.Output.Page)
	assert.Equal(t, "public/bundle.js", cfg.Output.Bundle)
	assert.Empty(t, cfg.Bundle.Args, "explicit empty args are kept")
	assert.Equal(t, "examples", cfg.Examples.Dir, "unset fields take defaults")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{name: "empty document", yaml: ""},
		{name: "custom markers", yaml: "examples:\n  prelude: '# begin'\n  postscript: '# end'\n"},
		{name: "unknown field", yaml: "templates:\n  dir: x\n", wantErr: true},
		{name: "equal markers", yaml: "examples:\n  prelude: '//'\n  postscript: '//'\n", wantErr: true},
		{name: "same page and bundle", yaml: "output:\n  page: out.js\n  bundle: ./out.js\n", wantErr: true},
		{name: "styles collide", yaml: "output:\n  styles: index.html\n", wantErr: true},
		{name: "negative tab width", yaml: "highlight:\n  tab_width: -1\n", wantErr: true},
		{name: "malformed yaml", yaml: "template: [\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
		})
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "snippetdoc.yaml")

	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg, "generated file round-trips to the defaults")

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	require.NoError(t, Init(path, true))
}

func TestAccessors(t *testing.T) {
	cfg := Default()
	cfg.Highlight.LineNumbers = true

	m := cfg.Markers()
	assert.Equal(t, cfg.Examples.Prelude, m.Prelude)
	assert.Equal(t, cfg.Examples.Postscript, m.Postscript)

	opts := cfg.HighlightOptions()
	assert.Equal(t, "javascript", opts.Lexer)
	assert.Equal(t, "highlight", opts.WrapperClass)
	assert.True(t, opts.LineNumbers)
}
