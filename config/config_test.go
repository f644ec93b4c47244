package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
debug: true
base_url: /api
routes:
  - path: /
    template: homeTemplate
    controller: Home@index
  - path: /user
    template: userTemplate
    controller: User@show
    params: [id, tab]
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "/api", cfg.BaseURL)
	assert.Equal(t, DefaultVersion, cfg.Version)
	assert.Equal(t, "main", cfg.MainID)
	assert.Equal(t, "errorTemplate", cfg.ErrorTemplateID)
	require.Len(t, cfg.Routes, 2)
	assert.Nil(t, cfg.Routes[0].Params)
	assert.Equal(t, []string{"id", "tab"}, cfg.Routes[1].Params)
	assert.Equal(t, "User@show", cfg.Routes[1].Controller)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":     "routes: [",
		"bad version":  "version: banana",
		"no path":      "routes: [{template: t, controller: A@b}]",
		"bad target":   "routes: [{path: /, template: t, controller: Home}]",
		"duplicate":    "routes: [{path: /, controller: A@b}, {path: /, controller: C@d}]",
		"empty action": "routes: [{path: /, controller: 'A@'}]",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_VersionWithPrefix(t *testing.T) {
	cfg, err := Parse([]byte("version: v1.2.3"))
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", cfg.Version)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "valkyrja.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Routes, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOverlay(t *testing.T) {
	cfg := Default()
	cfg.BaseURL = "/old"

	cfg.Overlay(Globals{IsDev: true})
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/old", cfg.BaseURL)

	cfg.Overlay(Globals{AjaxURL: "https://api.example.com"})
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
}

func TestFromGlobals_Env(t *testing.T) {
	t.Setenv("VALKYRJA_DEBUG", "true")
	t.Setenv("VALKYRJA_AJAX_URL", "/x")

	g := FromGlobals()

	assert.True(t, g.Debug)
	assert.False(t, g.IsDev)
	assert.Equal(t, "/x", g.AjaxURL)
}
