// Package config holds the application settings: debug flag, version,
// ajax base url, the page ids the router renders into and the route table.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

const (
	DefaultVersion         = "2.0.0-alpha"
	DefaultMainID          = "main"
	DefaultErrorTemplateID = "errorTemplate"
)

var ErrInvalid = errors.New("config: invalid")

// Config is the application configuration.
type Config struct {
	Debug           bool          `yaml:"debug"`
	Version         string        `yaml:"version,omitempty"`
	BaseURL         string        `yaml:"base_url,omitempty"`
	MainID          string        `yaml:"main_id,omitempty"`
	ErrorTemplateID string        `yaml:"error_template_id,omitempty"`
	Routes          []RouteConfig `yaml:"routes,omitempty"`
}

// RouteConfig declares one route. Controller has the form "Name@action".
// A nil Params list disables parameters for the route.
type RouteConfig struct {
	Path       string   `yaml:"path"`
	Template   string   `yaml:"template"`
	Controller string   `yaml:"controller"`
	Params     []string `yaml:"params"`
}

// Globals are the page-level settings a host page exposes as
// window.GLOBALS.
type Globals struct {
	Debug   bool
	IsDev   bool
	AjaxURL string
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Parse decodes YAML and fills defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks the version and the route table.
func (c *Config) Validate() error {
	if !semver.IsValid("v" + strings.TrimPrefix(c.Version, "v")) {
		return fmt.Errorf("%w: version %q is not semantic", ErrInvalid, c.Version)
	}
	seen := make(map[string]bool, len(c.Routes))
	for i, r := range c.Routes {
		if r.Path == "" {
			return fmt.Errorf("%w: route %d has no path", ErrInvalid, i)
		}
		if seen[r.Path] {
			return fmt.Errorf("%w: duplicate route %s", ErrInvalid, r.Path)
		}
		seen[r.Path] = true
		if name, action, ok := strings.Cut(r.Controller, "@"); !ok || name == "" || action == "" {
			return fmt.Errorf("%w: route %s controller %q", ErrInvalid, r.Path, r.Controller)
		}
	}
	return nil
}

// Overlay applies page globals: either debug flag switches debugging on,
// and a non-empty ajax url replaces BaseURL.
func (c *Config) Overlay(g Globals) {
	c.Debug = c.Debug || g.Debug || g.IsDev
	if g.AjaxURL != "" {
		c.BaseURL = g.AjaxURL
	}
}

func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.MainID == "" {
		c.MainID = DefaultMainID
	}
	if c.ErrorTemplateID == "" {
		c.ErrorTemplateID = DefaultErrorTemplateID
	}
}
