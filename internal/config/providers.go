package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/octobees/employee-search/api/internal/provider"
)

// ProviderOverride holds per-provider settings read from a YAML file.
type ProviderOverride struct {
	Endpoint       string `yaml:"endpoint"`
	PageSize       int    `yaml:"page_size"`
	DefaultCountry string `yaml:"default_country"`
	Timeout        string `yaml:"timeout"`
}

// ProviderOverrides maps provider names to their overrides.
//
//	providers:
//	  pdl:
//	    page_size: 10
//	  enrichment:
//	    default_country: gb
//	    timeout: 30s
type ProviderOverrides struct {
	Providers map[string]ProviderOverride `yaml:"providers"`
}

// LoadProviderOverrides parses a provider overrides file. ${VAR} references are
// expanded from the environment.
func LoadProviderOverrides(path string) (*ProviderOverrides, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read providers file %s: %w", path, err)
	}

	var out ProviderOverrides
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &out); err != nil {
		return nil, fmt.Errorf("parse providers file: %w", err)
	}

	for name, o := range out.Providers {
		if o.PageSize < 0 {
			return nil, fmt.Errorf("providers.%s.page_size must not be negative", name)
		}
		if o.Timeout != "" {
			if _, err := time.ParseDuration(o.Timeout); err != nil {
				return nil, fmt.Errorf("providers.%s.timeout: %w", name, err)
			}
		}
	}
	return &out, nil
}

// Apply fills fields of cfg that are still unset with the override for cfg.Name.
func (o *ProviderOverrides) Apply(cfg *provider.Config) {
	if o == nil || cfg == nil {
		return
	}
	override, ok := o.Providers[strings.ToLower(cfg.Name)]
	if !ok {
		return
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = override.Endpoint
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = override.PageSize
	}
	if cfg.DefaultCountry == "" {
		cfg.DefaultCountry = override.DefaultCountry
	}
	if cfg.Timeout == 0 && override.Timeout != "" {
		cfg.Timeout, _ = time.ParseDuration(override.Timeout)
	}
}
