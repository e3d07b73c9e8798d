package derive

import (
	"strings"

	"rsderive/internal/introspect"
	"rsderive/internal/project"
)

// Config controls naming in the generated code.
type Config struct {
	Names introspect.Config
	// DebugTrait is the trait implemented by CustomDebug and used for
	// inferred bounds.
	DebugTrait string
}

func DefaultConfig() Config {
	return ConfigFrom(project.Default())
}

// ConfigFrom maps the manifest onto generator settings.
func ConfigFrom(cfg project.Config) Config {
	return Config{
		Names: introspect.Config{
			Option:     cfg.Derive.Option,
			Collection: cfg.Derive.Collection,
			Marker:     cfg.Derive.Marker,
		},
		DebugTrait: cfg.Derive.DebugTrait,
	}
}

// fmtModule is the module that owns the Debug trait: `::std::fmt` for
// `::std::fmt::Debug`. Formatter and Result are taken from it.
func (c Config) fmtModule() string {
	if i := strings.LastIndex(c.DebugTrait, "::"); i > 0 {
		return c.DebugTrait[:i]
	}
	return "::core::fmt"
}
