package project

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a loaded rsderive.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors rsderive.toml. Zero values are replaced by defaults.
type Config struct {
	Package PackageConfig `toml:"package"`
	Derive  DeriveConfig  `toml:"derive"`
	Output  OutputConfig  `toml:"output"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// DeriveConfig names the wrapper types recognized by the generators.
type DeriveConfig struct {
	// Option is the optional-wrapper identifier (`Option<T>`).
	Option string `toml:"option"`
	// Collection is the collection identifier required by `each` (`Vec<T>`).
	Collection string `toml:"collection"`
	// Marker is the phantom marker identifier (`PhantomData<T>`).
	Marker string `toml:"marker"`
	// DebugTrait is the trait path used for inferred bounds and the impl.
	DebugTrait string `toml:"debug_trait"`
}

type OutputConfig struct {
	Suffix string `toml:"suffix"`
}

// Default returns the configuration used when no manifest is found.
func Default() Config {
	return Config{
		Derive: DeriveConfig{
			Option:     "Option",
			Collection: "Vec",
			Marker:     "PhantomData",
			DebugTrait: "::std::fmt::Debug",
		},
		Output: OutputConfig{Suffix: ".derive.rs"},
	}
}

// withDefaults fills empty fields from Default.
func (c Config) withDefaults() Config {
	def := Default()
	if strings.TrimSpace(c.Derive.Option) == "" {
		c.Derive.Option = def.Derive.Option
	}
	if strings.TrimSpace(c.Derive.Collection) == "" {
		c.Derive.Collection = def.Derive.Collection
	}
	if strings.TrimSpace(c.Derive.Marker) == "" {
		c.Derive.Marker = def.Derive.Marker
	}
	if strings.TrimSpace(c.Derive.DebugTrait) == "" {
		c.Derive.DebugTrait = def.Derive.DebugTrait
	}
	if strings.TrimSpace(c.Output.Suffix) == "" {
		c.Output.Suffix = def.Output.Suffix
	}
	return c
}

// Load finds rsderive.toml from startDir upwards. Without a manifest it
// returns defaults and ok=false.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return &Manifest{Config: Default()}, false, nil
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes a manifest file. Unknown keys are errors.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("output", "suffix") && !strings.HasSuffix(cfg.Output.Suffix, ".rs") {
		return Config{}, fmt.Errorf("%s: [output].suffix must end with .rs, got %q", path, cfg.Output.Suffix)
	}
	for _, kv := range []struct{ key, val string }{
		{"option", cfg.Derive.Option},
		{"collection", cfg.Derive.Collection},
		{"marker", cfg.Derive.Marker},
	} {
		if meta.IsDefined("derive", kv.key) && !isRustIdent(kv.val) {
			return Config{}, fmt.Errorf("%s: [derive].%s must be an identifier, got %q", path, kv.key, kv.val)
		}
	}
	return cfg.withDefaults(), nil
}

// Encode renders cfg as TOML, used by `rsderive init`.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Digest fingerprints the derive-relevant part of the configuration.
func (c Config) Digest() Digest {
	return Sum([]byte(strings.Join([]string{
		c.Derive.Option, c.Derive.Collection, c.Derive.Marker, c.Derive.DebugTrait,
	}, "\x00")))
}

func isRustIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
