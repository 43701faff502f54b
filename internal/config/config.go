// Package config loads the .semver.yml file that describes which products
// live in a repository and how they are tagged.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/jimdowning-cyclops/semver-next-go/internal/bump"
	"github.com/jimdowning-cyclops/semver-next-go/internal/version"
)

// FileName is the config file looked up by LoadFromDir.
const FileName = ".semver.yml"

// Config represents the .semver.yml configuration file.
type Config struct {
	// Strict rejects tags whose numeric components have leading zeros.
	Strict   bool                     `yaml:"strict,omitempty"`
	Products map[string]ProductConfig `yaml:"products"`
}

// ProductConfig defines a product with its file globs and optional variants.
type ProductConfig struct {
	Globs    []string `yaml:"globs"`
	Variants []string `yaml:"variants,omitempty"`
	// TagPrefix replaces the default "{product}-v" / "{product}-{variant}-v".
	TagPrefix string `yaml:"tag_prefix,omitempty"`
	// Channel is "alpha" or "beta". Empty, "none" and "stable" mean no channel.
	Channel string `yaml:"channel,omitempty"`
}

// ProductVariant is one releasable unit: a product, or one variant of it.
type ProductVariant struct {
	Product string
	Variant string // empty for products without variants
	Prefix  string // custom tag prefix, empty for the default
	Channel bump.Channel
}

// Name returns "product-variant", or just "product" without a variant.
func (pv ProductVariant) Name() string {
	if pv.Variant == "" {
		return pv.Product
	}
	return pv.Product + "-" + pv.Variant
}

// TagPrefix returns the text in front of the version in this unit's tags,
// e.g. "mobile-customerA-v" or a custom "v".
func (pv ProductVariant) TagPrefix() string {
	if pv.Prefix != "" {
		return pv.Prefix
	}
	return pv.Name() + "-v"
}

// TagName returns the tag for version v.
func (pv ProductVariant) TagName(v version.Version) string {
	return pv.TagPrefix() + v.String()
}

// Load reads and parses a .semver.yml config file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(string(data))
}

// Parse parses inline YAML config content.
func Parse(content string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromDir looks for .semver.yml in the given directory.
func LoadFromDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, FileName))
}

func (c *Config) validate() error {
	if len(c.Products) == 0 {
		return fmt.Errorf("config must define at least one product")
	}

	for _, name := range c.ProductNames() {
		p := c.Products[name]
		if _, err := bump.ParseChannel(p.Channel); err != nil {
			return fmt.Errorf("product %q: %w", name, err)
		}
		for _, pattern := range p.Globs {
			if _, err := glob.Compile(pattern, '/'); err != nil {
				return fmt.Errorf("product %q: invalid glob %q: %w", name, pattern, err)
			}
		}
		seen := make(map[string]bool, len(p.Variants))
		for _, v := range p.Variants {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("product %q: variant names must not be empty", name)
			}
			if seen[v] {
				return fmt.Errorf("product %q: duplicate variant %q", name, v)
			}
			seen[v] = true
		}
	}

	return nil
}

// channel returns the product's parsed channel. Parse has already
// validated it.
func (p ProductConfig) channel() bump.Channel {
	ch, _ := bump.ParseChannel(p.Channel)
	return ch
}

// GetAllProductVariants returns all product-variant combinations, sorted by
// product name. Variants keep their config order.
func (c *Config) GetAllProductVariants() []ProductVariant {
	var result []ProductVariant
	for _, name := range c.ProductNames() {
		pvs, _ := c.GetVariantsForProduct(name)
		result = append(result, pvs...)
	}
	return result
}

// GetVariantsForProduct returns all variants for a specific product, in
// config order. A product without variants yields one entry with an empty
// Variant. The second result is false if the product doesn't exist.
func (c *Config) GetVariantsForProduct(product string) ([]ProductVariant, bool) {
	p, ok := c.Products[product]
	if !ok {
		return nil, false
	}

	if len(p.Variants) == 0 {
		return []ProductVariant{{Product: product, Prefix: p.TagPrefix, Channel: p.channel()}}, true
	}

	result := make([]ProductVariant, 0, len(p.Variants))
	for _, variant := range p.Variants {
		result = append(result, ProductVariant{
			Product: product,
			Variant: variant,
			Prefix:  p.TagPrefix,
			Channel: p.channel(),
		})
	}
	return result, true
}

// Target resolves a name like "mobile-customerA" or "sample-app" to a
// product-variant.
func (c *Config) Target(name string) (ProductVariant, error) {
	if p, ok := c.Products[name]; ok && len(p.Variants) == 0 {
		pvs, _ := c.GetVariantsForProduct(name)
		return pvs[0], nil
	}

	for _, pv := range c.GetAllProductVariants() {
		if pv.Variant != "" && pv.Name() == name {
			return pv, nil
		}
	}

	return ProductVariant{}, fmt.Errorf("unknown target %q: must be a valid product or product-variant", name)
}

// HasVariants returns true if the product has variants defined.
func (c *Config) HasVariants(product string) bool {
	return len(c.Products[product].Variants) > 0
}

// GetGlobs returns the glob patterns for a product. A product without globs
// matches every file.
func (c *Config) GetGlobs(product string) ([]string, bool) {
	p, ok := c.Products[product]
	if !ok {
		return nil, false
	}
	if len(p.Globs) == 0 {
		return []string{"**"}, true
	}
	return p.Globs, true
}

// ProductNames returns all product names sorted alphabetically.
func (c *Config) ProductNames() []string {
	names := make([]string, 0, len(c.Products))
	for name := range c.Products {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
