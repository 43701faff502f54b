// Package matcher decides which product variants a commit touches, from the
// files it changed and its conventional-commit scope.
package matcher

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/jimdowning-cyclops/semver-next-go/internal/commit"
	"github.com/jimdowning-cyclops/semver-next-go/internal/config"
)

// Matcher maps changed files and commit scopes to product variants.
type Matcher struct {
	config *config.Config
	globs  map[string][]glob.Glob // compiled once per product
}

// NewMatcher compiles the glob patterns of every product in cfg.
func NewMatcher(cfg *config.Config) (*Matcher, error) {
	m := &Matcher{
		config: cfg,
		globs:  make(map[string][]glob.Glob, len(cfg.Products)),
	}

	for _, product := range cfg.ProductNames() {
		patterns, _ := cfg.GetGlobs(product)
		compiled := make([]glob.Glob, 0, len(patterns))
		for _, pattern := range patterns {
			g, err := glob.Compile(pattern, '/')
			if err != nil {
				return nil, fmt.Errorf("failed to compile glob %q for product %q: %w", pattern, product, err)
			}
			compiled = append(compiled, g)
		}
		m.globs[product] = compiled
	}

	return m, nil
}

// MatchFiles returns the sorted names of the products any of files belongs
// to. A file belongs to a product when it matches any of the product's
// globs.
func (m *Matcher) MatchFiles(files []string) []string {
	var result []string
	for _, product := range m.config.ProductNames() {
		if m.matchesProduct(product, files) {
			result = append(result, product)
		}
	}
	return result
}

func (m *Matcher) matchesProduct(product string, files []string) bool {
	for _, file := range files {
		for _, g := range m.globs[product] {
			if g.Match(file) {
				return true
			}
		}
	}
	return false
}

// MatchCommit returns the product variants a commit affects: the variants
// of every product its files touch, narrowed by the commit scope.
func (m *Matcher) MatchCommit(c commit.Commit, files []string) []config.ProductVariant {
	products := m.MatchFiles(files)
	if len(products) == 0 {
		return nil
	}
	return m.FilterVariantsByScope(products, c.Scope)
}

// FilterVariantsByScope narrows products to the variants a scope selects.
//
// Products without variants are always kept. For products with variants an
// empty scope selects them all, a scope naming variants ("customerA" or
// "customerA,customerB") selects those, and a scope naming none of them is
// treated as unscoped.
func (m *Matcher) FilterVariantsByScope(products []string, scope string) []config.ProductVariant {
	scopes := splitScope(scope)

	var result []config.ProductVariant
	for _, product := range products {
		variants, ok := m.config.GetVariantsForProduct(product)
		if !ok {
			continue
		}
		if !m.config.HasVariants(product) || len(scopes) == 0 {
			result = append(result, variants...)
			continue
		}

		var selected []config.ProductVariant
		for _, pv := range variants {
			if slices.Contains(scopes, pv.Variant) {
				selected = append(selected, pv)
			}
		}
		if len(selected) == 0 {
			selected = variants
		}
		result = append(result, selected...)
	}

	return result
}

func splitScope(scope string) []string {
	var scopes []string
	for _, s := range strings.Split(scope, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}

// MatchesProductVariant reports whether a commit affects target.
func (m *Matcher) MatchesProductVariant(c commit.Commit, files []string, target config.ProductVariant) bool {
	for _, pv := range m.MatchCommit(c, files) {
		if pv.Product == target.Product && pv.Variant == target.Variant {
			return true
		}
	}
	return false
}
