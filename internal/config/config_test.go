package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jimdowning-cyclops/semver-next-go/internal/bump"
	"github.com/jimdowning-cyclops/semver-next-go/internal/version"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantErr     bool
		errContains string
	}{
		{
			name: "valid config with variants",
			content: `products:
  mobile:
    globs: ["apps/mobile/**"]
    variants: [customerA, customerB, internal]
  web:
    globs: ["apps/web/**", "libs/ui/**"]
    variants: [customerA, customerB]
`,
		},
		{
			name: "valid config without variants",
			content: `products:
  sample-app:
    globs: ["apps/sample/**"]
`,
		},
		{
			name: "product without globs",
			content: `products:
  mobile:
    variants: [customerA]
`,
		},
		{
			name: "channels and strict",
			content: `strict: true
products:
  mobile:
    globs: ["apps/mobile/**"]
    channel: beta
  web:
    channel: alpha
`,
		},
		{
			name:        "empty products",
			content:     `products: {}`,
			wantErr:     true,
			errContains: "at least one product",
		},
		{
			name: "unknown channel",
			content: `products:
  mobile:
    channel: gamma
`,
			wantErr:     true,
			errContains: `unknown channel "gamma"`,
		},
		{
			name: "bad glob",
			content: `products:
  mobile:
    globs: ["apps/[mobile"]
`,
			wantErr:     true,
			errContains: "invalid glob",
		},
		{
			name: "duplicate variant",
			content: `products:
  mobile:
    variants: [customerA, customerA]
`,
			wantErr:     true,
			errContains: "duplicate variant",
		},
		{
			name: "empty variant",
			content: `products:
  mobile:
    variants: [""]
`,
			wantErr:     true,
			errContains: "must not be empty",
		},
		{
			name:        "invalid yaml",
			content:     `products: [invalid`,
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			configPath := filepath.Join(dir, FileName)
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}

			cfg, err := Load(configPath)

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errContains)
				} else if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg == nil {
				t.Error("expected non-nil config")
			}
		})
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	content := `products:
  mobile:
    globs: ["apps/mobile/**"]
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cfg.Products["mobile"]; !ok {
		t.Error("expected mobile product")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/.semver.yml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParse(t *testing.T) {
	content := `strict: true
products:
  mobile:
    globs: ["apps/mobile/**"]
    variants: [customerA, customerB]
    channel: beta
  web:
    globs: ["apps/web/**"]
    tag_prefix: v
`
	cfg, err := Parse(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Strict {
		t.Error("expected strict to be set")
	}
	if len(cfg.Products) != 2 {
		t.Errorf("expected 2 products, got %d", len(cfg.Products))
	}
	if got := cfg.Products["mobile"].Globs; len(got) != 1 || got[0] != "apps/mobile/**" {
		t.Errorf("unexpected globs: %v", got)
	}
	if cfg.Products["mobile"].Channel != "beta" {
		t.Errorf("unexpected channel: %q", cfg.Products["mobile"].Channel)
	}
	if cfg.Products["web"].TagPrefix != "v" {
		t.Errorf("unexpected tag prefix: %q", cfg.Products["web"].TagPrefix)
	}
}

func TestProductVariant_Tags(t *testing.T) {
	v := version.MustParse("1.2.0-beta.1")
	tests := []struct {
		pv         ProductVariant
		wantName   string
		wantPrefix string
		wantTag    string
	}{
		{ProductVariant{Product: "mobile", Variant: "customerA"}, "mobile-customerA", "mobile-customerA-v", "mobile-customerA-v1.2.0-beta.1"},
		{ProductVariant{Product: "sample-app"}, "sample-app", "sample-app-v", "sample-app-v1.2.0-beta.1"},
		{ProductVariant{Product: "web", Prefix: "v"}, "web", "v", "v1.2.0-beta.1"},
		{ProductVariant{Product: "web", Variant: "customerB", Prefix: "web/"}, "web-customerB", "web/", "web/1.2.0-beta.1"},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			if got := tt.pv.Name(); got != tt.wantName {
				t.Errorf("Name() = %q, want %q", got, tt.wantName)
			}
			if got := tt.pv.TagPrefix(); got != tt.wantPrefix {
				t.Errorf("TagPrefix() = %q, want %q", got, tt.wantPrefix)
			}
			if got := tt.pv.TagName(v); got != tt.wantTag {
				t.Errorf("TagName() = %q, want %q", got, tt.wantTag)
			}
		})
	}
}

func testConfig() *Config {
	return &Config{
		Products: map[string]ProductConfig{
			"mobile": {
				Globs:    []string{"apps/mobile/**"},
				Variants: []string{"customerB", "customerA"},
				Channel:  "alpha",
			},
			"web": {
				Globs:     []string{"apps/web/**"},
				Variants:  []string{"customerA"},
				TagPrefix: "web/v",
			},
			"sample-app": {},
		},
	}
}

func TestConfig_GetAllProductVariants(t *testing.T) {
	pvs := testConfig().GetAllProductVariants()

	expected := []ProductVariant{
		{Product: "mobile", Variant: "customerB", Channel: bump.ChannelAlpha},
		{Product: "mobile", Variant: "customerA", Channel: bump.ChannelAlpha},
		{Product: "sample-app"},
		{Product: "web", Variant: "customerA", Prefix: "web/v"},
	}

	if d := cmp.Diff(expected, pvs); d != "" {
		t.Errorf("GetAllProductVariants():\n(- want, + got):\n%s", d)
	}
}

func TestConfig_GetVariantsForProduct(t *testing.T) {
	cfg := testConfig()

	t.Run("product with variants", func(t *testing.T) {
		pvs, ok := cfg.GetVariantsForProduct("mobile")
		if !ok {
			t.Fatal("expected product to exist")
		}
		if len(pvs) != 2 {
			t.Errorf("got %d variants, want 2", len(pvs))
		}
	})

	t.Run("product without variants", func(t *testing.T) {
		pvs, ok := cfg.GetVariantsForProduct("sample-app")
		if !ok {
			t.Fatal("expected product to exist")
		}
		if len(pvs) != 1 || pvs[0].Variant != "" {
			t.Errorf("got %+v, want one entry with an empty variant", pvs)
		}
	})

	t.Run("nonexistent product", func(t *testing.T) {
		if _, ok := cfg.GetVariantsForProduct("nonexistent"); ok {
			t.Error("expected product to not exist")
		}
	})
}

func TestConfig_Target(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name    string
		want    ProductVariant
		wantErr bool
	}{
		{name: "mobile-customerA", want: ProductVariant{Product: "mobile", Variant: "customerA", Channel: bump.ChannelAlpha}},
		{name: "sample-app", want: ProductVariant{Product: "sample-app"}},
		{name: "web-customerA", want: ProductVariant{Product: "web", Variant: "customerA", Prefix: "web/v"}},
		{name: "mobile", wantErr: true},
		{name: "mobile-customerC", wantErr: true},
		{name: "nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.Target(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Target(%q) = %+v, want error", tt.name, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Target(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestConfig_HasVariants(t *testing.T) {
	cfg := testConfig()

	if !cfg.HasVariants("mobile") {
		t.Error("expected mobile to have variants")
	}
	if cfg.HasVariants("sample-app") {
		t.Error("expected sample-app to not have variants")
	}
	if cfg.HasVariants("nonexistent") {
		t.Error("expected nonexistent to return false")
	}
}

func TestConfig_GetGlobs(t *testing.T) {
	cfg := testConfig()

	globs, ok := cfg.GetGlobs("mobile")
	if !ok || len(globs) != 1 || globs[0] != "apps/mobile/**" {
		t.Errorf("GetGlobs(mobile) = %v, %v", globs, ok)
	}

	globs, ok = cfg.GetGlobs("sample-app")
	if !ok || len(globs) != 1 || globs[0] != "**" {
		t.Errorf("GetGlobs(sample-app) = %v, %v, want the match-all default", globs, ok)
	}

	if _, ok := cfg.GetGlobs("nonexistent"); ok {
		t.Error("expected product to not exist")
	}
}

func TestConfig_ProductNames(t *testing.T) {
	names := testConfig().ProductNames()
	expected := []string{"mobile", "sample-app", "web"}

	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Errorf("got %v, want %v", names, expected)
	}
}
