package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/jimdowning-cyclops/semver-next-go/internal/bump"
	"github.com/jimdowning-cyclops/semver-next-go/internal/config"
	"github.com/jimdowning-cyclops/semver-next-go/internal/git"
	"github.com/jimdowning-cyclops/semver-next-go/internal/release"
)

// multiResult is the output when more than one target is computed.
type multiResult struct {
	Results []release.Result `json:"results" yaml:"results"`
}

func nextCmd() *cli.Command {
	return &cli.Command{
		Name:  "next",
		Usage: "Compute the next release of configured products from conventional commits",
		Description: `Reads the products from .semver.yml, finds the last tag of each product
variant and derives the next version from the conventional commits that
touched its files since:

  feat!/fix! or a BREAKING CHANGE footer  -> major
  feat                                    -> minor
  fix                                     -> patch

Products configured with a channel (alpha or beta) get pre-release versions.
Text output is the same JSON the Bitrise step consumes.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   config.FileName,
				Usage:   "path to config file, relative to --dir",
				Sources: cli.EnvVars("config"),
			},
			&cli.StringFlag{
				Name:    "config-content",
				Usage:   "inline YAML config content (takes precedence over --config)",
				Sources: cli.EnvVars("config_content"),
			},
			&cli.StringFlag{
				Name:    "target",
				Usage:   "product or product-variant to calculate (e.g. mobile-customerA)",
				Sources: cli.EnvVars("target"),
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "calculate versions for all products in config",
			},
			&cli.StringFlag{
				Name:  "channel",
				Usage: "override the configured channel (stable, alpha, beta)",
			},
			&cli.StringFlag{
				Name:  "dir",
				Value: ".",
				Usage: "git working tree to inspect",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: release.DefaultConcurrency,
				Usage: "number of products calculated at once",
			},
			&cli.BoolFlag{
				Name:  "export",
				Value: true,
				Usage: "export results with envman when it is on PATH",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			targets, err := selectTargets(cmd, cfg)
			if err != nil {
				return err
			}

			dir := cmd.String("dir")
			client := git.New(dir, git.WithStrict(cfg.Strict || cmd.Bool("strict")))
			if !client.IsRepository(ctx) {
				return fmt.Errorf("not a git repository: %s", dir)
			}

			planner, err := release.NewPlanner(cfg, client, release.WithConcurrency(int(cmd.Int("concurrency"))))
			if err != nil {
				return err
			}

			results, err := planner.PlanAll(ctx, targets)
			if err != nil {
				return err
			}

			if err := writeResults(cmd, f, results); err != nil {
				return err
			}

			if cmd.Bool("export") && hasEnvman() {
				if err := exportResults(ctx, exportToEnvman, results); err != nil {
					return fmt.Errorf("failed to export outputs: %w", err)
				}
			}
			return nil
		},
	}
}

// loadConfig reads inline config content when given, the config file
// otherwise.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if content := cmd.String("config-content"); content != "" {
		cfg, err := config.Parse(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse inline config: %w", err)
		}
		return cfg, nil
	}

	path := cmd.String("config")
	if !filepath.IsAbs(path) {
		path = filepath.Join(cmd.String("dir"), path)
	}
	slog.Debug("loading config", "path", path)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("a config file is required (--config or --config-content): %w", err)
	}
	return cfg, nil
}

// selectTargets resolves --target or --all, then applies --channel.
func selectTargets(cmd *cli.Command, cfg *config.Config) ([]config.ProductVariant, error) {
	var targets []config.ProductVariant
	switch target := cmd.String("target"); {
	case target != "":
		pv, err := cfg.Target(target)
		if err != nil {
			return nil, err
		}
		targets = []config.ProductVariant{pv}
	case cmd.Bool("all"):
		targets = cfg.GetAllProductVariants()
	default:
		return nil, fmt.Errorf("either --target or --all is required")
	}

	if cmd.IsSet("channel") {
		ch, err := bump.ParseChannel(cmd.String("channel"))
		if err != nil {
			return nil, err
		}
		for i := range targets {
			targets[i].Channel = ch
		}
	}
	return targets, nil
}

// writeResults prints a single result on its own and several wrapped in
// {"results": [...]}. Text output is compact JSON.
func writeResults(cmd *cli.Command, f Format, results []release.Result) error {
	var v any = multiResult{Results: results}
	if len(results) == 1 {
		v = results[0]
	}

	if f == FormatText {
		return json.NewEncoder(writer(cmd)).Encode(v)
	}
	return encode(writer(cmd), f, v)
}

type exportFunc func(ctx context.Context, key, value string) error

// hasEnvman returns true if envman is available for exporting outputs.
func hasEnvman() bool {
	_, err := exec.LookPath("envman")
	return err == nil
}

// exportToEnvman exports a key-value pair using envman for subsequent
// Bitrise steps.
func exportToEnvman(ctx context.Context, key, value string) error {
	return exec.CommandContext(ctx, "envman", "add", "--key", key, "--value", value).Run()
}

// exportResults exports the fields of a single result as SEMVER_* variables,
// or all results as JSON in SEMVER_RESULTS.
func exportResults(ctx context.Context, export exportFunc, results []release.Result) error {
	if len(results) != 1 {
		data, err := json.Marshal(multiResult{Results: results})
		if err != nil {
			return err
		}
		if err := export(ctx, "SEMVER_RESULTS", string(data)); err != nil {
			return fmt.Errorf("failed to export SEMVER_RESULTS: %w", err)
		}
		return nil
	}

	r := results[0]
	outputs := map[string]string{
		"SEMVER_PRODUCT":  r.Product,
		"SEMVER_VARIANT":  r.Variant,
		"SEMVER_LAST_TAG": r.LastTag,
		"SEMVER_TAG_NAME": r.TagName,
		"SEMVER_CURRENT":  r.Current.String(),
		"SEMVER_NEXT":     r.Next.String(),
		"SEMVER_BUMP":     r.Bump,
		"SEMVER_CHANNEL":  r.Channel,
		"SEMVER_COMMITS":  strconv.Itoa(r.Commits),
	}
	keys := make([]string, 0, len(outputs))
	for k := range outputs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if err := export(ctx, key, outputs[key]); err != nil {
			return fmt.Errorf("failed to export %s: %w", key, err)
		}
	}
	return nil
}
