package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/jimdowning-cyclops/semver-next-go/internal/bump"
	"github.com/jimdowning-cyclops/semver-next-go/internal/version"
)

// bumpFlags are the increment flags of the bump command, in the order they
// are handed to bump.Resolve.
var bumpFlags = []string{"major", "minor", "patch", "stable", "alpha", "beta"}

type bumpResult struct {
	Current version.Version `json:"current" yaml:"current"`
	Next    version.Version `json:"next" yaml:"next"`
	Bump    string          `json:"bump" yaml:"bump"`
}

func bumpCmd() *cli.Command {
	flags := make([]cli.Flag, 0, len(bumpFlags))
	for _, f := range bumpFlags {
		flags = append(flags, &cli.BoolFlag{Name: f, Usage: bumpUsage[f]})
	}

	return &cli.Command{
		Name:      "bump",
		Usage:     "Print the version that follows VERSION",
		ArgsUsage: "VERSION",
		Description: `Exactly one of --major, --minor, --patch or --stable is required.
--alpha or --beta moves the result onto that pre-release channel:

  bump --major 1.2.3                -> 2.0.0
  bump --minor --alpha 2.3.5        -> 2.4.0-alpha.0
  bump --minor --alpha 2.4.0-alpha.0 -> 2.4.0-alpha.1
  bump --stable 3.0.0-beta.2        -> 3.0.0`,
		Flags: flags,
		Action: func(_ context.Context, cmd *cli.Command) error {
			if err := wantArgs(cmd, 1, "VERSION"); err != nil {
				return err
			}

			var tokens []string
			for _, f := range bumpFlags {
				if cmd.Bool(f) {
					tokens = append(tokens, f)
				}
			}
			sel, err := bump.Resolve(tokens)
			if err != nil {
				return err
			}

			v, err := parseVersion(cmd, cmd.Args().First())
			if err != nil {
				return err
			}
			next := sel.Apply(v)
			slog.Debug("bumped", "from", v.String(), "to", next.String(), "bump", sel.String())

			f, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			if f == FormatText {
				_, err = fmt.Fprintln(writer(cmd), next)
				return err
			}
			return encode(writer(cmd), f, bumpResult{Current: v, Next: next, Bump: sel.String()})
		},
	}
}

var bumpUsage = map[string]string{
	"major":  "bump the major version",
	"minor":  "bump the minor version",
	"patch":  "bump the patch version",
	"stable": "drop the pre-release tag",
	"alpha":  "release on the alpha channel",
	"beta":   "release on the beta channel",
}

type compareResult struct {
	A      version.Version `json:"a" yaml:"a"`
	B      version.Version `json:"b" yaml:"b"`
	Result int             `json:"result" yaml:"result"`
}

func compareCmd() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "Print -1, 0 or 1 as A sorts before, equal to or after B",
		ArgsUsage: "A B",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if err := wantArgs(cmd, 2, "A B"); err != nil {
				return err
			}

			a, err := parseVersion(cmd, cmd.Args().Get(0))
			if err != nil {
				return err
			}
			b, err := parseVersion(cmd, cmd.Args().Get(1))
			if err != nil {
				return err
			}
			c := version.Compare(a, b)

			f, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			if f == FormatText {
				_, err = fmt.Fprintln(writer(cmd), c)
				return err
			}
			return encode(writer(cmd), f, compareResult{A: a, B: b, Result: c})
		},
	}
}

func sortCmd() *cli.Command {
	return &cli.Command{
		Name:      "sort",
		Usage:     "Sort versions by precedence",
		ArgsUsage: "[VERSION...]",
		Description: `Versions come from the arguments or, when there are none, one per line
on stdin. Versions of equal precedence keep their input order.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "reverse",
				Aliases: []string{"r"},
				Usage:   "sort from highest to lowest",
			},
			&cli.BoolFlag{
				Name:  "skip-invalid",
				Usage: "drop inputs that are not versions instead of failing",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			inputs := cmd.Args().Slice()
			if len(inputs) == 0 {
				var err error
				if inputs, err = readLines(cmd); err != nil {
					return err
				}
			}

			vs := make([]version.Version, 0, len(inputs))
			for _, in := range inputs {
				v, err := parseVersion(cmd, in)
				if err != nil {
					if cmd.Bool("skip-invalid") {
						slog.Warn("skipping invalid version", "input", in, "error", err)
						continue
					}
					return err
				}
				vs = append(vs, v)
			}

			version.Sort(vs)
			if cmd.Bool("reverse") {
				slices.Reverse(vs)
			}

			f, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			if f != FormatText {
				return encode(writer(cmd), f, vs)
			}
			w := writer(cmd)
			for _, v := range vs {
				if _, err := fmt.Fprintln(w, v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func readLines(cmd *cli.Command) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(reader(cmd))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read versions: %w", err)
	}
	return lines, nil
}

// versionInfo is the parsed structure printed by validate.
type versionInfo struct {
	Version    version.Version `json:"version" yaml:"version"`
	Major      uint64          `json:"major" yaml:"major"`
	Minor      uint64          `json:"minor" yaml:"minor"`
	Patch      uint64          `json:"patch" yaml:"patch"`
	PreRelease string          `json:"preRelease,omitempty" yaml:"preRelease,omitempty"`
	Kind       string          `json:"kind" yaml:"kind"`
	Revision   *uint64         `json:"revision,omitempty" yaml:"revision,omitempty"`
	Metadata   string          `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

func newVersionInfo(v version.Version) versionInfo {
	info := versionInfo{
		Version:    v,
		Major:      v.Major,
		Minor:      v.Minor,
		Patch:      v.Patch,
		PreRelease: v.PreRelease.String(),
		Kind:       v.PreRelease.Kind().String(),
		Metadata:   v.Metadata,
	}
	if rev, ok := v.PreRelease.Revision(); ok {
		info.Revision = &rev
	}
	return info
}

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check that VERSION is a semantic version",
		ArgsUsage: "VERSION",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if err := wantArgs(cmd, 1, "VERSION"); err != nil {
				return err
			}

			v, err := parseVersion(cmd, cmd.Args().First())
			if err != nil {
				return err
			}

			f, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			if f == FormatText {
				_, err = fmt.Fprintln(writer(cmd), v)
				return err
			}
			return encode(writer(cmd), f, newVersionInfo(v))
		},
	}
}
