// Package git reads release tags and commit history by running the git
// binary.
package git

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/jimdowning-cyclops/semver-next-go/internal/version"
)

// Runner runs git with args in dir and returns its standard output.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// ExecRunner runs the git binary found on PATH.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}

// CommitInfo holds the raw commit data from git log.
type CommitInfo struct {
	Hash    string
	Subject string
	Body    string
	Files   []string // files changed in this commit
}

// Tag is a release tag and the version it carries. The zero Tag means no
// release has been tagged yet.
type Tag struct {
	Name    string
	Version version.Version
}

// Client runs git commands against one working tree.
type Client struct {
	dir    string
	runner Runner
	strict bool
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRunner replaces the git binary, mostly for tests.
func WithRunner(r Runner) Option {
	return func(c *Client) { c.runner = r }
}

// WithStrict makes LatestTag ignore tags whose numbers have leading zeros.
func WithStrict(strict bool) Option {
	return func(c *Client) { c.strict = strict }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a Client for the working tree at dir. An empty dir means the
// current directory.
func New(dir string, opts ...Option) *Client {
	c := &Client{dir: dir, runner: ExecRunner{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) git(ctx context.Context, args ...string) (string, error) {
	c.logger.Debug("running git", "dir", c.dir, "args", args)
	out, err := c.runner.Run(ctx, c.dir, args...)
	return string(out), err
}

// IsRepository reports whether the directory is inside a git work tree.
func (c *Client) IsRepository(ctx context.Context) bool {
	_, err := c.git(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// HasCommits reports whether HEAD points at a commit.
func (c *Client) HasCommits(ctx context.Context) bool {
	_, err := c.git(ctx, "rev-parse", "--verify", "HEAD")
	return err == nil
}

// ListTags returns the tags matching a git tag pattern such as "app-v*".
func (c *Client) ListTags(ctx context.Context, pattern string) ([]string, error) {
	out, err := c.git(ctx, "tag", "--list", pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return nonEmptyLines(out), nil
}

// LatestTag returns the tag with the highest version among the tags that
// start with prefix. The rest of the tag must parse as a version;
// pre-release tags such as "app-v1.2.0-beta.1" count. Tags that don't
// parse are skipped. The zero Tag is returned when none qualify.
func (c *Client) LatestTag(ctx context.Context, prefix string) (Tag, error) {
	names, err := c.ListTags(ctx, globEscape(prefix)+"*")
	if err != nil {
		return Tag{}, err
	}

	parse := version.Parse
	if c.strict {
		parse = version.ParseStrict
	}

	var best Tag
	found := false
	for _, name := range names {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		v, err := parse(rest)
		if err != nil {
			c.logger.Debug("skipping tag", "tag", name, "error", err)
			continue
		}
		if !found || v.GreaterThan(best.Version) {
			best = Tag{Name: name, Version: v}
			found = true
		}
	}

	if found {
		c.logger.Debug("found latest tag", "prefix", prefix, "tag", best.Name)
	}
	return best, nil
}

// globEscape escapes the wildcard characters git's tag pattern understands.
func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Record and field separators for git log output. Neither can appear in a
// commit message typed by a person.
const (
	recordSep = "\x1e"
	fieldSep  = "\x1f"
)

// CommitsSince returns the commits reachable from HEAD but not from tag,
// newest first, with the files each one changed. An empty tag returns the
// whole history. A repository without commits yields nil.
func (c *Client) CommitsSince(ctx context.Context, tag string) ([]CommitInfo, error) {
	if !c.HasCommits(ctx) {
		return nil, nil
	}

	format := "--format=" + recordSep + "%H" + fieldSep + "%s" + fieldSep + "%b" + fieldSep
	args := []string{"log", format, "--name-only"}
	if tag != "" {
		args = append(args, tag+"..HEAD")
	}

	out, err := c.git(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get git log: %w", err)
	}

	return parseLog(out), nil
}

// parseLog parses the output of git log with the CommitsSince format.
// Each record is hash, subject, body, then the --name-only file list.
func parseLog(output string) []CommitInfo {
	var commits []CommitInfo
	for _, record := range strings.Split(output, recordSep) {
		if strings.TrimSpace(record) == "" {
			continue
		}

		parts := strings.SplitN(record, fieldSep, 4)
		if len(parts) < 2 {
			continue
		}

		ci := CommitInfo{
			Hash:    strings.TrimSpace(parts[0]),
			Subject: strings.TrimSpace(parts[1]),
		}
		if len(parts) > 2 {
			ci.Body = strings.TrimSpace(parts[2])
		}
		if len(parts) > 3 {
			ci.Files = nonEmptyLines(parts[3])
		}
		commits = append(commits, ci)
	}
	return commits
}

// FilesChanged returns all files changed in a specific commit.
func (c *Client) FilesChanged(ctx context.Context, hash string) ([]string, error) {
	out, err := c.git(ctx, "diff-tree", "--no-commit-id", "--name-only", "-r", "--root", hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get files for commit %s: %w", hash, err)
	}
	return nonEmptyLines(out), nil
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
