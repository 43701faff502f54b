// Package release works out the next version of each product variant from
// its last tag and the conventional commits made since.
package release

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jimdowning-cyclops/semver-next-go/internal/bump"
	"github.com/jimdowning-cyclops/semver-next-go/internal/commit"
	"github.com/jimdowning-cyclops/semver-next-go/internal/config"
	"github.com/jimdowning-cyclops/semver-next-go/internal/git"
	"github.com/jimdowning-cyclops/semver-next-go/internal/matcher"
	"github.com/jimdowning-cyclops/semver-next-go/internal/version"
)

// DefaultConcurrency bounds how many variants PlanAll computes at once.
const DefaultConcurrency = 4

// Result is the outcome for a single product variant.
type Result struct {
	Product string          `json:"product" yaml:"product"`
	Variant string          `json:"variant,omitempty" yaml:"variant,omitempty"`
	LastTag string          `json:"lastTag,omitempty" yaml:"lastTag,omitempty"`
	TagName string          `json:"tagName" yaml:"tagName"`
	Current version.Version `json:"current" yaml:"current"`
	Next    version.Version `json:"next" yaml:"next"`
	Bump    string          `json:"bump" yaml:"bump"`
	Channel string          `json:"channel,omitempty" yaml:"channel,omitempty"`
	Commits int             `json:"commits" yaml:"commits"`
}

// Planner computes Results against one repository.
type Planner struct {
	git         *git.Client
	matcher     *matcher.Matcher
	concurrency int
	logger      *slog.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithConcurrency sets how many variants PlanAll computes at once.
func WithConcurrency(n int) Option {
	return func(p *Planner) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// NewPlanner returns a Planner for the products in cfg.
func NewPlanner(cfg *config.Config, client *git.Client, opts ...Option) (*Planner, error) {
	m, err := matcher.NewMatcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create matcher: %w", err)
	}

	p := &Planner{
		git:         client,
		matcher:     m,
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Plan computes the next version of pv.
func (p *Planner) Plan(ctx context.Context, pv config.ProductVariant) (Result, error) {
	log := p.logger.With("target", pv.Name())
	log.Debug("calculating", "tagPrefix", pv.TagPrefix(), "channel", pv.Channel.String())

	last, err := p.git.LatestTag(ctx, pv.TagPrefix())
	if err != nil {
		return Result{}, fmt.Errorf("failed to find last tag: %w", err)
	}
	log.Debug("last tag", "tag", last.Name, "version", last.Version.String())

	infos, err := p.git.CommitsSince(ctx, last.Name)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get commits: %w", err)
	}

	var relevant []commit.Commit
	for _, ci := range infos {
		c := commit.Parse(ci.Subject, ci.Body)
		c.Hash = ci.Hash
		if p.matcher.MatchesProductVariant(c, ci.Files, pv) {
			log.Debug("relevant commit", "hash", shortHash(c.Hash), "type", c.Type, "description", c.Description)
			relevant = append(relevant, c)
		}
	}

	tier := commit.DetermineTier(relevant)
	sel := bump.Selector{Tier: tier, Channel: pv.Channel}
	next := sel.Apply(last.Version)
	log.Debug("next version", "bump", sel.String(), "commits", len(relevant), "next", next.String())

	return Result{
		Product: pv.Product,
		Variant: pv.Variant,
		LastTag: last.Name,
		TagName: pv.TagName(next),
		Current: last.Version,
		Next:    next,
		Bump:    tier.String(),
		Channel: pv.Channel.String(),
		Commits: len(relevant),
	}, nil
}

// PlanAll runs Plan for every target concurrently. Results keep the order of
// targets. The first failure cancels the rest.
func (p *Planner) PlanAll(ctx context.Context, targets []config.ProductVariant) ([]Result, error) {
	results := make([]Result, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, pv := range targets {
		g.Go(func() error {
			r, err := p.Plan(gctx, pv)
			if err != nil {
				return fmt.Errorf("failed to calculate for %s: %w", pv.Name(), err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
