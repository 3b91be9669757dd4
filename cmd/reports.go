package cmd

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/anton-dovnar/gno/history"
	"github.com/anton-dovnar/gno/logging"
	"github.com/anton-dovnar/gno/repo"
	"github.com/anton-dovnar/gno/view"
)

func (a *app) commitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "commits",
		Aliases: []string{"c"},
		Short:   "Commit statistics",
		Long:    `Count the distinct commits reachable from any reference: branches, tags, remotes and HEAD.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := a.walk()
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), view.Report{Commits: &stats.Commits})
		},
	}
}

func (a *app) branchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "branches",
		Aliases: []string{"b"},
		Short:   "Show the number of local branches",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(a.cfg.Path)
			if err != nil {
				return err
			}
			n, err := history.CountBranches(r.Store())
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), view.Report{Branches: &n})
		},
	}
}

func (a *app) contributorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "contributors",
		Aliases: []string{"cont"},
		Short:   "Show contributor statistics",
		Long:    `Count distinct authors, by exact name and email, over all reachable commits.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := a.walk()
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), view.Report{Contributors: &stats.Contributors})
		},
	}
}

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "summary",
		Aliases: []string{"s"},
		Short:   "Show summary of the repository statistics",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(a.cfg.Path)
			if err != nil {
				return err
			}

			var (
				stats    history.Stats
				branches int
				size     int64
			)

			// The size scan only touches the filesystem, so it runs beside
			// the history pass.
			g := new(errgroup.Group)
			g.Go(func() error {
				store := r.Store()
				var err error
				if stats, err = history.Compute(store); err != nil {
					return err
				}
				branches, err = history.CountBranches(store)
				return err
			})
			g.Go(func() error {
				dir, err := r.MetadataDir()
				if err != nil {
					return err
				}
				size, err = repo.MetadataSize(dir)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			return a.render(cmd.OutOrStdout(), view.Report{
				Commits:      &stats.Commits,
				Branches:     &branches,
				Contributors: &stats.Contributors,
				SizeBytes:    &size,
			})
		},
	}
}

// walk opens the configured repository and aggregates its full history.
func (a *app) walk() (history.Stats, error) {
	r, err := repo.Open(a.cfg.Path)
	if err != nil {
		return history.Stats{}, err
	}
	stats, err := history.Compute(r.Store())
	if err != nil {
		return history.Stats{}, err
	}
	logging.Logger.Debug("Walked history", "commits", stats.Commits, "contributors", stats.Contributors)
	return stats, nil
}
