package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/commitlog/internal/config"
	"github.com/ariel-frischer/commitlog/internal/conventional"
	"github.com/ariel-frischer/commitlog/internal/errors"
	"github.com/ariel-frischer/commitlog/internal/gitrepo"
	"github.com/ariel-frischer/commitlog/internal/output"
	"github.com/ariel-frischer/commitlog/internal/render"
)

var (
	generateRepoFlag   string
	generateFromFlag   string
	generateToFlag     string
	generateOutputFlag string
	generateFormatFlag string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a changelog for a ref range",
	Long: `Generate a changelog from the commits between two refs.

The repository can be a local path (opened in place) or a remote URL
(cloned first). Refs can be branches, tags, commit hashes, HEAD, or the
special ref "root" for the repository's first commit.

Examples:
  commitlog generate                       # root..HEAD of the current repo
  commitlog generate -f v1.0.0 -t v1.1.0   # a tag range
  commitlog generate --format json -o -    # JSON records on stdout
  commitlog generate -r https://github.com/org/repo.git`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateRepoFlag, "repo", "r", ".", "Repository path or remote URL")
	generateCmd.Flags().StringVarP(&generateFromFlag, "from", "f", gitrepo.RefRoot, "Ref the range starts after (exclusive)")
	generateCmd.Flags().StringVarP(&generateToFlag, "to", "t", "HEAD", "Ref the range ends at (inclusive)")
	generateCmd.Flags().StringVarP(&generateOutputFlag, "output", "o", "", "Output file, \"-\" for stdout (default from config)")
	generateCmd.Flags().StringVar(&generateFormatFlag, "format", "", "Output format: markdown, json, yaml, csv, raw (default from config)")
}

func runGenerate(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("format") {
		cfg.Format = generateFormatFlag
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = generateOutputFlag
	}

	return generate(cmd, cfg, generateRepoFlag, generateFromFlag, generateToFlag)
}

// loadConfig loads configuration and wraps failures as config errors.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Configuration, "loading configuration",
			"Check the syntax of "+config.ProjectConfigPath,
			"Run with --config to point at a different file")
	}
	return cfg, nil
}

// generate runs the whole pipeline once: open repository, collect the
// ref range, parse and classify, render to the configured output.
func generate(cmd *cobra.Command, cfg *config.Configuration, repo, from, to string) error {
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return errors.NewArgumentError(err.Error(),
			"Pass --format with one of: markdown, json, yaml, csv, raw")
	}

	reader, err := openRepository(cmd.Context(), repo)
	if err != nil {
		return err
	}

	commits, err := reader.CommitsBetween(cmd.Context(), from, to)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Repository,
			fmt.Sprintf("collecting commits %s..%s", from, to),
			"Check that both refs exist: git log --oneline "+from+".."+to,
			"Use \"root\" as --from to start at the first commit")
	}

	aggregator := conventional.NewAggregator(
		conventional.WithClassifier(conventional.NewClassifier(cfg.CategoryTable())),
		conventional.WithParallelism(cfg.Parallelism),
	)
	changeset := aggregator.Aggregate(commits)

	renderer, err := render.New(format, render.Options{
		Labels:        cfg.Labels,
		IgnoreTypes:   cfg.IgnoreTypes,
		BreakingLabel: cfg.BreakingLabel,
	})
	if err != nil {
		return errors.NewArgumentError(err.Error())
	}

	if err := writeOutput(cmd, renderer, changeset, cfg.Output); err != nil {
		return err
	}

	output.PrintSummary(cmd.ErrOrStderr(), changeset)
	if cfg.Output != "-" {
		output.PrintSuccess(cmd.ErrOrStderr(), "Changelog generated to "+cfg.Output)
	}
	return nil
}

// openRepository opens a local path or clones a remote URL, with a
// spinner and a clone timeout for the remote case.
func openRepository(ctx context.Context, repo string) (*gitrepo.Reader, error) {
	if gitrepo.IsRemoteSource(repo) {
		ctx, cancel := context.WithTimeout(ctx, gitrepo.DefaultCloneTimeout)
		defer cancel()

		s := output.NewCloneSpinner(repo)
		reader, err := gitrepo.Open(ctx, repo)
		output.StopSpinner(s)
		if err != nil {
			return nil, errors.WrapWithMessage(err, errors.Repository, "cloning repository",
				"Check that the URL is reachable",
				"Set GIT_USERNAME/GIT_PASSWORD or GITHUB_TOKEN for private HTTPS remotes",
				"Run an SSH agent for SSH remotes")
		}
		return reader, nil
	}

	reader, err := gitrepo.Open(ctx, repo)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Repository, "opening repository",
			"Check that the path is inside a git repository",
			"Pass --repo with a repository path or URL")
	}
	return reader, nil
}

// writeOutput renders the changeset to the output target. "-" writes to
// the command's stdout.
func writeOutput(cmd *cobra.Command, renderer render.Renderer, cs *conventional.Changeset, target string) error {
	var w io.Writer
	if target == "-" {
		w = cmd.OutOrStdout()
	} else {
		f, err := os.Create(target)
		if err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "creating output file",
				"Check that the directory exists and is writable")
		}
		defer f.Close()
		w = f
	}

	if err := renderer.Render(cs, w); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "rendering changelog")
	}
	return nil
}
