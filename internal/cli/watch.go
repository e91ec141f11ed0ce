package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/commitlog/internal/errors"
	"github.com/ariel-frischer/commitlog/internal/gitrepo"
)

// watchDebounce coalesces the burst of ref updates a single git
// operation produces into one regeneration.
const watchDebounce = 500 * time.Millisecond

var (
	watchRepoFlag   string
	watchFromFlag   string
	watchToFlag     string
	watchOutputFlag string
	watchFormatFlag string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the changelog whenever the repository moves",
	Long: `Watch a local repository and regenerate the changelog every time
HEAD or a ref changes (new commits, checkouts, tags). Uses file system
notifications on the .git directory; press Ctrl+C to stop.

Only local repositories can be watched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchRepoFlag, "repo", "r", ".", "Local repository path")
	watchCmd.Flags().StringVarP(&watchFromFlag, "from", "f", gitrepo.RefRoot, "Ref the range starts after (exclusive)")
	watchCmd.Flags().StringVarP(&watchToFlag, "to", "t", "HEAD", "Ref the range ends at (inclusive)")
	watchCmd.Flags().StringVarP(&watchOutputFlag, "output", "o", "", "Output file (default from config)")
	watchCmd.Flags().StringVar(&watchFormatFlag, "format", "", "Output format (default from config)")
}

func runWatch(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = watchFormatFlag
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = watchOutputFlag
	}

	if gitrepo.IsRemoteSource(watchRepoFlag) {
		return errors.NewArgumentError("watch requires a local repository",
			"Clone the repository first, then watch the clone")
	}

	gitDir := filepath.Join(watchRepoFlag, ".git")
	if info, err := os.Stat(gitDir); err != nil || !info.IsDir() {
		return errors.NewRepositoryError(fmt.Sprintf("no .git directory at %s", watchRepoFlag),
			"Pass --repo with the root of a git working tree")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "creating file watcher")
	}
	defer watcher.Close()

	for _, dir := range watchPaths(gitDir) {
		if err := watcher.Add(dir); err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "watching "+dir)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial generation so the output exists before the first change.
	if err := generate(cmd, cfg, watchRepoFlag, watchFromFlag, watchToFlag); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", watchRepoFlag)

	debounce := time.NewTimer(time.Hour)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isRefChange(event) {
				debounce.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)

		case <-debounce.C:
			// Regeneration failures keep the watch alive; a transient
			// state mid-operation can fail once and succeed on the next
			// event.
			if err := generate(cmd, cfg, watchRepoFlag, watchFromFlag, watchToFlag); err != nil {
				printError(err)
			}
		}
	}
}

// watchPaths returns the directories inside .git whose changes signal
// ref movement. Missing ref directories are skipped; packed refs still
// surface through the .git directory itself.
func watchPaths(gitDir string) []string {
	paths := []string{gitDir}
	for _, sub := range []string{"refs/heads", "refs/tags"} {
		dir := filepath.Join(gitDir, sub)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			paths = append(paths, dir)
		}
	}
	return paths
}

// isRefChange filters watcher events down to the ones that can move the
// commit range: HEAD updates, ref updates, packed-refs rewrites.
func isRefChange(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.ToSlash(event.Name)
	return strings.HasSuffix(name, "/HEAD") ||
		strings.HasSuffix(name, "/packed-refs") ||
		strings.Contains(name, "/refs/")
}
