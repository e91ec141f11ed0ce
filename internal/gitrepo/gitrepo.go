// Package gitrepo provides the repository reader for commitlog. It opens
// a local repository or clones a remote one, resolves ref identifiers and
// walks the commit history of a ref range, producing the ordered raw
// commit list the conventional package consumes. It uses the go-git
// library so no git CLI installation is required.
package gitrepo

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

// DefaultCloneTimeout bounds remote clone operations to prevent
// indefinite hangs on unreachable hosts.
const DefaultCloneTimeout = 120 * time.Second

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default it is a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for repository operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Reader reads commit history from one opened repository.
type Reader struct {
	repo *git.Repository
}

// OpenOption configures Open.
type OpenOption func(*openOptions)

type openOptions struct {
	cloneDir string
	progress io.Writer
}

// WithCloneDir sets the directory remote sources are cloned into.
// Defaults to a fresh temporary directory.
func WithCloneDir(dir string) OpenOption {
	return func(o *openOptions) {
		o.cloneDir = dir
	}
}

// WithProgress sets a writer that receives clone progress output.
func WithProgress(w io.Writer) OpenOption {
	return func(o *openOptions) {
		o.progress = w
	}
}

// Open opens the repository identified by source. An existing local path
// is opened in place (traversing up to find the repository root); a
// remote URL is cloned first. The context bounds the clone; local opens
// do not block.
func Open(ctx context.Context, source string, opts ...OpenOption) (*Reader, error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := os.Stat(source); err == nil {
		return openLocal(source)
	}

	if IsRemoteSource(source) {
		return cloneRemote(ctx, source, &o)
	}

	return nil, fmt.Errorf("repository %q is neither an existing path nor a remote URL", source)
}

// openLocal opens a repository at a local path, detecting the .git
// directory from any path inside the working tree.
func openLocal(path string) (*Reader, error) {
	logDebug("[gitrepo] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[gitrepo] repository opened successfully")
	return &Reader{repo: repo}, nil
}

// cloneRemote clones a remote repository into the configured directory.
func cloneRemote(ctx context.Context, url string, o *openOptions) (*Reader, error) {
	dir := o.cloneDir
	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", "commitlog-*")
		if err != nil {
			return nil, fmt.Errorf("creating clone directory: %w", err)
		}
	}

	logDebug("[gitrepo] cloning %s into %s", url, dir)

	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:      url,
		Auth:     authForURL(url),
		Progress: o.progress,
	})
	if err != nil {
		return nil, fmt.Errorf("cloning %s: %w", url, err)
	}

	logDebug("[gitrepo] clone completed")
	return &Reader{repo: repo}, nil
}

// IsRemoteSource reports whether source looks like a remote repository
// URL rather than a local path.
func IsRemoteSource(source string) bool {
	return strings.Contains(source, "://") || isSSHURL(source)
}

// isSSHURL checks if a URL is an SSH URL. Detects git@ (SCP-style),
// ssh:// and git+ssh:// schemes.
func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "git@") ||
		strings.HasPrefix(url, "ssh://") ||
		strings.HasPrefix(url, "git+ssh://")
}

// authForURL returns the appropriate authentication method for a remote
// URL. SSH URLs use SSH agent auth, HTTPS URLs use environment
// credentials. Returns nil for anonymous access.
func authForURL(url string) transport.AuthMethod {
	if isSSHURL(url) {
		auth, err := ssh.NewSSHAgentAuth("git")
		if err != nil {
			logDebug("[gitrepo] SSH agent auth unavailable: %v", err)
			return nil
		}
		return auth
	}

	username := os.Getenv("GIT_USERNAME")
	password := os.Getenv("GIT_PASSWORD")
	if username == "" {
		// A GitHub token can be used as the username with an empty password.
		username = os.Getenv("GITHUB_TOKEN")
		password = ""
	}

	if username != "" {
		return &http.BasicAuth{
			Username: username,
			Password: password,
		}
	}

	return nil
}
