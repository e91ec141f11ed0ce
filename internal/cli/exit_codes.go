package cli

// Exit codes for the commitlog CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitRuntimeError indicates a failure during command execution.
	ExitRuntimeError = 1

	// ExitInvalidArguments indicates invalid command arguments.
	ExitInvalidArguments = 2

	// ExitRepositoryError indicates the repository or ref range could
	// not be read.
	ExitRepositoryError = 3

	// ExitConfigError indicates invalid configuration.
	ExitConfigError = 4
)
