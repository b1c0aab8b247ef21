package domain

// Builtins is the static completion list for first-token matches.
// External commands found on PATH complete in addition to these.
var Builtins = []string{
	"ls", "cd", "pwd", "mkdir", "rm", "rmdir", "cat", "touch", "mv", "cp",
	"help", "exit", "quit", "clear", "sysinfo", "ps", "top", "history",
}

// ExecutionResult describes the outcome of an external command spawn.
type ExecutionResult struct {
	Ran        bool
	ExitCode   int
	DurationMS int64
	Err        error
}
