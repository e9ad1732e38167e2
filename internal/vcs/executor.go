package vcs

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/aleister1102/commitsentry/internal/common/errorwrapper"
)

// GitRunner executes a git command in workDir and returns its stdout.
// Tests substitute a fake.
type GitRunner func(ctx context.Context, workDir string, args ...string) (string, error)

// ExecGitRunner runs the git binary. Failures are reported as *errorwrapper.GitError
// carrying stderr.
func ExecGitRunner(ctx context.Context, workDir string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = workDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// never block on a credential prompt
	cmd.Env = append(cmd.Environ(), "GIT_TERMINAL_PROMPT=0")

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", errorwrapper.NewGitError(args, stderr.String(), err)
	}
	return stdout.String(), nil
}
