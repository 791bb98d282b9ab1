package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/josephgoksu/RepoWing/internal/memory"
	"github.com/josephgoksu/RepoWing/internal/source"
	"github.com/josephgoksu/RepoWing/internal/task"
)

// PrintError prints a user-friendly message. With --verbose it prints the
// full technical error instead.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// friendlyMessage maps known failures to a short explanation.
func friendlyMessage(err error) string {
	switch {
	case errors.Is(err, source.ErrInvalidRepoID):
		return "Error: target must be a local directory or a GitHub repository as owner/name[@ref]."
	case errors.Is(err, source.ErrRepoNotFound):
		return "Error: repository not found. Check the name, or set GITHUB_TOKEN for private repositories."
	case errors.Is(err, task.ErrInvalidPlan):
		return fmt.Sprintf("Error: the task plan is invalid: %v", err)
	case errors.Is(err, memory.ErrRecordNotFound):
		return "Error: no saved report with that ID."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
