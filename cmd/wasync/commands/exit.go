package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gwu-libraries/wasync/errors"
)

// Process exit codes
const (
	ExitOK             = 0
	ExitFatal          = 1 // the run could not start or was interrupted
	ExitPartialFailure = 2 // the batch finished but at least one record failed
)

// ExitCode maps a command error to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errors.ErrPartialFailure):
		return ExitPartialFailure
	}
	return ExitFatal
}

// PrintError writes err and any hints attached to it
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		pterm.Warning.WithWriter(w).Println("Interrupted")
		return
	}
	pterm.Error.WithWriter(w).Println(err.Error())
	if hints := errors.FlattenHints(err); hints != "" {
		fmt.Fprintf(w, "  hint: %s\n", hints)
	}
}

func verbosity(cmd *cobra.Command) int {
	v, _ := cmd.Flags().GetCount("verbose")
	return v
}
