// Package haste is the cobra command tree for the raytracer's CLI, mirroring
// original_source/main.cpp's action dispatch (render is the default action;
// avg/errors/sub/merge/filter/time are the image-utility actions) as
// spec.md §6 subcommands instead of a single flag-switched action enum.
package haste

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ciechowoj/haste-go/pkg/config"
)

// Execute runs the root command and maps a returned *config.ExitError to
// the process exit code spec.md §6 specifies (0 success, 1 usage error,
// 2 I/O error, 3 numerical error); any other error is treated as a usage
// error.
func Execute() int {
	root := newRootCommand()

	if err := root.Execute(); err != nil {
		var exitErr *config.ExitError
		if asExitError(err, &exitErr) {
			fmt.Fprintln(root.ErrOrStderr(), exitErr.Error())
			return exitErr.Code
		}
		fmt.Fprintln(root.ErrOrStderr(), err)
		return 1
	}

	return 0
}

func asExitError(err error, target **config.ExitError) bool {
	for err != nil {
		if e, ok := err.(*config.ExitError); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "haste",
		Short:         "Progressive bidirectional path tracer / VCM renderer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRenderCommand(),
		newAvgCommand(),
		newErrorsCommand(),
		newSubCommand(),
		newMergeCommand(),
		newFilterCommand(),
		newTimeCommand(),
	)

	return root
}
