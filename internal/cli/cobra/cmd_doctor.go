package cobra

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/relcheck/internal/commands"
	"github.com/NielsdaWheelz/relcheck/internal/errors"
	"github.com/NielsdaWheelz/relcheck/internal/exec"
	"github.com/NielsdaWheelz/relcheck/internal/fs"
)

func newDoctorCmd() *cobra.Command {
	var repoPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites and show resolved settings",
		Long: `Check prerequisites and show resolved settings.
Verifies git is installed, the target is a git repository, and the manifest
and checker config parse. Defaults to the current directory; use --repo to
target a different crate root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			stderr := cmd.ErrOrStderr()

			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(errors.EInternal, "failed to get working directory", err)
			}

			cr := exec.NewRealRunner()
			fsys := fs.NewRealFS()
			ctx := context.Background()

			opts := commands.DoctorOpts{
				RepoPath: repoPath,
			}

			return commands.Doctor(ctx, cr, fsys, cwd, opts, stdout, stderr)
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", "", "target a specific crate root (default: current directory)")

	return cmd
}
