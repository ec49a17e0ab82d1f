package cobra

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/relcheck/internal/commands"
	"github.com/NielsdaWheelz/relcheck/internal/errors"
	"github.com/NielsdaWheelz/relcheck/internal/exec"
	"github.com/NielsdaWheelz/relcheck/internal/fs"
	"github.com/NielsdaWheelz/relcheck/internal/logging"
)

func newCheckCmd() *cobra.Command {
	var repoPath string
	var advisory bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate release metadata consistency",
		Long: `Validate release metadata consistency.
Reads the crate name and version from Cargo.toml, then checks the changelog
heading, the project description file, the local git tags, and the package
registry. Findings are collected and reported together; by default any
finding fails the exit code. Use --advisory to report without failing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			stderr := cmd.ErrOrStderr()

			if err := logging.Init(globalOpts.Debug); err != nil {
				return errors.Wrap(errors.EInternal, "failed to initialize logging", err)
			}
			defer logging.Sync()

			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(errors.EInternal, "failed to get working directory", err)
			}

			cr := exec.NewRealRunner()
			fsys := fs.NewRealFS()
			ctx := context.Background()

			opts := commands.CheckOpts{
				RepoPath:    repoPath,
				Advisory:    advisory,
				AdvisorySet: cmd.Flags().Changed("advisory"),
			}

			return commands.Check(ctx, cr, fsys, cwd, opts, stdout, stderr)
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", "", "target a specific crate root (default: current directory)")
	cmd.Flags().BoolVar(&advisory, "advisory", false, "report findings without failing the exit code")

	return cmd
}
