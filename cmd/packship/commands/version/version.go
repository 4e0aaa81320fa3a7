package version

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/packship/pkg/errors"
	"github.com/arthur-debert/packship/pkg/pack"
)

// NewCommand creates the version command
func NewCommand() *cobra.Command {
	var (
		force bool
		dir   string
	)

	cmd := &cobra.Command{
		Use:     "version <major|minor|patch|x.y.z>",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				var err error
				dir, err = os.Getwd()
				if err != nil {
					return err
				}
			}

			p, err := pack.Load(dir, pack.ComponentManifest, false, nil)
			if err != nil {
				return err
			}
			if err := p.Validate(); err != nil {
				return err
			}

			clean, err := p.VCSIsClean()
			if err != nil {
				return err
			}
			if !clean && !force {
				return errors.Newf(errors.ErrVCSDirty,
					"uncommitted changes in %s: commit them or pass --force", dir)
			}

			newVersion, err := p.Version().Bump(args[0])
			if err != nil {
				return err
			}

			p.SetVersion(newVersion)
			if err := p.WriteManifest(); err != nil {
				return err
			}
			if err := p.CommitVCS("v" + newVersion.String()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", p.Name(), newVersion)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Bump even with uncommitted VCS changes")
	cmd.Flags().StringVar(&dir, "dir", "", "Package directory (defaults to the working directory)")

	return cmd
}
