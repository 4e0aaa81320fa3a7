package readme

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/packship/pkg/errors"
	"github.com/arthur-debert/packship/pkg/readme"
)

// NewCommand creates the readme command
func NewCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "readme",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				var err error
				dir, err = os.Getwd()
				if err != nil {
					return err
				}
			}

			rm, err := readme.Locate(dir)
			if err != nil {
				return err
			}
			if !rm.Found() {
				return errors.Newf(errors.ErrNotFound, "no readme file in %s", dir)
			}

			contents, err := rm.Contents()
			if err != nil {
				return err
			}

			renderer := NewRenderer()
			fmt.Fprint(cmd.OutOrStdout(), renderer.Render(contents, rm.Extension()))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Package directory (defaults to the working directory)")

	return cmd
}
