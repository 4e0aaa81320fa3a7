package publish

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/packship/pkg/config"
	"github.com/arthur-debert/packship/pkg/errors"
	"github.com/arthur-debert/packship/pkg/pack"
	"github.com/arthur-debert/packship/pkg/publish"
	"github.com/arthur-debert/packship/pkg/registry"
)

// NewCommand creates the publish command
func NewCommand() *cobra.Command {
	var (
		force  bool
		target bool
		dir    string
	)

	cmd := &cobra.Command{
		Use:     "publish",
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

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			manifestName := pack.ComponentManifest
			namespace := cfg.Registry.Namespace
			if target {
				manifestName = pack.TargetManifest
				namespace = "targets"
			}

			p, err := pack.Load(dir, manifestName, false, nil)
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

			client := registry.NewClient(cfg.Registry.URL, cfg.Registry.Token)
			pipeline := publish.NewPipeline(client, namespace)
			if err := pipeline.Publish(p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "published %s@%s\n", p.Name(), p.Version())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Publish even with uncommitted VCS changes")
	cmd.Flags().BoolVar(&target, "target", false, "Publish a target (target.json) instead of a component")
	cmd.Flags().StringVar(&dir, "dir", "", "Package directory (defaults to the working directory)")

	return cmd
}
