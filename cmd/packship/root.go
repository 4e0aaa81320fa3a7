package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/packship/cmd/packship/commands/genconfig"
	"github.com/arthur-debert/packship/cmd/packship/commands/publish"
	"github.com/arthur-debert/packship/cmd/packship/commands/readme"
	versioncmd "github.com/arthur-debert/packship/cmd/packship/commands/version"
	"github.com/arthur-debert/packship/internal/version"
	"github.com/arthur-debert/packship/pkg/logging"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "packship",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	rootCmd.AddCommand(publish.NewCommand())
	rootCmd.AddCommand(versioncmd.NewCommand())
	rootCmd.AddCommand(readme.NewCommand())
	rootCmd.AddCommand(genconfig.NewCommand())

	return rootCmd
}
