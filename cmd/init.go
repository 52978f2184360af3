package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hyuniciel/inkwell/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize inkwell configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the blog and writes the config file (inkwell.yml unless --config says otherwise).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
