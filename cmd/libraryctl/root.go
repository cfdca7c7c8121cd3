package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(cc *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "libraryctl",
		Short:         "Library service operator CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cc.confPath, "conf", "c", "", "config path or directory, eg: -c configs/config.yaml")
	rootCmd.PersistentFlags().BoolVar(&cc.jsonOutput, "json", false, "Print results as JSON")

	rootCmd.AddCommand(newFetchCommand(cc))
	rootCmd.AddCommand(newSyncCommand(cc))
	rootCmd.AddCommand(newInspectCommand(cc))
	rootCmd.AddCommand(newReconcileCommand(cc))

	return rootCmd
}
