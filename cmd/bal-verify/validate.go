package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eth2030/balkit/bal"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "check a block access list against the canonical ordering invariants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := loadList(args[0], viper.GetBool("input.hex"))
		if err != nil {
			return err
		}
		if err := bal.ValidateOrdering(list); err != nil {
			return err
		}
		logWithCommand.Infof("%s: %d accounts, ordering valid", args[0], len(list))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
