package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eth2030/balkit/bal"
)

var hashCmd = &cobra.Command{
	Use:   "hash <file>",
	Short: "print the keccak256 content hash of a block access list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := loadList(args[0], viper.GetBool("input.hex"))
		if err != nil {
			return err
		}
		hash, err := bal.ContentHash(list)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash.Hex())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
}
