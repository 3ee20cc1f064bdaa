package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eth2030/balkit/bal"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "decode a block access list and print a per-account summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := loadList(args[0], viper.GetBool("input.hex"))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d accounts\n", len(list))
		for _, acct := range list {
			fmt.Fprintf(out, "%s: %d nonce, %d balance, %d code, %d storage slots, %d reads\n",
				acct.Address.Hex(),
				len(acct.NonceChanges), len(acct.BalanceChanges), len(acct.CodeChanges),
				len(acct.StorageChanges), len(acct.StorageReads))
			for _, slot := range acct.StorageChanges {
				fmt.Fprintf(out, "  slot %s: %d changes\n", slot.Slot.Hex(), len(slot.Changes))
			}
		}
		if err := bal.ValidateOrdering(list); err != nil {
			logWithCommand.Warnf("ordering invalid: %v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
