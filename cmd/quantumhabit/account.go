// Account command group manages the acting account stored in config.yaml.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show or set the acting account",
}

var accountShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the acting account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		acct, err := account()
		if err != nil {
			fail(exitUserError, "account show", err)
		}
		fmt.Println(acct)
		return nil
	},
}

var accountSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Set the default acting account in config.yaml",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			fail(exitSysError, "account set", err)
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			fail(exitSysError, "account set", err)
		}

		cfg.Set(cfgKeyAccount, args[0])
		if err := cfg.WriteConfigAs(filepath.Join(configDir, configFileExt)); err != nil {
			fail(exitSysError, "account set", err)
		}

		fmt.Printf("Account set to %s\n", args[0])
		return nil
	},
}

func init() {
	accountCmd.AddCommand(accountShowCmd)
	accountCmd.AddCommand(accountSetCmd)
}
