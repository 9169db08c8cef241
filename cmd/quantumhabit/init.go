// Init command for the quantumhabit CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the ledger store",
	Long: `Init creates the configuration directory with a default config.yaml,
the data directory with the SQLite ledger, and the engine secret.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			fail(exitSysError, "init", err)
		}
		if err := ensureConfigDir(configDir); err != nil {
			fail(exitSysError, "init", err)
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			fail(exitSysError, "init", err)
		}

		// Opening a session creates the data directory, the database
		// schema and the engine secret.
		sess, err := openSession()
		if err != nil {
			fail(exitSysError, "init", err)
		}
		defer sess.close()

		dataDir, err := resolveDataDir()
		if err != nil {
			fail(exitSysError, "init", err)
		}

		fmt.Println("Ledger initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", dataDir)
		return nil
	},
}
