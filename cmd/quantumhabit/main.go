// Package main provides the quantumhabit CLI, a local-first confidential
// habit tracker. Protected values never leave the data directory as
// plaintext; commands print ciphertext handles unless the caller holds a
// decrypt grant.
// See docs/ARCHITECTURE.md § CLI.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}
