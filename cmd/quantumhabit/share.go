// Share command extends decrypt rights on a handle to another account.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

var shareCmd = &cobra.Command{
	Use:   "share <handle> <account>",
	Short: "Share a ciphertext handle with another account",
	Long: `Share grants another account decrypt rights on a handle the acting
account already holds. Grants are append-only; there is no revoke.

Example:
  quantumhabit share 4f0c... bob`,
	Args: cobra.ExactArgs(2),
	RunE: runShare,
}

func runShare(cmd *cobra.Command, args []string) error {
	handle, err := types.ParseHandle(args[0])
	if err != nil {
		fail(exitUserError, "share", fmt.Errorf("invalid handle %q: %w", args[0], err))
	}
	grantee := types.Account(args[1])

	caller, err := account()
	if err != nil {
		fail(exitUserError, "share", err)
	}

	sess, err := openSession()
	if err != nil {
		fail(exitSysError, "share", err)
	}
	defer sess.close()

	if err := sess.ledger.ShareHandle(caller, handle, grantee); err != nil {
		if errors.Is(err, types.ErrNotAuthorized) {
			fail(exitUserError, "share", err)
		}
		fail(exitSysError, "share", err)
	}

	fmt.Printf("Shared %s with %s\n", handle.Hex(), grantee)
	return nil
}
