package main

import (
	"fmt"

	"github.com/fwojciec/darkcrawl"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: deletion is permanent; re-run with --force to confirm\n")
		return darkcrawl.Errorf(darkcrawl.EINVALID, "--force required")
	}

	if err := deps.Entries.DeleteEntry(deps.Ctx, c.ID); err != nil {
		if darkcrawl.ErrorCode(err) == darkcrawl.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: entry %q not found. Use 'darkcrawl list' to see entries.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", darkcrawl.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted entry %s\n", c.ID)
	return nil
}
