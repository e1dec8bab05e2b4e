package main

import (
	"fmt"

	"github.com/fwojciec/printwatch"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Results.DeleteResult(deps.Ctx, c.ID); err != nil {
		if printwatch.ErrorCode(err) == printwatch.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: result %q not found. Use 'printwatch list' to see stored results.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", printwatch.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted result %q\n", c.ID)
	return nil
}
