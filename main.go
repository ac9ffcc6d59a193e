// main is the entry point for the notable CLI.
package main

import (
	"fmt"
	"os"

	"github.com/beastmode/notable/cmd"
	"github.com/beastmode/notable/internal/mlstore"
)

func main() {
	// Wire the global persistence manager into the command layer. Store
	// handles stay open for the whole run and close on exit.
	cmd.SetStoreManager(mlstore.Manager)

	err := cmd.Execute()
	mlstore.CloseStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
