// Command simtriectl is a thin operator CLI over the simtrie library: build
// a dictionary image from a text word list, then query it with contains,
// get, keys, prefixes, or similar. It never reimplements any of the core
// matching logic; every subcommand is a few lines over the public API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "simtriectl",
		Short:         "Build and query simtrie dictionary images",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newBuildCmd(),
		newContainsCmd(),
		newGetCmd(),
		newKeysCmd(),
		newPrefixesCmd(),
		newSimilarCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "simtriectl: %v\n", err)
		os.Exit(1)
	}
}
