// Command callctl runs the call metrics engine offline and manages the database schema.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "callctl",
		Short:   "Call analyzer command line tool",
		Version: version,
	}

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
