package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "nlmunicipality",
		Short: "Resolve Dutch location names to current municipalities",
		Long: `nlmunicipality maps free-text location values (places, neighbourhoods,
former municipalities, misspellings) to the current Dutch municipality.

Reference tables are read from CSV files or Postgres, as configured.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", os.Getenv("CONFIG_PATH"), "Path to the YAML config file")

	rootCmd.AddCommand(guessCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(unresolvedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
