// Package main implements dashctl, an operator tool for inspecting dashboard
// credentials and navigation.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "dashctl",
	Short:        "Intern dashboard operator tool",
	Long:         "dashctl decodes dashboard credentials, prints the navigation a role sees and mints development credentials.",
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
