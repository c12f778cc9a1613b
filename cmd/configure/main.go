package main

import (
	"fmt"
	"os"

	"github.com/campaignkit/marketing-api/cmd/configure/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "marketing-configure",
		Short: "Administration tool for the AI Marketing API",
		Long:  "CLI tool for managing credentials, tokens, and stored feedback",
	}

	rootCmd.AddCommand(commands.NewHashPasswordCmd())
	rootCmd.AddCommand(commands.NewIssueTokenCmd())
	rootCmd.AddCommand(commands.NewFeedbackCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
