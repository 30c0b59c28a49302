package main

import (
	"fmt"
	"os"

	"github.com/kontorly/worksearch/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "worksearchd",
		Short: "Federated workplace search daemon",
		Long:  "worksearchd serves unified search across SharePoint files, email and Teams messages",
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.SuggestCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
