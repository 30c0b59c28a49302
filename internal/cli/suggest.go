package cli

import (
	"fmt"

	"github.com/kontorly/worksearch/internal/spelling"
	"github.com/spf13/cobra"
)

// SuggestCmd returns the suggest command, which runs the spelling
// corrector against a query without starting the server.
func SuggestCmd() *cobra.Command {
	var dictPath string

	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Check a query against the spelling dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dict := spelling.DefaultDictionary()
			if dictPath != "" {
				overrides, err := spelling.LoadDictionaryFile(dictPath)
				if err != nil {
					return err
				}
				dict = dict.Merge(overrides)
			}

			suggestion := spelling.NewCorrector(dict).Suggest(args[0])
			if suggestion == "" {
				fmt.Println("no suggestion")
				return nil
			}
			fmt.Println(suggestion)
			return nil
		},
	}

	cmd.Flags().StringVar(&dictPath, "dictionary", "", "Path to a YAML dictionary overrides file")
	return cmd
}
