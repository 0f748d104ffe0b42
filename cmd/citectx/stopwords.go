package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/citectx/internal/config"
)

func newStopwordsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stopwords",
		Short: "Print the effective stopword set, one word per line",
		Args:  cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, _ []string) {
			a.bind(cmd.Flags(), map[string]string{"extra": config.KeyExtraStopwords})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.cfg.ExtractConfig()
			if err != nil {
				return err
			}
			for _, w := range cfg.Stopwords.Sorted() {
				fmt.Fprintln(cmd.OutOrStdout(), w)
			}
			return nil
		},
	}
	cmd.Flags().StringSlice("extra", nil, "words added to the built-in lists")
	return cmd
}
