package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsawler/citectx/sink"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		db    string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Full-text search over a SQLite sink",
		Long: `Search captions, table bodies, mentions and context paragraphs stored by
"citectx extract --sink sqlite".

Examples:
  citectx search --db entities.db "transformer accuracy"
  citectx search --db entities.db "attention" --limit 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := sink.OpenSQLite(ctx, db)
			if err != nil {
				return err
			}
			defer store.Close()

			hits, err := store.Search(ctx, strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			a.logger.Debug("search finished", "hits", len(hits))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND\tCAPTION")
			for _, h := range hits {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", h.ID, h.Kind, h.Caption)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&db, "db", "citectx.db", "SQLite database written by extract")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of hits")
	return cmd
}
