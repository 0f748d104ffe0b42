package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsawler/citectx/batch"
	"github.com/tsawler/citectx/extract"
	"github.com/tsawler/citectx/internal/config"
	"github.com/tsawler/citectx/sink"
)

func newExtractCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [paths...]",
		Short: "Extract entities from documents and write them to a sink",
		Long: `Extract tables and figures from HTML and JATS XML documents.

Directories are walked for .html, .htm, .xhtml, .xml and .nxml files. The
document id is the file name without its extension, and ids starting with
PMC are treated as PubMed Central articles.

Examples:
  citectx extract papers/ --out entities.jsonl
  citectx extract 2401.00001.html --sink yaml
  citectx extract pmc/ --sink sqlite --out entities.db --workers 8
  citectx extract mirror/ --base-url "https://mirror.example.org/{id}/"`,
		Args: cobra.MinimumNArgs(1),
		PreRun: func(cmd *cobra.Command, _ []string) {
			a.bind(cmd.Flags(), map[string]string{
				"sink":       config.KeySink,
				"out":        config.KeyOut,
				"workers":    config.KeyWorkers,
				"source":     config.KeySource,
				"base-url":   config.KeyBaseURL,
				"navigation": config.KeyNavigation,
				"only":       config.KeyOnly,
				"stopwords":  config.KeyExtraStopwords,
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExtract(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.String("sink", "jsonl", "output kind: jsonl, yaml or sqlite")
	flags.StringP("out", "o", "-", "output file; - writes to stdout")
	flags.IntP("workers", "w", 0, "documents extracted concurrently (default one per CPU)")
	flags.String("source", "", "source of every document: arxiv or pubmed (default guessed from the id)")
	flags.String("base-url", "", `base URL for relative image paths; "{id}" is replaced by the document id`)
	flags.String("navigation", "none", "skip site chrome: none, explicit, standard or aggressive")
	flags.String("only", "", "extract only one kind: table or figure")
	flags.StringSlice("stopwords", nil, "extra stopwords")
	return cmd
}

func (a *app) runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	paths, err := batch.Discover(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no supported documents found")
	}

	cfg, err := a.cfg.ExtractConfig()
	if err != nil {
		return err
	}

	out, err := sink.New(ctx, a.cfg.Sink(), a.cfg.Out())
	if err != nil {
		return err
	}

	runner := batch.New(extract.New(cfg), out, batch.Options{
		Workers: a.cfg.Workers(),
		Logger:  a.logger,
	})
	report, runErr := runner.RunFiles(ctx, paths, batch.LoadOptions{
		Source:  a.cfg.Source(),
		BaseURL: a.cfg.BaseURL(),
	})
	if err := out.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("closing sink: %w", err)
	}

	printReport(cmd.ErrOrStderr(), report)
	return runErr
}

func printReport(w io.Writer, r *batch.Report) {
	if r == nil {
		return
	}
	s := r.Stats
	fmt.Fprintf(w, "documents: %d (%d failed)\n", r.Documents, r.Failed)
	fmt.Fprintf(w, "tables:    %d extracted, %d skipped of %d\n", s.TablesExtracted, s.TablesSkipped, s.TablesFound)
	fmt.Fprintf(w, "figures:   %d extracted, %d skipped of %d\n", s.FiguresExtracted, s.FiguresSkipped, s.FiguresFound)
	if s.ImageFallbacks > 0 {
		fmt.Fprintf(w, "image fallback used in %d documents\n", s.ImageFallbacks)
	}
	for _, f := range r.Failures {
		fmt.Fprintf(w, "failed: %v\n", f)
	}
}
