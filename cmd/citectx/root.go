package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tsawler/citectx/internal/config"
	"github.com/tsawler/citectx/internal/logging"
)

// app carries the state shared by subcommands once flags are parsed.
type app struct {
	cfg        *config.Config
	configPath string
	logger     *slog.Logger
	logCloser  io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.New()}

	cmd := &cobra.Command{
		Use:   "citectx",
		Short: "Extract tables and figures with their citing paragraphs",
		Long: `citectx finds the tables and figures of scientific articles, resolves
their captions, collects the paragraphs that cite them and the paragraphs
that discuss the same terms, and writes one record per entity.

Settings come from flags, CITECTX_* environment variables, and an optional
citectx.yaml file, in that order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.logCloser != nil {
				return a.logCloser.Close()
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./"+config.DefaultFile+" when present)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")
	flags.String("log-file", "", "write logs to a rotating file instead of stderr")
	a.bind(flags, map[string]string{
		"log-level":  config.KeyLogLevel,
		"log-format": config.KeyLogFormat,
		"log-file":   config.KeyLogFile,
	})

	cmd.AddCommand(newExtractCmd(a), newStopwordsCmd(a), newSearchCmd(a))
	return cmd
}

// bind ties flags to config keys so an explicitly set flag overrides the
// file and the environment. Subcommands bind in PreRun, since two of them
// map different flags onto the same key.
func (a *app) bind(flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if err := a.cfg.Viper().BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

func (a *app) init(cmd *cobra.Command) error {
	if err := a.cfg.Load(a.configPath); err != nil {
		return err
	}

	logger, closer, err := logging.New(a.cfg.Logging(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger, a.logCloser = logger, closer

	if used := a.cfg.FileUsed(); used != "" {
		a.logger.Debug("config loaded", "file", used)
	}
	return nil
}
