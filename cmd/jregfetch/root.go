package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"jregfetch/internal/config"
	"jregfetch/internal/converter"
	"jregfetch/internal/crawler"
	"jregfetch/internal/logger"
	"jregfetch/internal/storage"
)

type flags struct {
	configFile   string
	topicURL     string
	outDir       string
	overwrite    bool
	engine       string
	concurrency  int
	formatTables bool
	sign         bool
	logLevel     string
}

func newRootCmd(out io.Writer) *cobra.Command {
	f := &flags{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:           "jregfetch",
		Short:         "Fetch Yale JREG AI+APA symposium posts into Markdown files.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := buildConfig(f, cmd.Flags())
			if err != nil {
				return err
			}

			return run(cmd, cfg, out)
		},
	}

	bindFlags(cmd.Flags(), f, defaults)

	return cmd
}

func bindFlags(fs *pflag.FlagSet, f *flags, defaults *config.Config) {
	fs.StringVar(&f.configFile, "config", "", "Path to YAML configuration file")
	fs.StringVar(&f.topicURL, "topic-url", defaults.Crawler.TopicURL, "Topic listing page to scan")
	fs.StringVar(&f.outDir, "out-dir", defaults.Output.Dir, "Directory for the generated .en.md files")
	fs.BoolVar(&f.overwrite, "overwrite", false, "Re-fetch and rewrite files that already exist")
	fs.StringVar(&f.engine, "converter", defaults.Converter.Engine, "HTML to Markdown engine: builtin or pandoc")
	fs.IntVar(&f.concurrency, "concurrency", defaults.Crawler.Concurrency, "Number of articles processed at once")
	fs.BoolVar(&f.formatTables, "format-tables", false, "Align Markdown tables in converted bodies")
	fs.BoolVar(&f.sign, "sign", false, "Append a provenance block with a content hash")
	fs.StringVar(&f.logLevel, "log-level", defaults.Logging.Level, "Log level: debug, info, warn, error")
}

// buildConfig loads the config file (or defaults) and applies flags the user set.
func buildConfig(f *flags, fs *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()

	if f.configFile != "" {
		loaded, err := config.LoadConfig(f.configFile)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if fs.Changed("topic-url") {
		cfg.Crawler.TopicURL = f.topicURL
	}

	if fs.Changed("out-dir") {
		cfg.Output.Dir = f.outDir
	}

	if fs.Changed("overwrite") {
		cfg.Output.Overwrite = f.overwrite
	}

	if fs.Changed("converter") {
		cfg.Converter.Engine = f.engine
	}

	if fs.Changed("concurrency") {
		cfg.Crawler.Concurrency = f.concurrency
	}

	if fs.Changed("format-tables") {
		cfg.Output.FormatTables = f.formatTables
	}

	if fs.Changed("sign") {
		cfg.Output.Sign = f.sign
	}

	if fs.Changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func run(cmd *cobra.Command, cfg *config.Config, out io.Writer) error {
	log := logger.NewLogger(cfg.Logging.Level)
	log.Debug("configuration", "config", cfg.String())

	conv, err := converter.New(cfg.Converter)
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.Output.Dir, cfg.Output.Sign, cfg.Output.Overwrite, log)
	if err != nil {
		return err
	}

	client := crawler.NewClient(
		crawler.NewScraper(cfg.Fetch, log),
		conv,
		store,
		crawler.Options{
			Overwrite:    cfg.Output.Overwrite,
			Concurrency:  cfg.Crawler.Concurrency,
			FormatTables: cfg.Output.FormatTables,
		},
		log,
		out,
	)

	summary, err := client.Run(cmd.Context(), cfg.Crawler.TopicURL)
	if err != nil {
		return err
	}

	log.Info("run complete", "found", summary.Found, "written", summary.Written, "skipped", summary.Skipped)

	return nil
}
