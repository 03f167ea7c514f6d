// Package cmd implements the CLI commands for ContentLens using Cobra.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/contentlens/core/config"
	"github.com/gaurav-prasanna/contentlens/core/fetch"
	"github.com/gaurav-prasanna/contentlens/core/pipeline"
)

var (
	v   = viper.New()
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "contentlens",
	Short: "ContentLens: extract the main content of web pages",
	Long: `ContentLens locates the main content of a web page, strips noise, and
renders it as plain text, Markdown, or an HTML fragment, together with the
page's images and tables and a keyword/topic analysis.

Usage:
  contentlens extract <url|file> [flags]
  contentlens handle <url|file> < request.json
  contentlens translate --lang en [file]
  contentlens summarize <url|file>`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	config.SetDefaults(v)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./contentlens.yaml or ~/.config/contentlens/contentlens.yaml)")
	flags.Bool("verbose", false, "enable debug logging")
	flags.String("tables", "", "YAML file overriding selector and vocabulary tables")
	flags.Duration("timeout", 30*time.Second, "HTTP fetch timeout")

	_ = v.BindPFlag("tables", flags.Lookup("tables"))
	_ = v.BindPFlag("timeout", flags.Lookup("timeout"))
}

// setup configures logging and loads the configuration before any command.
func setup(cmd *cobra.Command, _ []string) error {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("contentlens")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "contentlens"))
		}
	}
	v.SetEnvPrefix("CONTENTLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err == nil {
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("using config file")
	} else if cfgFile != "" {
		return fmt.Errorf("reading config %s: %w", cfgFile, err)
	}

	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// newPipeline builds the extraction pipeline from the configured tables.
func newPipeline() (*pipeline.Pipeline, error) {
	tables, err := config.LoadTables(cfg.TablesPath)
	if err != nil {
		return nil, err
	}
	return pipelineFrom(tables)
}

func pipelineFrom(tables config.Tables) (*pipeline.Pipeline, error) {
	p, err := pipeline.New(tables)
	if err != nil {
		return nil, fmt.Errorf("initializing pipeline: %w", err)
	}
	return p, nil
}

func newFetcher() *fetch.Fetcher {
	return fetch.New(fetch.WithTimeout(cfg.Timeout), fetch.WithUserAgent(cfg.UserAgent))
}
