package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/wordmask/pkg/wordmask"
	"github.com/cognicore/wordmask/pkg/wordmask/config"
	"github.com/cognicore/wordmask/pkg/wordmask/internalerr"
	"github.com/cognicore/wordmask/pkg/wordmask/report"
)

type rootFlags struct {
	wordsToHide int
	weights     []string
	configPath  string
	seed        uint64
	mask        string
	html        bool
	explain     bool
	logLevel    string
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "wordmask [flags] FILE",
		Short: "Redact words from a text, favouring rare ones",
		Long: `wordmask hides a number of word occurrences in FILE and prints the result.
Rare words are more likely to be hidden: each word gets weight 1/count²,
normalized over the distinct words. --weight PATTERN=WEIGHT sets the total
weight shared by the occurrences of every word matching PATTERN; later
rules win.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], &flags)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&flags.wordsToHide, "words-to-hide", "n", config.DefaultWordsToHide, "Number of word occurrences to hide")
	f.StringArrayVarP(&flags.weights, "weight", "w", nil, "Override rule PATTERN=WEIGHT (repeatable, applied in order)")
	f.StringVarP(&flags.configPath, "config", "c", "", "YAML configuration file")
	f.Uint64Var(&flags.seed, "seed", 0, "Seed for reproducible sampling")
	f.StringVar(&flags.mask, "mask", "*", "Character written over hidden words")
	f.BoolVar(&flags.html, "html", false, "Treat FILE as HTML and only hide words in text")
	f.BoolVar(&flags.explain, "explain", false, "Write a YAML run report to stderr")
	f.StringVar(&flags.logLevel, "log-level", "warn", "Diagnostics level (debug, info, warn, error)")

	return cmd
}

func run(cmd *cobra.Command, path string, flags *rootFlags) error {
	logger := newLogger(cmd.ErrOrStderr(), flags.logLevel)

	cliOverrides, err := config.ParseOverrides(flags.weights)
	if err != nil {
		return err
	}

	loader := config.Loader{
		ConfigPath: flags.configPath,
		Overlay: func(s *config.Settings) {
			changed := cmd.Flags().Changed
			if changed("words-to-hide") {
				s.WordsToHide = flags.wordsToHide
			}
			if changed("seed") {
				seed := flags.seed
				s.Seed = &seed
			}
			if changed("mask") {
				s.Mask = flags.mask
			}
			if changed("html") {
				s.HTML = flags.html
			}
			s.Overrides = append(s.Overrides, cliOverrides...)
		},
	}
	components, err := loader.Load()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrInput, err)
	}

	engine := wordmask.FromComponents(components, logger)
	res, err := engine.Redact(wordmask.Request{
		Text:        string(data),
		WordsToHide: components.Settings.WordsToHide,
	})
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(cmd.OutOrStdout(), res.Text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if flags.explain {
		return report.Write(cmd.ErrOrStderr(), res.Report)
	}
	return nil
}
