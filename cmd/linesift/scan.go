package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/praetorian-inc/linesift/pkg/console"
	"github.com/praetorian-inc/linesift/pkg/enum"
	"github.com/praetorian-inc/linesift/pkg/rule"
	"github.com/praetorian-inc/linesift/pkg/scanner"
	"github.com/praetorian-inc/linesift/pkg/store"
	"github.com/praetorian-inc/linesift/pkg/types"
	"github.com/spf13/cobra"
)

var (
	scanRulesPath  string
	scanOutputPath string
	scanEngine     string
	scanExclude    []string
	scanNoIgnore   bool
	scanJournal    string
)

func init() {
	rootCmd.Flags().StringVar(&scanRulesPath, "rules", "", "Rules file (default <directory>/linesift.rules)")
	rootCmd.Flags().StringVarP(&scanOutputPath, "output", "o", "", "Result file (default <directory>/linesift.result)")
	rootCmd.Flags().StringVar(&scanEngine, "engine", scanner.EngineHorspool, "Matching engine: horspool, aho")
	rootCmd.Flags().StringSliceVar(&scanExclude, "exclude", nil, "Skip files matching gitignore-style pattern (repeatable)")
	rootCmd.Flags().BoolVar(&scanNoIgnore, "no-ignore", false, "Do not read "+enum.DefaultIgnoreFile)
	rootCmd.Flags().StringVar(&scanJournal, "journal", "", "Record the run in this SQLite journal")
}

func newReporter(cmd *cobra.Command) *console.Reporter {
	level := console.LevelInfo
	switch {
	case quiet:
		level = console.LevelError
	case verbose:
		level = console.LevelDebug
	}
	return console.NewReporter(cmd.ErrOrStderr(), level, console.ColorMode(colorMode))
}

func runScan(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	rep := newReporter(cmd)

	cfg := scanner.Config{
		Root:       root,
		RulesPath:  scanRulesPath,
		OutputPath: scanOutputPath,
		Engine:     scanEngine,
		Exclude:    scanExclude,
		Reporter:   rep,
	}
	if !scanNoIgnore {
		cfg.IgnoreFile = enum.DefaultIgnoreFile
	}

	if scanJournal != "" {
		s, err := store.New(store.Config{Path: scanJournal})
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer s.Close()
		cfg.Journal = s
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err := scanner.Run(ctx, cfg)
	switch {
	case errors.Is(err, rule.ErrRulesCreated):
		rep.Infof("Created rules file with placeholder rule.")
		rep.Infof("Change the rules to what you want, then run the program again.")
	case errors.Is(err, rule.ErrNoRules):
		rep.Infof("Please add search patterns (one per line) and run the program again.")
	case errors.Is(err, types.ErrNoCandidates):
		rep.Infof("No .txt files found in %s", root)
		return nil
	}
	return err
}
