package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/praetorian-inc/linesift/pkg/console"
	"github.com/praetorian-inc/linesift/pkg/store"
	"github.com/spf13/cobra"
)

var (
	historyJournal string
	historyLimit   int
	historyFormat  string
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show journaled runs",
	Long:  "List recent runs recorded with --journal, or the per-file results of one run",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyJournal, "journal", "linesift.db", "SQLite journal path")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list (0 for all)")
	historyCmd.Flags().StringVar(&historyFormat, "format", "table", "Output format: table, json")
}

func runHistory(cmd *cobra.Command, args []string) error {
	s, err := store.New(store.Config{Path: historyJournal})
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer s.Close()

	if len(args) == 1 {
		runID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", args[0], err)
		}
		files, err := s.GetFiles(runID)
		if err != nil {
			return fmt.Errorf("retrieving files: %w", err)
		}
		return outputHistoryFiles(cmd, files)
	}

	runs, err := s.GetRuns(historyLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	return outputHistoryRuns(cmd, runs)
}

func outputHistoryRuns(cmd *cobra.Command, runs []*store.RunRecord) error {
	switch historyFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	case "table":
		if len(runs) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No runs recorded.\n")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		defer w.Flush()

		fmt.Fprintf(w, "ID\tStarted\tRoot\tFiles\tLines\tMatched\tTime\n")
		for _, r := range runs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%d ms\n",
				r.ID,
				r.StartedAt.Format("2006-01-02 15:04:05"),
				r.Root,
				r.FilesProcessed,
				console.FormatCount(r.TotalLines),
				console.FormatCount(r.MatchedLines),
				r.Elapsed.Milliseconds(),
			)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", historyFormat)
	}
}

func outputHistoryFiles(cmd *cobra.Command, files []*store.FileRecord) error {
	switch historyFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(files)
	case "table":
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		defer w.Flush()

		fmt.Fprintf(w, "Path\tSize\tMethod\tLines\tMatched\tError\n")
		for _, f := range files {
			size := "unknown"
			if f.Size >= 0 {
				size = console.FormatCount(f.Size)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n", f.Path, size, f.Method, f.LinesScanned, f.LinesMatched, f.Error)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", historyFormat)
	}
}
