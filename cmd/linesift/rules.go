package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/praetorian-inc/linesift/pkg/pattern"
	"github.com/praetorian-inc/linesift/pkg/rule"
	"github.com/praetorian-inc/linesift/pkg/scanner"
	"github.com/spf13/cobra"
)

var (
	rulesPath    string
	outputFormat string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage the rules file",
	Long:  "Commands for creating and inspecting the pattern rules file",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the patterns in the rules file",
	Long:  "Display every pattern the rules file yields, as it will be matched",
	RunE:  runRulesList,
}

var rulesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default rules file",
	Long:  "Write a rules file holding a placeholder pattern; an existing file is never overwritten",
	RunE:  runRulesInit,
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesInitCmd)
	rulesCmd.PersistentFlags().StringVar(&rulesPath, "rules", scanner.Name+".rules", "Path to the rules file (.rules, .yaml or .yml)")
	rulesListCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format: table, json")
}

// patternEntry is one row of rules list output.
type patternEntry struct {
	Index    int      `json:"index"`
	Pattern  string   `json:"pattern"`
	Folded   string   `json:"folded"`
	Warnings []string `json:"warnings,omitempty"`
}

func runRulesList(cmd *cobra.Command, args []string) error {
	loader := &rule.Loader{Name: scanner.Name}
	patterns, err := loader.Load(rulesPath)
	if err != nil {
		return fmt.Errorf("loading rules from %s: %w", rulesPath, err)
	}

	entries := make([]patternEntry, len(patterns))
	for i, p := range patterns {
		entries[i] = patternEntry{
			Index:   i + 1,
			Pattern: p,
			Folded:  string(pattern.Lower([]byte(p))),
		}
	}
	for _, w := range rule.Validate(patterns) {
		entries[w.Index].Warnings = append(entries[w.Index].Warnings, w.Reason)
	}

	switch outputFormat {
	case "json":
		return outputRulesJSON(cmd, entries)
	case "table":
		return outputRulesTable(cmd, entries)
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
}

func runRulesInit(cmd *cobra.Command, args []string) error {
	if err := rule.WriteDefault(rulesPath, scanner.Name); err != nil {
		return err
	}
	abs, err := filepath.Abs(rulesPath)
	if err != nil {
		abs = rulesPath
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", abs)
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func outputRulesJSON(cmd *cobra.Command, entries []patternEntry) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}

func outputRulesTable(cmd *cobra.Command, entries []patternEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "#\tPattern\tNotes\n")
	fmt.Fprintf(w, "-\t-------\t-----\n")

	for _, e := range entries {
		notes := ""
		if len(e.Warnings) > 0 {
			notes = e.Warnings[0]
			if len(e.Warnings) > 1 {
				notes += fmt.Sprintf(" (+%d)", len(e.Warnings)-1)
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", e.Index, e.Pattern, notes)
	}

	return nil
}
