package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/kanjikit/internal/database"
	"github.com/nao1215/kanjikit/internal/model"
)

// defaultHistoryLimit is the number of runs listed when --limit is not given.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `History lists the runs recorded in the history database, newest first.

Runs are recorded only when --record is given or history.enabled is set in
the config file. Each row holds the tool, the input and output paths, a
SHA3-256 digest of the output and a short summary; identical inputs produce
identical digests.

Examples:
  # List the last 20 runs
  kanjikit history

  # List every removebg run
  kanjikit history --tool removebg --limit 0

  # Output JSON
  kanjikit history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("tool", "t", "",
		"Only list runs of this tool (extract or removebg)")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output runs in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	tool, err := cmd.Flags().GetString("tool")
	if err != nil {
		return err
	}
	if tool != "" && tool != model.ToolExtract && tool != model.ToolRemoveBG {
		return fmt.Errorf("unknown tool %q: use %s or %s", tool, model.ToolExtract, model.ToolRemoveBG)
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false})
	if errors.Is(err, database.ErrNotFound) {
		if jsonOutput {
			return writeRunsJSON(out, nil)
		}
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out, "\nUse --record (or history.enabled in the config file) to record runs.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context(), tool, limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeRunsJSON(out, runs)
	}
	writeRunsText(out, runs)
	return nil
}

// writeRunsJSON writes runs as an indented JSON array.
func writeRunsJSON(w io.Writer, runs []model.Run) error {
	if runs == nil {
		runs = []model.Run{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(runs)
}

// writeRunsText writes runs as an aligned table.
func writeRunsText(w io.Writer, runs []model.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found.")
		return
	}

	fmt.Fprintf(w, "Run history (%d runs):\n\n", len(runs))
	fmt.Fprintf(w, "  %-8s  %-19s  %-8s  %-12s  %s\n", "ID", "Date", "Tool", "Digest", "Input -> Output")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 76))

	for _, run := range runs {
		fmt.Fprintf(w, "  %-8s  %-19s  %-8s  %-12s  %s -> %s\n",
			shorten(run.ID, 8),
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			run.Tool,
			shorten(run.Digest, 12),
			run.Input,
			run.Output,
		)
		if run.Summary != "" {
			fmt.Fprintf(w, "  %-8s  %s\n", "", run.Summary)
		}
	}
}

// shorten returns the first n bytes of s.
func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
