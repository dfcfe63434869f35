package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for kanjikit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kanjikit",
		Short: "Kanji extraction and background removal for vocabulary game assets",
		Long: `kanjikit prepares assets for a Japanese vocabulary game.

  extract   reports the unique kanji (U+4E00-U+9FAF) and multi-kanji compounds
            found in a vocabulary JSON dataset
  removebg  makes near-white pixels transparent and crops an image to its
            visible content, writing a PNG

Settings can be stored in a .kanjikit file (see 'kanjikit init').`,
		Version:       readVersionInfo().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("config", "",
		"Configuration file path (default: .kanjikit in current directory, XDG config directory or home directory)")
	cmd.PersistentFlags().Bool("record", false, "Record this run in the history database")

	// Add subcommands
	cmd.AddCommand(NewExtractCmd())
	cmd.AddCommand(NewRemoveBGCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
