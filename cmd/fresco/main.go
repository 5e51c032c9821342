package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwhitby/fresco/internal/editor"
	"github.com/mwhitby/fresco/internal/term"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "fresco [files...]",
	Short:   "A modal terminal text editor",
	Long:    `Fresco is a modal text editor for the terminal: splittable panes, tabs, and a layered incremental renderer. Each file argument opens in its own tab.`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := term.NewTerminal()
		if err != nil {
			return fmt.Errorf("terminal setup: %w", err)
		}
		defer t.Restore()

		ed, err := editor.NewEditor(t, args, editor.SystemClipboard{}, editor.NopLangClient{})
		if err != nil {
			return err
		}
		return ed.Run()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fresco: %v\n", err)
		os.Exit(1)
	}
}
