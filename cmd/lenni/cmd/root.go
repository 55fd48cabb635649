// Package cmd implements the lenni CLI: lex/parse/check debug
// subcommands plus the two real driver commands, build and run.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lenni808090/lenniscript/internal/lenlog"
)

var (
	// Version is set by -ldflags at release build time.
	Version = "0.1.0-dev"

	verbose    bool
	forceColor string // "auto" | "always" | "never"
	log        *lenlog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lenni",
	Short: "lenniscript compiler",
	Long: `lenni compiles lenniscript source to JavaScript.

lenniscript is a small statically-typed scripting language. lenni
lexes, parses, and type-checks a .lsc file, then emits equivalent
JavaScript for Node.js.`,
	Version:           Version,
	PersistentPreRunE: setupGlobals,
}

func setupGlobals(cmd *cobra.Command, args []string) error {
	log = lenlog.New(verbose)
	switch forceColor {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
		// leave fatih/color's own TTY auto-detection in place
	default:
		return fmt.Errorf("--color must be one of auto, always, never (got %q)", forceColor)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline stage names and diagnostic notes to stderr")
	rootCmd.PersistentFlags().StringVar(&forceColor, "color", "auto", "color diagnostics: auto, always, never")
}

func exitWithCode(code int, msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(code)
}
