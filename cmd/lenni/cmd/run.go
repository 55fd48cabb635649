package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lenni808090/lenniscript/internal/emitter"
)

var runTimeout time.Duration

var runCmd = &cobra.Command{
	Use:   "run <file.lsc>",
	Short: "Compile and run a lenniscript file with node",
	Long: `run lexes, parses, type-checks, and emits a .lsc file to a temporary
JavaScript file, invokes node on it, streams its output, and removes
the temporary file on exit.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "kill node if it runs longer than this (0 = no limit)")
}

func runRun(cmd *cobra.Command, args []string) error {
	filename := args[0]
	source, err := readSource(filename)
	if err != nil {
		exitWithCode(1, "Error: %s", err)
	}

	log.Stage("lex+parse")
	prog, errs := parseSource(source, filename)
	if len(errs) > 0 {
		printErrors(errs)
		os.Exit(1)
	}

	log.Stage("check")
	if errs := typeCheck(prog, source, filename); len(errs) > 0 {
		printErrors(errs)
		os.Exit(1)
	}

	log.Stage("emit")
	js := emitter.Emit(prog)

	tmp, err := os.CreateTemp("", "lenni-*.js")
	if err != nil {
		exitWithCode(1, "Error: failed to create temp file: %s", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(js); err != nil {
		tmp.Close()
		exitWithCode(1, "Error: failed to write temp file: %s", err)
	}
	tmp.Close()

	log.Notef("invoking node on %s", filepath.Base(tmpPath))

	ctx := context.Background()
	var cancel context.CancelFunc
	if runTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, runTimeout)
		defer cancel()
	}

	nodeCmd := exec.CommandContext(ctx, "node", tmpPath)
	nodeCmd.Stdout = os.Stdout
	nodeCmd.Stderr = os.Stderr
	nodeCmd.Stdin = os.Stdin

	if err := nodeCmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "node exited with an error: %s\n", err)
		os.Exit(2)
	}
	return nil
}
