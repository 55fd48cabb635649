package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.lsc>",
	Short: "Type-check a lenniscript file without emitting anything",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	filename := args[0]
	source, err := readSource(filename)
	if err != nil {
		exitWithCode(1, "Error: %s", err)
	}

	prog, errs := parseSource(source, filename)
	if len(errs) > 0 {
		printErrors(errs)
		os.Exit(1)
	}

	if errs := typeCheck(prog, source, filename); len(errs) > 0 {
		printErrors(errs)
		os.Exit(1)
	}

	fmt.Println("OK")
	return nil
}
