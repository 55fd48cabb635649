package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lenni808090/lenniscript/internal/emitter"
)

var buildOutput string

var buildCmd = &cobra.Command{
	Use:   "build <file.lsc>",
	Short: "Compile a lenniscript file to JavaScript",
	Long: `build lexes, parses, and type-checks a .lsc file and writes the
emitted JavaScript to disk. It never invokes node.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output file, or - for stdout (default: <input>.js)")
}

func runBuild(cmd *cobra.Command, args []string) error {
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

	if buildOutput == "-" {
		fmt.Print(js)
		return nil
	}

	out := buildOutput
	if out == "" {
		out = outputPathFor(filename)
	}
	if err := os.WriteFile(out, []byte(js), 0o644); err != nil {
		exitWithCode(1, "Error: failed to write %s: %s", out, err)
	}
	fmt.Printf("%s -> %s\n", filename, out)
	return nil
}

func outputPathFor(sourcePath string) string {
	return sourcePath[:len(sourcePath)-len(sourceExt)] + ".js"
}
