package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lenni808090/lenniscript/internal/lexer"
	"github.com/Lenni808090/lenniscript/internal/token"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file.lsc>",
	Short: "Tokenize a lenniscript file and print the token stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	filename := args[0]
	source, err := readSource(filename)
	if err != nil {
		exitWithCode(1, "Error: %s", err)
	}

	l := lexer.New(source)
	for {
		tok := l.NextToken()
		fmt.Printf("%-14s %q  line %d\n", tok.Type, tok.Literal, tok.Line)
		if tok.Type == token.EOF {
			break
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "lex error at line %d: %s\n", e.Line, e.Message)
		}
		os.Exit(1)
	}
	return nil
}
