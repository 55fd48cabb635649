package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/Lenni808090/lenniscript/internal/ast"
	cerr "github.com/Lenni808090/lenniscript/internal/errors"
	"github.com/Lenni808090/lenniscript/internal/lexer"
	"github.com/Lenni808090/lenniscript/internal/parser"
	"github.com/Lenni808090/lenniscript/internal/semantic"
)

const sourceExt = ".lsc"

func checkExtension(path string) error {
	if filepath.Ext(path) != sourceExt {
		return fmt.Errorf("%s: expected a %s source file", path, sourceExt)
	}
	return nil
}

func readSource(path string) (string, error) {
	if err := checkExtension(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// parseSource lexes and parses source, converting the lexer's buffered
// errors into LexError CompilerErrors and the parser's errors into
// ParseError CompilerErrors, lex errors first. A lex error also leaves an
// ILLEGAL token in the stream, which the parser usually reports as well.
func parseSource(source, filename string) (*ast.Program, []*cerr.CompilerError) {
	l := lexer.New(source)
	p := parser.New(l)
	prog := p.ParseProgram()

	var errs []*cerr.CompilerError
	for _, lexErr := range l.Errors() {
		errs = append(errs, cerr.New(cerr.Lex, lexErr.Line, lexErr.Message, source, filename))
	}
	for _, parseErr := range p.Errors() {
		errs = append(errs, cerr.New(cerr.Parse, parseErr.Line, parseErr.Message, source, filename))
	}
	return prog, errs
}

func typeCheck(prog *ast.Program, source, filename string) []*cerr.CompilerError {
	return semantic.New(source, filename).Check(prog)
}

func printErrors(errs []*cerr.CompilerError) {
	useColor := !color.NoColor
	fmt.Fprintln(os.Stderr, cerr.FormatAll(errs, useColor))
}
