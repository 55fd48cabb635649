package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lenni808090/lenniscript/internal/ast"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.lsc>",
	Short: "Parse a lenniscript file and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
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

	for _, stmt := range prog.Body {
		dumpNode(stmt, 0)
	}
	return nil
}

func dumpNode(node ast.Node, indent int) {
	pad := strings.Repeat("  ", indent)
	switch n := node.(type) {
	case *ast.VarDeclaration:
		fmt.Printf("%sVarDeclaration(const=%v, name=%s)\n", pad, n.IsConst, n.Name)
		if n.Initializer != nil {
			dumpNode(n.Initializer, indent+1)
		}
	case *ast.FunctionDeclaration:
		fmt.Printf("%sFunctionDeclaration(name=%s, async=%v, params=%d)\n", pad, n.Name, n.IsAsync, len(n.Params))
		for _, stmt := range n.Body {
			dumpNode(stmt, indent+1)
		}
	case *ast.If:
		fmt.Printf("%sIf\n", pad)
		dumpNode(n.Cond, indent+1)
		for _, stmt := range n.Then {
			dumpNode(stmt, indent+1)
		}
	case *ast.While:
		fmt.Printf("%sWhile\n", pad)
		dumpNode(n.Cond, indent+1)
		for _, stmt := range n.Body {
			dumpNode(stmt, indent+1)
		}
	case *ast.ForC:
		fmt.Printf("%sForC\n", pad)
		for _, stmt := range n.Body {
			dumpNode(stmt, indent+1)
		}
	case *ast.ForIn:
		fmt.Printf("%sForIn(iterator=%s)\n", pad, n.IteratorName)
		for _, stmt := range n.Body {
			dumpNode(stmt, indent+1)
		}
	case *ast.ForRange:
		fmt.Printf("%sForRange(iterator=%s)\n", pad, n.IteratorName)
		for _, stmt := range n.Body {
			dumpNode(stmt, indent+1)
		}
	case *ast.Switch:
		fmt.Printf("%sSwitch(%d case(s))\n", pad, len(n.Cases))
	case *ast.TryCatchFinally:
		fmt.Printf("%sTryCatchFinally\n", pad)
	case *ast.Return:
		fmt.Printf("%sReturn\n", pad)
		if n.Value != nil {
			dumpNode(n.Value, indent+1)
		}
	case *ast.Break:
		fmt.Printf("%sBreak\n", pad)
	case *ast.Continue:
		fmt.Printf("%sContinue\n", pad)
	case *ast.ExpressionStmt:
		fmt.Printf("%sExpressionStmt\n", pad)
		dumpNode(n.Expr, indent+1)
	case *ast.NumericLiteral:
		fmt.Printf("%sNumericLiteral(%v)\n", pad, n.Value)
	case *ast.StringLiteral:
		fmt.Printf("%sStringLiteral(%q)\n", pad, n.Value)
	case *ast.BooleanLiteral:
		fmt.Printf("%sBooleanLiteral(%v)\n", pad, n.Value)
	case *ast.NullLiteral:
		fmt.Printf("%sNullLiteral\n", pad)
	case *ast.Identifier:
		fmt.Printf("%sIdentifier(%s)\n", pad, n.Name)
	case *ast.Binary:
		fmt.Printf("%sBinary(%s)\n", pad, n.Op)
		dumpNode(n.Left, indent+1)
		dumpNode(n.Right, indent+1)
	case *ast.Call:
		fmt.Printf("%sCall\n", pad)
		dumpNode(n.Callee, indent+1)
		for _, arg := range n.Args {
			dumpNode(arg, indent+1)
		}
	case *ast.Member:
		fmt.Printf("%sMember(computed=%v)\n", pad, n.IsComputed)
		dumpNode(n.Object, indent+1)
	default:
		fmt.Printf("%s%T\n", pad, node)
	}
}
