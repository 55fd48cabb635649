// Command lenni is the lenniscript CLI: lex/parse/check debug
// subcommands plus build (compile to JS) and run (compile and execute
// with node).
package main

import (
	"os"

	"github.com/Lenni808090/lenniscript/cmd/lenni/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
