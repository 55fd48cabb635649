package emitter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Lenni808090/lenniscript/internal/lexer"
	"github.com/Lenni808090/lenniscript/internal/parser"
	"github.com/Lenni808090/lenniscript/internal/semantic"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures runs every .lsc file under testdata/fixtures through the
// full lex/parse/check/emit pipeline and snapshots the emitted
// JavaScript, the same fixture-driven shape the teacher used to
// snapshot its interpreter's output against testdata/fixtures.
func TestFixtures(t *testing.T) {
	files, err := filepath.Glob("../../testdata/fixtures/*.lsc")
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no fixtures found under testdata/fixtures")
	}

	for _, path := range files {
		name := filepath.Base(path)
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}

			p := parser.New(lexer.New(string(source)))
			prog := p.ParseProgram()
			if errs := p.Errors(); len(errs) > 0 {
				t.Fatalf("unexpected parse errors in %s: %v", name, errs)
			}

			if errs := semantic.New(string(source), name).Check(prog); len(errs) > 0 {
				t.Fatalf("unexpected type errors in %s: %v", name, errs)
			}

			snaps.MatchSnapshot(t, Emit(prog))
		})
	}
}
