package interp

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/cwbudde/go-pascal/internal/lexer"
	"github.com/cwbudde/go-pascal/internal/parser"
	"github.com/gkampitakis/go-snaps/snaps"
)

func TestMain(m *testing.M) {
	code := m.Run()
	snaps.Clean(m)
	os.Exit(code)
}

// TestProgramFixtures runs every program under testdata/programs and
// snapshots its console output. Programs that need input provide it in a
// sibling .in file.
func TestProgramFixtures(t *testing.T) {
	pattern := filepath.Join("testdata", "programs", "*.pas")
	files, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob %s: %v", pattern, err)
	}
	if len(files) == 0 {
		t.Fatalf("no fixtures found under %s", pattern)
	}
	sort.Strings(files)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".pas")
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("read fixture: %v", err)
			}

			p := parser.New(lexer.New(string(source)))
			prog := p.ParseProgram()
			if len(p.Errors()) > 0 {
				t.Fatalf("parse errors in %s: %v", file, p.Errors()[0])
			}

			opts := []Option{}
			var sb strings.Builder
			opts = append(opts, WithOutput(&sb))

			inFile := strings.TrimSuffix(file, ".pas") + ".in"
			if input, err := os.ReadFile(inFile); err == nil {
				opts = append(opts, WithInput(strings.NewReader(string(input))))
			}

			i := New(opts...)
			if err := i.Run(prog); err != nil {
				t.Fatalf("run %s: %v", file, err)
			}
			snaps.MatchSnapshot(t, sb.String())
		})
	}
}
