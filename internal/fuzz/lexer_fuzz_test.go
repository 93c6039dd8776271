package fuzztests

import (
	"testing"

	"rbfmt/internal/diag"
	"rbfmt/internal/lexer"
	"rbfmt/internal/source"
	"rbfmt/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addSeeds(f, true)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.rb", input))
		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		// грубая граница: зацикливание лексера превысит её сразу
		for n := 0; ; n++ {
			if n > 2*len(input)+2 {
				t.Fatalf("lexer does not advance on %q", truncateForLog(input, 200))
			}
			if lx.Next().Kind == token.EOF {
				break
			}
		}
	})
}
