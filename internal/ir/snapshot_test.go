package ir

import (
	"strings"
	"testing"

	"github.com/compiscript/cscc/internal/quad"
	"github.com/gkampitakis/go-snaps/snaps"
)

// renderTAC joins a quadruple stream into the one-quadruple-per-line text
// the "-tac" CLI flag writes, so the golden file reads like the artifact a
// user would actually inspect.
func renderTAC(quads []quad.Quadruple) string {
	lines := make([]string, len(quads))
	for i, q := range quads {
		lines[i] = q.String()
	}
	return strings.Join(lines, "\n")
}

// TestGenerateSnapshot pins the full quadruple stream for a program that
// exercises inheritance, static dispatch, constructors, and array
// allocation/indexing/bounds-checking in one pass, so a regression in any
// of expression lowering, call convention, or addressing shows up as a
// diff against the stored golden file.
func TestGenerateSnapshot(t *testing.T) {
	quads := generate(t, `
		class Animal {
			let nombre: string;
			function constructor(n: string) { this.nombre = n; }
			function hablar(): string { return this.nombre + " hace ruido."; }
		}
		class Perro: Animal {
			function hablar(): string { return this.nombre + " ladra."; }
		}

		let a: Animal = new Animal("Rex");
		let lista = [1, 2, 3];
		print(lista[0]);
		print(a.hablar());
	`)

	snaps.MatchSnapshot(t, renderTAC(quads))
}
