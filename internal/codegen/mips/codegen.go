// Package mips implements the third pass: lowering a quad.Quadruple stream
// into MIPS assembly text.
//
// A strings.Builder-driven walk with its own label/data pools combines a
// descriptor-based register allocator with two register files ($t/$s), a
// one-pass data-section scan that elides quadruples whose only job was to
// seed an initial value, and a one-pass text-section walk driven by a type
// switch over quad.Op.
package mips

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/compiscript/cscc/internal/quad"
)

var stringLiteralRe = regexp.MustCompile(`^"([^"\r\n]*)"$`)

// Generator lowers a quadruple stream into MIPS assembly.
type Generator struct {
	quads []quad.Quadruple

	temporaries [8]string
	saved       [8]string
	args        [4]string

	// descriptors is the variable-descriptor half of register allocation:
	// for each variable name, the registers currently holding a cached copy.
	descriptors map[string][]string

	stringCount int
	errLabels   int

	needToStr    bool
	needConcat   bool
	needBadIndex bool
	needStrEqual bool
}

// New creates a Generator over a completed quadruple stream.
func New(quads []quad.Quadruple) *Generator {
	return &Generator{quads: quads, descriptors: make(map[string][]string)}
}

// Generate lowers the quadruple stream into full ".data"/".text" assembly.
func (g *Generator) Generate() string {
	data, kept := g.generateDataSection()
	text := g.generateTextSection(kept)

	var out strings.Builder
	out.WriteString(".data\n")
	out.WriteString(data)
	if g.needBadIndex {
		out.WriteString("err_bad_index_msg:\t\t.asciiz\t\"index out of bounds\\n\"\n")
	}
	out.WriteString(".text\n")
	out.WriteString(text)
	return out.String()
}

// generateDataSection scans the quadruple stream once, interning string
// literals into their own .asciiz cells and declaring one cell per distinct
// result name (keyed by its storage-class prefix: W for a word, B for a
// byte, S for space reserved by alloc or a plain object/array slot). It
// returns the rendered .data text plus a copy of the quadruple stream with
// any quadruple whose only effect was seeding that initial value removed —
// a copy, not a mutation in place, so a second pass over the same stream
// elsewhere in the pipeline still sees every quadruple the IR generator
// emitted.
func (g *Generator) generateDataSection() (string, []quad.Quadruple) {
	var data strings.Builder
	seen := make(map[string]bool)
	kept := make([]quad.Quadruple, 0, len(g.quads))

	for _, q := range g.quads {
		arg1, arg2 := q.Arg1, q.Arg2
		if m := stringLiteralRe.FindStringSubmatch(arg1); m != nil {
			label := "str" + strconv.Itoa(g.stringCount)
			g.stringCount++
			data.WriteString(label + ":\t\t.asciiz\t\"" + m[1] + "\"\n")
			arg1 = label
		}
		if m := stringLiteralRe.FindStringSubmatch(arg2); m != nil {
			label := "str" + strconv.Itoa(g.stringCount)
			g.stringCount++
			data.WriteString(label + ":\t\t.asciiz\t\"" + m[1] + "\"\n")
			arg2 = label
		}
		q.Arg1, q.Arg2 = arg1, arg2

		if q.Result == "" || seen[q.Result] || isReservedOperand(q.Result) {
			kept = append(kept, q)
			continue
		}

		elide := false
		switch {
		case strings.HasPrefix(q.Result, "W"):
			init := "0"
			if isImmediate(q.Arg1) {
				init = q.Arg1
				elide = true
			}
			data.WriteString(q.Result + ":\t\t.word\t" + init + "\n")
		case strings.HasPrefix(q.Result, "B"):
			init := "0"
			switch q.Arg1 {
			case "false", "nil":
				elide = true
			case "true":
				init = "1"
				elide = true
			}
			data.WriteString(q.Result + ":\t\t.byte\t" + init + "\n")
		case strings.HasPrefix(q.Result, "S"):
			if q.Op == quad.Alloc {
				data.WriteString(q.Result + ":\t\t.space\t" + q.Arg1 + "\n")
				elide = true
			} else {
				data.WriteString(q.Result + ":\t\t.word\t0\n")
			}
		default:
			kept = append(kept, q)
			continue
		}

		seen[q.Result] = true
		if !elide {
			kept = append(kept, q)
		}
	}

	return data.String(), kept
}

// isReservedOperand reports whether v names one of the fixed scratch slots
// getRegister binds to a register rather than a variable — these never own
// a .data cell, even when their name happens to start with a storage-class
// letter like S ("switch").
func isReservedOperand(v string) bool {
	switch v {
	case quad.ScratchAddr, quad.ScratchAddrDeref, quad.ReturnSlot, quad.PrintSlot,
		quad.ErrSlot, quad.CatchSlot, quad.CaseSlot, quad.SwitchSlot:
		return true
	}
	return strings.HasPrefix(v, "l") || strings.HasPrefix(v, "err_")
}
