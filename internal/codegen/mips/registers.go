package mips

import (
	"strconv"
	"strings"
)

// operand is one resolved register reference: the register name itself,
// plus any load instruction that must run first to put the right value in
// it (empty when the register already holds it).
type operand struct {
	reg  string
	text string
}

func isImmediate(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// loadInstr picks the load opcode for var based on what kind of value it
// names: an immediate, a string/array cell, a byte cell, or a plain word.
func loadInstr(v string) string {
	switch {
	case isImmediate(v):
		return "li"
	case strings.HasPrefix(v, "str") || strings.HasPrefix(v, "S"):
		return "la"
	case strings.HasPrefix(v, "B"):
		return "lb"
	default:
		return "lw"
	}
}

// getRegister resolves var to a register: a handful of reserved scratch
// names get fixed registers; named locals with an underscore
// (scope-qualified persistent locals) live in the $s class; everything else
// lives in the $t class; a var with no free slot in its class is spilled
// via spillOrAssign.
func (g *Generator) getRegister(v string) operand {
	if v == "" || strings.HasPrefix(v, "l") || strings.HasPrefix(v, "err_") {
		return operand{}
	}
	switch v {
	case "i", "err", "switch":
		return operand{reg: "$t8"}
	case "catch", "case":
		return operand{reg: "$t9"}
	case "ret":
		return operand{reg: "$v0"}
	case "p":
		return operand{reg: "$v1"}
	}
	if strings.HasPrefix(v, "i*") {
		return operand{reg: "($t8)"}
	}

	for i, held := range g.temporaries {
		if held == v {
			return operand{reg: tempReg(i)}
		}
	}
	for i, held := range g.saved {
		if held == v {
			return operand{reg: savedReg(i)}
		}
	}
	for i, held := range g.args {
		if held == v {
			return operand{reg: argReg(i)}
		}
	}

	registers, regType := g.classFor(v)
	for i, held := range registers {
		if held == "" {
			reg := regType + strconv.Itoa(i)
			instr := loadInstr(v)
			text := instr + " " + reg + ", " + v + "\n"
			registers[i] = v
			if !isImmediate(v) {
				g.descriptors[v] = append(g.descriptors[v], reg)
			}
			return operand{reg: reg, text: text}
		}
	}

	return g.spillOrAssign(v)
}

// classFor returns the register file (and its name prefix) var belongs to:
// a scope-qualified name (one containing "_") is a persistent local and
// gets a $s register; everything else is a $t scratch.
func (g *Generator) classFor(v string) ([]string, string) {
	if strings.Contains(v, "_") {
		return g.saved[:], "$s"
	}
	return g.temporaries[:], "$t"
}

// spillOrAssign evicts a register whose current occupant has a backup copy
// elsewhere (descriptors records every register currently holding each
// var), freeing it for var.
func (g *Generator) spillOrAssign(v string) operand {
	registers, regType := g.classFor(v)
	for i, held := range registers {
		if held == "" || len(g.descriptors[held]) <= 1 {
			continue
		}
		reg := regType + strconv.Itoa(i)
		instr := loadInstr(v)
		text := instr + " " + reg + ", " + v + "\n"

		registers[i] = v
		if !isImmediate(v) {
			g.descriptors[v] = append(g.descriptors[v], reg)
		}
		g.dropDescriptor(held, reg)

		return operand{reg: reg, text: text}
	}
	return operand{}
}

// dropDescriptor removes one occurrence of reg from var's backup-copy list.
func (g *Generator) dropDescriptor(v, reg string) {
	list := g.descriptors[v]
	for i, r := range list {
		if r == reg {
			g.descriptors[v] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

func tempReg(i int) string  { return "$t" + strconv.Itoa(i) }
func savedReg(i int) string { return "$s" + strconv.Itoa(i) }
func argReg(i int) string   { return "$a" + strconv.Itoa(i) }
