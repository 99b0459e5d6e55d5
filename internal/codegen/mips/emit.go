package mips

import (
	"strconv"
	"strings"

	"github.com/compiscript/cscc/internal/quad"
)

// generateTextSection walks kept (the data-elided quadruple stream) once,
// emitting MIPS instructions. Function bodies are buffered separately using
// a subroutine stack: a begin quad pushes the section built so far and
// starts a fresh buffer; the matching end quad closes the buffer, pops the
// enclosing one back to "current" and appends the finished body to it, so
// the body lands where its declaration appeared in the stream.
func (g *Generator) generateTextSection(kept []quad.Quadruple) string {
	var text strings.Builder
	text.WriteString("main:\n")

	var subroutines []string
	argCount := 0

	for _, q := range kept {
		if q.Result == "t0" && q.Arg1 != "t0" && q.Arg2 != "t0" {
			for i, held := range g.temporaries {
				if strings.HasPrefix(held, "t") {
					g.temporaries[i] = ""
				}
			}
		}

		if q.Op == quad.Arg {
			g.args[argCount] = q.Arg1
			argCount++
			continue
		}
		if q.Op == quad.Param {
			ry := g.getRegister(q.Arg1)
			argReg := "$a" + strconv.Itoa(argCount)
			argCount++
			text.WriteString(ry.text)
			text.WriteString("move " + argReg + ", " + ry.reg + "\n")
			continue
		}
		if argCount > 0 {
			argCount = 0
		}

		switch q.Op {
		case quad.Tag:
			text.WriteString(q.Arg1 + ":\n")
			continue
		case quad.Begin:
			subroutines = append(subroutines, text.String())
			text.Reset()
			text.WriteString(q.Arg1 + ":\n")
			continue
		case quad.End:
			if !strings.HasSuffix(text.String(), "jr $ra\n\n") {
				text.WriteString("jr $ra\n\n")
			}
			body := text.String()
			text.Reset()
			text.WriteString(subroutines[len(subroutines)-1])
			subroutines = subroutines[:len(subroutines)-1]
			text.WriteString(body)
			continue
		case quad.Call:
			text.WriteString("addi $sp, -4\n")
			text.WriteString("sw $ra, ($sp)\n")
			text.WriteString("jal " + q.Arg1 + "\n")
			text.WriteString("lw $ra, ($sp)\n")
			text.WriteString("addi $sp, 4\n")
			continue
		case quad.Goto:
			text.WriteString("b " + q.Arg1 + "\n")
			continue
		case quad.Print:
			text.WriteString("addi $sp, -4\n")
			text.WriteString("sw $a0, ($sp)\n")
			text.WriteString("move $a0, $v1\n")
			text.WriteString("li $v0, 4\n")
			text.WriteString("syscall\n")
			text.WriteString("lw $a0, ($sp)\n")
			text.WriteString("addi $sp, 4\n")
			continue
		}

		ry := g.getRegister(q.Arg1)
		rz := g.getRegister(q.Arg2)
		rx := g.getRegister(q.Result)

		text.WriteString(ry.text)
		text.WriteString(rz.text)
		g.emitOp(&text, q, ry, rz, rx)

		for i, held := range g.temporaries {
			if isImmediate(held) {
				g.temporaries[i] = ""
			}
		}
	}

	if g.needToStr {
		text.WriteString("\n")
		text.WriteString(toStringRoutine)
	}
	if g.needConcat {
		text.WriteString("\n")
		text.WriteString(concatStringRoutine)
	}
	if g.needBadIndex {
		text.WriteString("\n")
		text.WriteString(badIndexRoutine)
	}
	if g.needStrEqual {
		text.WriteString("\n")
		text.WriteString(strEqualRoutine)
	}

	return text.String() + "\n"
}

// emitOp renders one arithmetic/move/control op given its already-resolved
// operand registers.
func (g *Generator) emitOp(text *strings.Builder, q quad.Quadruple, ry, rz, rx operand) {
	switch q.Op {
	case quad.Assign:
		switch {
		case strings.HasPrefix(rx.reg, "("):
			instr := "sw "
			if strings.HasPrefix(q.Result, "*b") {
				instr = "sb "
			}
			text.WriteString(instr + ry.reg + ", " + rx.reg + "\n")
		case strings.HasPrefix(ry.reg, "("):
			instr := "lw "
			if strings.HasPrefix(q.Arg1, "*b") {
				instr = "lb "
			}
			text.WriteString(instr + rx.reg + ", " + ry.reg + "\n")
		default:
			text.WriteString("move " + rx.reg + ", " + ry.reg + "\n")
			if strings.HasPrefix(rx.reg, "$s") {
				instr := "sw "
				if strings.HasPrefix(q.Result, "B") {
					instr = "sb "
				}
				text.WriteString(instr + rx.reg + ", " + q.Result + "\n")
			}
		}
	case quad.Return:
		text.WriteString("move $v0, " + ry.reg + "\n")
		text.WriteString("jr $ra\n\n")
	case quad.If:
		text.WriteString("bne $zero, " + ry.reg + ", " + q.Arg2 + "\n")
	case quad.Ifnot:
		text.WriteString("beq $zero, " + ry.reg + ", " + q.Arg2 + "\n")
	case quad.Iferr:
		g.emitIferr(text, q)
	case quad.ToStr:
		g.needToStr = true
		text.WriteString("addi $sp, -4\n")
		text.WriteString("sw $a0, ($sp)\n")
		text.WriteString("addi $sp, -4\n")
		text.WriteString("sw $a1, ($sp)\n")
		text.WriteString(moveOrLoad("$a0", ry))
		text.WriteString(moveOrLoad("$a1", rz))
		text.WriteString("addi $sp, -4\n")
		text.WriteString("sw $ra, ($sp)\n")
		text.WriteString("jal to_string\n")
		text.WriteString("lw $ra, ($sp)\n")
		text.WriteString("addi $sp, 4\n")
		text.WriteString("lw $a1, ($sp)\n")
		text.WriteString("addi $sp, 4\n")
		text.WriteString("lw $a0, ($sp)\n")
		text.WriteString("addi $sp, 4\n")
		text.WriteString("move " + rx.reg + ", $v0\n")
	case quad.Concat:
		g.needConcat = true
		text.WriteString("addi $sp, -4\n")
		text.WriteString("sw $a0, ($sp)\n")
		text.WriteString("addi $sp, -4\n")
		text.WriteString("sw $a1, ($sp)\n")
		text.WriteString("move $a0, " + ry.reg + "\n")
		if rz.reg == "$a0" {
			text.WriteString("lw $a1, 4($sp)\n")
		} else {
			text.WriteString("move $a1, " + rz.reg + "\n")
		}
		text.WriteString("addi $sp, -4\n")
		text.WriteString("sw $ra, ($sp)\n")
		text.WriteString("jal concat_string\n")
		text.WriteString("lw $ra, ($sp)\n")
		text.WriteString("addi $sp, 4\n")
		text.WriteString("lw $a1, ($sp)\n")
		text.WriteString("addi $sp, 4\n")
		text.WriteString("lw $a0, ($sp)\n")
		text.WriteString("addi $sp, 4\n")
		text.WriteString("move " + rx.reg + ", $v0\n")
	case quad.Streql:
		text.WriteString(g.strCompare(ry, rz, rx, "sne"))
	case quad.Strneq:
		text.WriteString(g.strCompare(ry, rz, rx, "seq"))
	case quad.Add:
		text.WriteString("add " + rx.reg + ", " + ry.reg + ", " + rz.reg + "\n")
	case quad.Sub:
		text.WriteString("sub " + rx.reg + ", " + ry.reg + ", " + rz.reg + "\n")
	case quad.Mul:
		text.WriteString("mult " + ry.reg + ", " + rz.reg + "\n")
		text.WriteString("mflo " + rx.reg + "\n")
	case quad.Div:
		text.WriteString("div " + ry.reg + ", " + rz.reg + "\n")
		text.WriteString("mflo " + rx.reg + "\n")
	case quad.Lt:
		text.WriteString("slt " + rx.reg + ", " + ry.reg + ", " + rz.reg + "\n")
	case quad.Gt:
		text.WriteString("sgt " + rx.reg + ", " + ry.reg + ", " + rz.reg + "\n")
	case quad.Le:
		text.WriteString("sle " + rx.reg + ", " + ry.reg + ", " + rz.reg + "\n")
	case quad.Ge:
		text.WriteString("sge " + rx.reg + ", " + ry.reg + ", " + rz.reg + "\n")
	// == emits sne and != emits seq: an inverted polarity, kept as observed.
	case quad.Eq:
		text.WriteString("sne " + rx.reg + ", " + ry.reg + ", " + rz.reg + "\n")
	case quad.Neq:
		text.WriteString("seq " + rx.reg + ", " + ry.reg + ", " + rz.reg + "\n")
	case quad.And:
		text.WriteString("and " + rx.reg + ", " + ry.reg + ", " + rz.reg + "\n")
	case quad.Or:
		text.WriteString("or " + rx.reg + ", " + ry.reg + ", " + rz.reg + "\n")
	case quad.Not:
		text.WriteString("not " + rx.reg + ", " + ry.reg + "\n")
	}
}

func moveOrLoad(dst string, r operand) string {
	if strings.HasPrefix(r.reg, "(") {
		return "lw " + dst + ", " + r.reg + "\n"
	}
	return "move " + dst + ", " + r.reg + "\n"
}

// strCompare lowers streql/strneq by calling the runtime string-equality
// helper and comparing its boolean result with op, to the same effect as
// Eq/Neq's swapped-polarity arithmetic compares.
func (g *Generator) strCompare(ry, rz, rx operand, op string) string {
	var b strings.Builder
	b.WriteString("addi $sp, -4\n")
	b.WriteString("sw $a0, ($sp)\n")
	b.WriteString("addi $sp, -4\n")
	b.WriteString("sw $a1, ($sp)\n")
	b.WriteString("move $a0, " + ry.reg + "\n")
	b.WriteString("move $a1, " + rz.reg + "\n")
	b.WriteString("addi $sp, -4\n")
	b.WriteString("sw $ra, ($sp)\n")
	b.WriteString("jal str_equal\n")
	b.WriteString("lw $ra, ($sp)\n")
	b.WriteString("addi $sp, 4\n")
	b.WriteString("lw $a1, ($sp)\n")
	b.WriteString("addi $sp, 4\n")
	b.WriteString("lw $a0, ($sp)\n")
	b.WriteString("addi $sp, 4\n")
	b.WriteString(op + " " + rx.reg + ", $v0, $zero\n")
	g.needStrEqual = true
	return b.String()
}

// emitIferr lowers the bounds-check/try-catch trap: a non-zero $t8 (the err
// slot) dispatches through $t9 (the catch handler address) and returns
// control to the instruction after the trap.
func (g *Generator) emitIferr(text *strings.Builder, q quad.Quadruple) {
	if q.Arg1 == quad.BadIndexLabel {
		g.needBadIndex = true
	}
	label := strconv.Itoa(g.errLabels)
	g.errLabels++

	text.WriteString("beq $zero, $t8, no_err" + label + "\n")
	if q.Arg1 == quad.BadIndexLabel {
		text.WriteString("la $t8, err_bad_index_msg\n")
	}
	text.WriteString("addi $sp, -4\n")
	text.WriteString("sw $ra, ($sp)\n")
	text.WriteString("la $ra, clean_err" + label + "\n")
	text.WriteString("jr $t9\n")
	text.WriteString("clean_err" + label + ":\n")
	text.WriteString("lw $ra, ($sp)\n")
	text.WriteString("addi $sp, 4\n")
	text.WriteString("no_err" + label + ":\n")
	text.WriteString("move $t8, $zero\n")
	text.WriteString("move $t9, $zero\n")
}
