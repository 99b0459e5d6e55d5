package semantic

import (
	"github.com/compiscript/cscc/internal/ast"
	"github.com/compiscript/cscc/internal/errors"
)

// analyzeBlockReachability walks stmts in order, type-checking each via
// analyzeStatement while tracking a terminate flag: once a statement is
// known to terminate control flow (a return, or a break/continue inside a
// loop), every following statement in the same block is unreachable. It
// returns whether the block as a whole is guaranteed to terminate, which
// callers use for MissingReturn and if/else join checks.
func (a *Analyzer) analyzeBlockReachability(stmts []ast.Statement) bool {
	terminated := false
	for _, stmt := range stmts {
		if terminated {
			a.fail(errors.UnreachableCode, stmt.Pos(), "unreachable code")
		}
		a.analyzeStatement(stmt)
		if a.stmtTerminates(stmt) {
			terminated = true
		}
	}
	return terminated
}

// stmtTerminates reports whether stmt, once executed, never falls through to
// the statement after it. It is a pure structural check over the already
// type-checked tree — it does not re-run analysis.
func (a *Analyzer) stmtTerminates(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.ReturnStatement:
		return true
	case *ast.BreakStatement:
		return true
	case *ast.ContinueStatement:
		return true
	case *ast.IfStatement:
		if s.Alternative == nil {
			return false
		}
		return a.stmtTerminates(s.Consequence) && a.stmtTerminates(s.Alternative)
	case *ast.BlockStatement:
		return a.blockTerminates(s.Statements)
	default:
		return false
	}
}

func (a *Analyzer) blockTerminates(stmts []ast.Statement) bool {
	if len(stmts) == 0 {
		return false
	}
	return a.stmtTerminates(stmts[len(stmts)-1])
}
