// Package parser implements a recursive-descent, precedence-climbing parser
// for CompiScript source text: prefix/infix function tables keyed by token
// type, a current/peek token pair, and parseExpression(precedence) driving
// a Pratt loop, with the precedence table and statement grammar covering
// CompiScript's full surface — classes, typed declarations, suffix chains
// (call/index/property), statement-level assignment, and the additional
// control-flow forms (foreach, do/while, switch, try/catch).
package parser

import (
	"fmt"
	"strconv"

	"github.com/compiscript/cscc/internal/ast"
	"github.com/compiscript/cscc/internal/lexer"
	"github.com/compiscript/cscc/internal/token"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	Lowest
	Ternary     // c ? a : b
	LogicalOr   // ||
	LogicalAnd  // &&
	Equality    // == !=
	Relational  // < <= > >=
	Additive    // + -
	Multiplicative // * /
	Unary       // ! -x
	Suffix      // . () []
)

var precedences = map[token.Type]int{
	token.QUESTION: Ternary,
	token.OR:       LogicalOr,
	token.AND:      LogicalAnd,
	token.EQ:       Equality,
	token.NEQ:      Equality,
	token.LT:       Relational,
	token.LE:       Relational,
	token.GT:       Relational,
	token.GE:       Relational,
	token.PLUS:     Additive,
	token.MINUS:    Additive,
	token.STAR:     Multiplicative,
	token.SLASH:    Multiplicative,
	token.LPAREN:   Suffix,
	token.LBRACKET: Suffix,
	token.DOT:      Suffix,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser turns a token stream into a CST Program.
type Parser struct {
	l      *lexer.Lexer
	errors []string

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:    p.parseIdentifier,
		token.INTEGER:  p.parseIntegerLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TRUE:     p.parseBoolLiteral,
		token.FALSE:    p.parseBoolLiteral,
		token.NIL:      p.parseNilLiteral,
		token.THIS:     p.parseThisExpression,
		token.BANG:     p.parseUnaryExpression,
		token.MINUS:    p.parseUnaryExpression,
		token.LPAREN:   p.parseGroupedExpression,
		token.LBRACKET: p.parseArrayLiteral,
		token.NEW:      p.parseNewExpression,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:     p.parseBinaryExpression,
		token.MINUS:    p.parseBinaryExpression,
		token.STAR:     p.parseBinaryExpression,
		token.SLASH:    p.parseBinaryExpression,
		token.EQ:       p.parseBinaryExpression,
		token.NEQ:      p.parseBinaryExpression,
		token.LT:       p.parseBinaryExpression,
		token.LE:       p.parseBinaryExpression,
		token.GT:       p.parseBinaryExpression,
		token.GE:       p.parseBinaryExpression,
		token.AND:      p.parseBinaryExpression,
		token.OR:       p.parseBinaryExpression,
		token.QUESTION: p.parseTernaryExpression,
		token.LPAREN:   p.parseCallExpression,
		token.LBRACKET: p.parseIndexExpression,
		token.DOT:      p.parsePropertyExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the syntax errors accumulated so far.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.errors = append(p.errors, fmt.Sprintf("%s: expected next token %s, got %s", p.peekToken.Pos, t, p.peekToken.Type))
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return Lowest
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return Lowest
}

// ParseProgram parses a full source file into a Program. Check Errors()
// afterward.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.curIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}
	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		return p.parseLetStatement()
	case token.CONST:
		return p.parseConstStatement()
	case token.FUNCTION:
		return p.parseFunctionDecl()
	case token.CLASS:
		return p.parseClassDecl()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.FOR:
		return p.parseForOrForeachStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.PRINT:
		return p.parsePrintStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.TRY:
		return p.parseTryCatchStatement()
	case token.SEMICOLON:
		return nil
	default:
		return p.parseExpressionOrAssignStatement()
	}
}

func (p *Parser) parseTypeRef() *ast.TypeRef {
	if !p.curIs(token.IDENT) && !isTypeKeyword(p.curToken.Type) {
		p.errors = append(p.errors, fmt.Sprintf("%s: expected type name, got %s", p.curToken.Pos, p.curToken.Type))
		return nil
	}
	t := &ast.TypeRef{Token: p.curToken, Name: p.curToken.Literal}
	for p.peekIs(token.LBRACKET) {
		p.nextToken()
		if !p.expectPeek(token.RBRACKET) {
			return t
		}
		t.Dimensions++
	}
	return t
}

func isTypeKeyword(t token.Type) bool {
	switch t {
	case token.NIL:
		return true
	}
	return false
}

func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return stmt
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		stmt.Type = p.parseTypeRef()
	}
	if p.peekIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		stmt.Value = p.parseExpression(Lowest)
	}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseConstStatement() ast.Statement {
	stmt := &ast.ConstStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return stmt
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		stmt.Type = p.parseTypeRef()
	}
	if !p.expectPeek(token.ASSIGN) {
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(Lowest)
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, p.parseParam())
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseParam())
	}
	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseParam() *ast.Param {
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	var typ *ast.TypeRef
	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		typ = p.parseTypeRef()
	}
	return &ast.Param{Name: name, Type: typ}
}

func (p *Parser) parseFunctionDecl() ast.Statement {
	return p.parseFunctionDeclFrom(p.curToken)
}

func (p *Parser) parseFunctionDeclFrom(startTok token.Token) *ast.FunctionDecl {
	fn := &ast.FunctionDecl{Token: startTok}
	if !p.expectPeek(token.IDENT) {
		return fn
	}
	fn.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if !p.expectPeek(token.LPAREN) {
		return fn
	}
	fn.Params = p.parseParamList()
	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		fn.ReturnType = p.parseTypeRef()
	}
	if !p.expectPeek(token.LBRACE) {
		return fn
	}
	fn.Body = p.parseBlockStatement()
	return fn
}

func (p *Parser) parseClassDecl() ast.Statement {
	cls := &ast.ClassDecl{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return cls
	}
	cls.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if p.peekIs(token.COLON) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return cls
		}
		cls.Parent = p.curToken.Literal
	}
	if !p.expectPeek(token.LBRACE) {
		return cls
	}
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		switch p.curToken.Type {
		case token.LET, token.CONST:
			cls.Properties = append(cls.Properties, p.parsePropertyDecl())
		case token.FUNCTION:
			startTok := p.curToken
			cls.Methods = append(cls.Methods, p.parseFunctionDeclFrom(startTok))
		default:
			p.errors = append(p.errors, fmt.Sprintf("%s: unexpected token %s in class body", p.curToken.Pos, p.curToken.Type))
		}
		p.nextToken()
	}
	return cls
}

func (p *Parser) parsePropertyDecl() *ast.PropertyDecl {
	prop := &ast.PropertyDecl{Token: p.curToken, ReadOnly: p.curIs(token.CONST)}
	if !p.expectPeek(token.IDENT) {
		return prop
	}
	prop.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		prop.Type = p.parseTypeRef()
	}
	if p.peekIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		prop.Value = p.parseExpression(Lowest)
	}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return prop
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(Lowest)
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Consequence = p.parseBlockStatement()
	if p.peekIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return stmt
		}
		stmt.Alternative = p.parseBlockStatement()
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(Lowest)
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	stmt := &ast.DoWhileStatement{Token: p.curToken}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Body = p.parseBlockStatement()
	if !p.expectPeek(token.WHILE) {
		return stmt
	}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(Lowest)
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

// parseForOrForeachStatement disambiguates "for (init; cond; step) B" from
// "for (n in expr) B" by checking whether an identifier right after '(' is
// followed by an IN token.
func (p *Parser) parseForOrForeachStatement() ast.Statement {
	startTok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return &ast.ForStatement{Token: startTok}
	}

	if p.peekIs(token.IDENT) {
		// A shallow *p save/restore would leave the underlying lexer
		// advanced past what the restored cur/peek tokens claim, since
		// p.l is a pointer; snapshot the lexer's value too so backtracking
		// actually rewinds the token stream.
		savedLexer := *p.l
		savedCur, savedPeek := p.curToken, p.peekToken
		p.nextToken()
		name := p.curToken
		if p.peekIs(token.IN) {
			varIdent := &ast.Identifier{Token: name, Value: name.Literal}
			p.nextToken()
			p.nextToken()
			iterable := p.parseExpression(Lowest)
			if !p.expectPeek(token.RPAREN) {
				return &ast.ForeachStatement{Token: startTok, Variable: varIdent, Iterable: iterable}
			}
			if !p.expectPeek(token.LBRACE) {
				return &ast.ForeachStatement{Token: startTok, Variable: varIdent, Iterable: iterable}
			}
			body := p.parseBlockStatement()
			return &ast.ForeachStatement{Token: startTok, Variable: varIdent, Iterable: iterable, Body: body}
		}
		*p.l = savedLexer
		p.curToken, p.peekToken = savedCur, savedPeek
	}

	stmt := &ast.ForStatement{Token: startTok}
	p.nextToken()
	if !p.curIs(token.SEMICOLON) {
		stmt.Init = p.parseStatement()
	}
	// parseStatement (like the empty-init case) always leaves cur on the
	// separating semicolon; step past it before looking for a condition.
	p.nextToken()
	if !p.curIs(token.SEMICOLON) {
		stmt.Condition = p.parseExpression(Lowest)
		if !p.expectPeek(token.SEMICOLON) {
			return stmt
		}
	}
	p.nextToken()
	if !p.curIs(token.RPAREN) {
		stmt.Step = p.parseSimpleStatementNoSemi()
		if !p.expectPeek(token.RPAREN) {
			return stmt
		}
	}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

// parseSimpleStatementNoSemi parses a for-loop step clause: an assignment or
// expression with no trailing semicolon consumed.
func (p *Parser) parseSimpleStatementNoSemi() ast.Statement {
	expr := p.parseExpression(Lowest)
	if p.peekIs(token.ASSIGN) {
		return p.finishAssign(expr)
	}
	return &ast.ExpressionStatement{Token: p.curToken, Expression: expr}
}

func (p *Parser) parseBreakStatement() ast.Statement {
	stmt := &ast.BreakStatement{Token: p.curToken}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseContinueStatement() ast.Statement {
	stmt := &ast.ContinueStatement{Token: p.curToken}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if !p.peekIs(token.SEMICOLON) {
		p.nextToken()
		stmt.Value = p.parseExpression(Lowest)
	}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(Lowest)
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	stmt := &ast.SwitchStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(Lowest)
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		clause := &ast.CaseClause{Token: p.curToken}
		if p.curIs(token.DEFAULT) {
			clause.IsDefault = true
			if !p.expectPeek(token.COLON) {
				return stmt
			}
		} else if p.curIs(token.CASE) {
			p.nextToken()
			clause.Value = p.parseExpression(Lowest)
			if !p.expectPeek(token.COLON) {
				return stmt
			}
		} else {
			p.errors = append(p.errors, fmt.Sprintf("%s: expected case or default", p.curToken.Pos))
			return stmt
		}
		p.nextToken()
		for !p.curIs(token.CASE) && !p.curIs(token.DEFAULT) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
			if s := p.parseStatement(); s != nil {
				clause.Body = append(clause.Body, s)
			}
			p.nextToken()
		}
		stmt.Cases = append(stmt.Cases, clause)
	}
	return stmt
}

func (p *Parser) parseTryCatchStatement() ast.Statement {
	stmt := &ast.TryCatchStatement{Token: p.curToken}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Try = p.parseBlockStatement()
	if !p.expectPeek(token.CATCH) {
		return stmt
	}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	if !p.expectPeek(token.IDENT) {
		return stmt
	}
	stmt.CatchVar = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Catch = p.parseBlockStatement()
	return stmt
}

// parseExpressionOrAssignStatement parses either a plain expression
// statement or one of the assignment forms, disambiguated by whether an
// ASSIGN token follows the parsed expression.
func (p *Parser) parseExpressionOrAssignStatement() ast.Statement {
	startTok := p.curToken
	expr := p.parseExpression(Lowest)
	if p.peekIs(token.ASSIGN) {
		stmt := p.finishAssign(expr)
		if p.peekIs(token.SEMICOLON) {
			p.nextToken()
		}
		return stmt
	}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return &ast.ExpressionStatement{Token: startTok, Expression: expr}
}

func (p *Parser) finishAssign(left ast.Expression) ast.Statement {
	assignTok := p.peekToken
	p.nextToken() // consume '='
	p.nextToken()
	value := p.parseExpression(Lowest)

	switch l := left.(type) {
	case *ast.Identifier:
		return &ast.AssignStatement{Token: assignTok, Name: l, Value: value}
	case *ast.PropertyExpression:
		return &ast.PropertyAssignStatement{Token: assignTok, Object: l.Object, Property: l.Property, Value: value}
	case *ast.IndexExpression:
		return &ast.IndexAssignStatement{Token: assignTok, Left: l, Value: value}
	default:
		p.errors = append(p.errors, fmt.Sprintf("%s: invalid assignment target", assignTok.Pos))
		return &ast.ExpressionStatement{Token: assignTok, Expression: left}
	}
}

// --- Expressions ---

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errors = append(p.errors, fmt.Sprintf("%s: no prefix parse function for %s", p.curToken.Pos, p.curToken.Type))
		return nil
	}
	left := prefix()
	for !p.peekIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{Token: p.curToken}
	v, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.errors = append(p.errors, fmt.Sprintf("%s: could not parse %q as integer", p.curToken.Pos, p.curToken.Literal))
		return lit
	}
	lit.Value = v
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return &ast.BoolLiteral{Token: p.curToken, Value: p.curIs(token.TRUE)}
}

func (p *Parser) parseNilLiteral() ast.Expression {
	return &ast.NilLiteral{Token: p.curToken}
}

func (p *Parser) parseThisExpression() ast.Expression {
	return &ast.ThisExpression{Token: p.curToken}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	expr := &ast.UnaryExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()
	expr.Right = p.parseExpression(Unary)
	return expr
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpression{Token: p.curToken, Left: left, Operator: p.curToken.Literal}
	prec := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(prec)
	return expr
}

func (p *Parser) parseTernaryExpression(cond ast.Expression) ast.Expression {
	expr := &ast.TernaryExpression{Token: p.curToken, Condition: cond}
	p.nextToken()
	expr.Consequence = p.parseExpression(Lowest)
	if !p.expectPeek(token.COLON) {
		return expr
	}
	p.nextToken()
	expr.Alternative = p.parseExpression(Lowest)
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(Lowest)
	if !p.expectPeek(token.RPAREN) {
		return expr
	}
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	arr := &ast.ArrayLiteral{Token: p.curToken}
	arr.Elements = p.parseExpressionList(token.RBRACKET)
	return arr
}

func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	var list []ast.Expression
	if p.peekIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(Lowest))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(Lowest))
	}
	if !p.expectPeek(end) {
		return list
	}
	return list
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	expr := &ast.CallExpression{Token: p.curToken, Callee: callee}
	expr.Arguments = p.parseExpressionList(token.RPAREN)
	return expr
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	expr := &ast.IndexExpression{Token: p.curToken, Left: left}
	p.nextToken()
	expr.Index = p.parseExpression(Lowest)
	if !p.expectPeek(token.RBRACKET) {
		return expr
	}
	return expr
}

func (p *Parser) parsePropertyExpression(object ast.Expression) ast.Expression {
	expr := &ast.PropertyExpression{Token: p.curToken, Object: object}
	if !p.expectPeek(token.IDENT) {
		return expr
	}
	expr.Property = p.curToken.Literal
	return expr
}

func (p *Parser) parseNewExpression() ast.Expression {
	expr := &ast.NewExpression{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return expr
	}
	expr.ClassName = p.curToken.Literal
	if !p.expectPeek(token.LPAREN) {
		return expr
	}
	expr.Arguments = p.parseExpressionList(token.RPAREN)
	return expr
}
