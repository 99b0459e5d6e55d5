package ast

import (
	"strings"

	"github.com/compiscript/cscc/internal/token"
)

// IntegerLiteral is a numeric literal such as "42".
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (n *IntegerLiteral) expressionNode()      {}
func (n *IntegerLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *IntegerLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *IntegerLiteral) String() string       { return n.Token.Literal }

// StringLiteral is a quoted string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (n *StringLiteral) expressionNode()      {}
func (n *StringLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *StringLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *StringLiteral) String() string       { return "\"" + n.Value + "\"" }

// BoolLiteral is "true" or "false".
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (n *BoolLiteral) expressionNode()      {}
func (n *BoolLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *BoolLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *BoolLiteral) String() string       { return n.Token.Literal }

// NilLiteral is the literal "nil".
type NilLiteral struct {
	Token token.Token
}

func (n *NilLiteral) expressionNode()      {}
func (n *NilLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NilLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *NilLiteral) String() string       { return "nil" }

// ThisExpression is the "this" reference, valid only inside a class body.
type ThisExpression struct {
	Token token.Token
}

func (n *ThisExpression) expressionNode()      {}
func (n *ThisExpression) TokenLiteral() string { return n.Token.Literal }
func (n *ThisExpression) Pos() token.Position  { return n.Token.Pos }
func (n *ThisExpression) String() string       { return "this" }

// ArrayLiteral is a bracketed list of element expressions: "[1, 2, 3]".
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (n *ArrayLiteral) expressionNode()      {}
func (n *ArrayLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *ArrayLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *ArrayLiteral) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// UnaryExpression is a prefix operator applied to a single operand: "!x", "-x".
type UnaryExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (n *UnaryExpression) expressionNode()      {}
func (n *UnaryExpression) TokenLiteral() string { return n.Token.Literal }
func (n *UnaryExpression) Pos() token.Position  { return n.Token.Pos }
func (n *UnaryExpression) String() string       { return "(" + n.Operator + n.Right.String() + ")" }

// BinaryExpression is an infix operator applied to two operands.
type BinaryExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (n *BinaryExpression) expressionNode()      {}
func (n *BinaryExpression) TokenLiteral() string { return n.Token.Literal }
func (n *BinaryExpression) Pos() token.Position  { return n.Token.Pos }
func (n *BinaryExpression) String() string {
	return "(" + n.Left.String() + " " + n.Operator + " " + n.Right.String() + ")"
}

// TernaryExpression is "cond ? a : b".
type TernaryExpression struct {
	Token       token.Token
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (n *TernaryExpression) expressionNode()      {}
func (n *TernaryExpression) TokenLiteral() string { return n.Token.Literal }
func (n *TernaryExpression) Pos() token.Position  { return n.Token.Pos }
func (n *TernaryExpression) String() string {
	return "(" + n.Condition.String() + " ? " + n.Consequence.String() + " : " + n.Alternative.String() + ")"
}

// CallExpression applies the call suffix "(args...)" to a callee expression.
// Callee is typically an Identifier (function call) or a PropertyExpression
// (method call).
type CallExpression struct {
	Token     token.Token
	Callee    Expression
	Arguments []Expression
}

func (n *CallExpression) expressionNode()      {}
func (n *CallExpression) TokenLiteral() string { return n.Token.Literal }
func (n *CallExpression) Pos() token.Position  { return n.Token.Pos }
func (n *CallExpression) String() string {
	parts := make([]string, len(n.Arguments))
	for i, a := range n.Arguments {
		parts[i] = a.String()
	}
	return n.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// IndexExpression applies the index suffix "[e]" to an array expression.
type IndexExpression struct {
	Token token.Token
	Left  Expression
	Index Expression
}

func (n *IndexExpression) expressionNode()      {}
func (n *IndexExpression) TokenLiteral() string { return n.Token.Literal }
func (n *IndexExpression) Pos() token.Position  { return n.Token.Pos }
func (n *IndexExpression) String() string {
	return n.Left.String() + "[" + n.Index.String() + "]"
}

// PropertyExpression applies the property-access suffix ".id" to an object
// expression.
type PropertyExpression struct {
	Token    token.Token
	Object   Expression
	Property string
}

func (n *PropertyExpression) expressionNode()      {}
func (n *PropertyExpression) TokenLiteral() string { return n.Token.Literal }
func (n *PropertyExpression) Pos() token.Position  { return n.Token.Pos }
func (n *PropertyExpression) String() string {
	return n.Object.String() + "." + n.Property
}

// NewExpression is "new ClassName(args...)".
type NewExpression struct {
	Token     token.Token
	ClassName string
	Arguments []Expression
}

func (n *NewExpression) expressionNode()      {}
func (n *NewExpression) TokenLiteral() string { return n.Token.Literal }
func (n *NewExpression) Pos() token.Position  { return n.Token.Pos }
func (n *NewExpression) String() string {
	parts := make([]string, len(n.Arguments))
	for i, a := range n.Arguments {
		parts[i] = a.String()
	}
	return "new " + n.ClassName + "(" + strings.Join(parts, ", ") + ")"
}
